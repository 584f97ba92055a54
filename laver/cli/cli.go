// Package cli implements the Laver command line interface.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/npillmayer/laver"
	"github.com/npillmayer/laver/laver/ui/termui"
	"github.com/npillmayer/laver/translator"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "laver [flags] [file…]",
	Short: "A line-oriented toy language",
	Long: `Welcome to Laver V0.1 (experimental)

Laver interprets programs written in a small line-oriented language.
Every line is one statement; blocks are opened by a trailing '{' and
closed by 'end' or 'endfunc'.

Laver runs the files given as arguments in order. Without arguments, or
with flag -i, it will prompt for statements in a terminal REPL.

`,
	Args: cobra.ArbitraryArgs,
	Run:  runLaverCmd,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by laver.main().
func Execute() {
	if rootCmd.Execute() != nil {
		laver.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	rootCmd.PersistentFlags().BoolP(keyInteractive, "i", false, "Force run in interactive mode")
	rootCmd.PersistentFlags().Bool(keyDump, false, "Display translated programs instead of running them")
	rootCmd.PersistentFlags().Bool(keyFoldWidth, true, "Fold full-width characters to their ASCII forms")
	rootCmd.PersistentFlags().String(keyLogfile, "stderr", "URL of log output location")
}

func runLaverCmd(cmd *cobra.Command, args []string) {
	s := newSession(os.Stdout, currentSettings())
	defer s.close()
	for _, path := range args {
		if err := s.runFile(laver.SignalContext, path); err != nil {
			s.close()
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			laver.Exit(1)
		}
	}
	if len(args) == 0 || s.settings.interactive {
		runLaverCmdIntpr(s)
	}
}

func runLaverCmdIntpr(s *session) {
	tracing.Infof("laver interpreter called")
	lcmd := &laverCmdIntpr{
		session: s,
		tr:      translator.New(s.translatorOptions()...),
	}
	lcmd.BaseREPL = termui.NewBaseREPL("laver", "0.1 experimental", historyFile(locatePaths()))
	lcmd.Interpreter = lcmd
	lcmd.Helper = func(w io.Writer) {
		io.WriteString(w, `
  show               : display the symbol tables

Laver will interpret the following statements:

  p: "text"                      : print text
  var <name> = "value"           : define a string variable
  array <name>: [a, b, …]        : define an array
  i: &<name>                     : look up a variable
  if: &<name> == "value" {       : conditional block, closed by 'end'
  else {                         : alternative to the preceding if-block
  for: {start;stop;step} {       : counted loop, closed by 'end'
  newfunc: <name> {              : define a function, closed by 'endfunc'
  func: <name> { }               : call a defined function
  <name> = <value>               : assignment
  <name>(a, b, …)                : call
  import <module>                : import a module

`)
	}
	lcmd.AddBuiltin("show", lcmd.show)
	lcmd.Prompt(true)
}

// laverCmdIntpr feeds REPL lines to one long-lived translator. Top-level
// statements are executed as soon as they are complete, i.e. no block is
// open.
type laverCmdIntpr struct {
	*termui.BaseREPL
	session *session
	tr      *translator.Translator
}

func (lcmd *laverCmdIntpr) InterpretCommand(line string) {
	_, stderr := lcmd.Outputs()
	if err := lcmd.tr.Line(line); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return
	}
	lcmd.Continued(lcmd.tr.Depth() > 0)
	nodes := lcmd.tr.Drain()
	if len(nodes) == 0 {
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := lcmd.session.vm.RunNodes(ctx, nodes); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
	}
}

func (lcmd *laverCmdIntpr) show(args []string, w io.Writer) {
	termui.DefaultFormatter{}.Format(symbolTable(lcmd.tr.Tables()), w)
}
