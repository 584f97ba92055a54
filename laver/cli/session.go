package cli

import (
	"context"
	"errors"
	"io"

	"github.com/npillmayer/laver/laver/ui/termui"
	"github.com/npillmayer/laver/source"
	"github.com/npillmayer/laver/translator"
	"github.com/npillmayer/laver/vm"
)

// session runs Laver sources in a single VM. Global names assigned by one
// file are visible to subsequent files and to an interactive session.
type session struct {
	vm       *vm.VM
	out      io.Writer
	settings settings
}

func newSession(out io.Writer, conf settings) *session {
	return &session{
		vm:       vm.New(vm.Output(out)),
		out:      out,
		settings: conf,
	}
}

// translatorOptions folds full-width input if configured. Folding is done per
// line by the translator, thus syntax errors show the line as written.
func (s *session) translatorOptions() []translator.Option {
	if s.settings.fold {
		return []translator.Option{translator.Normalize(source.Fold)}
	}
	return nil
}

func (s *session) close() {
	s.vm.Close()
}

// runFile translates a source file and either runs or dumps it.
func (s *session) runFile(ctx context.Context, path string) error {
	text, err := source.Read(path)
	if err != nil {
		return err
	}
	prog, err := translator.Translate(text, s.translatorOptions()...)
	if err != nil {
		return err
	}
	tracer().Infof("translated %s: %d statements", path, len(prog.Nodes))
	if s.settings.dump {
		f := termui.DefaultFormatter{}
		f.Format(programTable(path, prog), s.out)
		f.Format(symbolTable(prog.Tables), s.out)
		return nil
	}
	err = s.vm.Run(ctx, prog)
	if errors.Is(err, vm.ErrNoProgramToExecute) {
		tracer().Infof("%s contains no statements", path)
		return nil
	}
	return err
}
