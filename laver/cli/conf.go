package cli

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/laver"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
)

// appTag identifies Laver's configuration files and directories.
const appTag = "LAVER"

// Configuration keys. Each of the first four has a command line flag of the
// same name, which overrides the value from a configuration file.
const (
	keyInteractive  = "interactive"         // enter the REPL after running files
	keyDump         = "dump"                // display programs instead of running them
	keyFoldWidth    = "fold-width"          // fold full-width input before matching
	keyLogfile      = "logfile"             // file name or URL for trace output
	keyTraceDest    = "tracing.destination" // URL for trace output, derived from logfile
	keyTraceAdapter = "tracing.adapter"     // only "go" is supported
)

// settings control a run of the laver command.
type settings struct {
	interactive bool
	dump        bool
	fold        bool
}

// currentSettings reads the settings from the global configuration. Without
// a configuration, the flag defaults apply.
func currentSettings() settings {
	k := laver.Configuration
	if k == nil {
		return settings{fold: true}
	}
	return settings{
		interactive: k.Bool(keyInteractive),
		dump:        k.Bool(keyDump),
		fold:        k.Bool(keyFoldWidth),
	}
}

// loadConfig is a callback function used by cobra's initialization mechanism.
// Configuration files are located with application key 'LAVER' and are in
// NestedText format (nt). Command line flags are merged on top of them.
func loadConfig() {
	k := koanf.New(".")
	konf := koanfadapter.New(k, appTag, []string{"nt"})
	konf.InitDefaults()
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf(err.Error())
		laver.Exit(1)
	}
	if err := configureTracing(konf); err != nil {
		tracing.Errorf(err.Error())
		laver.Exit(1)
	}
	laver.Configuration = k
	tracer().Debugf("settings: %+v", currentSettings())
}

// mergeFlags loads command line flags on top of the configuration files.
// Flags not given on the command line only set a default if the key is not
// already configured.
func mergeFlags(konf *koanfadapter.KConf) error {
	flags := rootCmd.PersistentFlags()
	if err := konf.Koanf().Load(posflag.Provider(flags, ".", konf.Koanf()), nil); err != nil {
		return err
	}
	if dest := traceDestination(konf.GetString(keyLogfile), locatePaths()); dest != "" {
		konf.Set(keyTraceDest, dest)
	}
	return nil
}

// traceDestination turns the logfile setting into a URL. "stderr" and the
// empty string leave tracing on the console. Plain file names are placed
// into the log directory of the application.
func traceDestination(logfile string, paths AppPaths) string {
	switch {
	case logfile == "" || logfile == "stderr":
		return ""
	case strings.Contains(logfile, ":/"):
		return logfile
	case strings.ContainsRune(logfile, '/') || paths == nil || paths.LogDir() == "":
		return "file://" + logfile
	}
	return "file://" + paths.LogDir() + "/" + logfile
}

// configureTracing routes all tracers through Go's log package, with levels
// per tracer key taken from the "trace" section of the configuration, e.g.
//
//     trace:
//         laver.grammar: Debug
//
func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString(keyTraceAdapter); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set(keyTraceAdapter, "go")
	if dest := konf.GetString(keyTraceDest); dest != "" {
		tracing.Infof("trace output goes to %q", dest)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracing.Infof(rootCmd.Long)
	return nil
}

func locatePaths() AppPaths {
	paths, err := DefaultAppPaths(appTag)
	if err != nil {
		tracing.Errorf("cannot configure paths: %v", err)
	}
	return paths
}
