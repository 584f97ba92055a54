package cli

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'laver.cli'
func tracer() tracing.Trace {
	return tracing.Select("laver.cli")
}
