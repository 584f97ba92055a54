/*
Package laver holds the intermediate representation of Laver programs:
expressions, statement nodes and blocks, together with the error types
reported by translation and execution. It also carries application-wide
settings of the laver command.

Sub-packages build on it: grammar recognizes single statements, symtab keeps
the symbol tables, translator assembles blocks into programs and vm runs
them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package laver

import (
	"context"
	"io"
	"os"

	"github.com/knadh/koanf"
)

// Configuration holds global configuration values. We use koanf.
var Configuration *koanf.Koanf

// Tracefile is the file we write our log output, if not nil.
var Tracefile io.WriteCloser

// SignalContext is a global context for terminating a running Laver program by
// an interrupt signal.
var SignalContext context.Context = context.Background()

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Tracefile != nil {
		Tracefile.Close()
	}
	os.Exit(errcode)
}
