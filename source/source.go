/*
Package source reads Laver source text from storage.

Source text may be normalized by folding full-width and half-width
character forms to their canonical forms, e.g. for input typed with an
East Asian input method.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package source

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/width"
)

// tracer traces with key 'laver.source'.
func tracer() tracing.Trace {
	return tracing.Select("laver.source")
}

// IOError flags a source file which is missing or cannot be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cannot read source %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Option configures reading of source text.
type Option func(*options)

type options struct {
	foldWidth bool
}

// FoldWidth sets whether full-width and half-width forms are folded to
// their canonical width. With folding, a line typed on an East Asian input
// method such as
//
//     ｐ：　＂안녕＂
//
// reads as `p: "안녕"`.
func FoldWidth(b bool) Option {
	return func(o *options) {
		o.foldWidth = b
	}
}

// Read returns the text of a source file.
func Read(path string, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		tracer().Errorf("reading %s: %v", path, err)
		return "", &IOError{Path: path, Err: err}
	}
	tracer().Debugf("read %d bytes from %s", len(b), path)
	text := string(b)
	if o.foldWidth {
		text = Fold(text)
	}
	return text, nil
}

// Fold folds full-width and half-width forms in a text to their canonical
// width.
func Fold(text string) string {
	return width.Fold.String(text)
}
