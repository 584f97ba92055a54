// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
//
package termui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces with key 'laver.cli'.
func trace() tracing.Trace {
	return tracing.Select("laver.cli")
}

// Formatter writes items to be displayed to the user.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter displays strings, errors, tables and a short description
// of anything else.
type DefaultFormatter struct{}

func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	switch t := item.(type) {
	case string:
		w.Write([]byte("▶ "))
		if _, err := w.Write([]byte(t)); err != nil {
			return false, err
		}
		w.Write([]byte{'\n'})
		return true, nil
	case error:
		_, err := fmt.Fprintf(w, "▶ error: %v\n", t)
		return err == nil, err
	case table.Writer:
		if t == nil || t.Length() == 0 {
			w.Write([]byte("▶ (empty table)\n"))
			return true, nil
		}
		if _, err := w.Write([]byte(t.Render())); err != nil {
			return false, err
		}
		w.Write([]byte{'\n'})
		return true, nil
	case fmt.Stringer:
		fmt.Fprintf(w, "▶ %s\n", t)
		return true, nil
	default:
		w.Write([]byte("▶ "))
		w.Write([]byte(fmt.Sprintf("object of type %T\n", t)))
		return true, nil
	}
}
