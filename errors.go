package laver

import "fmt"

// SyntaxError flags a source line no statement form matched. It carries the
// offending line verbatim.
type SyntaxError struct {
	Line   int    // 1-based line number, 0 if unknown
	Text   string // the line as read
	Reason string // optional detail
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("line %d: invalid syntax: %s", e.Line, e.Text)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// UndefinedFunctionError flags a call of a function which has not been
// defined at the point of the call.
type UndefinedFunctionError struct {
	Line int
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("line %d: function '%s' is not defined", e.Line, e.Name)
}

// UndefinedNameError flags a free name which had no value when an executor
// required one. The translator never raises it.
type UndefinedNameError struct {
	Name string
}

func (e *UndefinedNameError) Error() string {
	return fmt.Sprintf("name '%s' is not defined", e.Name)
}
