/*
Package grammar recognizes the statement forms of the Laver language.

Laver is line-oriented: every non-blank line of source holds exactly one
statement. Statements are recognized by matching the line against an
ordered table of patterns, where the first matching pattern wins. The
order of the table is significant, as more specific forms (e.g. variable
definitions) must be tried before more general ones (e.g. assignments).

Recognizing a statement may update the symbol tables of the translation
run (variables, arrays, functions) and produces at most one node of the
intermediate representation. Tokens in expression position are resolved
by Resolve.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'laver.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("laver.grammar")
}
