/*
Package symtab implements the symbol tables of a Laver translation run.

There are three independent tables: variables map a name to the last
string value assigned to it, arrays map a name to the list of expressions
it was defined with, and functions map a name to the block of statements
forming the function's body. Additionally, the tables keep track of the
function currently being defined (if any); Laver does not allow nested
function definitions.

Tables are never shared between translation runs. Entries are never removed.
Iteration follows definition order, which keeps dumps and program listings
deterministic.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package symtab

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'laver.symtab'
func tracer() tracing.Trace {
	return tracing.Select("laver.symtab")
}
