/*
Package translator translates Laver source text into a program of
intermediate nodes.

A Translator feeds source lines one at a time to the statement recognizer
of package grammar and collects the nodes produced. Blocks (conditionals,
loops and function definitions) are tracked with a stack of open blocks:
statements between the opening line of a block and its closing line become
children of the node which opened the block.

   var greeting = "hello"
   newfunc: greet {
       p: "hi"
   endfunc
   func: greet { }

Every translation run owns its symbol tables. A Translator must not be used
concurrently.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package translator

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'laver.translator'
func tracer() tracing.Trace {
	return tracing.Select("laver.translator")
}
