/*
Package vm executes translated Laver programs.

Laver programs are not interpreted directly. Instead, the intermediate nodes
are lowered to a chunk of Lua code, which is then run by an embedded Lua
interpreter (gopher-lua). Laver's semantics map onto Lua as follows:

   p: "text"                 print("text")
   var x = "v" / x = 1       x = "v" / x = 1
   array a: [1, x]           a = {1, "v"}
   if: &x == "v" {           if x == "v" then … else … end
   for: {0;10;2} {           for _ = 0, 8, 2 do … end
   newfunc: f {              function f() … end
   f(1, 2)                   f(1, 2)
   import m                  m = require("m")

Global names are strict: reading a name which has never been assigned
raises a *laver.UndefinedNameError.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vm

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'laver.vm'
func tracer() tracing.Trace {
	return tracing.Select("laver.vm")
}
