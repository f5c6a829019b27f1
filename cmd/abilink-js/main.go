//go:build js && wasm

// Command abilink-js exposes the linker to a JavaScript host.
//
// Build with GOOS=js GOARCH=wasm. Once started it registers a global
// function:
//
//	abilinkLink(code: string, abi: string): string | Error
//
// code is the module as hex text; the result is the annotated module as
// lowercase hex, or an Error whose message is the link failure.
package main

import (
	"syscall/js"

	"github.com/wippyai/abilink"
)

const globalName = "abilinkLink"

func main() {
	js.Global().Set(globalName, js.FuncOf(link))
	select {}
}

func link(_ js.Value, args []js.Value) any {
	if len(args) != 2 || args[0].Type() != js.TypeString || args[1].Type() != js.TypeString {
		return jsError(globalName + " expects (code: string, abi: string)")
	}
	out, err := abilink.Link(args[0].String(), args[1].String())
	if err != nil {
		return jsError(err.Error())
	}
	return out
}

func jsError(msg string) js.Value {
	return js.Global().Get("Error").New(msg)
}
