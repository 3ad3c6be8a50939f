//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cottand/surd/surd"
)

func main() {
	js.Global().Set("surdAnalyse", js.FuncOf(surd.AnalyseJS))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}
