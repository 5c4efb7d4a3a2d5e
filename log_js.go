package main

import (
	"fmt"
	"syscall/js"
)

// newLogPrint returns a logger appending lines to logDiv and the browser
// console. logDiv may be null.
func newLogPrint(doc, logDiv js.Value) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		println(msg)
		if logDiv.IsNull() || logDiv.IsUndefined() {
			return
		}
		line := doc.Call("createElement", "div")
		line.Set("textContent", msg)
		logDiv.Call("appendChild", line)
	}
}
