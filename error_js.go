package main

import (
	"errors"
	"syscall/js"
)

var errContextLostEvent = errors.New("received context lost event")

func errorToJS(err error) js.Value {
	return js.Global().Get("Error").New(err.Error())
}

// newPromise runs fn in background and settles the returned Promise
// with its result.
func newPromise(fn func() error) js.Value {
	handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		resolve, reject := args[0], args[1]
		go func() {
			if err := fn(); err != nil {
				reject.Invoke(errorToJS(err))
				return
			}
			resolve.Invoke()
		}()
		return nil
	})
	defer handler.Release()
	return js.Global().Get("Promise").New(handler)
}
