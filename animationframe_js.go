package main

import (
	"syscall/js"
	"time"
)

// animationFrame is a frame.Source driven by requestAnimationFrame.
// Frames are dropped while the loop is busy.
type animationFrame struct {
	ch chan time.Time
	cb js.Func
}

func newAnimationFrame() *animationFrame {
	a := &animationFrame{
		ch: make(chan time.Time, 1),
	}
	a.cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		select {
		case a.ch <- time.Now():
		default:
		}
		js.Global().Call("requestAnimationFrame", a.cb)
		return nil
	})
	js.Global().Call("requestAnimationFrame", a.cb)
	return a
}

func (a *animationFrame) Frames() <-chan time.Time {
	return a.ch
}
