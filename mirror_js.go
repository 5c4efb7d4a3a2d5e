package main

import (
	"syscall/js"

	"github.com/seqsense/dragview/frame"
	"github.com/seqsense/dragview/model"
)

const wsOpen = 1

// connectMirror opens the relay websocket. The returned function publishes
// the local orientation and must be called on the frame loop.
func connectMirror(url string, loop *frame.Loop, target func() *model.Node, logf func(string, ...interface{})) func() {
	m := &mirror{}
	ws := js.Global().Get("WebSocket").New(url)

	ws.Set("onmessage",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			data := args[0].Get("data").String()
			loop.Post(func() {
				r, err := m.incoming([]byte(data))
				if err != nil {
					logf("mirror: %v", err)
					return
				}
				if n := target(); n != nil {
					n.Rotation = r
				}
			})
			return nil
		}),
	)
	ws.Set("onerror",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			logf("mirror: connection error (%s)", url)
			return nil
		}),
	)

	return func() {
		n := target()
		if n == nil || ws.Get("readyState").Int() != wsOpen {
			return
		}
		if b, ok := m.outgoing(n.Rotation); ok {
			ws.Call("send", string(b))
		}
	}
}
