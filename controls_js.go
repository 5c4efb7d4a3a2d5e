package main

import (
	"syscall/js"

	"github.com/seqsense/dragview/frame"
	"github.com/seqsense/dragview/model"
)

// attachControls binds the range inputs present in the page.
// Input is ignored until target returns a node.
func attachControls(doc js.Value, loop *frame.Loop, target func() *model.Node) int {
	var n int
	for _, id := range controlIDs {
		id := id
		el := doc.Call("getElementById", id)
		if el.IsNull() {
			continue
		}
		el.Call("addEventListener", "input",
			js.FuncOf(func(this js.Value, args []js.Value) interface{} {
				v := el.Get("value").String()
				loop.Post(func() {
					if node := target(); node != nil {
						applyControl(node, id, v)
					}
				})
				return nil
			}),
		)
		n++
	}
	return n
}
