package main

import (
	"syscall/js"

	"github.com/seqsense/dragview/frame"
	"github.com/seqsense/dragview/rotate"
	webgl "github.com/seqsense/webgl-go"
)

// pointerInput forwards the primary pointer over the canvas to the
// rotation controller on the frame loop.
type pointerInput struct {
	loop   *frame.Loop
	ctrl   *rotate.Controller
	canvas js.Value
}

func (p *pointerInput) attach(c webgl.Canvas) {
	c.OnPointerDown(p.pointerDown)
	c.OnPointerMove(p.pointerMove)
	c.OnPointerUp(p.pointerUp)
	c.OnPointerOut(p.pointerOut)
	setCursor(p.canvas, cursorGrab)
}

func (p *pointerInput) pointerDown(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()
	if !e.IsPrimary {
		return
	}
	x, y := float64(e.OffsetX), float64(e.OffsetY)
	p.loop.Post(func() {
		p.ctrl.PointerDown(x, y)
		setCursor(p.canvas, cursorGrabbing)
	})
}

func (p *pointerInput) pointerMove(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()
	if !e.IsPrimary {
		return
	}
	x, y := float64(e.OffsetX), float64(e.OffsetY)
	p.loop.Post(func() {
		p.ctrl.PointerMove(x, y)
	})
}

func (p *pointerInput) pointerUp(e webgl.PointerEvent) {
	e.PreventDefault()
	e.StopPropagation()
	if !e.IsPrimary {
		return
	}
	p.loop.Post(func() {
		p.ctrl.PointerUp()
		setCursor(p.canvas, cursorGrab)
	})
}

func (p *pointerInput) pointerOut(e webgl.PointerEvent) {
	if !e.IsPrimary {
		return
	}
	p.loop.Post(func() {
		p.ctrl.PointerLeave()
		setCursor(p.canvas, cursorGrab)
	})
}
