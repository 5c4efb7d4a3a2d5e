package main

import (
	"syscall/js"
)

type cursor string

const (
	cursorAuto     cursor = "auto"
	cursorGrab     cursor = "grab"
	cursorGrabbing cursor = "grabbing"
	cursorProgress cursor = "progress"
)

func setCursor(canvas js.Value, c cursor) {
	canvas.Get("style").Set("cursor", string(c))
}
