package main

import (
	webgl "github.com/seqsense/webgl-go"
)

func showDebugInfo(gl *webgl.WebGL, logf func(string, ...interface{})) {
	defer func() {
		if r := recover(); r != nil {
			logf("Failed to get debug info")
		}
	}()

	ri, ok := gl.GetExtension("WEBGL_debug_renderer_info")
	if !ok {
		logf("GPU info: hidden by the browser privacy setting")
		return
	}
	logf("GPU: %s %s",
		gl.GetParameter(ri.Get("UNMASKED_VENDOR_WEBGL").Int()).String(),
		gl.GetParameter(ri.Get("UNMASKED_RENDERER_WEBGL").Int()).String(),
	)
}
