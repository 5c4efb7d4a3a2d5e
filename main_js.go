package main

import (
	"context"
	"errors"
	"io"
	"syscall/js"
	"time"

	"github.com/seqsense/dragview/blob"
	"github.com/seqsense/dragview/frame"
	"github.com/seqsense/dragview/model"
	webgl "github.com/seqsense/webgl-go"
)

const progressLogStep = 10

func main() {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "modelCanvas")
	logf := newLogPrint(doc, doc.Call("getElementById", "log"))

	cfg := defaultConfig()
	if path := canvas.Get("dataset").Get("config"); path.Type() == js.TypeString {
		b, err := fetchGet(path.String())
		if err == nil {
			cfg, err = parseConfig(b)
		}
		if err != nil {
			logf("config %s: %v", path.String(), err)
			cfg = defaultConfig()
		}
	}

	gl, err := webgl.New(canvas)
	if err != nil {
		logf("%v", err)
		return
	}
	showDebugInfo(gl, logf)

	rnd, err := newRenderer(gl, cfg)
	if err != nil {
		logf("%v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gl.Canvas.OnWebGLContextLost(func(e webgl.WebGLContextEvent) {
		e.PreventDefault()
		logf("%v: %s", errContextLostEvent, e.StatusMessage)
		cancel()
	})

	sc := &model.Scene{}
	ctrl := cfg.newController()
	cam := newCamera(cfg.CameraDistance, cfg.CanvasHeight)
	loop := frame.NewLoop()

	// loaded is the model the range controls and the mirror act on.
	// shown is the node a new model replaces, the cube before the first load.
	var loaded, shown *model.Node
	place := func(n *model.Node) {
		n.SetScale(cfg.Scale)
		n.Position = cfg.position()
	}
	if cfg.Model == "" {
		shown = model.NewNode()
		place(shown)
		sc.Add(shown)
		ctrl.SetTarget(shown)
	}

	load := func(path string, open func() (io.Reader, int64, error)) error {
		logf("loading %s", path)
		setCursor(canvas, cursorProgress)
		var l *model.Loading
		if r, total, err := open(); err != nil {
			l = model.Failed(err)
		} else {
			l = model.Load(r, total)
		}

		last := -progressLogStep
		for p := range l.Progress() {
			if pct, ok := p.Percent(); ok && pct >= last+progressLogStep {
				last = pct - pct%progressLogStep
				loop.Post(func() { logf("loading %s: %d%%", path, pct) })
			}
		}

		<-l.Done()

		chErr := make(chan error, 1)
		loop.Post(func() {
			defer setCursor(canvas, cursorGrab)
			n, err := sc.ReplaceLoaded(l, shown, logf)
			if err != nil {
				chErr <- err
				return
			}
			if shown != nil {
				rnd.release(shown)
			}
			place(n)
			rnd.upload(n)
			ctrl.SetTarget(n)
			ctrl.Stop()
			loaded, shown = n, n
			logf("%s loaded: %d points", path, n.Cloud.Points)
			chErr <- nil
		})
		return <-chErr
	}
	fetchModel := func(path string) error {
		return load(path, func() (io.Reader, int64, error) {
			return fetchStream(path)
		})
	}
	loadFile := func(file js.Value) error {
		b, err := blob.JS(file)
		if err != nil {
			return load("dropped object", func() (io.Reader, int64, error) {
				return nil, 0, err
			})
		}
		return load(b.Name(), func() (io.Reader, int64, error) {
			return b.Reader(), b.Size(), nil
		})
	}
	js.Global().Set("loadModel",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			if len(args) < 1 {
				return newPromise(func() error { return errors.New("model path is required") })
			}
			if args[0].Type() == js.TypeString {
				path := args[0].String()
				return newPromise(func() error { return fetchModel(path) })
			}
			file := args[0]
			return newPromise(func() error { return loadFile(file) })
		}),
	)
	canvas.Call("addEventListener", "dragover",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			args[0].Call("preventDefault")
			return nil
		}),
	)
	canvas.Call("addEventListener", "drop",
		js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			args[0].Call("preventDefault")
			files := args[0].Get("dataTransfer").Get("files")
			if files.Get("length").Int() < 1 {
				return nil
			}
			file := files.Index(0)
			// Load errors are logged by the scene.
			go loadFile(file)
			return nil
		}),
	)
	if cfg.Model != "" {
		go fetchModel(cfg.Model)
	}

	pi := &pointerInput{loop: loop, ctrl: ctrl, canvas: canvas}
	pi.attach(gl.Canvas)
	gl.Canvas.OnContextMenu(func(e webgl.MouseEvent) {
		e.PreventDefault()
		e.StopPropagation()
	})

	current := func() *model.Node { return loaded }
	if cfg.Controls {
		if n := attachControls(doc, loop, current); n > 0 {
			logf("%d controls attached", n)
		}
	}

	loop.Add(func(time.Time) { ctrl.Tick() })
	if cfg.Mirror != "" {
		publish := connectMirror(cfg.Mirror, loop, current, logf)
		loop.Add(func(time.Time) { publish() })
	}
	loop.Add(func(time.Time) {
		if cam.resize(js.Global().Get("innerWidth").Int()) {
			rnd.resize(cam)
		}
		rnd.draw(sc, cam)
	})

	if err := loop.Run(ctx, newAnimationFrame()); err != nil {
		logf("%v", err)
	}
}
