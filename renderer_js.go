package main

import (
	"syscall/js"

	"github.com/seqsense/dragview/model"
	"github.com/seqsense/pcgol/mat"
	webgl "github.com/seqsense/webgl-go"
)

const aVertexPosition = 0

type renderer struct {
	gl *webgl.WebGL
	// ctx is the raw WebGL2 context, for calls webgl.WebGL does not wrap.
	ctx js.Value

	program      webgl.Program
	uProjection  webgl.Location
	uModelView   webgl.Location
	uColor       webgl.Location
	color        mat.Vec3
	cubeBuf      webgl.Buffer
	nCubePoints  int
	cloudBuffers map[*model.Node]webgl.Buffer
}

func newRenderer(gl *webgl.WebGL, cfg *sceneConfig) (*renderer, error) {
	vs, err := compileShader(gl, gl.VERTEX_SHADER, "VERTEX_SHADER", vsSource)
	if err != nil {
		return nil, err
	}
	fs, err := compileShader(gl, gl.FRAGMENT_SHADER, "FRAGMENT_SHADER", fsSource)
	if err != nil {
		return nil, err
	}
	program, err := linkShaders(gl, vs, fs)
	if err != nil {
		return nil, err
	}

	r := &renderer{
		gl:           gl,
		ctx:          js.Value(gl.Canvas).Call("getContext", "webgl2"),
		program:      program,
		uProjection:  gl.GetUniformLocation(program, "uProjectionMatrix"),
		uModelView:   gl.GetUniformLocation(program, "uModelViewMatrix"),
		uColor:       gl.GetUniformLocation(program, "uColor"),
		color:        cfg.color(),
		cloudBuffers: make(map[*model.Node]webgl.Buffer),
	}

	cube := model.Cube()
	buf := make([]float32, 0, len(cube)*3)
	for _, p := range cube {
		buf = append(buf, p[0], p[1], p[2])
	}
	r.nCubePoints = len(cube)
	r.cubeBuf = gl.CreateBuffer()
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeBuf)
	gl.BufferData(gl.ARRAY_BUFFER, webgl.Float32ArrayBuffer(buf), gl.STATIC_DRAW)

	gl.ClearColor(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0)
	gl.ClearDepth(1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	gl.UseProgram(program)
	gl.EnableVertexAttribArray(aVertexPosition)
	gl.Uniform3fv(r.uColor, r.color)
	return r, nil
}

func (r *renderer) upload(n *model.Node) {
	if n.Cloud == nil || n.Cloud.Points == 0 {
		return
	}
	buf := r.gl.CreateBuffer()
	r.gl.BindBuffer(r.gl.ARRAY_BUFFER, buf)
	r.gl.BufferData(r.gl.ARRAY_BUFFER, webgl.ByteArrayBuffer(n.Cloud.Data), r.gl.STATIC_DRAW)
	r.cloudBuffers[n] = buf
}

// release deletes the GL buffer uploaded for n, if any.
func (r *renderer) release(n *model.Node) {
	buf, ok := r.cloudBuffers[n]
	if !ok {
		return
	}
	r.ctx.Call("deleteBuffer", js.Value(buf))
	delete(r.cloudBuffers, n)
}

func (r *renderer) resize(c *camera) {
	r.gl.Canvas.SetWidth(c.width)
	r.gl.Canvas.SetHeight(c.height)
	r.gl.Viewport(0, 0, c.width, c.height)
	r.gl.UniformMatrix4fv(r.uProjection, false, c.projection)
}

func (r *renderer) draw(sc *model.Scene, c *camera) {
	gl := r.gl
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := c.view()
	for _, n := range sc.Nodes() {
		gl.UniformMatrix4fv(r.uModelView, false, view.MulAffine(n.Matrix()))
		if n.Cloud == nil {
			gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeBuf)
			gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, 0, 0)
			gl.DrawArrays(gl.LINES, 0, r.nCubePoints)
			continue
		}
		buf, ok := r.cloudBuffers[n]
		if !ok {
			continue
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, buf)
		gl.VertexAttribPointer(aVertexPosition, 3, gl.FLOAT, false, n.Cloud.Stride(), 0)
		gl.DrawArrays(gl.POINTS, 0, n.Cloud.Points)
	}
}
