package model

import (
	"errors"
	"fmt"
	"io"

	"github.com/seqsense/pcgol/pc"
)

const progressBufferSize = 16

var ErrLoad = errors.New("failed to load model")

// Progress of reading the model source. Total is negative if unknown.
type Progress struct {
	Loaded int64
	Total  int64
}

// Loading is a model load in flight.
type Loading struct {
	progress chan Progress
	done     chan struct{}

	node *Node
	err  error
}

// Load decodes a PCD model from r in background.
// total is the expected size in bytes, or negative if unknown.
func Load(r io.Reader, total int64) *Loading {
	l := &Loading{
		progress: make(chan Progress, progressBufferSize),
		done:     make(chan struct{}),
	}
	go l.run(r, total)
	return l
}

// Failed returns a Loading already finished with err, wrapped with ErrLoad.
func Failed(err error) *Loading {
	l := &Loading{
		progress: make(chan Progress),
		done:     make(chan struct{}),
		err:      fmt.Errorf("%w: %w", ErrLoad, err),
	}
	close(l.progress)
	close(l.done)
	return l
}

// Progress is closed when reading finishes. If the receiver is slow,
// intermediate reports are dropped but the latest one is kept.
func (l *Loading) Progress() <-chan Progress {
	return l.progress
}

func (l *Loading) Done() <-chan struct{} {
	return l.done
}

// Result blocks until the load is done.
func (l *Loading) Result() (*Node, error) {
	<-l.done
	return l.node, l.err
}

func (l *Loading) run(r io.Reader, total int64) {
	defer close(l.done)

	pr := &progressReader{r: r, total: total, report: l.report}
	pp, err := pc.Unmarshal(pr)
	if err == nil {
		_, err = io.Copy(io.Discard, pr)
	}
	close(l.progress)
	if err != nil {
		l.err = fmt.Errorf("%w: %w", ErrLoad, err)
		return
	}

	n, err := newCloudNode(pp)
	if err != nil {
		l.err = fmt.Errorf("%w: %w", ErrLoad, err)
		return
	}
	l.node = n
}

func (l *Loading) report(p Progress) {
	for {
		select {
		case l.progress <- p:
			return
		default:
		}
		select {
		case <-l.progress:
		default:
		}
	}
}

type progressReader struct {
	r      io.Reader
	loaded int64
	total  int64
	report func(Progress)
}

func (r *progressReader) Read(b []byte) (int, error) {
	n, err := r.r.Read(b)
	if n > 0 {
		r.loaded += int64(n)
		r.report(Progress{Loaded: r.loaded, Total: r.total})
	}
	return n, err
}

// newCloudNode converts the cloud to packed float x, y, z for rendering
// and centers the node on its bounding box.
func newCloudNode(pp *pc.PointCloud) (*Node, error) {
	it, err := pp.Vec3Iterator()
	if err != nil {
		return nil, err
	}

	xyz := &pc.PointCloud{
		PointCloudHeader: pc.PointCloudHeader{
			Version:   pp.Version,
			Fields:    []string{"x", "y", "z"},
			Size:      []int{4, 4, 4},
			Type:      []string{"F", "F", "F"},
			Count:     []int{1, 1, 1},
			Viewpoint: pp.Viewpoint,
			Width:     pp.Points,
			Height:    1,
		},
		Points: pp.Points,
	}
	xyz.Data = make([]byte, pp.Points*xyz.Stride())

	n := NewNode()
	n.Cloud = xyz
	if pp.Points == 0 {
		return n, nil
	}

	jt, err := xyz.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	for ; it.IsValid(); it.Incr() {
		jt.SetVec3(it.Vec3())
		jt.Incr()
	}

	kt, err := xyz.Vec3Iterator()
	if err != nil {
		return nil, err
	}
	min, max, err := pc.MinMaxVec3(kt)
	if err != nil {
		return nil, err
	}
	n.Center = min.Add(max).Mul(0.5)
	return n, nil
}

// Percent returns the progress in percent, or false if the total is unknown.
func (p Progress) Percent() (int, bool) {
	if p.Total <= 0 {
		return 0, false
	}
	return int(p.Loaded * 100 / p.Total), true
}
