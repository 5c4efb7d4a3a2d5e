// Package blob reads browser Blob and File objects and other
// ReadableStream sources.
package blob

import (
	"errors"
	"io"
	"syscall/js"
)

var (
	ErrNotObject = errors.New("requires JavaScript object")
	ErrNotBlob   = errors.New("requires Blob object")
	ErrStream    = errors.New("failed to read stream")
)

type Blob js.Value

var blobJS = js.Global().Get("Blob")

func JS(j interface{}) (Blob, error) {
	jv, ok := j.(js.Value)
	if !ok {
		return Blob{}, ErrNotObject
	}
	if !jv.InstanceOf(blobJS) {
		return Blob{}, ErrNotBlob
	}
	return Blob(jv), nil
}

func (blob Blob) Size() int64 {
	return int64(js.Value(blob).Get("size").Float())
}

// Name returns the file name, or an empty string if blob is not a File.
func (blob Blob) Name() string {
	name := js.Value(blob).Get("name")
	if name.Type() != js.TypeString {
		return ""
	}
	return name.String()
}

// Reader returns a reader pulling the content chunk by chunk from
// blob.stream(), so the caller sees bytes as the browser reads them.
func (blob Blob) Reader() io.Reader {
	return NewStreamReader(js.Value(blob).Call("stream"))
}

// NewStreamReader wraps a ReadableStream of Uint8Array chunks.
func NewStreamReader(stream js.Value) io.Reader {
	return &streamReader{reader: stream.Call("getReader")}
}

type streamReader struct {
	reader js.Value
	chunk  []byte
	eof    bool
}

func (r *streamReader) Read(b []byte) (int, error) {
	for len(r.chunk) == 0 {
		if r.eof {
			return 0, io.EOF
		}
		if err := r.pull(); err != nil {
			return 0, err
		}
	}
	n := copy(b, r.chunk)
	r.chunk = r.chunk[n:]
	return n, nil
}

// pull waits for the next chunk of the stream.
func (r *streamReader) pull() error {
	chErr := make(chan error, 1)
	onRead := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		res := args[0]
		if res.Get("done").Bool() {
			r.eof = true
			chErr <- nil
			return nil
		}
		value := res.Get("value")
		r.chunk = make([]byte, value.Get("byteLength").Int())
		js.CopyBytesToGo(r.chunk, value)
		chErr <- nil
		return nil
	})
	defer onRead.Release()
	onFail := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chErr <- ErrStream
		return nil
	})
	defer onFail.Release()

	r.reader.Call("read").Call("then", onRead, onFail)
	return <-chErr
}
