package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"syscall/js"

	"github.com/seqsense/dragview/blob"
)

func fetch(path string) (js.Value, error) {
	var res js.Value
	chErr := make(chan error, 1)
	onResponse := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if !args[0].Get("ok").Bool() {
			chErr <- fmt.Errorf("failed to fetch file: %s", args[0].Get("statusText").String())
			return nil
		}
		res = args[0]
		chErr <- nil
		return nil
	})
	defer onResponse.Release()
	onError := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		chErr <- errors.New("failed to fetch file")
		return nil
	})
	defer onError.Release()

	js.Global().Call("fetch", path, map[string]interface{}{
		"credentials": "include",
	}).Call("then", onResponse, onError)

	if err := <-chErr; err != nil {
		return js.Value{}, err
	}
	return res, nil
}

func fetchGet(path string) ([]byte, error) {
	res, err := fetch(path)
	if err != nil {
		return nil, err
	}
	r, _, err := responseReader(res)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// fetchStream returns the response body as a stream and its size in bytes,
// or -1 if the server didn't send Content-Length.
func fetchStream(path string) (io.Reader, int64, error) {
	res, err := fetch(path)
	if err != nil {
		return nil, 0, err
	}
	return responseReader(res)
}

func responseReader(res js.Value) (io.Reader, int64, error) {
	total := int64(-1)
	if l := res.Get("headers").Call("get", "Content-Length"); l.Type() == js.TypeString {
		if n, err := strconv.ParseInt(l.String(), 10, 64); err == nil {
			total = n
		}
	}
	body := res.Get("body")
	if body.IsNull() || body.IsUndefined() {
		return nil, 0, errors.New("response has no body")
	}
	return blob.NewStreamReader(body), total, nil
}
