package frame

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestLoop_Step(t *testing.T) {
	l := NewLoop()
	var calls []string
	l.Add(func(time.Time) { calls = append(calls, "update") })
	l.Add(func(time.Time) { calls = append(calls, "render") })

	l.Post(func() { calls = append(calls, "input0") })
	l.Post(func() { calls = append(calls, "input1") })

	l.Step(time.Unix(0, 0))
	l.Step(time.Unix(1, 0))

	expected := []string{"input0", "input1", "update", "render", "update", "render"}
	if !reflect.DeepEqual(expected, calls) {
		t.Errorf("Expected:\n%v\nGot:\n%v", expected, calls)
	}
}

func TestLoop_StepTimestamp(t *testing.T) {
	l := NewLoop()
	var got []time.Time
	l.Add(func(now time.Time) { got = append(got, now) })

	start := time.Unix(100, 0)
	for i := 0; i < 3; i++ {
		l.Step(start.Add(time.Duration(i) * time.Second))
	}
	for i, ts := range got {
		if expected := start.Add(time.Duration(i) * time.Second); !ts.Equal(expected) {
			t.Errorf("Frame %d: expected %v, got %v", i, expected, ts)
		}
	}
}

func TestLoop_Run(t *testing.T) {
	l := NewLoop()
	src := NewManual(time.Unix(0, 0), 16*time.Millisecond)

	var n int
	var last time.Time
	l.Add(func(now time.Time) {
		n++
		last = now
	})

	chErr := make(chan error)
	go func() {
		chErr <- l.Run(context.Background(), src)
	}()

	src.Advance(3)
	src.Close()

	if err := <-chErr; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 frames, got %d", n)
	}
	if !last.Equal(src.Now()) {
		t.Errorf("Expected last frame at %v, got %v", src.Now(), last)
	}
}

func TestLoop_RunPostedBeforeFrame(t *testing.T) {
	l := NewLoop()
	src := NewManual(time.Unix(0, 0), time.Millisecond)

	var value, seen int
	l.Add(func(time.Time) { seen = value })

	chErr := make(chan error)
	go func() {
		chErr <- l.Run(context.Background(), src)
	}()

	l.Post(func() { value = 42 })
	src.Advance(1)
	src.Close()

	if err := <-chErr; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if seen != 42 {
		t.Errorf("Posted handler must run before the next frame, task saw %d", seen)
	}
}

func TestLoop_RunCancel(t *testing.T) {
	l := NewLoop()
	src := NewManual(time.Unix(0, 0), time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	chErr := make(chan error)
	go func() {
		chErr <- l.Run(ctx, src)
	}()
	src.Advance(1)
	cancel()

	select {
	case err := <-chErr:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run must return on cancel")
	}
}
