// Package frame drives per-frame work from an injectable frame source.
//
// All input handlers posted to a Loop and all frame tasks run on the
// goroutine calling Run (or Step), so the state they touch needs no locking.
// Handlers posted before a frame always complete before that frame's tasks.
package frame

import (
	"context"
	"time"
)

const postedBufferSize = 64

// Source delivers frame timestamps. Closing the channel ends the loop.
type Source interface {
	Frames() <-chan time.Time
}

type Task func(now time.Time)

type Loop struct {
	tasks  []Task
	posted chan func()
}

func NewLoop() *Loop {
	return &Loop{
		posted: make(chan func(), postedBufferSize),
	}
}

// Add registers a task repeated on every frame, after the tasks already added.
func (l *Loop) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

// Post queues fn to run on the loop goroutine before the next frame.
// It blocks if the queue is full.
func (l *Loop) Post(fn func()) {
	l.posted <- fn
}

// Step runs pending posted handlers, then every task once.
func (l *Loop) Step(now time.Time) {
	l.drain()
	for _, t := range l.tasks {
		t(now)
	}
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.posted:
			fn()
		default:
			return
		}
	}
}

// Run steps the loop on every frame from src until ctx is done or the
// source is closed. Posted handlers run as soon as they arrive.
func (l *Loop) Run(ctx context.Context, src Source) error {
	frames := src.Frames()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posted:
			fn()
		case now, ok := <-frames:
			if !ok {
				l.drain()
				return nil
			}
			l.Step(now)
		}
	}
}

// Ticker is a Source backed by time.Ticker.
type Ticker struct {
	t *time.Ticker
}

func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{t: time.NewTicker(interval)}
}

func (t *Ticker) Frames() <-chan time.Time {
	return t.t.C
}

func (t *Ticker) Stop() {
	t.t.Stop()
}

// Manual is a Source advanced explicitly, for deterministic stepping.
type Manual struct {
	ch       chan time.Time
	now      time.Time
	interval time.Duration
}

func NewManual(start time.Time, interval time.Duration) *Manual {
	return &Manual{
		ch:       make(chan time.Time),
		now:      start,
		interval: interval,
	}
}

func (m *Manual) Frames() <-chan time.Time {
	return m.ch
}

// Now returns the timestamp of the last delivered frame.
func (m *Manual) Now() time.Time {
	return m.now
}

// Advance delivers n frames, blocking until each one is received.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.now = m.now.Add(m.interval)
		m.ch <- m.now
	}
}

func (m *Manual) Close() {
	close(m.ch)
}
