package main

import (
	"encoding/json"

	"github.com/seqsense/dragview/model"
)

type orientationMessage struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// mirror keeps the local orientation in sync with other viewers through
// the development server relay.
type mirror struct {
	last  model.Rotation
	known bool
}

// outgoing returns the message to publish if r changed since the last
// sent or received orientation.
func (m *mirror) outgoing(r model.Rotation) ([]byte, bool) {
	if m.known && r == m.last {
		return nil, false
	}
	b, err := json.Marshal(orientationMessage{X: r.X, Y: r.Y})
	if err != nil {
		// NaN can't be encoded.
		return nil, false
	}
	m.last, m.known = r, true
	return b, true
}

func (m *mirror) incoming(b []byte) (model.Rotation, error) {
	var msg orientationMessage
	if err := json.Unmarshal(b, &msg); err != nil {
		return model.Rotation{}, err
	}
	r := model.Rotation{X: msg.X, Y: msg.Y}
	m.last, m.known = r, true
	return r, nil
}
