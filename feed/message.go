// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:generate easyjson -all message.go

package feed

import (
	"errors"
	"math"
	"time"

	"github.com/mailru/easyjson"

	"github.com/gogpu/gghud/attitude"
)

// ErrBadMessage is returned for payloads that are not an orientation.
var ErrBadMessage = errors.New("feed: bad message")

// Message is one orientation sample as sent over the wire:
//
//	{"stamp": 1718000000123456789, "frame_id": "base_link",
//	 "x": 0, "y": 0, "z": 0.7071, "w": 0.7071}
//
// Stamp is Unix nanoseconds. X, Y, Z, W is the orientation quaternion; it
// does not need to be normalized.
type Message struct {
	Stamp int64   `json:"stamp"`
	Frame string  `json:"frame_id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	W     float64 `json:"w"`
}

// Decode parses one message.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := easyjson.Unmarshal(data, &m); err != nil {
		return Message{}, errors.Join(ErrBadMessage, err)
	}
	for _, v := range [...]float64{m.X, m.Y, m.Z, m.W} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Message{}, ErrBadMessage
		}
	}
	return m, nil
}

// Encode serializes m.
func Encode(m Message) ([]byte, error) {
	return easyjson.Marshal(m)
}

// Time returns the stamp as a time.Time. A zero stamp yields the zero time.
func (m Message) Time() time.Time {
	if m.Stamp == 0 {
		return time.Time{}
	}
	return time.Unix(0, m.Stamp)
}

// Euler converts the orientation to roll, pitch and yaw.
func (m Message) Euler() attitude.Euler {
	return attitude.FromQuaternion(m.X, m.Y, m.Z, m.W)
}
