package gghud

import (
	"strconv"
	"sync/atomic"
)

// DefaultNamePrefix prefixes generated overlay names.
const DefaultNamePrefix = "AttitudeHUD"

// NameSequence hands out unique resource names: a fixed prefix followed by
// a monotonically increasing counter. Share one sequence between every
// System that attaches to the same host so that names never collide.
//
// The zero value uses DefaultNamePrefix. NameSequence is safe for
// concurrent use.
type NameSequence struct {
	prefix string
	next   atomic.Uint64
}

// NewNameSequence returns a sequence producing prefix0, prefix1, ...
func NewNameSequence(prefix string) *NameSequence {
	return &NameSequence{prefix: prefix}
}

// Next returns the next unused name.
func (s *NameSequence) Next() string {
	n := s.next.Add(1) - 1
	prefix := s.prefix
	if prefix == "" {
		prefix = DefaultNamePrefix
	}
	return prefix + strconv.FormatUint(n, 10)
}
