package gghud

// noCopy lets `go vet -copylocks` flag accidental PixelLock copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// PixelLock is a scoped mapping of one texture pixel buffer.
//
// Creating a lock over a buffer maps it; Release unmaps it exactly once.
// A buffer whose Map returns nil was not mapped and is never unmapped.
// Use it with defer so that early returns and panics also release:
//
//	lock := res.AcquirePixelBuffer()
//	defer lock.Release()
//	if s := lock.Surface(w, h); s != nil {
//	    paint(s)
//	}
//
// A PixelLock must not be copied. Move hands the mapping to a new lock and
// leaves the old one inert.
type PixelLock struct {
	_ noCopy

	buf PixelBuffer
	mem []byte
}

// NewPixelLock maps buf. A nil buf yields an invalid lock on which every
// method is a no-op.
func NewPixelLock(buf PixelBuffer) *PixelLock {
	l := &PixelLock{buf: buf}
	if buf != nil {
		l.mem = buf.Map()
	}
	return l
}

// Valid reports whether the lock holds a buffer.
func (l *PixelLock) Valid() bool {
	return l != nil && l.buf != nil
}

// Surface zero-fills the mapped memory and returns it as a width×height
// ARGB surface. Returns nil if the lock is invalid, the mapping failed, or
// the mapping is smaller than width*height pixels.
func (l *PixelLock) Surface(width, height int) *Surface {
	if !l.Valid() || l.mem == nil {
		return nil
	}
	s := surfaceFrom(l.mem, width, height)
	if s == nil {
		return nil
	}
	s.Clear()
	return s
}

// Move transfers the mapping and the unmap obligation to a new lock.
// After Move the receiver is invalid and its Release does nothing.
func (l *PixelLock) Move() *PixelLock {
	if l == nil {
		return &PixelLock{}
	}
	moved := &PixelLock{buf: l.buf, mem: l.mem}
	l.buf, l.mem = nil, nil
	return moved
}

// Release unmaps the buffer. It is safe to call more than once; only the
// first call on a successfully mapped lock unmaps.
func (l *PixelLock) Release() {
	if !l.Valid() {
		return
	}
	buf, mapped := l.buf, l.mem != nil
	l.buf, l.mem = nil, nil
	if mapped {
		buf.Unmap()
	}
}
