package gghud

import "errors"

// maxNameAttempts bounds how many names Attach tries when the host already
// holds resources under the generated ones.
const maxNameAttempts = 64

// System places one HUD overlay in a host viewport and keeps its texture in
// sync with a Drawable.
//
// All methods are intended for the host's render/update callback and must
// not be called concurrently. Every failure degrades to "nothing drawn this
// frame"; no error is returned to the caller.
type System struct {
	names    *NameSequence
	resource *Resource
	viewport Viewport
}

// SystemOption configures a System.
type SystemOption func(*System)

// WithNames sets the sequence used to name overlay resources. Systems that
// share a host and a sequence never skip over each other's names.
func WithNames(seq *NameSequence) SystemOption {
	return func(s *System) {
		if seq != nil {
			s.names = seq
		}
	}
}

// NewSystem returns a detached System.
func NewSystem(opts ...SystemOption) *System {
	s := &System{}
	for _, opt := range opts {
		opt(s)
	}
	if s.names == nil {
		s.names = NewNameSequence(DefaultNamePrefix)
	}
	return s
}

// Attach creates the overlay resource on first use and binds the host's
// active viewport if none is bound. Repeated calls only fill in what is
// still missing.
func (s *System) Attach(host Host) {
	if host == nil {
		return
	}
	if s.resource == nil {
		host.PrepareOverlays()
		s.resource = s.newResource(host.Backend())
	}
	if s.viewport == nil {
		s.viewport = host.ActiveViewport()
		if s.viewport != nil {
			Logger().Info("gghud: viewport bound", "name", s.resource.Name())
		}
	}
}

// newResource creates the overlay resource under the next free name.
// Names taken by other systems on the same host are skipped, so systems
// with separate sequences still end up with distinct resources.
func (s *System) newResource(backend Backend) *Resource {
	var (
		r   *Resource
		err error
	)
	for range maxNameAttempts {
		name := s.names.Next()
		r, err = newResource(name, backend)
		if !errors.Is(err, ErrNameInUse) {
			break
		}
		Logger().Debug("gghud: overlay name taken, trying next", "name", name)
	}
	if err != nil {
		Logger().Error("gghud: overlay resources unavailable", "name", r.Name(), "err", err)
	}
	return r
}

// Resource returns the overlay resource, or nil before Attach.
func (s *System) Resource() *Resource { return s.resource }

// SetGeometry resizes and places the overlay for the current viewport size.
// It does nothing until both the resource and the viewport exist. Calling it
// every frame with an unchanged geometry is cheap.
func (s *System) SetGeometry(g Geometry) (Placement, bool) {
	if s.resource == nil || s.viewport == nil {
		return Placement{}, false
	}
	vw, vh := s.viewport.PixelSize()
	p := Place(g, Size{Width: vw, Height: vh})

	s.resource.Resize(p.Width, p.Height)
	s.resource.SetDimensions(p.Width, p.Height)
	s.resource.SetPosition(p.X, p.Y)
	return p, true
}

// SetVisible shows or hides the overlay.
func (s *System) SetVisible(visible bool) {
	if s.resource == nil {
		return
	}
	if visible {
		s.resource.Show()
	} else {
		s.resource.Hide()
	}
}

// Render paints d into the overlay texture.
//
// The drawable is resized to the texture size so the painted content and
// the texture always share pixel dimensions. If the pixel buffer cannot be
// mapped the frame is skipped; the next call retries.
func (s *System) Render(d Drawable) {
	if s.resource == nil || d == nil {
		return
	}
	w, h := s.resource.TextureSize()
	if w == 0 || h == 0 {
		return
	}
	s.resource.Resize(w, h)
	s.resource.SetDimensions(w, h)
	d.Resize(w, h)

	lock := s.resource.AcquirePixelBuffer()
	defer lock.Release()
	if !lock.Valid() {
		Logger().Debug("gghud: frame skipped, pixel buffer unavailable", "name", s.resource.Name())
		return
	}
	surface := lock.Surface(w, h)
	if surface == nil {
		Logger().Debug("gghud: frame skipped, pixel buffer not mapped", "name", s.resource.Name())
		return
	}
	d.Paint(surface)
}

// Close destroys the overlay resource and unbinds the viewport. A later
// Attach starts over with a freshly named resource.
func (s *System) Close() {
	if s.resource != nil {
		s.resource.Close()
		s.resource = nil
	}
	s.viewport = nil
}
