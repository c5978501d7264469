package gghud

import (
	"fmt"
	"strings"
)

// Anchor is the viewport corner an overlay offset is measured from.
// Offsets always point inward from the chosen corner.
type Anchor int

// Anchor values.
const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

var anchorNames = [...]string{
	AnchorTopLeft:     "top-left",
	AnchorTopRight:    "top-right",
	AnchorBottomLeft:  "bottom-left",
	AnchorBottomRight: "bottom-right",
}

// String returns the kebab-case corner name.
func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return anchorNames[a]
}

// ParseAnchor parses a corner name. Matching ignores case and accepts
// "top-left", "top_left", "topleft" and "TopLeft" spellings.
func ParseAnchor(s string) (Anchor, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for i, name := range anchorNames {
		if norm == strings.ReplaceAll(name, "-", "") {
			return Anchor(i), nil
		}
	}
	return AnchorTopLeft, fmt.Errorf("%w: %q", ErrUnknownAnchor, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	if a < 0 || int(a) >= len(anchorNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAnchor, int(a))
	}
	return []byte(anchorNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Anchor) UnmarshalText(text []byte) error {
	v, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Geometry is the requested overlay size and placement.
// Offsets express user intent; the final position comes from Place.
type Geometry struct {
	Width   int
	Height  int
	OffsetX int
	OffsetY int
	Anchor  Anchor
}

// Size returns the requested overlay size with negative values treated as zero.
func (g Geometry) Size() Size {
	return Size{Width: max(0, g.Width), Height: max(0, g.Height)}
}

// ClampOffsets clamps the requested offsets into [0, max(0, viewport-overlay)]
// on each axis. An overlay larger than the viewport gets a zero offset and is
// allowed to overflow.
func ClampOffsets(g Geometry, viewport Size) (x, y int) {
	s := g.Size()
	maxX := max(0, viewport.Width-s.Width)
	maxY := max(0, viewport.Height-s.Height)
	return clamp(g.OffsetX, 0, maxX), clamp(g.OffsetY, 0, maxY)
}

// AbsolutePosition returns the top-left pixel position of the overlay after
// clamping the offsets and resolving the anchor corner.
func AbsolutePosition(g Geometry, viewport Size) (x, y int) {
	s := g.Size()
	cx, cy := ClampOffsets(g, viewport)
	right := viewport.Width - s.Width - cx
	bottom := viewport.Height - s.Height - cy

	switch g.Anchor {
	case AnchorTopRight:
		return right, cy
	case AnchorBottomLeft:
		return cx, bottom
	case AnchorBottomRight:
		return right, bottom
	default:
		return cx, cy
	}
}

// FitsWithinViewport reports whether both overlay dimensions fit inside the
// viewport. It is informational only and does not change placement.
func FitsWithinViewport(g Geometry, viewport Size) bool {
	s := g.Size()
	return s.Width <= viewport.Width && s.Height <= viewport.Height
}

// Placement is the resolved position of an overlay in a viewport.
type Placement struct {
	X, Y             int  // absolute top-left position
	OffsetX, OffsetY int  // clamped offsets
	Width, Height    int  // overlay size
	Fits             bool // overlay fits inside the viewport
}

// Place resolves g against the viewport in one call.
func Place(g Geometry, viewport Size) Placement {
	s := g.Size()
	cx, cy := ClampOffsets(g, viewport)
	x, y := AbsolutePosition(g, viewport)
	return Placement{
		X: x, Y: y,
		OffsetX: cx, OffsetY: cy,
		Width: s.Width, Height: s.Height,
		Fits: FitsWithinViewport(g, viewport),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
