// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compass

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/gghud"
	"github.com/gogpu/gghud/attitude"
)

// MinSize is the smallest size a HeadingIndicator lays itself out for.
const MinSize = 1

// referenceSize is the widget size at which every dimension is drawn at
// its nominal value. Larger widgets scale up, smaller ones clamp to
// readable minimums.
const referenceSize = 250.0

// HeadingIndicator draws a compass card with a rotating heading pointer.
//
// It implements gghud.Drawable. The zero value is not usable; create one
// with New and release it with Close.
type HeadingIndicator struct {
	heading float64
	width   int
	height  int

	dc      *gg.Context
	regular *text.FontSource
	bold    *text.FontSource
}

// New creates a heading indicator pointing at 0 degrees.
func New() (*HeadingIndicator, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("compass: load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		_ = regular.Close()
		return nil, fmt.Errorf("compass: load bold font: %w", err)
	}
	return &HeadingIndicator{
		width:   MinSize,
		height:  MinSize,
		regular: regular,
		bold:    bold,
	}, nil
}

// SetHeading sets the heading in degrees. Any value is accepted and
// wrapped into [0, 360).
func (h *HeadingIndicator) SetHeading(deg float64) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return
	}
	h.heading = attitude.NormalizeDegrees(deg)
}

// Heading returns the current heading in degrees, in [0, 360).
func (h *HeadingIndicator) Heading() float64 { return h.heading }

// Resize sets the layout size. Sizes below MinSize are raised to it.
func (h *HeadingIndicator) Resize(width, height int) {
	h.width, h.height = max(MinSize, width), max(MinSize, height)
}

// Size returns the layout size.
func (h *HeadingIndicator) Size() (width, height int) { return h.width, h.height }

// Paint renders the indicator into s. The surface is expected to be
// cleared; pixels outside the compass stay transparent.
func (h *HeadingIndicator) Paint(s *gghud.Surface) {
	w, ht := s.Width(), s.Height()
	if w <= 0 || ht <= 0 {
		return
	}
	dc := h.context(w, ht)
	dc.Clear()

	if err := h.draw(dc, w, ht); err != nil {
		gghud.Logger().Warn("compass: paint incomplete", "err", err)
	}

	src := dc.Image()
	xdraw.Copy(s, image.Point{}, src, src.Bounds(), xdraw.Src, nil)
}

// Close releases the drawing context and the fonts. It is safe to call
// more than once.
func (h *HeadingIndicator) Close() error {
	var errs []error
	if h.dc != nil {
		errs = append(errs, h.dc.Close())
		h.dc = nil
	}
	if h.regular != nil {
		errs = append(errs, h.regular.Close())
		h.regular = nil
	}
	if h.bold != nil {
		errs = append(errs, h.bold.Close())
		h.bold = nil
	}
	return errors.Join(errs...)
}

// context returns a drawing context of exactly width×height, replacing the
// previous one when the size changed.
func (h *HeadingIndicator) context(width, height int) *gg.Context {
	if h.dc != nil && h.dc.Width() == width && h.dc.Height() == height {
		return h.dc
	}
	if h.dc != nil {
		_ = h.dc.Close()
	}
	h.dc = gg.NewContext(width, height)
	return h.dc
}

func (h *HeadingIndicator) draw(dc *gg.Context, width, height int) error {
	l := newLayout(width, height)
	if l.radius <= 0 {
		return nil
	}
	p := painter{dc: dc, cx: l.cx, cy: l.cy}

	p.bezel(l.radius)
	p.rose(l.radius*0.75, 90-h.heading)
	p.ring(l, h.face(h.bold, l.cardinalFont), h.face(h.regular, l.degreeFont))
	return p.err
}

func (h *HeadingIndicator) face(src *text.FontSource, size float64) text.Face {
	if src == nil {
		return nil
	}
	return src.Face(size)
}

// layout holds the size-dependent dimensions of the compass card.
type layout struct {
	cx, cy float64
	radius float64
	scale  float64

	majorTick float64
	minorTick float64
	inset     float64

	cardinalRadius float64
	degreeRadius   float64

	cardinalFont float64
	degreeFont   float64
}

func newLayout(width, height int) layout {
	size := float64(min(width, height))
	l := layout{
		cx:     float64(width) / 2,
		cy:     float64(height) / 2,
		radius: size/2 - 6,
		scale:  1,
	}
	if size > 0 {
		l.scale = size / referenceSize
	}
	sf := l.scale
	l.majorTick = math.Max(12, 15*sf)
	l.minorTick = math.Max(7, 10*sf)
	l.inset = math.Max(3, 3*sf)
	labelPad := math.Max(4, 6*sf)
	degreePad := math.Max(6, 8*sf)

	l.cardinalRadius = l.radius - l.inset - l.majorTick - labelPad
	l.degreeRadius = l.radius - l.inset - l.majorTick - degreePad
	l.cardinalFont = float64(max(8, int(12*sf)))
	l.degreeFont = float64(max(6, int(8*sf)))
	return l
}

// DegreeLabel returns the label printed next to the major tick at angle
// degrees clockwise from the top of the card: the signed angle negated,
// and "±180" at the bottom.
func DegreeLabel(angle int) string {
	angle %= 360
	if angle < 0 {
		angle += 360
	}
	display := angle
	if display > 180 {
		display -= 360
	}
	if display == 180 || display == -180 {
		return "±180"
	}
	return fmt.Sprint(-display)
}

// cardinals maps major tick angles to compass letters.
var cardinals = map[int]string{0: "N", 90: "E", 180: "S", 270: "W"}
