// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package compass provides a heading indicator that paints into a gghud
// overlay surface.
//
// The indicator is drawn with gg: a beveled rim, a dark face, a fixed ring
// of ticks with N/E/S/W letters and signed degree labels, and a red
// chevron that rotates with the heading. All dimensions scale with the
// smaller side of the surface, relative to a 250 pixel reference card.
//
//	hi, err := compass.New()
//	if err != nil {
//	    return err
//	}
//	defer hi.Close()
//
//	hi.SetHeading(euler.HeadingDegrees())
//	sys.Render(hi)
//
// A heading of 90 points the chevron straight up.
package compass
