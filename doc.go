// Package gghud renders a 2D heads-up display as a screen-space overlay in a
// 3D scene viewport.
//
// # Overview
//
// The package owns the overlay side of a HUD: the overlay, panel, material
// and texture resources a host scene system provides, their placement in
// the viewport, and the per-frame cycle that maps the texture pixel buffer,
// lets a Drawable paint into it, and unmaps it again. What gets painted is
// up to the Drawable; see package compass for a heading indicator built on
// gg.
//
// # Quick Start
//
//	sys := gghud.NewSystem()
//	defer sys.Close()
//
//	sys.Attach(host) // once the host viewport exists
//	sys.SetGeometry(gghud.Geometry{
//	    Width: 200, Height: 200,
//	    OffsetX: 10, OffsetY: 10,
//	    Anchor: gghud.AnchorBottomRight,
//	})
//	sys.SetVisible(true)
//
//	// every frame, from the host render callback:
//	sys.Render(indicator)
//
// # Architecture
//
//   - Geometry, Place: pure placement math (clamped offsets, anchor corners)
//   - PixelLock, Surface: scoped map/unmap of a texture buffer, exposed as
//     a draw.Image in packed ARGB
//   - Resource: lifecycle of the overlay/panel/material/texture handles
//   - System: attach, geometry, visibility and render orchestration
//   - Host, Backend: the host capability the resources are created through;
//     implementations live in backend/softhost, backend/gpuhost and
//     backend/glhost
//
// # Coordinate System
//
// Pixels, origin at the viewport's top-left corner, X right, Y down.
// Offsets are measured inward from the anchor corner.
//
// # Thread Safety
//
// Resource and System are NOT safe for concurrent use. Call them from the
// host's render thread only.
package gghud
