// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpuhost draws gghud overlays in gogpu windows.
//
// The data flow is:
//
//	Drawable (paint) -> staging buffer (CPU) -> GPU texture -> Window
//
// # Usage
//
//	host := gpuhost.New(app.WindowProvider())
//	defer host.Close()
//
//	sys := gghud.NewSystem()
//	sys.Attach(host)
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    sys.SetGeometry(geometry)
//	    sys.Render(indicator)
//	    host.Draw(dc.AsTextureDrawer())
//	})
//
// # Pixel format
//
// Overlays paint BGRA8 straight-alpha pixels. The conversion to the RGBA
// layout of gpucontext.TextureCreator happens when the pixel buffer is
// unmapped, and GPU textures that support it are marked as not
// premultiplied.
//
// # Thread Safety
//
// Host is NOT safe for concurrent use. Call it from the draw callback.
package gpuhost
