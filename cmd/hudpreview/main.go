// Command hudpreview renders one HUD frame without a window and saves it as
// a PNG.
//
//	hudpreview -heading 45 -anchor top-left -output hud.png
//	hudpreview -config hud.toml -wait 3s
//
// With -wait and a feed URL in the config file, the heading comes from the
// first attitude sample received within the wait time.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/gghud"
	"github.com/gogpu/gghud/attitude"
	"github.com/gogpu/gghud/backend/softhost"
	"github.com/gogpu/gghud/compass"
	"github.com/gogpu/gghud/config"
	"github.com/gogpu/gghud/feed"
)

func main() {
	var (
		width      = flag.Int("width", 800, "viewport width")
		height     = flag.Int("height", 600, "viewport height")
		heading    = flag.Float64("heading", 90, "heading in degrees")
		anchor     = flag.String("anchor", "", "overlay corner: top-left, top-right, bottom-left, bottom-right")
		configPath = flag.String("config", "", "TOML or YAML settings file")
		wait       = flag.Duration("wait", 0, "wait this long for a feed sample")
		output     = flag.String("output", "hud.png", "output file")
		verbose    = flag.Bool("v", false, "log overlay lifecycle")
	)
	flag.Parse()

	if *verbose {
		gghud.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *anchor != "" {
		a, err := gghud.ParseAnchor(*anchor)
		if err != nil {
			log.Fatalf("Invalid anchor: %v", err)
		}
		cfg.Overlay.Anchor = a
	}

	hdg := *heading
	if cfg.Feed.URL != "" && *wait > 0 {
		s, err := firstSample(cfg.Feed, *wait)
		if err != nil {
			log.Printf("No feed sample, using -heading: %v", err)
		} else {
			hdg = s.Attitude.HeadingDegrees()
		}
	}
	hdg += cfg.Compass.HeadingOffset

	frame, err := render(*width, *height, hdg, cfg.Overlay)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if err := savePNG(*output, frame); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("HUD saved to %s (%dx%d, heading %.1f)\n", *output, *width, *height, attitude.NormalizeDegrees(hdg))
}

// render draws the heading indicator over a sky-to-ground gradient.
func render(width, height int, heading float64, o config.Overlay) (*image.RGBA, error) {
	hi, err := compass.New()
	if err != nil {
		return nil, err
	}
	defer hi.Close()
	hi.SetHeading(heading)

	host := softhost.New(width, height)
	defer host.Close()

	sys := gghud.NewSystem()
	sys.Attach(host)
	defer sys.Close()

	p, ok := sys.SetGeometry(o.Geometry())
	if !ok {
		return nil, errors.New("overlay unavailable")
	}
	if !p.Fits {
		log.Printf("Overlay %dx%d does not fit the %dx%d viewport", p.Width, p.Height, width, height)
	}
	sys.SetVisible(o.Visible)
	sys.Render(hi)

	return host.Frame(background(width, height)), nil
}

func background(width, height int) image.Image {
	dc := gg.NewContext(width, height)
	defer dc.Close()

	sky := gg.NewLinearGradientBrush(0, 0, 0, float64(height))
	sky.AddColorStop(0, gg.RGBA2(0.20, 0.35, 0.60, 1))
	sky.AddColorStop(0.5, gg.RGBA2(0.65, 0.75, 0.85, 1))
	sky.AddColorStop(0.5, gg.RGBA2(0.35, 0.30, 0.22, 1))
	sky.AddColorStop(1, gg.RGBA2(0.18, 0.15, 0.10, 1))
	dc.SetFillBrush(sky)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	_ = dc.Fill()
	return dc.Image()
}

// firstSample runs a feed client until it has one sample or wait elapses.
func firstSample(f config.Feed, wait time.Duration) (feed.Sample, error) {
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	c := feed.NewClient(f.URL, feed.WithReconnectDelay(f.ReconnectDelay))
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		if s, ok := c.Latest(); ok {
			cancel()
			<-done
			return s, nil
		}
		select {
		case err := <-done:
			return feed.Sample{}, err
		case <-tick.C:
		}
	}
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
