// Command hudview shows the heading indicator over a 3D ground grid.
//
// The camera orbits the origin; left and right arrows turn it, H toggles
// the overlay and Escape quits. When the config names a feed URL the
// heading follows the attitude feed, otherwise it follows the camera.
//
//	hudview -config hud.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gghud"
	"github.com/gogpu/gghud/attitude"
	"github.com/gogpu/gghud/backend/glhost"
	"github.com/gogpu/gghud/compass"
	"github.com/gogpu/gghud/config"
	"github.com/gogpu/gghud/feed"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML or YAML settings file")
		width      = flag.Int("width", 1280, "window width")
		height     = flag.Int("height", 720, "window height")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	gghud.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	var client *feed.Client
	if cfg.Feed.URL != "" {
		client = feed.NewClient(cfg.Feed.URL, feed.WithReconnectDelay(cfg.Feed.ReconnectDelay))
		g.Go(func() error {
			if err := client.Run(ctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	// The window loop owns the main thread; it ends the feed by returning.
	winErr := run(ctx, cfg, client, *width, *height)
	stop()
	if err := errors.Join(winErr, g.Wait()); err != nil {
		log.Fatal(err)
	}
}

// viewer holds the per-window state.
type viewer struct {
	cfg    config.Config
	client *feed.Client

	yaw     float64 // radians counterclockwise from north
	visible bool
}

func run(ctx context.Context, cfg config.Config, client *feed.Client, width, height int) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, "hudview", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gghud.Logger().Info("hudview: GL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	ground, err := newGrid(20, 1)
	if err != nil {
		return err
	}
	defer ground.delete()

	host, err := glhost.New(win.GetFramebufferSize)
	if err != nil {
		return err
	}
	defer host.Close()

	hi, err := compass.New()
	if err != nil {
		return err
	}
	defer hi.Close()

	sys := gghud.NewSystem()
	sys.Attach(host)
	defer sys.Close()

	v := &viewer{cfg: cfg, client: client, visible: cfg.Overlay.Visible}
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyH:
			v.visible = !v.visible
		}
	})

	last := glfw.GetTime()
	nextTitle := time.Now()
	for !win.ShouldClose() && ctx.Err() == nil {
		glfw.PollEvents()

		now := glfw.GetTime()
		dt := now - last
		last = now
		if win.GetKey(glfw.KeyLeft) == glfw.Press {
			v.yaw += dt
		}
		if win.GetKey(glfw.KeyRight) == glfw.Press {
			v.yaw -= dt
		}

		fw, fh := win.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fw), int32(fh))
		gl.ClearColor(0.08, 0.10, 0.14, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		ground.draw(v.camera(fw, fh))

		hi.SetHeading(v.heading())
		sys.SetGeometry(cfg.Overlay.Geometry())
		sys.SetVisible(v.visible)
		sys.Render(hi)
		host.Draw()

		win.SwapBuffers()

		if time.Now().After(nextTitle) {
			win.SetTitle(v.title(hi.Heading()))
			nextTitle = time.Now().Add(time.Second)
		}
	}
	return nil
}

// camera returns the projection-view matrix for an eye orbiting the
// origin at the current yaw.
func (v *viewer) camera(fw, fh int) mgl32.Mat4 {
	aspect := float32(1)
	if fh > 0 {
		aspect = float32(fw) / float32(fh)
	}
	proj := mgl32.Perspective(mgl32.DegToRad(60), aspect, 0.1, 200)

	const dist, h = 12, 4
	yaw := float32(v.yaw)
	eye := mgl32.Vec3{
		dist * float32(math.Sin(float64(yaw))),
		h,
		dist * float32(math.Cos(float64(yaw))),
	}
	view := mgl32.LookAtV(eye, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

// heading returns the indicator heading in degrees. The feed wins when it
// has data; otherwise the camera yaw maps to a compass heading.
func (v *viewer) heading() float64 {
	if v.client != nil {
		if s, ok := v.client.Latest(); ok {
			return s.Attitude.HeadingDegrees() + v.cfg.Compass.HeadingOffset
		}
	}
	// Headings count counterclockwise from east, so north is 90.
	return attitude.NormalizeDegrees(90+float64(mgl32.RadToDeg(float32(v.yaw)))) + v.cfg.Compass.HeadingOffset
}

func (v *viewer) title(heading float64) string {
	if v.client == nil {
		return fmt.Sprintf("hudview  heading %.0f", heading)
	}
	received, dropped := v.client.Stats()
	return fmt.Sprintf("hudview  heading %.0f  feed %d ok / %d dropped", heading, received, dropped)
}
