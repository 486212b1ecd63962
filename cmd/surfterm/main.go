// surfterm - Terminal 3D Function Grapher
// Plot z = f(x, y) surfaces in your terminal with software 3D rendering.
//
// Controls:
//
//	Left drag   - Rotate (virtual trackball)
//	Right drag  - Pan
//	Scroll      - Zoom camera (or function domain while domain mode is on)
//	Z           - Toggle domain-zoom mode for the scroll wheel
//	M           - Cycle render mode
//	P           - Cycle function preset
//	+/-         - Increase/decrease grid resolution
//	Space       - Toggle idle spin
//	A           - Toggle axis box
//	?           - Toggle status line
//	R           - Reset camera
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/taigrr/surfterm/internal/config"
	"github.com/taigrr/surfterm/internal/logger"
	"github.com/taigrr/surfterm/pkg/models"
	"github.com/taigrr/surfterm/pkg/render"
	"github.com/taigrr/surfterm/pkg/scene"
)

var (
	configPath = flag.String("config", "", "Path to config file (YAML)")
	presetName = flag.String("preset", "", "Function preset to plot")
	gridSize   = flag.Int("grid", 0, "Grid cells per side")
	modeName   = flag.String("mode", "", "Render mode: phong, height, height-outline, flat, wire")
	targetFPS  = flag.Int("fps", 0, "Target FPS")
	bgColor    = flag.String("bg", "", "Background color (R,G,B)")
	exportPath = flag.String("o", "", "Render once to a file (.png, .webp or .glb) and exit")
	exportSize = flag.String("size", "1024x768", "Export image size (WxH)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "surfterm - Terminal 3D Function Grapher\n\n")
		fmt.Fprintf(os.Stderr, "Usage: surfterm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPresets: %s\n", strings.Join(models.PresetNames(), ", "))
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Left drag   - Rotate\n")
		fmt.Fprintf(os.Stderr, "  Right drag  - Pan\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Zoom (Z toggles domain zoom)\n")
		fmt.Fprintf(os.Stderr, "  M           - Cycle render mode\n")
		fmt.Fprintf(os.Stderr, "  P           - Cycle preset\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Grid resolution\n")
		fmt.Fprintf(os.Stderr, "  Space       - Toggle spin\n")
		fmt.Fprintf(os.Stderr, "  A           - Toggle axes\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle status line\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("fatal", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overlays explicitly set flags onto the loaded config.
func applyFlags(cfg *config.Config) {
	if *presetName != "" {
		cfg.Plot.Preset = *presetName
	}
	if *gridSize > 0 {
		cfg.Plot.GridSize = *gridSize
	}
	if *modeName != "" {
		cfg.Display.Mode = *modeName
	}
	if *targetFPS > 0 {
		cfg.Display.FPS = *targetFPS
	}
}

// buildScene assembles the scene described by the config: camera,
// function surface and optionally the axis box drawn after it.
func buildScene(cfg *config.Config) (*scene.Scene, *models.AxisBox, error) {
	fn, err := models.Preset(cfg.Plot.Preset)
	if err != nil {
		return nil, nil, err
	}
	mode, err := models.ParseRenderMode(cfg.Display.Mode)
	if err != nil {
		return nil, nil, err
	}

	s := scene.New()
	if *bgColor != "" {
		var r, g, b uint8
		fmt.Sscanf(*bgColor, "%d,%d,%d", &r, &g, &b)
		s.Background = render.RGB(r, g, b)
	}

	surf := models.NewSurface(fn, cfg.Plot.GridSize)
	surf.AutoScaleZ = cfg.Plot.AutoScaleZ
	surf.Mode = mode
	surf.Material.Saturation = cfg.Display.Saturation
	if cfg.Plot.MinX < cfg.Plot.MaxX && cfg.Plot.MinY < cfg.Plot.MaxY {
		surf.SetDomain(cfg.Plot.MinX, cfg.Plot.MaxX, cfg.Plot.MinY, cfg.Plot.MaxY)
	}
	s.SetSurface(surf)

	axes := models.NewAxisBox(surf.Min, surf.Max, cfg.Display.AxisTicks)
	if cfg.Display.ShowAxes {
		s.Post = []scene.Renderable{axes}
	}
	s.SetSpinning(cfg.Display.Spin)

	logger.Log.Info("scene ready",
		zap.String("preset", cfg.Plot.Preset),
		zap.Int("grid", cfg.Plot.GridSize),
		zap.String("mode", mode.String()))
	return s, axes, nil
}

// exportOnce renders a single frame headless and writes it to path.
func exportOnce(cfg *config.Config, path string) error {
	s, _, err := buildScene(cfg)
	if err != nil {
		return err
	}

	var w, h int
	if _, err := fmt.Sscanf(*exportSize, "%dx%d", &w, &h); err != nil || w < 1 || h < 1 {
		return fmt.Errorf("bad export size %q", *exportSize)
	}
	s.Resize(w, h)
	s.RenderFrame(time.Now().UnixNano())

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = s.Framebuffer().SavePNG(path)
	case ".webp":
		err = s.Framebuffer().SaveWebP(path)
	case ".glb", ".gltf":
		err = models.ExportGLB(s.Surface().Mesh, path)
	default:
		err = fmt.Errorf("unsupported export format %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// smoothZoom animates the camera's viewport width toward a target with
// a critically damped spring, so wheel zoom glides instead of stepping.
type smoothZoom struct {
	spring harmonica.Spring
	value  float64
	vel    float64
	target float64
}

func newSmoothZoom(fps int, initial float64) *smoothZoom {
	return &smoothZoom{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		value:  initial,
		target: initial,
	}
}

func (z *smoothZoom) Update() float64 {
	z.value, z.vel = z.spring.Update(z.value, z.vel, z.target)
	return z.value
}

func run(cfg *config.Config) error {
	if *exportPath != "" {
		return exportOnce(cfg, *exportPath)
	}

	s, axes, err := buildScene(cfg)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse tracking (any-event + SGR extended coordinates).
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	// Half-block cells double the vertical resolution.
	s.Resize(width, height*2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	zoom := newSmoothZoom(cfg.Display.FPS, s.Camera.ScreenWidth)

	// Interactive state, only touched from the frame loop below.
	var (
		domainZoom bool
		showAxes   = cfg.Display.ShowAxes
		showStatus = true
		mode       = s.Surface().Mode
		preset     = cfg.Plot.Preset
		grid       = cfg.Plot.GridSize
	)

	rebuildAxes := func() {
		axes.Rebuild(s.Surface().Min, s.Surface().Max)
		if showAxes {
			s.Post = []scene.Renderable{axes}
		} else {
			s.Post = nil
		}
	}

	// The scene is single-threaded, so input is handled on the frame
	// loop's goroutine: the loop drains this between frames.
	handleEvent := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			s.Resize(width, height*2)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
				cancel()
				return
			case ev.MatchString("r"):
				s.Camera.Reset()
				s.Camera.SetPixelSize(width, height*2)
				zoom.value = s.Camera.ScreenWidth
				zoom.target = s.Camera.ScreenWidth
				zoom.vel = 0
			case ev.MatchString("z"):
				domainZoom = !domainZoom
			case ev.MatchString("m"):
				mode = (mode + 1) % 5
				s.Surface().Mode = mode
			case ev.MatchString("p"):
				names := models.PresetNames()
				for i, n := range names {
					if n == preset {
						preset = names[(i+1)%len(names)]
						break
					}
				}
				fn, _ := models.Preset(preset)
				s.Surface().Fn = fn
				s.Surface().Rebuild()
				rebuildAxes()
			case ev.MatchString("+", "="):
				if grid < 128 {
					grid += 8
					s.Surface().SetGridSize(grid)
				}
			case ev.MatchString("-", "_"):
				if grid > 8 {
					grid -= 8
					s.Surface().SetGridSize(grid)
				}
			case ev.MatchString("space"):
				s.SetSpinning(!s.Spinning())
			case ev.MatchString("a"):
				showAxes = !showAxes
				rebuildAxes()
			case ev.MatchString("?"):
				showStatus = !showStatus
			}

		case uv.MouseClickEvent:
			if ev.Button == uv.MouseRight || ev.Button == uv.MouseMiddle {
				s.SetTool(scene.ToolPan)
			} else {
				s.SetTool(scene.ToolRotate)
			}
			s.PointerDown(float64(ev.X), float64(ev.Y)*2)

		case uv.MouseReleaseEvent:
			s.PointerUp()

		case uv.MouseMotionEvent:
			s.PointerDrag(float64(ev.X), float64(ev.Y)*2)

		case uv.MouseWheelEvent:
			amount := 1.0
			if ev.Button == uv.MouseWheelUp {
				amount = -1.0
			}
			if domainZoom {
				s.Scroll(amount, true)
				rebuildAxes()
			} else {
				zoom.target = zoom.target * wheelZoomFactor(amount)
			}
		}
	}

	targetDuration := time.Second / time.Duration(cfg.Display.FPS)

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
	drain:
		for {
			select {
			case ev, ok := <-term.Events():
				if !ok {
					break drain
				}
				handleEvent(ev)
			default:
				break drain
			}
		}

		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		frameStart := time.Now()

		if w := zoom.Update(); w > 0 && w != s.Camera.ScreenWidth {
			s.Camera.ScreenWidth = w
			s.Camera.CalcMatrix()
		}

		s.RenderFrame(frameStart.UnixNano())
		s.Framebuffer().Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}
		drawStatus(height, showStatus, preset, mode, grid, domainZoom, s.Spinning())

		elapsed := time.Since(frameStart)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// drawStatus overlays a single status line on the bottom terminal row.
func drawStatus(height int, show bool, preset string, mode models.RenderMode, grid int, domainZoom, spinning bool) {
	const (
		reset   = "\x1b[0m"
		bgBlack = "\x1b[40m"
		fgWhite = "\x1b[97m"
		dim     = "\x1b[2m"
	)

	// Clear the row every frame so toggling off leaves no residue.
	fmt.Printf("\x1b[%d;1H\x1b[2K", height)
	if !show {
		return
	}

	zoomTarget := "camera"
	if domainZoom {
		zoomTarget = "domain"
	}
	spin := ""
	if spinning {
		spin = "  spin"
	}
	fmt.Printf("%s%s %s  %s  grid %d  zoom:%s%s %s(? hides) %s",
		bgBlack, fgWhite, preset, mode, grid, zoomTarget, spin, dim, reset)
}

// wheelZoomFactor maps one wheel click to a zoom step.
func wheelZoomFactor(amount float64) float64 {
	if amount > 0 {
		return 1.15
	}
	return 1 / 1.15
}
