// Package scene ties the camera, meshes and framebuffer together and
// exposes the host-facing API: resize, pointer gestures, scroll zoom
// and per-frame rendering.
package scene

import (
	"math"

	"go.uber.org/zap"

	"github.com/taigrr/surfterm/internal/logger"
	"github.com/taigrr/surfterm/pkg/math3d"
	"github.com/taigrr/surfterm/pkg/models"
	"github.com/taigrr/surfterm/pkg/render"
)

// Renderable is anything the scene can push a camera transform through
// and draw into the framebuffer.
type Renderable interface {
	Transform(mat math3d.Mat4)
	Render(fb *render.Framebuffer, light math3d.Vec3)
}

// Tool selects which gesture pointer events drive.
type Tool int

const (
	ToolRotate Tool = iota
	ToolPan
)

// scrollStep is the zoom factor applied per scroll unit.
const scrollStep = 1.1

// spinRate is the idle-spin angular velocity in radians per second.
const spinRate = 0.4

// Scene owns the camera, one primary mesh, ordered pre/post mesh lists
// and the shared framebuffer. All methods must be called from a single
// goroutine; rendering a frame is not reentrant.
type Scene struct {
	Camera *render.Camera

	Primary Renderable
	Pre     []Renderable
	Post    []Renderable

	Background render.Color
	// Light is a unit direction in screen space. Screen z grows away
	// from the viewer, so a headlight points along negative z.
	Light math3d.Vec3

	fb      *render.Framebuffer
	surface *models.Surface

	tool     Tool
	spinning bool
	lastTick int64
}

// New creates a scene with a default camera and no meshes. Resize must
// be called before the first frame.
func New() *Scene {
	return &Scene{
		Camera:     render.NewCamera(),
		Background: render.ColorNight,
		Light:      math3d.V3(0, 0, -1),
	}
}

// SetSurface installs a function surface as the primary mesh.
func (s *Scene) SetSurface(surf *models.Surface) {
	s.surface = surf
	s.Primary = surf
}

// Surface returns the installed function surface, or nil.
func (s *Scene) Surface() *models.Surface {
	return s.surface
}

// Framebuffer returns the scene's pixel/depth buffer, or nil before the
// first Resize.
func (s *Scene) Framebuffer() *render.Framebuffer {
	return s.fb
}

// Resize reallocates the pixel and depth buffers for a new viewport and
// updates the camera's pixel dimensions. Both buffers always change
// together.
func (s *Scene) Resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	s.fb = render.NewFramebuffer(width, height)
	s.Camera.SetPixelSize(width, height)
}

// SetTool selects the gesture for subsequent pointer events.
func (s *Scene) SetTool(t Tool) {
	s.tool = t
}

// PointerDown begins the active gesture at a viewport pixel.
func (s *Scene) PointerDown(x, y float64) {
	switch s.tool {
	case ToolPan:
		s.Camera.StartPan(x, y)
	default:
		s.Camera.StartTrackball(x, y)
	}
}

// PointerDrag continues the active gesture.
func (s *Scene) PointerDrag(x, y float64) {
	switch s.tool {
	case ToolPan:
		s.Camera.MovePan(x, y)
	default:
		s.Camera.MoveTrackball(x, y)
	}
}

// PointerUp ends the active gesture.
func (s *Scene) PointerUp() {
	switch s.tool {
	case ToolPan:
		s.Camera.EndPan()
	default:
		s.Camera.EndTrackball()
	}
}

// Scroll zooms. Without the modifier the camera's world-unit viewport
// width scales, pulling the whole plot closer; with the modifier the
// surface's sampling domain scales instead, revealing more or less of
// the function.
func (s *Scene) Scroll(amount float64, modifier bool) {
	factor := math.Pow(scrollStep, amount)
	if !modifier {
		s.Camera.Zoom(factor)
		return
	}
	if s.surface == nil {
		return
	}
	cx := (s.surface.MinDomX + s.surface.MaxDomX) / 2
	cy := (s.surface.MinDomY + s.surface.MaxDomY) / 2
	hx := (s.surface.MaxDomX - s.surface.MinDomX) / 2 * factor
	hy := (s.surface.MaxDomY - s.surface.MinDomY) / 2 * factor
	s.surface.SetDomain(cx-hx, cx+hx, cy-hy, cy+hy)
}

// SetSpinning toggles the idle spin animation.
func (s *Scene) SetSpinning(on bool) {
	s.spinning = on
}

// Spinning reports whether the idle spin is active.
func (s *Scene) Spinning() bool {
	return s.spinning
}

// tick advances the idle spin by the wall-clock delta since the last
// frame. Calling it twice with the same timestamp is a no-op.
func (s *Scene) tick(timeNanos int64) {
	if s.lastTick == 0 {
		s.lastTick = timeNanos
		return
	}
	dt := float64(timeNanos-s.lastTick) / 1e9
	s.lastTick = timeNanos
	if !s.spinning || dt <= 0 {
		return
	}

	q := math3d.QuatFromAxisAngle(math3d.Up(), spinRate*dt)
	cam := s.Camera
	cam.Eye = cam.Look.Add(q.Rotate(cam.Eye.Sub(cam.Look)))
	cam.Up = q.Rotate(cam.Up)
	cam.CalcMatrix()
}

// Transform inverts the camera matrix and pushes the world-to-screen
// transform through every mesh. It reports false, leaving all meshes
// untouched, when the camera matrix is singular; the caller skips the
// render pass for that frame.
func (s *Scene) Transform() bool {
	inv, ok := s.Camera.Matrix().Inverse()
	if !ok {
		logger.Log.Debug("camera matrix singular, skipping frame")
		return false
	}
	for _, m := range s.Pre {
		m.Transform(inv)
	}
	if s.Primary != nil {
		s.Primary.Transform(inv)
	}
	for _, m := range s.Post {
		m.Transform(inv)
	}
	return true
}

// Render clears both buffers and rasterizes pre meshes, the primary
// mesh, then post meshes, in that order.
func (s *Scene) Render() {
	if s.fb == nil {
		return
	}
	s.fb.Clear(s.Background)
	for _, m := range s.Pre {
		m.Render(s.fb, s.Light)
	}
	if s.Primary != nil {
		s.Primary.Render(s.fb, s.Light)
	}
	for _, m := range s.Post {
		m.Render(s.fb, s.Light)
	}
}

// RenderFrame advances animation to the given monotonic timestamp,
// transforms and renders, and returns the frame as row-major packed
// 32-bit ARGB. On a singular camera matrix the previous frame's pixels
// are returned unchanged.
func (s *Scene) RenderFrame(timeNanos int64) []uint32 {
	if s.fb == nil {
		logger.Log.Warn("RenderFrame before Resize", zap.Int64("time", timeNanos))
		return nil
	}
	s.tick(timeNanos)
	if s.Transform() {
		s.Render()
	}
	return s.fb.PackARGB()
}
