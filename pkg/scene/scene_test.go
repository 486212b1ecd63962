package scene

import (
	"image/color"
	"testing"

	"github.com/taigrr/surfterm/pkg/math3d"
	"github.com/taigrr/surfterm/pkg/models"
	"github.com/taigrr/surfterm/pkg/render"
)

func createTestScene() *Scene {
	s := New()
	s.Resize(64, 48)
	return s
}

func TestResizeAllocatesMatchingBuffers(t *testing.T) {
	s := createTestScene()
	fb := s.Framebuffer()

	if fb.Width != 64 || fb.Height != 48 {
		t.Fatalf("framebuffer is %dx%d, want 64x48", fb.Width, fb.Height)
	}
	if len(fb.Pixels) != len(fb.Depth) {
		t.Error("pixel and depth buffers have different lengths")
	}
	if len(fb.Pixels) != 64*48 {
		t.Errorf("buffer length = %d, want %d", len(fb.Pixels), 64*48)
	}

	s.Resize(32, 20)
	fb = s.Framebuffer()
	if len(fb.Pixels) != 32*20 || len(fb.Depth) != 32*20 {
		t.Error("resize did not reallocate both buffers together")
	}
}

func TestRenderFrameFlatPlaneUniformHue(t *testing.T) {
	// A flat plane has a degenerate z range, so every covered pixel
	// carries the same hue; everything else stays background.
	s := createTestScene()
	surf := models.NewSurface(func(x, y float64) float64 { return 0 }, 4)
	s.SetSurface(surf)

	px := s.RenderFrame(1)
	if len(px) != 64*48 {
		t.Fatalf("pixel buffer length = %d, want %d", len(px), 64*48)
	}

	bg := s.Background
	var surfaceColor color.RGBA
	covered := 0
	for i, p := range s.Framebuffer().Pixels {
		if p == bg {
			continue
		}
		covered++
		if covered == 1 {
			surfaceColor = p
			continue
		}
		if p != surfaceColor {
			t.Fatalf("pixel %d = %v, want uniform %v", i, p, surfaceColor)
		}
	}
	if covered == 0 {
		t.Fatal("flat plane rendered no pixels")
	}
}

func TestRenderFrameFrontFaceIsLit(t *testing.T) {
	// The default light is a headlight, so a surface facing the camera
	// must pick up diffuse shading on top of the ambient floor.
	s := createTestScene()
	surf := models.NewSurface(func(x, y float64) float64 { return 0 }, 4)
	surf.Mode = models.LitFlat
	s.SetSurface(surf)
	s.RenderFrame(1)

	ambient := uint8(surf.Material.Ambient*255 + 0.5)
	brightest := uint8(0)
	for _, p := range s.Framebuffer().Pixels {
		if p == s.Background {
			continue
		}
		if p.R > brightest {
			brightest = p.R
		}
	}
	if brightest == 0 {
		t.Fatal("plane rendered no pixels")
	}
	if brightest <= ambient {
		t.Errorf("brightest channel = %d, want > ambient %d", brightest, ambient)
	}
}

func TestRenderFrameWithoutResize(t *testing.T) {
	s := New()
	if px := s.RenderFrame(1); px != nil {
		t.Error("RenderFrame before Resize returned a buffer")
	}
}

func TestTransformSkipsOnSingularCamera(t *testing.T) {
	s := createTestScene()
	s.SetSurface(models.NewSurface(func(x, y float64) float64 { return 0 }, 2))

	// Up parallel to the view direction collapses the right column to
	// zero, making the matrix exactly singular.
	s.Camera.Eye = math3d.V3(0, 0, -5)
	s.Camera.Look = math3d.Zero3()
	s.Camera.Up = math3d.V3(0, 0, 1)
	s.Camera.CalcMatrix()

	if s.Transform() {
		t.Error("Transform reported ok for a singular camera matrix")
	}
}

func TestRenderOrderPrePrimaryPost(t *testing.T) {
	// Pre, primary and post meshes all cover the same pixel at the same
	// depth; with a strict z test the first write wins, so the pre mesh
	// must own the pixel.
	s := createTestScene()

	tri := func(c render.Color) *recordMesh {
		return &recordMesh{color: c}
	}
	pre := tri(render.ColorRed)
	primary := tri(render.ColorGreen)
	post := tri(render.ColorBlue)

	s.Pre = []Renderable{pre}
	s.Primary = primary
	s.Post = []Renderable{post}

	renderSeq = 0
	s.RenderFrame(1)

	if pre.order != 1 || primary.order != 2 || post.order != 3 {
		t.Errorf("render order pre=%d primary=%d post=%d, want 1,2,3",
			pre.order, primary.order, post.order)
	}
	if got := s.Framebuffer().GetPixel(5, 5); got != render.ColorRed {
		t.Errorf("contested pixel = %v, want first-drawn red", got)
	}
}

var renderSeq int

// recordMesh draws one triangle at a fixed depth and records its
// position in the frame's render order.
type recordMesh struct {
	color render.Color
	order int
}

func (r *recordMesh) Transform(math3d.Mat4) {}

func (r *recordMesh) Render(fb *render.Framebuffer, _ math3d.Vec3) {
	renderSeq++
	r.order = renderSeq
	fb.FillTriangle(
		math3d.V3(0, 0, 7),
		math3d.V3(20, 0, 7),
		math3d.V3(0, 20, 7),
		r.color,
	)
}

func TestScrollZoomsCamera(t *testing.T) {
	s := createTestScene()
	w := s.Camera.ScreenWidth

	s.Scroll(1, false)
	if s.Camera.ScreenWidth <= w {
		t.Errorf("ScreenWidth = %v after scroll out, want > %v", s.Camera.ScreenWidth, w)
	}

	s.Scroll(-1, false)
	if got := s.Camera.ScreenWidth; got < w-1e-9 || got > w+1e-9 {
		t.Errorf("ScreenWidth = %v after symmetric scrolls, want %v", got, w)
	}
}

func TestScrollWithModifierScalesDomain(t *testing.T) {
	s := createTestScene()
	surf := models.NewSurface(func(x, y float64) float64 { return x * y }, 4)
	s.SetSurface(surf)

	s.Scroll(1, true)
	if surf.MaxDomX <= 1 {
		t.Errorf("domain max x = %v after modifier scroll, want > 1", surf.MaxDomX)
	}
	// Domain stays centered.
	if got := surf.MinDomX + surf.MaxDomX; got < -1e-9 || got > 1e-9 {
		t.Errorf("domain center drifted: [%v, %v]", surf.MinDomX, surf.MaxDomX)
	}
}

func TestPointerRoutingByTool(t *testing.T) {
	s := createTestScene()
	eye := s.Camera.Eye

	s.SetTool(ToolPan)
	s.PointerDown(10, 10)
	s.PointerDrag(20, 16)
	s.PointerUp()

	if s.Camera.Eye == eye {
		t.Error("pan gesture did not move the camera")
	}
	// Pan preserves the eye-to-look offset; rotate does not.
	offset := s.Camera.Look.Sub(s.Camera.Eye)
	want := math3d.Zero3().Sub(eye)
	if offset.Sub(want).Len() > 1e-9 {
		t.Error("pointer events routed to rotate while pan tool active")
	}
}

func TestSpinAdvancesOnlyWhenEnabled(t *testing.T) {
	s := createTestScene()
	s.SetSurface(models.NewSurface(func(x, y float64) float64 { return 0 }, 2))
	eye := s.Camera.Eye

	s.RenderFrame(1_000_000_000)
	s.RenderFrame(2_000_000_000)
	if s.Camera.Eye != eye {
		t.Error("camera moved while spin disabled")
	}

	s.SetSpinning(true)
	s.RenderFrame(3_000_000_000)
	if s.Camera.Eye == eye {
		t.Error("camera did not move while spinning")
	}
	if got := s.Camera.Eye.Sub(s.Camera.Look).Len(); got < 1e-9 {
		t.Error("spin collapsed the camera distance")
	}
}
