package render

import (
	"image/color"
	"math"

	"github.com/taigrr/surfterm/pkg/math3d"
)

// The triangle rasterizer works in 28.4 fixed point: screen coordinates
// carry 4 fractional bits so edge tests stay exact at sub-pixel
// precision. Depth (and hue/brightness for shaded fills) is interpolated
// from a per-triangle plane equation solved in floating point.

const fixShift = 4

func toFixed(v float64) int64 {
	return int64(math.Round(v * 16))
}

// plane holds coefficients for q(x, y) = A*x + B*y + C, the closed-form
// interpolant of a scalar sampled at the three triangle vertices.
type plane struct {
	A, B, C float64
}

func (p plane) at(x, y int) float64 {
	return p.A*float64(x) + p.B*float64(y) + p.C
}

// solvePlane fits q(x, y) through three vertex samples. The divisor is
// twice the triangle's signed area; callers reject it as degenerate
// before getting here.
func solvePlane(p0, p1, p2 math3d.Vec3, q0, q1, q2, area2 float64) plane {
	a := ((q1-q0)*(p2.Y-p0.Y) - (q2-q0)*(p1.Y-p0.Y)) / area2
	b := ((q2-q0)*(p1.X-p0.X) - (q1-q0)*(p2.X-p0.X)) / area2
	return plane{A: a, B: b, C: q0 - a*p0.X - b*p0.Y}
}

// edge is a half-space function E(x, y) = A*x + B*y + C in fixed point.
// E is positive inside the triangle when the vertices wind positively in
// screen space.
type edge struct {
	A, B, C int64
}

func makeEdge(ax, ay, bx, by int64) edge {
	e := edge{
		A: ay - by,
		B: bx - ax,
		C: ax*by - bx*ay,
	}
	// Top-left fill rule: pixels exactly on a non-top-left edge belong
	// to the neighbouring triangle, so shared edges draw once.
	if !(e.A < 0 || (e.A == 0 && e.B < 0)) {
		e.C--
	}
	return e
}

func (e edge) at(fx, fy int64) int64 {
	return e.A*fx + e.B*fy + e.C
}

// FillTriangle rasterizes a solid triangle with per-pixel depth testing.
// Vertex X/Y are screen pixels, Z is depth (smaller is nearer). A
// strictly-closer test is used: on an exact depth tie the earlier write
// stands, so output is draw-order dependent for coplanar geometry.
func (fb *Framebuffer) FillTriangle(p0, p1, p2 math3d.Vec3, c color.RGBA) {
	// Winding fix: reorder so the edge functions are positive inside.
	if cross2D(p0, p1, p2) < 0 {
		p1, p2 = p2, p1
	}
	area2 := cross2D(p0, p1, p2)
	if area2 == 0 {
		return
	}
	zp := solvePlane(p0, p1, p2, p0.Z, p1.Z, p2.Z, area2)

	fb.scanTriangle(p0, p1, p2, func(x, y, idx int) {
		z := zp.at(x, y)
		if fb.Depth[idx] > z {
			fb.Depth[idx] = z
			fb.Pixels[idx] = c
		}
	})
}

// FillTriangleShaded rasterizes a triangle interpolating hue and
// brightness per pixel and converting to RGB only at the pixel level.
// Interpolating in HSV space avoids the banding that channel-wise RGB
// interpolation produces across large triangles.
func (fb *Framebuffer) FillTriangleShaded(p0, p1, p2 math3d.Vec3, h0, h1, h2, b0, b1, b2, sat float64) {
	if cross2D(p0, p1, p2) < 0 {
		p1, p2 = p2, p1
		h1, h2 = h2, h1
		b1, b2 = b2, b1
	}
	area2 := cross2D(p0, p1, p2)
	if area2 == 0 {
		return
	}
	zp := solvePlane(p0, p1, p2, p0.Z, p1.Z, p2.Z, area2)
	hp := solvePlane(p0, p1, p2, h0, h1, h2, area2)
	bp := solvePlane(p0, p1, p2, b0, b1, b2, area2)

	fb.scanTriangle(p0, p1, p2, func(x, y, idx int) {
		z := zp.at(x, y)
		if fb.Depth[idx] > z {
			fb.Depth[idx] = z
			h := hp.at(x, y)
			h -= math.Floor(h)
			v := bp.at(x, y)
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			fb.Pixels[idx] = HSVToRGB(h, sat, v)
		}
	})
}

// scanTriangle walks the bounding box of a positively wound triangle and
// invokes visit for every covered, in-bounds pixel.
func (fb *Framebuffer) scanTriangle(p0, p1, p2 math3d.Vec3, visit func(x, y, idx int)) {
	fx0, fy0 := toFixed(p0.X), toFixed(p0.Y)
	fx1, fy1 := toFixed(p1.X), toFixed(p1.Y)
	fx2, fy2 := toFixed(p2.X), toFixed(p2.Y)

	e01 := makeEdge(fx0, fy0, fx1, fy1)
	e12 := makeEdge(fx1, fy1, fx2, fy2)
	e20 := makeEdge(fx2, fy2, fx0, fy0)

	minX := int((min3(fx0, fx1, fx2) + 0xF) >> fixShift)
	maxX := int(max3(fx0, fx1, fx2) >> fixShift)
	minY := int((min3(fy0, fy1, fy2) + 0xF) >> fixShift)
	maxY := int(max3(fy0, fy1, fy2) >> fixShift)

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}

	for y := minY; y <= maxY; y++ {
		fy := int64(y) << fixShift
		// Row-start values; stepping one pixel right adds A.
		w01 := e01.at(int64(minX)<<fixShift, fy)
		w12 := e12.at(int64(minX)<<fixShift, fy)
		w20 := e20.at(int64(minX)<<fixShift, fy)
		row := y * fb.Width

		for x := minX; x <= maxX; x++ {
			if w01 >= 0 && w12 >= 0 && w20 >= 0 {
				visit(x, y, row+x)
			}
			w01 += e01.A << fixShift
			w12 += e12.A << fixShift
			w20 += e20.A << fixShift
		}
	}
}

func cross2D(p0, p1, p2 math3d.Vec3) float64 {
	return (p1.X-p0.X)*(p2.Y-p0.Y) - (p1.Y-p0.Y)*(p2.X-p0.X)
}

func min3(a, b, c int64) int64 {
	return min(a, min(b, c))
}

func max3(a, b, c int64) int64 {
	return max(a, max(b, c))
}

// DrawDepthLine draws a depth-tested line by parametric stepping. The
// depth test is deliberately loose: a pixel is written unless its stored
// depth is closer by more than 2 units, so outlines stay visible when
// drawn directly on top of a filled surface at the same depth.
func (fb *Framebuffer) DrawDepthLine(a, b math3d.Vec3, c color.RGBA) {
	d := b.Sub(a)
	steps := int(math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z))
	if steps < 1 {
		steps = 1
	}
	inc := 1.0 / float64(steps)

	t := 0.0
	for i := 0; i <= steps; i++ {
		x := int(a.X + d.X*t)
		y := int(a.Y + d.Y*t)
		z := a.Z + d.Z*t
		t += inc
		if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
			continue
		}
		idx := y*fb.Width + x
		if fb.Depth[idx] >= z-2 {
			fb.Depth[idx] = z
			fb.Pixels[idx] = c
		}
	}
}

// HSVToRGB converts hue/saturation/value (each in [0, 1], hue already
// wrapped by the caller) to an opaque RGBA color using the standard
// six-sector conversion.
func HSVToRGB(h, s, v float64) color.RGBA {
	if s <= 0 {
		g := uint8(v*255 + 0.5)
		return color.RGBA{g, g, g, 255}
	}

	h *= 6
	sector := int(h)
	if sector > 5 {
		sector = 5
	}
	f := h - float64(sector)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch sector {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.RGBA{
		uint8(r*255 + 0.5),
		uint8(g*255 + 0.5),
		uint8(b*255 + 0.5),
		255,
	}
}
