package models

import (
	"strconv"

	"github.com/taigrr/surfterm/pkg/math3d"
	"github.com/taigrr/surfterm/pkg/render"
)

// tickLen is the tick mark length as a fraction of the box extent.
const tickLen = 0.04

// AxisBox is the wireframe bounding box drawn around a plot, with tick
// marks and value labels along the three axes meeting at the minimum
// corner. It reuses the mesh vertex pipeline so the camera transform
// flows through it like any other mesh; rendering is pure line work.
type AxisBox struct {
	*Mesh

	Ticks int

	edges  [][2]int
	labels []axisLabel
}

type axisLabel struct {
	vert int // index of the anchor vertex
	text string
}

// NewAxisBox builds an axis box around the given bounds with tick+1
// marks per axis.
func NewAxisBox(bmin, bmax math3d.Vec3, ticks int) *AxisBox {
	b := &AxisBox{
		Mesh:  NewMesh(),
		Ticks: ticks,
	}
	b.Material.Line = render.ColorAxis
	b.Rebuild(bmin, bmax)
	return b
}

// Rebuild regenerates the box geometry for new plot bounds.
func (b *AxisBox) Rebuild(bmin, bmax math3d.Vec3) {
	corners := []math3d.Vec3{
		{X: bmin.X, Y: bmin.Y, Z: bmin.Z},
		{X: bmax.X, Y: bmin.Y, Z: bmin.Z},
		{X: bmin.X, Y: bmax.Y, Z: bmin.Z},
		{X: bmax.X, Y: bmax.Y, Z: bmin.Z},
		{X: bmin.X, Y: bmin.Y, Z: bmax.Z},
		{X: bmax.X, Y: bmin.Y, Z: bmax.Z},
		{X: bmin.X, Y: bmax.Y, Z: bmax.Z},
		{X: bmax.X, Y: bmax.Y, Z: bmax.Z},
	}
	b.Verts = corners
	b.edges = [][2]int{
		// bottom face
		{0, 1}, {1, 3}, {3, 2}, {2, 0},
		// top face
		{4, 5}, {5, 7}, {7, 6}, {6, 4},
		// verticals
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	b.labels = b.labels[:0]

	size := bmax.Sub(bmin)
	b.addAxisTicks(bmin, math3d.V3(size.X, 0, 0), math3d.V3(0, -size.Y*tickLen, 0), bmin.X, bmax.X)
	b.addAxisTicks(bmin, math3d.V3(0, size.Y, 0), math3d.V3(-size.X*tickLen, 0, 0), bmin.Y, bmax.Y)
	b.addAxisTicks(bmin, math3d.V3(0, 0, size.Z), math3d.V3(-size.X*tickLen, -size.Y*tickLen, 0), bmin.Z, bmax.Z)

	b.CalculateBounds()
	b.TVerts = nil
}

// addAxisTicks appends tick segments along one box edge. dir spans the
// full edge, out points away from the box, and lo..hi are the axis
// values the ticks are labelled with.
func (b *AxisBox) addAxisTicks(origin, dir, out math3d.Vec3, lo, hi float64) {
	if b.Ticks < 1 {
		return
	}
	for i := 0; i <= b.Ticks; i++ {
		t := float64(i) / float64(b.Ticks)
		base := origin.Add(dir.Scale(t))
		tip := base.Add(out)

		b.Verts = append(b.Verts, base, tip)
		b.edges = append(b.edges, [2]int{len(b.Verts) - 2, len(b.Verts) - 1})
		b.labels = append(b.labels, axisLabel{
			vert: len(b.Verts) - 1,
			text: strconv.FormatFloat(lo+(hi-lo)*t, 'g', 3, 64),
		})
	}
}

// Render draws the box edges and tick marks depth-tested, then the tick
// labels on top.
func (b *AxisBox) Render(fb *render.Framebuffer, _ math3d.Vec3) {
	if len(b.TVerts) != len(b.Verts) {
		return
	}
	for _, e := range b.edges {
		fb.DrawDepthLine(b.TVerts[e[0]], b.TVerts[e[1]], b.Material.Line)
	}
	for _, l := range b.labels {
		p := b.TVerts[l.vert]
		fb.DrawText(l.text, int(p.X)+2, int(p.Y), b.Material.Line)
	}
}
