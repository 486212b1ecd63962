// Package models provides the renderable meshes for surfterm: the
// generic triangle mesh with its shading strategies, the sampled
// function surface, and the axis box.
package models

import (
	"fmt"
	"math"

	"github.com/taigrr/surfterm/pkg/math3d"
	"github.com/taigrr/surfterm/pkg/render"
)

// RenderMode selects the rasterization strategy a mesh is drawn with.
type RenderMode int

const (
	// Phong interpolates height hue and lit brightness per pixel.
	Phong RenderMode = iota
	// HeightFill fills each triangle with a flat height-mapped color.
	HeightFill
	// HeightOutline is HeightFill plus triangle edges.
	HeightOutline
	// LitFlat fills each triangle with a flat lit base color.
	LitFlat
	// LitWire draws lit triangle edges only.
	LitWire
)

var modeNames = map[string]RenderMode{
	"phong":          Phong,
	"height":         HeightFill,
	"height-outline": HeightOutline,
	"flat":           LitFlat,
	"wire":           LitWire,
}

// ParseRenderMode maps a mode name from config or flags to a RenderMode.
func ParseRenderMode(s string) (RenderMode, error) {
	if m, ok := modeNames[s]; ok {
		return m, nil
	}
	return Phong, fmt.Errorf("unknown render mode %q", s)
}

func (m RenderMode) String() string {
	for name, mode := range modeNames {
		if mode == m {
			return name
		}
	}
	return "phong"
}

// Material holds the shading parameters shared by all render modes.
type Material struct {
	Ambient    float64 // base brightness, added unconditionally
	Diffuse    float64 // weight of the clamped normal·light term
	Saturation float64 // HSV saturation for height-colored modes
	Base       render.Color
	Line       render.Color
}

// DefaultMaterial returns the material new meshes start with.
func DefaultMaterial() Material {
	return Material{
		Ambient:    0.3,
		Diffuse:    0.7,
		Saturation: 1.0,
		Base:       render.ColorWhite,
		Line:       render.ColorWhite,
	}
}

// Mesh is a renderable triangle mesh. Verts and Normals are
// object-space; TVerts and TNormals are their screen-space images,
// fully recomputed by every Transform call and never partially stale.
// Index holds triangles as vertex-index triples.
type Mesh struct {
	Verts    []math3d.Vec3
	TVerts   []math3d.Vec3
	Normals  []math3d.Vec3
	TNormals []math3d.Vec3
	Index    []int

	Min math3d.Vec3
	Max math3d.Vec3

	Material Material
	Mode     RenderMode
}

// NewMesh creates an empty mesh with the default material.
func NewMesh() *Mesh {
	return &Mesh{Material: DefaultMaterial()}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Index) / 3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Verts)
}

// CalculateBounds computes the axis-aligned bounding box over all
// finite vertices.
func (m *Mesh) CalculateBounds() {
	first := true
	for _, v := range m.Verts {
		if !v.IsFinite() {
			continue
		}
		if first {
			m.Min, m.Max = v, v
			first = false
			continue
		}
		m.Min = m.Min.Min(v)
		m.Max = m.Max.Max(v)
	}
}

// Transform recomputes the screen-space vertex and normal buffers from
// the object-space buffers.
func (m *Mesh) Transform(mat math3d.Mat4) {
	if len(m.TVerts) != len(m.Verts) {
		m.TVerts = make([]math3d.Vec3, len(m.Verts))
	}
	if len(m.TNormals) != len(m.Normals) {
		m.TNormals = make([]math3d.Vec3, len(m.Normals))
	}
	for i, v := range m.Verts {
		m.TVerts[i] = mat.MulVec3(v)
	}
	for i, n := range m.Normals {
		m.TNormals[i] = mat.MulVec3Dir(n).Normalize()
	}
}

// HeightHue normalizes an object-space z into [0, 1] against the mesh's
// z bounds: MinZ maps to 0, MaxZ to 1.
func (m *Mesh) HeightHue(z float64) float64 {
	span := m.Max.Z - m.Min.Z
	if span == 0 {
		return 0
	}
	return (z - m.Min.Z) / span
}

// diffuseTerm is normal·light clamped into [0, 1].
func diffuseTerm(n, light math3d.Vec3) float64 {
	d := n.Dot(light)
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}

// brightness blends the ambient and diffuse material terms for a normal.
func (m *Mesh) brightness(n, light math3d.Vec3) float64 {
	return m.Material.Ambient + m.Material.Diffuse*diffuseTerm(n, light)
}

// Render rasterizes the mesh into the framebuffer with the mode set on
// the mesh. Transform must have run since the last camera change; light
// is a unit direction in the transformed space.
func (m *Mesh) Render(fb *render.Framebuffer, light math3d.Vec3) {
	switch m.Mode {
	case HeightFill:
		m.renderHeight(fb, false)
	case HeightOutline:
		m.renderHeight(fb, true)
	case LitFlat:
		m.renderLit(fb, light, false)
	case LitWire:
		m.renderLit(fb, light, true)
	default:
		m.renderPhong(fb, light)
	}
}

// renderHeight fills triangles with a flat color from the average
// object-space height of their corners.
func (m *Mesh) renderHeight(fb *render.Framebuffer, outline bool) {
	for i := 0; i+2 < len(m.Index); i += 3 {
		i0, i1, i2 := m.Index[i], m.Index[i+1], m.Index[i+2]
		z := (m.Verts[i0].Z + m.Verts[i1].Z + m.Verts[i2].Z) / 3
		hue := m.HeightHue(z)
		hue -= math.Floor(hue) // wrap, also for negative hues
		c := render.HSVToRGB(hue, m.Material.Saturation, 1)

		fb.FillTriangle(m.TVerts[i0], m.TVerts[i1], m.TVerts[i2], c)
		if outline {
			fb.DrawDepthLine(m.TVerts[i0], m.TVerts[i1], m.Material.Line)
			fb.DrawDepthLine(m.TVerts[i1], m.TVerts[i2], m.Material.Line)
			fb.DrawDepthLine(m.TVerts[i2], m.TVerts[i0], m.Material.Line)
		}
	}
}

// renderLit draws each triangle in the base color scaled by flat
// per-face lighting, either filled or as a wireframe.
func (m *Mesh) renderLit(fb *render.Framebuffer, light math3d.Vec3, wire bool) {
	for i := 0; i+2 < len(m.Index); i += 3 {
		i0, i1, i2 := m.Index[i], m.Index[i+1], m.Index[i+2]
		n := m.TNormals[i0].Add(m.TNormals[i1]).Add(m.TNormals[i2]).Normalize()
		b := m.brightness(n, light)
		if b > 1 {
			b = 1
		}
		c := render.RGB(
			uint8(float64(m.Material.Base.R)*b),
			uint8(float64(m.Material.Base.G)*b),
			uint8(float64(m.Material.Base.B)*b),
		)

		if wire {
			fb.DrawDepthLine(m.TVerts[i0], m.TVerts[i1], c)
			fb.DrawDepthLine(m.TVerts[i1], m.TVerts[i2], c)
			fb.DrawDepthLine(m.TVerts[i2], m.TVerts[i0], c)
		} else {
			fb.FillTriangle(m.TVerts[i0], m.TVerts[i1], m.TVerts[i2], c)
		}
	}
}

// renderPhong computes height hue and lit brightness at each vertex and
// lets the rasterizer interpolate both per pixel.
func (m *Mesh) renderPhong(fb *render.Framebuffer, light math3d.Vec3) {
	for i := 0; i+2 < len(m.Index); i += 3 {
		i0, i1, i2 := m.Index[i], m.Index[i+1], m.Index[i+2]

		h0 := m.HeightHue(m.Verts[i0].Z)
		h1 := m.HeightHue(m.Verts[i1].Z)
		h2 := m.HeightHue(m.Verts[i2].Z)

		b0 := m.brightness(m.TNormals[i0], light)
		b1 := m.brightness(m.TNormals[i1], light)
		b2 := m.brightness(m.TNormals[i2], light)

		fb.FillTriangleShaded(
			m.TVerts[i0], m.TVerts[i1], m.TVerts[i2],
			h0, h1, h2,
			b0, b1, b2,
			m.Material.Saturation,
		)
	}
}
