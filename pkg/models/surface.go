package models

import (
	"math"

	"github.com/taigrr/surfterm/pkg/math3d"
)

// SurfaceFunc is a scalar height function z = f(x, y).
type SurfaceFunc func(x, y float64) float64

// Central-difference step for normal estimation.
const normalEps = 0.001

// Offsets used to re-probe a function that returned a non-finite value;
// irrationally small so the retry rarely lands on the same pole.
const (
	reprobeX = 5.232e-6
	reprobeY = 8.98e-6
)

// Surface is a triangle mesh sampled from a height function over a
// rectangular domain on a regular grid. The function and grid are set
// at construction; the domain and z auto-scaling can change afterwards
// and trigger a full regeneration.
type Surface struct {
	*Mesh

	Fn       SurfaceFunc
	GridSize int

	MinDomX, MaxDomX float64
	MinDomY, MaxDomY float64

	// AutoScaleZ rescales z so its extent matches the average of the x
	// and y extents, keeping wildly-ranged functions in proportion.
	AutoScaleZ bool

	zScale float64
}

// NewSurface builds a surface for fn over [-1,1]x[-1,1] with an n-cell
// grid per side and auto z-scaling enabled.
func NewSurface(fn SurfaceFunc, gridSize int) *Surface {
	s := &Surface{
		Mesh:       NewMesh(),
		Fn:         fn,
		GridSize:   gridSize,
		MinDomX:    -1,
		MaxDomX:    1,
		MinDomY:    -1,
		MaxDomY:    1,
		AutoScaleZ: true,
		zScale:     1,
	}
	s.Rebuild()
	return s
}

// Rebuild regenerates vertices, normals and triangles from scratch,
// recomputing the z range and auto-scale factor.
func (s *Surface) Rebuild() {
	s.rebuild(true)
}

// SetGridSize changes the grid resolution and regenerates the mesh
// while keeping the previously established z range and scale, so the
// height coloring does not jump on a resolution change.
func (s *Surface) SetGridSize(n int) {
	s.GridSize = n
	s.rebuild(false)
}

// SetDomain changes the sampling rectangle and fully regenerates.
func (s *Surface) SetDomain(minX, maxX, minY, maxY float64) {
	s.MinDomX, s.MaxDomX = minX, maxX
	s.MinDomY, s.MaxDomY = minY, maxY
	s.rebuild(true)
}

// sample evaluates the function, re-probing at a tiny offset when the
// result is not finite (poles, 0/0 ridges).
func (s *Surface) sample(x, y float64) float64 {
	z := s.Fn(x, y)
	if math.IsNaN(z) || math.IsInf(z, 0) {
		z = s.Fn(x+reprobeX, y+reprobeY)
	}
	return z
}

func (s *Surface) rebuild(resetZ bool) {
	n := s.GridSize
	verts := make([]math3d.Vec3, (n+1)*(n+1))
	normals := make([]math3d.Vec3, (n+1)*(n+1))

	dx := (s.MaxDomX - s.MinDomX) / float64(n)
	dy := (s.MaxDomY - s.MinDomY) / float64(n)

	zMin, zMax := math.Inf(1), math.Inf(-1)

	for j := 0; j <= n; j++ {
		y := s.MinDomY + dy*float64(j)
		for i := 0; i <= n; i++ {
			x := s.MinDomX + dx*float64(i)
			z := s.sample(x, y)

			// A still-non-finite sample is kept as a vertex but left out
			// of the z range, so one pole cannot flatten the coloring of
			// the rest of the plot.
			if !math.IsNaN(z) && !math.IsInf(z, 0) {
				zMin = math.Min(zMin, z)
				zMax = math.Max(zMax, z)
			}
			verts[j*(n+1)+i] = math3d.V3(x, y, z)

			gx := (s.sample(x+normalEps, y) - s.sample(x-normalEps, y)) / (2 * normalEps)
			gy := (s.sample(x, y+normalEps) - s.sample(x, y-normalEps)) / (2 * normalEps)
			nv := math3d.V3(-gx, -gy, 1)
			if !nv.IsFinite() {
				nv = math3d.Up()
			}
			normals[j*(n+1)+i] = nv.Normalize()
		}
	}

	if zMax < zMin {
		zMin, zMax = 0, 0
	}

	if resetZ {
		s.zScale = 1
		if s.AutoScaleZ && zMax > zMin {
			target := ((s.MaxDomX - s.MinDomX) + (s.MaxDomY - s.MinDomY)) / 2
			s.zScale = target / (zMax - zMin)
		}
	}
	for i := range verts {
		verts[i].Z *= s.zScale
	}

	index := make([]int, 0, 6*n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			p1 := j*(n+1) + i
			p2 := p1 + 1
			p3 := p1 + n + 1
			p4 := p3 + 1
			index = append(index, p1, p2, p3, p4, p3, p2)
		}
	}

	s.Verts = verts
	s.Normals = normals
	s.Index = index
	s.TVerts = nil
	s.TNormals = nil

	minZ, maxZ := s.Min.Z, s.Max.Z
	if resetZ {
		minZ, maxZ = zMin*s.zScale, zMax*s.zScale
	}
	s.Min = math3d.V3(s.MinDomX, s.MinDomY, minZ)
	s.Max = math3d.V3(s.MaxDomX, s.MaxDomY, maxZ)
}
