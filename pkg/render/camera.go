package render

import (
	"math"

	"github.com/taigrr/surfterm/pkg/math3d"
)

// gestureState tags which pointer gesture, if any, is in progress.
type gestureState int

const (
	gestureIdle gestureState = iota
	gestureTrackball
	gesturePan
)

// trackballRadius scales the virtual hemisphere relative to the smaller
// viewport dimension.
const trackballRadius = 0.4

// Camera is an orthographic look-at camera for the plot viewport. It
// owns the camera-to-world matrix plus the state for trackball and pan
// drags. CalcMatrix must be called after mutating Eye, Look, Up,
// ScreenWidth or the pixel dimensions before the matrix is used.
type Camera struct {
	Eye  math3d.Vec3
	Look math3d.Vec3
	Up   math3d.Vec3

	// ScreenWidth is the viewport width in world units; together with
	// PixelWidth it sets the world-units-per-pixel scale.
	ScreenWidth float64
	PixelWidth  int
	PixelHeight int

	matrix math3d.Mat4

	state     gestureState
	ballStart math3d.Vec3 // hemisphere vector at drag start
	snapEye   math3d.Vec3
	snapUp    math3d.Vec3
	snapRot   math3d.Mat4 // rotation-only matrix at drag start
	panX      float64
	panY      float64
}

// NewCamera returns a camera in the default orientation looking at the
// origin from the front-right, z up.
func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset restores the default orientation and scale and cancels any
// active gesture.
func (c *Camera) Reset() {
	c.Eye = math3d.V3(2, -2, 1.5)
	c.Look = math3d.Zero3()
	c.Up = math3d.Up()
	c.ScreenWidth = 4
	c.state = gestureIdle
	c.fixUp()
	c.CalcMatrix()
}

// SetPixelSize records the viewport dimensions and recomputes the
// matrix.
func (c *Camera) SetPixelSize(w, h int) {
	c.PixelWidth = w
	c.PixelHeight = h
	c.CalcMatrix()
}

// Matrix returns the cached camera-to-world matrix.
func (c *Camera) Matrix() math3d.Mat4 {
	return c.matrix
}

// CalcMatrix rebuilds the camera-to-world matrix from eye, look, up and
// the screen scale. Screen space has x right, y down, z along the view
// direction, with the eye at the viewport center. No-op while the pixel
// dimensions are unset.
func (c *Camera) CalcMatrix() {
	if c.PixelWidth <= 0 || c.PixelHeight <= 0 {
		return
	}
	s := c.ScreenWidth / float64(c.PixelWidth)
	view := c.Look.Sub(c.Eye).Normalize()
	right := view.Cross(c.Up).Normalize()
	up := c.Up.Normalize()

	// Columns are the world-space directions of the screen axes; y is
	// negated because screen y grows downward.
	colX := right.Scale(s)
	colY := up.Negate().Scale(s)
	colZ := view.Scale(s)

	// Place the eye at the viewport center, depth 0.
	t := c.Eye.
		Sub(colX.Scale(float64(c.PixelWidth) / 2)).
		Sub(colY.Scale(float64(c.PixelHeight) / 2))

	c.matrix = math3d.FromBasis(colX, colY, colZ, t)
}

// fixUp re-orthogonalizes the up vector against the view direction so
// accumulated drag rotations cannot skew the basis.
func (c *Camera) fixUp() {
	view := c.Look.Sub(c.Eye).Normalize()
	c.Up = c.Up.Sub(view.Scale(c.Up.Dot(view))).Normalize()
}

// ballToVec maps a screen point onto the virtual trackball hemisphere.
// Points outside the disk are projected onto its rim; the hemisphere
// bulges toward the viewer.
func (c *Camera) ballToVec(x, y float64) math3d.Vec3 {
	r := trackballRadius * float64(min(c.PixelWidth, c.PixelHeight))
	if r == 0 {
		return math3d.V3(0, 0, 1)
	}
	vx := (x - float64(c.PixelWidth)/2) / r
	vy := (y - float64(c.PixelHeight)/2) / r
	if d := vx*vx + vy*vy; d > 1 {
		s := 1 / math.Sqrt(d)
		vx *= s
		vy *= s
	}
	vz := math.Sqrt(math.Abs(1 - vx*vx - vy*vy))
	return math3d.V3(vx, -vy, vz)
}

// StartTrackball begins a rotation drag, snapshotting the orientation
// the whole drag is computed against.
func (c *Camera) StartTrackball(x, y float64) {
	c.state = gestureTrackball
	c.ballStart = c.ballToVec(x, y)
	c.snapEye = c.Eye
	c.snapUp = c.Up
	c.snapRot = c.matrix.RotationOnly()
}

// MoveTrackball orbits the camera around the look point. The rotation is
// always derived from the drag-start snapshot, never accumulated, so a
// drag that returns to its start point restores the exact starting
// orientation.
func (c *Camera) MoveTrackball(x, y float64) {
	if c.state != gestureTrackball {
		return
	}
	cur := c.ballToVec(x, y)
	if cur == c.ballStart {
		return
	}

	axis := c.ballStart.Cross(cur)
	if axis.LenSq() == 0 {
		return
	}
	dot := c.ballStart.Dot(cur)
	angle := math.Acos(math.Max(-1, math.Min(1, dot)))

	// The hemisphere vectors live in camera space; carry the axis into
	// world space with the snapshotted rotation. Grabbing the ball spins
	// the scene, so the camera orbits the opposite way.
	worldAxis := c.snapRot.MulVec3Dir(axis.Normalize())
	q := math3d.QuatFromAxisAngle(worldAxis, -angle)

	offset := c.Look.Sub(c.snapEye)
	c.Eye = c.Look.Sub(q.Rotate(offset))
	c.Up = q.Rotate(c.snapUp)
	c.fixUp()
	c.CalcMatrix()
}

// EndTrackball finishes a rotation drag. The orientation already
// reflects the final move event, so nothing else is applied.
func (c *Camera) EndTrackball() {
	c.state = gestureIdle
}

// StartPan begins a translation drag.
func (c *Camera) StartPan(x, y float64) {
	c.state = gesturePan
	c.panX = x
	c.panY = y
}

// MovePan slides eye and look together in the screen plane. The start
// point is refreshed every event, so deltas are incremental rather than
// cumulative from the original down point.
func (c *Camera) MovePan(x, y float64) {
	if c.state != gesturePan || c.PixelWidth <= 0 {
		return
	}
	s := c.ScreenWidth / float64(c.PixelWidth)
	dx := (x - c.panX) * s
	dy := (y - c.panY) * s
	c.panX = x
	c.panY = y

	view := c.Look.Sub(c.Eye).Normalize()
	right := view.Cross(c.Up).Normalize()
	// Dragging moves the scene with the pointer, i.e. the camera the
	// other way; screen y grows downward.
	move := right.Combine(-dx, c.Up, dy)
	c.Eye = c.Eye.Add(move)
	c.Look = c.Look.Add(move)
	c.CalcMatrix()
}

// EndPan finishes a translation drag.
func (c *Camera) EndPan() {
	c.state = gestureIdle
}

// Zoom scales the viewport's world-unit width by factor (>1 zooms out)
// and recomputes the matrix.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.ScreenWidth *= factor
	c.CalcMatrix()
}
