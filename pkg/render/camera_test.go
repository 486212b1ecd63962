package render

import (
	"math"
	"testing"

	"github.com/taigrr/surfterm/pkg/math3d"
)

const camEpsilon = 1e-9

func createTestCamera() *Camera {
	c := NewCamera()
	c.SetPixelSize(120, 80)
	return c
}

func vecsClose(a, b math3d.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}

func TestTrackballSamePointIsNoOp(t *testing.T) {
	c := createTestCamera()
	eye, up := c.Eye, c.Up

	c.StartTrackball(30, 40)
	c.MoveTrackball(30, 40)
	c.EndTrackball()

	if !vecsClose(c.Eye, eye, camEpsilon) {
		t.Errorf("eye moved to %v on a zero-length drag, want %v", c.Eye, eye)
	}
	if !vecsClose(c.Up, up, camEpsilon) {
		t.Errorf("up changed to %v on a zero-length drag, want %v", c.Up, up)
	}
}

func TestTrackballOrbitsAroundLook(t *testing.T) {
	c := createTestCamera()
	look := c.Look
	dist := c.Eye.Sub(c.Look).Len()

	c.StartTrackball(60, 40)
	c.MoveTrackball(80, 52)
	c.EndTrackball()

	if c.Look != look {
		t.Errorf("look point moved to %v during trackball, want %v", c.Look, look)
	}
	if got := c.Eye.Sub(c.Look).Len(); math.Abs(got-dist) > 1e-6 {
		t.Errorf("eye distance = %v after trackball, want %v", got, dist)
	}
	if vecsClose(c.Eye, math3d.V3(2, -2, 1.5), camEpsilon) {
		t.Error("eye did not move for a non-trivial drag")
	}
}

func TestTrackballDragIsIdempotentFromSnapshot(t *testing.T) {
	// Moves are computed from the drag-start snapshot, so repeating the
	// same move event must not accumulate extra rotation.
	c := createTestCamera()

	c.StartTrackball(60, 40)
	c.MoveTrackball(75, 50)
	eye, up := c.Eye, c.Up
	c.MoveTrackball(75, 50)
	c.EndTrackball()

	if !vecsClose(c.Eye, eye, camEpsilon) || !vecsClose(c.Up, up, camEpsilon) {
		t.Error("repeated identical move event changed the orientation")
	}
}

func TestTrackballKeepsUpOrthogonal(t *testing.T) {
	c := createTestCamera()

	c.StartTrackball(20, 20)
	c.MoveTrackball(90, 65)
	c.EndTrackball()

	view := c.Look.Sub(c.Eye).Normalize()
	if got := math.Abs(view.Dot(c.Up)); got > 1e-9 {
		t.Errorf("up·view = %v after drag, want 0", got)
	}
	if got := c.Up.Len(); math.Abs(got-1) > 1e-9 {
		t.Errorf("|up| = %v after drag, want 1", got)
	}
}

func TestMoveTrackballIgnoredWhenIdle(t *testing.T) {
	c := createTestCamera()
	eye := c.Eye

	c.MoveTrackball(90, 65)

	if c.Eye != eye {
		t.Error("move event outside a drag changed the camera")
	}
}

func TestPanMovesEyeAndLookTogether(t *testing.T) {
	c := createTestCamera()
	offset := c.Look.Sub(c.Eye)

	c.StartPan(10, 10)
	c.MovePan(30, 25)
	c.EndPan()

	if !vecsClose(c.Look.Sub(c.Eye), offset, camEpsilon) {
		t.Error("pan changed the eye-to-look offset")
	}
	if vecsClose(c.Eye, math3d.V3(2, -2, 1.5), camEpsilon) {
		t.Error("pan did not move the camera")
	}
}

func TestPanDeltasAreIncremental(t *testing.T) {
	// One long drag and the same drag split into two events must land in
	// the same place.
	single := createTestCamera()
	single.StartPan(10, 10)
	single.MovePan(50, 30)
	single.EndPan()

	split := createTestCamera()
	split.StartPan(10, 10)
	split.MovePan(25, 18)
	split.MovePan(50, 30)
	split.EndPan()

	if !vecsClose(single.Eye, split.Eye, 1e-9) {
		t.Errorf("split drag eye = %v, single drag eye = %v", split.Eye, single.Eye)
	}
}

func TestCalcMatrixMapsEyeToViewportCenter(t *testing.T) {
	c := createTestCamera()
	inv, ok := c.Matrix().Inverse()
	if !ok {
		t.Fatal("camera matrix is singular")
	}

	center := inv.MulVec3(c.Eye)
	want := math3d.V3(float64(c.PixelWidth)/2, float64(c.PixelHeight)/2, 0)
	if !vecsClose(center, want, 1e-6) {
		t.Errorf("eye maps to screen %v, want %v", center, want)
	}
}

func TestCalcMatrixNoOpWithoutPixelSize(t *testing.T) {
	c := &Camera{}
	c.Reset() // no pixel size yet
	if c.Matrix() != (math3d.Mat4{}) {
		t.Error("matrix computed before viewport dimensions were known")
	}
}

func TestZoomScalesScreenWidth(t *testing.T) {
	c := createTestCamera()
	w := c.ScreenWidth

	c.Zoom(2)
	if c.ScreenWidth != w*2 {
		t.Errorf("ScreenWidth = %v after Zoom(2), want %v", c.ScreenWidth, w*2)
	}

	c.Zoom(-1) // rejected
	if c.ScreenWidth != w*2 {
		t.Error("non-positive zoom factor was applied")
	}
}

func TestBallToVecRimProjection(t *testing.T) {
	c := createTestCamera()

	// A point far outside the trackball disk lands on the rim: z = 0.
	v := c.ballToVec(0, 0)
	if got := math.Abs(v.Z); got > 1e-9 {
		t.Errorf("rim-projected z = %v, want 0", got)
	}
	if got := v.Len(); math.Abs(got-1) > 1e-9 {
		t.Errorf("rim-projected length = %v, want 1", got)
	}

	// The viewport center is the top of the hemisphere.
	v = c.ballToVec(60, 40)
	if !vecsClose(v, math3d.V3(0, 0, 1), 1e-9) {
		t.Errorf("center maps to %v, want (0,0,1)", v)
	}
}
