package math3d

import (
	"math"
	"testing"
)

func quatNear(a, b Quat, tol float64) bool {
	return math.Abs(a.W-b.W) < tol && math.Abs(a.X-b.X) < tol &&
		math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func TestQuatFromAxisAngle(t *testing.T) {
	tests := []struct {
		name  string
		axis  Vec3
		angle float64
		in    Vec3
		want  Vec3
	}{
		{"quarter turn around z", V3(0, 0, 1), math.Pi / 2, V3(1, 0, 0), V3(0, 1, 0)},
		{"quarter turn around x", V3(1, 0, 0), math.Pi / 2, V3(0, 1, 0), V3(0, 0, 1)},
		{"zero angle", V3(0, 1, 0), 0, V3(3, 4, 5), V3(3, 4, 5)},
		{"unnormalized axis", V3(0, 0, 10), math.Pi / 2, V3(1, 0, 0), V3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromAxisAngle(tt.axis, tt.angle).Rotate(tt.in)
			if !vecNear(got, tt.want, epsilon) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuatRotatePreservesLength(t *testing.T) {
	q := QuatFromAxisAngle(V3(1, 2, 3), 0.77)
	v := V3(4, -5, 6)
	if got, want := q.Rotate(v).Len(), v.Len(); math.Abs(got-want) > epsilon {
		t.Errorf("rotated length = %v, want %v", got, want)
	}
}

func TestQuatFromVectors(t *testing.T) {
	from := V3(1, 0, 0)
	to := V3(0, 1, 0)
	q := QuatFromVectors(from, to)
	if got := q.Rotate(from); !vecNear(got, to, epsilon) {
		t.Errorf("q.Rotate(from) = %v, want %v", got, to)
	}
}

func TestQuatFromVectorsUnnormalized(t *testing.T) {
	// Inputs are normalized internally; only direction matters.
	q := QuatFromVectors(V3(5, 0, 0), V3(0, 0, 3))
	if got := q.Rotate(V3(1, 0, 0)); !vecNear(got, V3(0, 0, 1), epsilon) {
		t.Errorf("q.Rotate = %v, want (0,0,1)", got)
	}
}

func TestQuatMulComposes(t *testing.T) {
	q1 := QuatFromAxisAngle(V3(0, 0, 1), math.Pi/2)
	q2 := QuatFromAxisAngle(V3(1, 0, 0), math.Pi/2)

	v := V3(1, 0, 0)
	// Applying q1 then q2 equals applying q2*q1.
	want := q2.Rotate(q1.Rotate(v))
	got := q2.Mul(q1).Rotate(v)
	if !vecNear(got, want, epsilon) {
		t.Errorf("composed rotate = %v, want %v", got, want)
	}
}

func TestQuatConjugateInverts(t *testing.T) {
	q := QuatFromAxisAngle(V3(1, 1, 1), 1.1)
	v := V3(2, 3, 4)
	if got := q.Conjugate().Rotate(q.Rotate(v)); !vecNear(got, v, epsilon) {
		t.Errorf("conjugate round trip = %v, want %v", got, v)
	}
}

func TestQuatInverse(t *testing.T) {
	q := Quat{W: 2, X: 1, Y: -1, Z: 3}
	got := q.Mul(q.Inverse())
	if !quatNear(got, QuatIdentity(), epsilon) {
		t.Errorf("q * inverse = %v, want identity", got)
	}
	if got := (Quat{}).Inverse(); !quatNear(got, QuatIdentity(), epsilon) {
		t.Errorf("zero inverse = %v, want identity", got)
	}
}

func TestQuatMat4MatchesRotate(t *testing.T) {
	q := QuatFromAxisAngle(V3(2, -1, 3), 0.6)
	v := V3(1, 2, 3)
	if got, want := q.Mat4().MulVec3(v), q.Rotate(v); !vecNear(got, want, epsilon) {
		t.Errorf("Mat4 transform = %v, Rotate = %v", got, want)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{W: 2, X: 0, Y: 0, Z: 0}.Normalize()
	if math.Abs(q.LenSq()-1) > epsilon {
		t.Errorf("normalized LenSq = %v, want 1", q.LenSq())
	}
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quaternion normalized to %v, want identity", got)
	}
}
