package math3d

import "math"

// Quat is a rotation quaternion with scalar part W.
type Quat struct {
	W, X, Y, Z float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle builds a quaternion rotating angle radians around axis.
// The axis does not need to be normalized.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	s := math.Sin(angle / 2)
	return Quat{
		W: math.Cos(angle / 2),
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
	}
}

// QuatFromVectors builds the rotation carrying from onto to. Both inputs
// are expected to be non-zero; they do not need to be unit length. When
// the vectors are exactly opposite the cross product vanishes and the
// result degenerates, which matches the trackball's behavior of never
// producing antipodal sphere points within one drag step.
func QuatFromVectors(from, to Vec3) Quat {
	from = from.Normalize()
	to = to.Normalize()
	axis := from.Cross(to)
	cos := from.Dot(to)
	// Half-angle identities keep this a single sqrt.
	w := math.Sqrt((1 + cos) / 2)
	s := math.Sqrt((1 - cos) / 2)
	axis = axis.Normalize().Scale(s)
	return Quat{W: w, X: axis.X, Y: axis.Y, Z: axis.Z}
}

// Mul composes rotations: q then r is r.Mul(q).
//
//nolint:st1016 // q*r naming convention is clearer for quaternion products
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Conjugate returns the conjugate (inverse rotation for unit quaternions).
func (q Quat) Conjugate() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Inverse returns the multiplicative inverse, the conjugate scaled by the
// squared norm. Returns the identity for a zero quaternion.
func (q Quat) Inverse() Quat {
	n := q.LenSq()
	if n == 0 {
		return QuatIdentity()
	}
	return Quat{W: q.W / n, X: -q.X / n, Y: -q.Y / n, Z: -q.Z / n}
}

// LenSq returns the squared norm.
func (q Quat) LenSq() float64 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

// Normalize returns the unit quaternion.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.LenSq())
	if n == 0 {
		return QuatIdentity()
	}
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Rotate applies the rotation to v via the sandwich product q v q*.
// Expanded to components to avoid two full quaternion multiplies.
func (q Quat) Rotate(v Vec3) Vec3 {
	// t = 2 * (q.xyz × v)
	tx := 2 * (q.Y*v.Z - q.Z*v.Y)
	ty := 2 * (q.Z*v.X - q.X*v.Z)
	tz := 2 * (q.X*v.Y - q.Y*v.X)
	// v' = v + w*t + (q.xyz × t)
	return Vec3{
		v.X + q.W*tx + (q.Y*tz - q.Z*ty),
		v.Y + q.W*ty + (q.Z*tx - q.X*tz),
		v.Z + q.W*tz + (q.X*ty - q.Y*tx),
	}
}

// Mat4 converts the quaternion to a rotation matrix.
func (q Quat) Mat4() Mat4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, yy, zz := q.X*x2, q.Y*y2, q.Z*z2
	xy, xz, yz := q.X*y2, q.X*z2, q.Y*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	return Mat4{
		1 - yy - zz, xy + wz, xz - wy, 0,
		xy - wz, 1 - xx - zz, yz + wx, 0,
		xz + wy, yz - wx, 1 - xx - yy, 0,
		0, 0, 0, 1,
	}
}
