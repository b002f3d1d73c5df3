package geom

import "github.com/chewxy/math32"

// SlerpFallbackThreshold is the sine-of-arc threshold below which Slerp
// blends linearly instead of dividing by a near-zero sine.
const SlerpFallbackThreshold float32 = 0.1

// Quat represents a rotation quaternion.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := math32.Sin(halfAngle)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(halfAngle),
	}
}

// Add returns q + other, component-wise.
func (q Quat) Add(other Quat) Quat {
	return Quat{q.X + other.X, q.Y + other.Y, q.Z + other.Z, q.W + other.W}
}

// Sub returns q - other, component-wise.
func (q Quat) Sub(other Quat) Quat {
	return Quat{q.X - other.X, q.Y - other.Y, q.Z - other.Z, q.W - other.W}
}

// Scale returns q * scalar.
func (q Quat) Scale(s float32) Quat {
	return Quat{q.X * s, q.Y * s, q.Z * s, q.W * s}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Normalize rescales q to unit length. A zero quaternion divides by zero;
// there is no guard.
func (q Quat) Normalize() Quat {
	l := math32.Sqrt(q.Dot(q))
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Lerp returns the component-wise blend q*(1-t) + other*t.
// The result is not renormalized.
func (q Quat) Lerp(other Quat, t float32) Quat {
	return q.Scale(1 - t).Add(other.Scale(t))
}

// Slerp interpolates from q toward other by t along the shorter arc.
// When the arc sine falls below SlerpFallbackThreshold the result is the
// plain linear blend, without renormalization.
func (q Quat) Slerp(other Quat, t float32) Quat {
	d := q.Dot(other)
	angle := math32.Acos(math32.Abs(d))
	target := other
	if d < 0 {
		target = other.Scale(-1)
	}

	// avoid dividing by a very small sine
	norm := math32.Sin(angle)
	if norm < SlerpFallbackThreshold {
		return q.Lerp(target, t)
	}

	s0 := math32.Sin((1-t)*angle) / norm
	s1 := math32.Sin(t*angle) / norm
	return q.Scale(s0).Add(target.Scale(s1))
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// rotationMatrix returns the 3x3 row-vector rotation matrix of q.
// Row i is the image of basis vector i.
func (q Quat) rotationMatrix() [3][3]float32 {
	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return [3][3]float32{
		{1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw)},
		{2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw)},
		{2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy)},
	}
}
