package geom

import "github.com/chewxy/math32"

// Transform maps row vectors: p' = p*RS + T, where RS is a 3x3
// rotation-scale block stored as rows. Compose reads left to right, so
// a.Compose(b) applies a first, then b.
type Transform struct {
	RS [3]Vec3
	T  Vec3
}

// TransformIdentity returns the identity transform.
func TransformIdentity() Transform {
	return Transform{RS: [3]Vec3{{X: 1}, {Y: 1}, {Z: 1}}}
}

// FromTRS builds the transform that scales, then rotates, then translates.
func FromTRS(translation Vec3, rotation Quat, scale Vec3) Transform {
	m := rotation.rotationMatrix()
	return Transform{
		RS: [3]Vec3{
			{m[0][0] * scale.X, m[0][1] * scale.X, m[0][2] * scale.X},
			{m[1][0] * scale.Y, m[1][1] * scale.Y, m[1][2] * scale.Y},
			{m[2][0] * scale.Z, m[2][1] * scale.Z, m[2][2] * scale.Z},
		},
		T: translation,
	}
}

// FromTRSReversed builds the exact inverse of FromTRS(translation, rotation,
// scale). Scale components must be non-zero.
func FromTRSReversed(translation Vec3, rotation Quat, scale Vec3) Transform {
	m := rotation.rotationMatrix()
	r := Transform{
		RS: [3]Vec3{
			{m[0][0] / scale.X, m[1][0] / scale.Y, m[2][0] / scale.Z},
			{m[0][1] / scale.X, m[1][1] / scale.Y, m[2][1] / scale.Z},
			{m[0][2] / scale.X, m[1][2] / scale.Y, m[2][2] / scale.Z},
		},
	}
	r.T = r.ApplyDirection(translation).Scale(-1)
	return r
}

// ApplyDirection maps a direction through the rotation-scale block only.
func (t Transform) ApplyDirection(v Vec3) Vec3 {
	return t.RS[0].Scale(v.X).Add(t.RS[1].Scale(v.Y)).Add(t.RS[2].Scale(v.Z))
}

// Apply maps a point: v*RS + T.
func (t Transform) Apply(v Vec3) Vec3 {
	return t.ApplyDirection(v).Add(t.T)
}

// Compose returns the transform equivalent to applying t, then other.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		RS: [3]Vec3{
			other.ApplyDirection(t.RS[0]),
			other.ApplyDirection(t.RS[1]),
			other.ApplyDirection(t.RS[2]),
		},
		T: other.Apply(t.T),
	}
}

// Reverse returns the inverse of t. RS must be orthogonal (pure rotation);
// scaled transforms need FromTRSReversed instead.
func (t Transform) Reverse() Transform {
	return Transform{
		RS: [3]Vec3{
			{t.RS[0].X, t.RS[1].X, t.RS[2].X},
			{t.RS[0].Y, t.RS[1].Y, t.RS[2].Y},
			{t.RS[0].Z, t.RS[1].Z, t.RS[2].Z},
		},
		T: Vec3{-t.T.Dot(t.RS[0]), -t.T.Dot(t.RS[1]), -t.T.Dot(t.RS[2])},
	}
}

// Translate returns t moved by offset along its own axes.
func (t Transform) Translate(offset Vec3) Transform {
	t.T = t.T.Add(t.ApplyDirection(offset))
	return t
}

// TranslateWorld returns t moved by offset along the world axes.
func (t Transform) TranslateWorld(offset Vec3) Transform {
	t.T = t.T.Add(offset)
	return t
}

// ScaleBy multiplies each basis column by the matching factor.
// The translation is left unchanged.
func (t Transform) ScaleBy(factors Vec3) Transform {
	for i := range t.RS {
		t.RS[i] = t.RS[i].Mul(factors)
	}
	return t
}

// RotateX rotates by angle (radians) about the local X axis.
func (t Transform) RotateX(angle float32) Transform {
	s, c := math32.Sincos(angle)
	r1 := t.RS[1].Scale(c).Add(t.RS[2].Scale(s))
	r2 := t.RS[2].Scale(c).Sub(t.RS[1].Scale(s))
	t.RS[1], t.RS[2] = r1, r2
	return t
}

// RotateY rotates by angle (radians) about the local Y axis.
func (t Transform) RotateY(angle float32) Transform {
	s, c := math32.Sincos(angle)
	r0 := t.RS[0].Scale(c).Sub(t.RS[2].Scale(s))
	r2 := t.RS[0].Scale(s).Add(t.RS[2].Scale(c))
	t.RS[0], t.RS[2] = r0, r2
	return t
}

// RotateZ rotates by angle (radians) about the local Z axis.
func (t Transform) RotateZ(angle float32) Transform {
	s, c := math32.Sincos(angle)
	r0 := t.RS[0].Scale(c).Add(t.RS[1].Scale(s))
	r1 := t.RS[1].Scale(c).Sub(t.RS[0].Scale(s))
	t.RS[0], t.RS[1] = r0, r1
	return t
}

// RotateXWorld rotates by angle (radians) about the world X axis.
// The translation rotates along.
func (t Transform) RotateXWorld(angle float32) Transform {
	s, c := math32.Sincos(angle)
	return t.rotateWorld(func(v Vec3) Vec3 {
		return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
	})
}

// RotateYWorld rotates by angle (radians) about the world Y axis.
// The translation rotates along.
func (t Transform) RotateYWorld(angle float32) Transform {
	s, c := math32.Sincos(angle)
	return t.rotateWorld(func(v Vec3) Vec3 {
		return Vec3{v.X*c + v.Z*s, v.Y, v.Z*c - v.X*s}
	})
}

// RotateZWorld rotates by angle (radians) about the world Z axis.
// The translation rotates along.
func (t Transform) RotateZWorld(angle float32) Transform {
	s, c := math32.Sincos(angle)
	return t.rotateWorld(func(v Vec3) Vec3 {
		return Vec3{v.X*c - v.Y*s, v.Y*c + v.X*s, v.Z}
	})
}

func (t Transform) rotateWorld(rot func(Vec3) Vec3) Transform {
	return Transform{
		RS: [3]Vec3{rot(t.RS[0]), rot(t.RS[1]), rot(t.RS[2])},
		T:  rot(t.T),
	}
}

// LookAt returns the world transform of a viewer placed at from and facing
// to. The view transform is its Reverse.
func LookAt(from, to Vec3) Transform {
	dir := to.Sub(from)
	angleY := math32.Atan2(dir.X, dir.Z)
	angleX := -math32.Atan2(dir.Y, math32.Hypot(dir.X, dir.Z))
	return TransformIdentity().
		RotateXWorld(angleX).
		RotateYWorld(angleY).
		TranslateWorld(from)
}

// ProjectPerspective appends a perspective projection to t and returns the
// homogeneous result. fov is the vertical field of view in radians, aspect
// is width/height, near and far bound the depth range.
func (t Transform) ProjectPerspective(fov, aspect, near, far float32) Mat4 {
	fovCoeff := -math32.Tan(fov / 2)
	perspCoeff := far / (far - near)
	return Mat4{
		t.RS[0].X * fovCoeff / aspect, t.RS[0].Y * fovCoeff, t.RS[0].Z * perspCoeff, t.RS[0].Z,
		t.RS[1].X * fovCoeff / aspect, t.RS[1].Y * fovCoeff, t.RS[1].Z * perspCoeff, t.RS[1].Z,
		t.RS[2].X * fovCoeff / aspect, t.RS[2].Y * fovCoeff, t.RS[2].Z * perspCoeff, t.RS[2].Z,
		t.T.X * fovCoeff / aspect, t.T.Y * fovCoeff, (t.T.Z - near) * perspCoeff, t.T.Z,
	}
}

// ToHomogeneous expands t to a 4x4 row-major matrix with the translation in
// the last row.
func (t Transform) ToHomogeneous() Mat4 {
	return Mat4{
		t.RS[0].X, t.RS[0].Y, t.RS[0].Z, 0,
		t.RS[1].X, t.RS[1].Y, t.RS[1].Z, 0,
		t.RS[2].X, t.RS[2].Y, t.RS[2].Z, 0,
		t.T.X, t.T.Y, t.T.Z, 1,
	}
}

// FromHomogeneous reads the rotation-scale rows and translation back out of
// a matrix shaped like ToHomogeneous output. The projective column is
// ignored.
func FromHomogeneous(m Mat4) Transform {
	return Transform{
		RS: [3]Vec3{
			{m[0], m[1], m[2]},
			{m[4], m[5], m[6]},
			{m[8], m[9], m[10]},
		},
		T: Vec3{m[12], m[13], m[14]},
	}
}
