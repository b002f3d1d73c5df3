package loader

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/posekit/pkg/geom"
)

// decomposeMatrix splits a node matrix into translation, rotation and scale.
// The flat glTF layout groups each basis image in four consecutive floats,
// with the translation in the last group. Shear is not recovered.
func decomposeMatrix(m [16]float32) (geom.Vec3, geom.Quat, geom.Vec3) {
	translation := geom.Vec3{X: m[12], Y: m[13], Z: m[14]}

	rows := [3]geom.Vec3{
		{X: m[0], Y: m[1], Z: m[2]},
		{X: m[4], Y: m[5], Z: m[6]},
		{X: m[8], Y: m[9], Z: m[10]},
	}
	var scale geom.Vec3
	scale.X = rows[0].Length()
	scale.Y = rows[1].Length()
	scale.Z = rows[2].Length()
	// Degenerate axes would zero the rotation basis; treat them as unit.
	if scale.X < 0.0001 {
		scale.X = 1
		rows[0] = geom.Vec3{X: 1}
	}
	if scale.Y < 0.0001 {
		scale.Y = 1
		rows[1] = geom.Vec3{Y: 1}
	}
	if scale.Z < 0.0001 {
		scale.Z = 1
		rows[2] = geom.Vec3{Z: 1}
	}
	rows[0] = rows[0].Scale(1 / scale.X)
	rows[1] = rows[1].Scale(1 / scale.Y)
	rows[2] = rows[2].Scale(1 / scale.Z)

	return translation, rowsToQuat(rows), scale
}

// rowsToQuat converts an orthonormal basis to a quaternion, branching on the
// dominant diagonal term to keep the divisor well away from zero.
func rowsToQuat(r [3]geom.Vec3) geom.Quat {
	var q geom.Quat
	trace := r[0].X + r[1].Y + r[2].Z
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q.W = s / 4
		q.X = (r[1].Z - r[2].Y) / s
		q.Y = (r[2].X - r[0].Z) / s
		q.Z = (r[0].Y - r[1].X) / s
	case r[0].X > r[1].Y && r[0].X > r[2].Z:
		s := math32.Sqrt(1+r[0].X-r[1].Y-r[2].Z) * 2
		q.W = (r[1].Z - r[2].Y) / s
		q.X = s / 4
		q.Y = (r[0].Y + r[1].X) / s
		q.Z = (r[0].Z + r[2].X) / s
	case r[1].Y > r[2].Z:
		s := math32.Sqrt(1+r[1].Y-r[0].X-r[2].Z) * 2
		q.W = (r[2].X - r[0].Z) / s
		q.X = (r[0].Y + r[1].X) / s
		q.Y = s / 4
		q.Z = (r[1].Z + r[2].Y) / s
	default:
		s := math32.Sqrt(1+r[2].Z-r[0].X-r[1].Y) * 2
		q.W = (r[0].Y - r[1].X) / s
		q.X = (r[0].Z + r[2].X) / s
		q.Y = (r[1].Z + r[2].Y) / s
		q.Z = s / 4
	}
	return q.Normalize()
}
