package anim

import "github.com/Faultbox/posekit/pkg/geom"

// Interpolation selects how keyframe values are blended between timestamps.
type Interpolation uint8

const (
	// InterpolationStep holds each keyframe value until the next timestamp.
	InterpolationStep Interpolation = iota
	// InterpolationLinear blends linearly; rotations blend spherically.
	InterpolationLinear
	// InterpolationCubic follows a cubic Hermite spline with per-keyframe
	// in/out tangents.
	InterpolationCubic
)

// String returns the interpolation name.
func (m Interpolation) String() string {
	switch m {
	case InterpolationStep:
		return "step"
	case InterpolationLinear:
		return "linear"
	case InterpolationCubic:
		return "cubic"
	}
	return "unknown"
}

// Vec3Sampler holds the keyframe values of one vector channel. For
// InterpolationCubic, InTangents and OutTangents run parallel to Values;
// otherwise they stay nil.
type Vec3Sampler struct {
	Mode        Interpolation
	Values      []geom.Vec3
	InTangents  []geom.Vec3
	OutTangents []geom.Vec3
}

// Value returns the raw keyframe value at index i.
func (s Vec3Sampler) Value(i int) geom.Vec3 {
	return s.Values[i]
}

// Interpolate blends between keyframes i and i+1 at time t, where t0 and t1
// are their timestamps.
func (s Vec3Sampler) Interpolate(i int, t, t0, t1 float32) geom.Vec3 {
	switch s.Mode {
	case InterpolationLinear:
		alpha := (t - t0) / (t1 - t0)
		return s.Values[i].Lerp(s.Values[i+1], alpha)
	case InterpolationCubic:
		alpha := (t - t0) / (t1 - t0)
		w0, wOut, w1, wIn := hermiteWeights(alpha, t1-t0)
		return s.Values[i].Scale(w0).
			Add(s.OutTangents[i].Scale(wOut)).
			Add(s.Values[i+1].Scale(w1)).
			Add(s.InTangents[i+1].Scale(wIn))
	default:
		return s.Values[i]
	}
}

// QuatSampler holds the keyframe values of one rotation channel. For
// InterpolationCubic, InTangents and OutTangents run parallel to Values;
// otherwise they stay nil.
type QuatSampler struct {
	Mode        Interpolation
	Values      []geom.Quat
	InTangents  []geom.Quat
	OutTangents []geom.Quat
}

// Value returns the raw keyframe value at index i.
func (s QuatSampler) Value(i int) geom.Quat {
	return s.Values[i]
}

// Interpolate blends between keyframes i and i+1 at time t, where t0 and t1
// are their timestamps. Cubic results are not renormalized.
func (s QuatSampler) Interpolate(i int, t, t0, t1 float32) geom.Quat {
	switch s.Mode {
	case InterpolationLinear:
		alpha := (t - t0) / (t1 - t0)
		return s.Values[i].Slerp(s.Values[i+1], alpha)
	case InterpolationCubic:
		alpha := (t - t0) / (t1 - t0)
		w0, wOut, w1, wIn := hermiteWeights(alpha, t1-t0)
		return s.Values[i].Scale(w0).
			Add(s.OutTangents[i].Scale(wOut)).
			Add(s.Values[i+1].Scale(w1)).
			Add(s.InTangents[i+1].Scale(wIn))
	default:
		return s.Values[i]
	}
}

// hermiteWeights evaluates the cubic Hermite basis at alpha over an interval
// of length dt. The weights apply to value i, out-tangent i, value i+1 and
// in-tangent i+1, in that order.
func hermiteWeights(alpha, dt float32) (w0, wOut, w1, wIn float32) {
	a2 := alpha * alpha
	a3 := a2 * alpha
	w0 = 2*a3 - 3*a2 + 1
	wOut = dt * (a3 - 2*a2 + alpha)
	w1 = 3*a2 - 2*a3
	wIn = dt * (a3 - a2)
	return
}
