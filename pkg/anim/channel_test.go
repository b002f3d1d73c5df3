package anim

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/posekit/pkg/geom"
)

func TestChannelStepBoundaries(t *testing.T) {
	ch, err := NewTranslationChannel(0, []float32{0, 1, 2}, Vec3Sampler{
		Mode:   InterpolationStep,
		Values: []geom.Vec3{{X: 1}, {X: 2}, {X: 3}},
	})
	if err != nil {
		t.Fatalf("NewTranslationChannel: %v", err)
	}

	cases := []struct {
		time float32
		want float32
	}{
		{-0.5, 1}, // before the first key clamps to it
		{0, 1},
		{0.5, 1}, // step holds until the next timestamp
		{1, 2},
		{1.5, 2},
		{2, 3},
		{99, 3}, // past the last key clamps to it
	}
	for _, c := range cases {
		got := ch.Compute(c.time)
		if got.Vec.X != c.want {
			t.Errorf("Compute(%v) = %v, want X=%v", c.time, got.Vec, c.want)
		}
	}
}

func TestChannelLinearMidpoint(t *testing.T) {
	ch, err := NewTranslationChannel(0, []float32{0, 2}, Vec3Sampler{
		Mode:   InterpolationLinear,
		Values: []geom.Vec3{{X: 0, Y: 2, Z: -4}, {X: 2, Y: 4, Z: 4}},
	})
	if err != nil {
		t.Fatalf("NewTranslationChannel: %v", err)
	}

	got := ch.Compute(1)
	want := geom.Vec3{X: 1, Y: 3, Z: 0}
	if got.Vec != want {
		t.Errorf("Compute(1) = %v, want %v", got.Vec, want)
	}
}

func TestChannelLinearRotationSlerps(t *testing.T) {
	q0 := geom.QuatIdentity()
	q1 := geom.QuatFromAxisAngle(geom.Vec3{Y: 1}, math32.Pi/2)
	ch, err := NewRotationChannel(0, []float32{0, 1}, QuatSampler{
		Mode:   InterpolationLinear,
		Values: []geom.Quat{q0, q1},
	})
	if err != nil {
		t.Fatalf("NewRotationChannel: %v", err)
	}

	got := ch.Compute(0.5)
	want := geom.QuatFromAxisAngle(geom.Vec3{Y: 1}, math32.Pi/4)
	if !quatNear(got.Quat, want) {
		t.Errorf("Compute(0.5) = %v, want %v", got.Quat, want)
	}
}

func TestChannelCubicEndpoints(t *testing.T) {
	values := []geom.Vec3{{X: 0}, {X: 2}, {X: -1}}
	ch, err := NewTranslationChannel(0, []float32{0, 1, 2}, Vec3Sampler{
		Mode:        InterpolationCubic,
		Values:      values,
		InTangents:  []geom.Vec3{{X: 5}, {X: -3}, {X: 7}},
		OutTangents: []geom.Vec3{{X: 1}, {X: 4}, {X: -2}},
	})
	if err != nil {
		t.Fatalf("NewTranslationChannel: %v", err)
	}

	// The Hermite basis passes through the keyframe values exactly.
	for i, time := range []float32{0, 1, 2} {
		got := ch.Compute(time)
		if got.Vec != values[i] {
			t.Errorf("Compute(%v) = %v, want %v", time, got.Vec, values[i])
		}
	}
}

func TestChannelCubicHermiteValue(t *testing.T) {
	ch, err := NewTranslationChannel(0, []float32{0, 2}, Vec3Sampler{
		Mode:        InterpolationCubic,
		Values:      []geom.Vec3{{}, {X: 2}},
		InTangents:  []geom.Vec3{{}, {X: 1}},
		OutTangents: []geom.Vec3{{X: 1}, {}},
	})
	if err != nil {
		t.Fatalf("NewTranslationChannel: %v", err)
	}

	// Hand-evaluated Hermite at the interval midpoint:
	// 0*0.5 + 1*0.25 + 2*0.5 + 1*(-0.25) = 1.
	got := ch.Compute(1)
	if absf(got.Vec.X-1) > 0.001 || got.Vec.Y != 0 || got.Vec.Z != 0 {
		t.Errorf("Compute(1) = %v, want (1, 0, 0)", got.Vec)
	}
}

func TestChannelCubicRotationNotRenormalized(t *testing.T) {
	id := geom.QuatIdentity()
	ch, err := NewRotationChannel(0, []float32{0, 1}, QuatSampler{
		Mode:        InterpolationCubic,
		Values:      []geom.Quat{id, id},
		InTangents:  []geom.Quat{{}, {}},
		OutTangents: []geom.Quat{{X: 8}, {}},
	})
	if err != nil {
		t.Fatalf("NewRotationChannel: %v", err)
	}

	got := ch.Compute(0.5).Quat
	length := math32.Sqrt(got.Dot(got))
	if length < 1.1 {
		t.Errorf("cubic rotation length = %v, want > 1.1 (no renormalization)", length)
	}
}

func TestChannelSingleKeyframe(t *testing.T) {
	want := geom.Vec3{X: 5, Y: 6, Z: 7}
	modes := []Interpolation{InterpolationStep, InterpolationLinear, InterpolationCubic}
	for _, mode := range modes {
		sampler := Vec3Sampler{Mode: mode, Values: []geom.Vec3{want}}
		if mode == InterpolationCubic {
			sampler.InTangents = []geom.Vec3{{X: 9}}
			sampler.OutTangents = []geom.Vec3{{X: 9}}
		}
		ch, err := NewTranslationChannel(0, []float32{3}, sampler)
		if err != nil {
			t.Fatalf("mode %v: %v", mode, err)
		}
		for _, time := range []float32{0, 3, 10} {
			if got := ch.Compute(time); got.Vec != want {
				t.Errorf("mode %v, Compute(%v) = %v, want %v", mode, time, got.Vec, want)
			}
		}
	}
}

func TestChannelValidation(t *testing.T) {
	times := []float32{0, 1}
	values := []geom.Vec3{{}, {X: 1}}

	tests := []struct {
		name    string
		node    int
		times   []float32
		sampler Vec3Sampler
	}{
		{"negative joint", -1, times, Vec3Sampler{Values: values}},
		{"no keyframes", 0, nil, Vec3Sampler{}},
		{"count mismatch", 0, times, Vec3Sampler{Values: values[:1]}},
		{"cubic missing tangents", 0, times, Vec3Sampler{Mode: InterpolationCubic, Values: values}},
	}
	for _, tt := range tests {
		if _, err := NewTranslationChannel(tt.node, tt.times, tt.sampler); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func quatNear(a, b geom.Quat) bool {
	return absf(a.X-b.X) < 0.001 && absf(a.Y-b.Y) < 0.001 &&
		absf(a.Z-b.Z) < 0.001 && absf(a.W-b.W) < 0.001
}
