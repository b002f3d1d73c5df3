package geom

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestQuatIdentityMul(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math32.Pi/3)
	got := QuatIdentity().Mul(q)
	if !quatNear(got, q) {
		t.Errorf("identity * q = %v, want %v", got, q)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math32.Pi/2)
	// Half-angle construction: (0, sin 45, 0, cos 45)
	s := math32.Sqrt(2) / 2
	want := Quat{0, s, 0, s}
	if !quatNear(q, want) {
		t.Errorf("QuatFromAxisAngle = %v, want %v", q, want)
	}
}

func TestQuatMulComposes(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, math32.Pi/2)
	got := q.Mul(q)
	want := QuatFromAxisAngle(Vec3{0, 1, 0}, math32.Pi)
	if !quatNear(got, want) {
		t.Errorf("q*q = %v, want %v", got, want)
	}
}

func TestQuatLerpMidpointNotNormalized(t *testing.T) {
	a := Quat{0, 0, 0, 1}
	b := Quat{1, 0, 0, 0}
	got := a.Lerp(b, 0.5)
	want := Quat{0.5, 0, 0, 0.5}
	if got != want {
		t.Errorf("Quat.Lerp(0.5) = %v, want %v", got, want)
	}
}

func TestSlerpEndpoints(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.3)
	b := QuatFromAxisAngle(Vec3{1, 0, 0}, 1.2)
	if got := a.Slerp(b, 0); !quatNear(got, a) {
		t.Errorf("Slerp(0) = %v, want %v", got, a)
	}
	if got := a.Slerp(b, 1); !quatNear(got, b) {
		t.Errorf("Slerp(1) = %v, want %v", got, b)
	}
}

func TestSlerpHalfway(t *testing.T) {
	a := QuatIdentity()
	b := QuatFromAxisAngle(Vec3{0, 1, 0}, math32.Pi/2)
	got := a.Slerp(b, 0.5)
	want := QuatFromAxisAngle(Vec3{0, 1, 0}, math32.Pi/4)
	if !quatNear(got, want) {
		t.Errorf("Slerp(0.5) = %v, want %v", got, want)
	}
}

func TestSlerpShorterArc(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.2)
	b := QuatFromAxisAngle(Vec3{0, 1, 0}, 1.4)
	negB := b.Scale(-1)

	// -b encodes the same rotation; the blend should follow the short way
	// around and land on the same orientation.
	got := a.Slerp(negB, 0.5)
	want := a.Slerp(b, 0.5)
	if !quatNear(got, want) && !quatNear(got, want.Scale(-1)) {
		t.Errorf("Slerp toward -b = %v, want +-%v", got, want)
	}
}

func TestSlerpNearParallelFallsBackToLerp(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.01)
	b := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.02)
	got := a.Slerp(b, 0.5)
	want := a.Lerp(b, 0.5)
	if got != want {
		t.Errorf("near-parallel Slerp = %v, want plain blend %v", got, want)
	}
}

func quatNear(a, b Quat) bool {
	return abs(a.X-b.X) < 0.001 && abs(a.Y-b.Y) < 0.001 &&
		abs(a.Z-b.Z) < 0.001 && abs(a.W-b.W) < 0.001
}
