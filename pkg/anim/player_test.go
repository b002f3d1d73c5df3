package anim

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/posekit/pkg/geom"
)

func TestNewPlayerBadClip(t *testing.T) {
	animator := twoJointChain(t)
	if _, err := NewPlayer(animator, 3); err == nil {
		t.Error("expected error for out-of-range clip")
	}
}

func TestPlayerClampsAtEnd(t *testing.T) {
	animator := twoJointChain(t)
	player, err := NewPlayer(animator, 0)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	player.Advance(2.5)
	if player.Time() != player.Duration() {
		t.Errorf("time = %v, want clamped to duration %v", player.Time(), player.Duration())
	}
	if !player.Done() {
		t.Error("Done() = false after reaching the clip end")
	}

	// Clamped playback holds the final pose.
	want := geom.QuatFromAxisAngle(geom.Vec3{Y: 1}, math32.Pi/2)
	if !quatNear(animator.Node(0).Rotation, want) {
		t.Errorf("rotation = %v, want %v", animator.Node(0).Rotation, want)
	}
}

func TestPlayerLoopWraps(t *testing.T) {
	animator := twoJointChain(t)
	player, err := NewPlayer(animator, 0)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	player.Loop = true

	player.Advance(1.25)
	if absf(player.Time()-0.25) > 0.001 {
		t.Errorf("time = %v, want 0.25 after wrapping", player.Time())
	}
	if player.Done() {
		t.Error("looping playback should never report done")
	}
}

func TestPlayerSpeed(t *testing.T) {
	animator := twoJointChain(t)
	player, err := NewPlayer(animator, 0)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	player.Speed = 2

	player.Advance(0.25)
	if absf(player.Time()-0.5) > 0.001 {
		t.Errorf("time = %v, want 0.5 at double speed", player.Time())
	}
}

func TestPlayerSeekAppliesPose(t *testing.T) {
	animator := twoJointChain(t)
	player, err := NewPlayer(animator, 0)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	player.Seek(0.5)
	want := geom.QuatFromAxisAngle(geom.Vec3{Y: 1}, math32.Pi/4)
	if !quatNear(animator.Node(0).Rotation, want) {
		t.Errorf("rotation = %v, want %v at the half-way point", animator.Node(0).Rotation, want)
	}
}

func TestPlayerAdvanceResetsStalePose(t *testing.T) {
	animator := twoJointChain(t)
	player, err := NewPlayer(animator, 0)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	// A manual adjustment between frames must not leak into the next one.
	animator.TranslateNode(1, geom.Vec3{X: 9})
	player.Advance(0.1)
	if got := animator.Node(1).Translation; got != (geom.Vec3{Y: 1}) {
		t.Errorf("translation = %v, want rest value (0, 1, 0)", got)
	}
}
