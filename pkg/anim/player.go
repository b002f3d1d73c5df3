package anim

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Player advances a playhead over one of an animator's clips, reapplying
// the pose from the rest state on every step.
type Player struct {
	// Speed scales wall-clock time; negative values play backwards.
	Speed float32
	// Loop wraps the playhead by the clip duration instead of clamping.
	Loop bool

	animator *Animator
	clip     int
	time     float32
	done     bool
}

// NewPlayer targets the given clip. Speed defaults to 1.
func NewPlayer(animator *Animator, clip int) (*Player, error) {
	if clip < 0 || clip >= len(animator.animations) {
		return nil, fmt.Errorf("animation %d out of range (have %d)", clip, len(animator.animations))
	}
	return &Player{Speed: 1, animator: animator, clip: clip}, nil
}

// Advance moves the playhead by dt seconds scaled by Speed, then resets the
// pose and applies the clip at the new time.
func (p *Player) Advance(dt float32) {
	d := p.animator.animations[p.clip].Duration()
	p.time += dt * p.Speed
	if p.Loop {
		if d > 0 {
			p.time = math32.Mod(p.time, d)
			if p.time < 0 {
				p.time += d
			}
		}
	} else {
		if p.time < 0 {
			p.time = 0
		}
		if p.time >= d {
			p.time = d
			p.done = true
		}
	}
	p.animator.Reset()
	p.animator.animate(p.clip, p.time)
}

// Seek moves the playhead to t seconds and applies the pose there.
func (p *Player) Seek(t float32) {
	p.time = t
	p.done = !p.Loop && t >= p.animator.animations[p.clip].Duration()
	p.animator.Reset()
	p.animator.animate(p.clip, p.time)
}

// Time returns the playhead position in seconds.
func (p *Player) Time() float32 { return p.time }

// Duration returns the clip duration in seconds.
func (p *Player) Duration() float32 { return p.animator.animations[p.clip].Duration() }

// Done reports whether a non-looping playback reached the clip end.
func (p *Player) Done() bool { return p.done }
