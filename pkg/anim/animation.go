package anim

// Animation is a named clip: an ordered list of channels. Channels apply in
// order, so when two drive the same property of the same joint the later
// one wins.
type Animation struct {
	Name     string
	Channels []Channel
}

// Duration returns the largest keyframe timestamp across all channels,
// or 0 for an empty clip.
func (a Animation) Duration() float32 {
	var d float32
	for i := range a.Channels {
		if t := a.Channels[i].MaxTime(); t > d {
			d = t
		}
	}
	return d
}
