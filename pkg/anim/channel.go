package anim

import (
	"fmt"

	"github.com/Faultbox/posekit/pkg/geom"
)

// Property identifies which local TRS component a channel drives.
type Property uint8

const (
	PropertyTranslation Property = iota
	PropertyRotation
	PropertyScale
)

// String returns the property name.
func (p Property) String() string {
	switch p {
	case PropertyTranslation:
		return "translation"
	case PropertyRotation:
		return "rotation"
	case PropertyScale:
		return "scale"
	}
	return "unknown"
}

// Value is one evaluated channel sample addressed to a joint. Vec carries
// translations and scales, Quat carries rotations.
type Value struct {
	Node     int
	Property Property
	Vec      geom.Vec3
	Quat     geom.Quat
}

// Channel animates one property of one joint over a keyframe timeline.
// Timestamps are strictly increasing and run parallel to the sampler values.
type Channel struct {
	node     int
	property Property
	times    []float32
	vec      Vec3Sampler
	quat     QuatSampler
	tMin     float32
	tMax     float32
}

// NewTranslationChannel builds a channel driving a joint's translation.
func NewTranslationChannel(node int, times []float32, sampler Vec3Sampler) (Channel, error) {
	return newVec3Channel(node, PropertyTranslation, times, sampler)
}

// NewScaleChannel builds a channel driving a joint's scale.
func NewScaleChannel(node int, times []float32, sampler Vec3Sampler) (Channel, error) {
	return newVec3Channel(node, PropertyScale, times, sampler)
}

// NewRotationChannel builds a channel driving a joint's rotation.
func NewRotationChannel(node int, times []float32, sampler QuatSampler) (Channel, error) {
	if err := validateKeys(node, times, len(sampler.Values), len(sampler.InTangents), len(sampler.OutTangents), sampler.Mode); err != nil {
		return Channel{}, err
	}
	return Channel{
		node:     node,
		property: PropertyRotation,
		times:    times,
		quat:     sampler,
		tMin:     times[0],
		tMax:     times[len(times)-1],
	}, nil
}

func newVec3Channel(node int, property Property, times []float32, sampler Vec3Sampler) (Channel, error) {
	if err := validateKeys(node, times, len(sampler.Values), len(sampler.InTangents), len(sampler.OutTangents), sampler.Mode); err != nil {
		return Channel{}, err
	}
	return Channel{
		node:     node,
		property: property,
		times:    times,
		vec:      sampler,
		tMin:     times[0],
		tMax:     times[len(times)-1],
	}, nil
}

func validateKeys(node int, times []float32, values, inTangents, outTangents int, mode Interpolation) error {
	if node < 0 {
		return fmt.Errorf("channel targets invalid joint %d", node)
	}
	if len(times) == 0 {
		return fmt.Errorf("channel has no keyframes")
	}
	if values != len(times) {
		return fmt.Errorf("channel has %d timestamps but %d values", len(times), values)
	}
	if mode == InterpolationCubic && (inTangents != values || outTangents != values) {
		return fmt.Errorf("cubic channel has %d values but %d/%d tangents", values, inTangents, outTangents)
	}
	return nil
}

// Node returns the internal joint id the channel drives.
func (c Channel) Node() int { return c.node }

// Property returns which TRS component the channel drives.
func (c Channel) Property() Property { return c.property }

// KeyCount returns the number of keyframes.
func (c Channel) KeyCount() int { return len(c.times) }

// MinTime returns the first keyframe timestamp.
func (c Channel) MinTime() float32 { return c.tMin }

// MaxTime returns the last keyframe timestamp.
func (c Channel) MaxTime() float32 { return c.tMax }

// Mode returns the channel's interpolation mode.
func (c Channel) Mode() Interpolation {
	if c.property == PropertyRotation {
		return c.quat.Mode
	}
	return c.vec.Mode
}

// Compute samples the channel at time t. Outside the keyframe range the
// nearest keyframe value is returned unchanged.
func (c Channel) Compute(t float32) Value {
	if t <= c.tMin {
		return c.value(0)
	}
	if t >= c.tMax {
		return c.value(len(c.times) - 1)
	}
	return c.interpolate(c.interval(t), t)
}

// interval finds i such that times[i] <= t < times[i+1] by binary search.
// Callers keep t strictly inside the keyframe range.
func (c Channel) interval(t float32) int {
	lo := 0
	hi := len(c.times) - 1
	for hi > lo+1 {
		mid := (lo + hi) / 2
		if c.times[mid] > t {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

func (c Channel) value(i int) Value {
	v := Value{Node: c.node, Property: c.property}
	if c.property == PropertyRotation {
		v.Quat = c.quat.Value(i)
	} else {
		v.Vec = c.vec.Value(i)
	}
	return v
}

func (c Channel) interpolate(i int, t float32) Value {
	v := Value{Node: c.node, Property: c.property}
	t0, t1 := c.times[i], c.times[i+1]
	if c.property == PropertyRotation {
		v.Quat = c.quat.Interpolate(i, t, t0, t1)
	} else {
		v.Vec = c.vec.Interpolate(i, t, t0, t1)
	}
	return v
}
