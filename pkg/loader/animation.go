package loader

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/posekit/pkg/anim"
	"github.com/Faultbox/posekit/pkg/geom"
)

// loadAnimation converts one glTF animation into a clip, dropping channels
// the animator cannot drive.
func (l *Loader) loadAnimation(doc *gltf.Document, src *gltf.Animation, nodeToJoint []int) (anim.Animation, error) {
	clip := anim.Animation{Name: src.Name}
	for i, channel := range src.Channels {
		if channel.Sampler == nil || channel.Target.Node == nil {
			l.logger().Debug("skipping channel without sampler or target node",
				zap.String("animation", src.Name), zap.Int("channel", i))
			continue
		}
		if channel.Target.Path == gltf.TRSWeights {
			l.logger().Warn("morph target channels are not supported, skipping",
				zap.String("animation", src.Name), zap.Int("channel", i))
			continue
		}
		node := int(*channel.Target.Node)
		joint := -1
		if node < len(nodeToJoint) {
			joint = nodeToJoint[node]
		}
		if joint < 0 {
			l.logger().Debug("channel targets a node outside the skin, skipping",
				zap.String("animation", src.Name), zap.Int("node", node))
			continue
		}
		if int(*channel.Sampler) >= len(src.Samplers) {
			return anim.Animation{}, fmt.Errorf("animation %q channel %d references sampler %d of %d",
				src.Name, i, *channel.Sampler, len(src.Samplers))
		}
		sampler := src.Samplers[*channel.Sampler]

		times, err := readTimes(doc, sampler.Input)
		if err != nil {
			return anim.Animation{}, fmt.Errorf("animation %q channel %d: %w", src.Name, i, err)
		}
		ch, err := l.convertChannel(doc, channel.Target.Path, joint, times, sampler)
		if err != nil {
			return anim.Animation{}, fmt.Errorf("animation %q channel %d: %w", src.Name, i, err)
		}
		clip.Channels = append(clip.Channels, ch)
	}
	return clip, nil
}

func (l *Loader) convertChannel(doc *gltf.Document, path gltf.TRSProperty, joint int, times []float32, sampler *gltf.AnimationSampler) (anim.Channel, error) {
	mode := convertInterpolation(sampler.Interpolation)
	switch path {
	case gltf.TRSTranslation:
		values, err := readVec3(doc, sampler.Output)
		if err != nil {
			return anim.Channel{}, err
		}
		s, err := vec3Sampler(mode, values)
		if err != nil {
			return anim.Channel{}, err
		}
		return anim.NewTranslationChannel(joint, times, s)
	case gltf.TRSScale:
		values, err := readVec3(doc, sampler.Output)
		if err != nil {
			return anim.Channel{}, err
		}
		s, err := vec3Sampler(mode, values)
		if err != nil {
			return anim.Channel{}, err
		}
		return anim.NewScaleChannel(joint, times, s)
	case gltf.TRSRotation:
		values, err := readQuat(doc, sampler.Output)
		if err != nil {
			return anim.Channel{}, err
		}
		s, err := quatSampler(mode, values)
		if err != nil {
			return anim.Channel{}, err
		}
		return anim.NewRotationChannel(joint, times, s)
	default:
		return anim.Channel{}, fmt.Errorf("unsupported channel path %d", path)
	}
}

func convertInterpolation(i gltf.Interpolation) anim.Interpolation {
	switch i {
	case gltf.InterpolationStep:
		return anim.InterpolationStep
	case gltf.InterpolationCubicSpline:
		return anim.InterpolationCubic
	default:
		return anim.InterpolationLinear
	}
}

// vec3Sampler packs converted values into a sampler. Cubic output interleaves
// in-tangent, value and out-tangent per keyframe, so it is split three ways;
// a count that is not a multiple of 3 is malformed.
func vec3Sampler(mode anim.Interpolation, values []geom.Vec3) (anim.Vec3Sampler, error) {
	if mode != anim.InterpolationCubic {
		return anim.Vec3Sampler{Mode: mode, Values: values}, nil
	}
	if len(values)%3 != 0 {
		return anim.Vec3Sampler{}, fmt.Errorf("cubic sampler holds %d values, not a multiple of 3", len(values))
	}
	n := len(values) / 3
	s := anim.Vec3Sampler{
		Mode:        mode,
		Values:      make([]geom.Vec3, n),
		InTangents:  make([]geom.Vec3, n),
		OutTangents: make([]geom.Vec3, n),
	}
	for i := 0; i < n; i++ {
		s.InTangents[i] = values[i*3]
		s.Values[i] = values[i*3+1]
		s.OutTangents[i] = values[i*3+2]
	}
	return s, nil
}

func quatSampler(mode anim.Interpolation, values []geom.Quat) (anim.QuatSampler, error) {
	if mode != anim.InterpolationCubic {
		return anim.QuatSampler{Mode: mode, Values: values}, nil
	}
	if len(values)%3 != 0 {
		return anim.QuatSampler{}, fmt.Errorf("cubic sampler holds %d values, not a multiple of 3", len(values))
	}
	n := len(values) / 3
	s := anim.QuatSampler{
		Mode:        mode,
		Values:      make([]geom.Quat, n),
		InTangents:  make([]geom.Quat, n),
		OutTangents: make([]geom.Quat, n),
	}
	for i := 0; i < n; i++ {
		s.InTangents[i] = values[i*3]
		s.Values[i] = values[i*3+1]
		s.OutTangents[i] = values[i*3+2]
	}
	return s, nil
}

func readTimes(doc *gltf.Document, idx uint32) ([]float32, error) {
	acc, err := accessorAt(doc, idx)
	if err != nil {
		return nil, fmt.Errorf("keyframe times: %w", err)
	}
	data, err := modeler.ReadAccessor(doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("reading keyframe times: %w", err)
	}
	times, ok := data.([]float32)
	if !ok {
		return nil, fmt.Errorf("unsupported keyframe time accessor type %T", data)
	}
	return times, nil
}

func readVec3(doc *gltf.Document, idx uint32) ([]geom.Vec3, error) {
	acc, err := accessorAt(doc, idx)
	if err != nil {
		return nil, fmt.Errorf("vector values: %w", err)
	}
	data, err := modeler.ReadAccessor(doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("reading vector values: %w", err)
	}
	values, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unsupported vector accessor type %T", data)
	}
	out := make([]geom.Vec3, len(values))
	for i, v := range values {
		out[i] = geom.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	return out, nil
}

// readQuat converts rotation output to quaternions. Normalized integer
// components are mapped onto [-1, 1] as the format prescribes.
func readQuat(doc *gltf.Document, idx uint32) ([]geom.Quat, error) {
	acc, err := accessorAt(doc, idx)
	if err != nil {
		return nil, fmt.Errorf("rotation values: %w", err)
	}
	data, err := modeler.ReadAccessor(doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("reading rotation values: %w", err)
	}
	switch values := data.(type) {
	case [][4]float32:
		out := make([]geom.Quat, len(values))
		for i, q := range values {
			out[i] = geom.Quat{X: q[0], Y: q[1], Z: q[2], W: q[3]}
		}
		return out, nil
	case [][4]int16:
		return convertQuats(values, func(c int16) float32 { return maxf(float32(c)/32767, -1) }), nil
	case [][4]uint16:
		return convertQuats(values, func(c uint16) float32 { return float32(c) / 65535 }), nil
	case [][4]int8:
		return convertQuats(values, func(c int8) float32 { return maxf(float32(c)/127, -1) }), nil
	case [][4]uint8:
		return convertQuats(values, func(c uint8) float32 { return float32(c) / 255 }), nil
	default:
		return nil, fmt.Errorf("unsupported rotation accessor type %T", data)
	}
}

func convertQuats[T int8 | uint8 | int16 | uint16](values [][4]T, norm func(T) float32) []geom.Quat {
	out := make([]geom.Quat, len(values))
	for i, q := range values {
		out[i] = geom.Quat{X: norm(q[0]), Y: norm(q[1]), Z: norm(q[2]), W: norm(q[3])}
	}
	return out
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
