package loader

import (
	"encoding/binary"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/Faultbox/posekit/pkg/anim"
	"github.com/Faultbox/posekit/pkg/geom"
)

func TestConvertInterpolation(t *testing.T) {
	cases := []struct {
		in   gltf.Interpolation
		want anim.Interpolation
	}{
		{gltf.InterpolationLinear, anim.InterpolationLinear},
		{gltf.InterpolationStep, anim.InterpolationStep},
		{gltf.InterpolationCubicSpline, anim.InterpolationCubic},
	}
	for _, tc := range cases {
		if got := convertInterpolation(tc.in); got != tc.want {
			t.Errorf("convertInterpolation(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestVec3SamplerLinearKeepsValues(t *testing.T) {
	values := []geom.Vec3{{X: 1}, {X: 2}}
	s, err := vec3Sampler(anim.InterpolationLinear, values)
	if err != nil {
		t.Fatalf("vec3Sampler: %v", err)
	}
	if len(s.Values) != 2 || len(s.InTangents) != 0 || len(s.OutTangents) != 0 {
		t.Fatalf("got %d values, %d/%d tangents, want 2 values and no tangents",
			len(s.Values), len(s.InTangents), len(s.OutTangents))
	}
}

func TestVec3SamplerCubicDeinterleaves(t *testing.T) {
	values := []geom.Vec3{{X: 1}, {X: 2}, {X: 3}, {X: 4}, {X: 5}, {X: 6}}
	s, err := vec3Sampler(anim.InterpolationCubic, values)
	if err != nil {
		t.Fatalf("vec3Sampler: %v", err)
	}
	if len(s.Values) != 2 {
		t.Fatalf("got %d keyframes, want 2", len(s.Values))
	}
	if s.InTangents[0] != (geom.Vec3{X: 1}) || s.Values[0] != (geom.Vec3{X: 2}) || s.OutTangents[0] != (geom.Vec3{X: 3}) {
		t.Errorf("keyframe 0 = %v/%v/%v, want 1/2/3",
			s.InTangents[0], s.Values[0], s.OutTangents[0])
	}
	if s.InTangents[1] != (geom.Vec3{X: 4}) || s.Values[1] != (geom.Vec3{X: 5}) || s.OutTangents[1] != (geom.Vec3{X: 6}) {
		t.Errorf("keyframe 1 = %v/%v/%v, want 4/5/6",
			s.InTangents[1], s.Values[1], s.OutTangents[1])
	}
}

func TestQuatSamplerCubicDeinterleaves(t *testing.T) {
	values := []geom.Quat{{X: 1}, {W: 1}, {X: 3}, {X: 4}, {Y: 1}, {X: 6}}
	s, err := quatSampler(anim.InterpolationCubic, values)
	if err != nil {
		t.Fatalf("quatSampler: %v", err)
	}
	if len(s.Values) != 2 {
		t.Fatalf("got %d keyframes, want 2", len(s.Values))
	}
	if s.Values[0] != (geom.Quat{W: 1}) || s.Values[1] != (geom.Quat{Y: 1}) {
		t.Errorf("values = %v, %v, want the middle entries", s.Values[0], s.Values[1])
	}
	if s.InTangents[0] != (geom.Quat{X: 1}) || s.OutTangents[1] != (geom.Quat{X: 6}) {
		t.Errorf("tangents = %v, %v, want the outer entries", s.InTangents[0], s.OutTangents[1])
	}
}

func TestCubicSamplerRejectsRaggedValues(t *testing.T) {
	vecs := []geom.Vec3{{X: 1}, {X: 2}, {X: 3}, {X: 4}}
	if _, err := vec3Sampler(anim.InterpolationCubic, vecs); err == nil {
		t.Error("expected error for a cubic vector count that is not a multiple of 3")
	}
	if _, err := vec3Sampler(anim.InterpolationLinear, vecs); err != nil {
		t.Errorf("linear sampler rejected %d values: %v", len(vecs), err)
	}
	quats := []geom.Quat{{W: 1}, {W: 1}, {W: 1}, {W: 1}, {W: 1}}
	if _, err := quatSampler(anim.InterpolationCubic, quats); err == nil {
		t.Error("expected error for a cubic rotation count that is not a multiple of 3")
	}
}

func TestReadQuatNormalizedInt16(t *testing.T) {
	raw := []int16{0, 16384, 0, 28378, -32768, 0, 0, -32767}
	data := make([]byte, len(raw)*2)
	for i, v := range raw {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(v))
	}
	doc := &gltf.Document{
		Accessors: []*gltf.Accessor{{
			BufferView:    gltf.Index(0),
			ComponentType: gltf.ComponentShort,
			Normalized:    true,
			Count:         2,
			Type:          gltf.AccessorVec4,
		}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: uint32(len(data))}},
		Buffers:     []*gltf.Buffer{{ByteLength: uint32(len(data)), Data: data}},
	}
	got, err := readQuat(doc, 0)
	if err != nil {
		t.Fatalf("readQuat: %v", err)
	}
	want := []geom.Quat{
		{X: 0, Y: float32(16384) / 32767, Z: 0, W: float32(28378) / 32767},
		{X: -1, Y: 0, Z: 0, W: -1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d quaternions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("quat %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestReadTimesRejectsWrongType(t *testing.T) {
	data := floatBytes(1, 2, 3)
	doc := &gltf.Document{
		Accessors: []*gltf.Accessor{{
			BufferView:    gltf.Index(0),
			ComponentType: gltf.ComponentFloat,
			Count:         1,
			Type:          gltf.AccessorVec3,
		}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: uint32(len(data))}},
		Buffers:     []*gltf.Buffer{{ByteLength: uint32(len(data)), Data: data}},
	}
	if _, err := readTimes(doc, 0); err == nil {
		t.Fatal("expected error for vector keyframe times")
	}
	if _, err := readTimes(doc, 9); err == nil {
		t.Fatal("expected error for out of range accessor")
	}
}
