package loader

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/posekit/pkg/anim"
	"github.com/Faultbox/posekit/pkg/geom"
)

var identityMatrix = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// nodeSpecs flattens the document's node list into hierarchy records.
func nodeSpecs(doc *gltf.Document) []anim.NodeSpec {
	specs := make([]anim.NodeSpec, len(doc.Nodes))
	for i, node := range doc.Nodes {
		spec := anim.NodeSpec{Children: make([]int, len(node.Children))}
		for ci, c := range node.Children {
			spec.Children[ci] = int(c)
		}
		spec.Translation, spec.Rotation, spec.Scale = nodeTRS(node)
		specs[i] = spec
	}
	return specs
}

// nodeTRS returns a node's local transform, decomposing the matrix form when
// the node carries one. A zero matrix is treated as absent.
func nodeTRS(node *gltf.Node) (geom.Vec3, geom.Quat, geom.Vec3) {
	if node.Matrix != identityMatrix && node.Matrix != ([16]float32{}) {
		return decomposeMatrix(node.Matrix)
	}
	t := geom.Vec3{X: node.Translation[0], Y: node.Translation[1], Z: node.Translation[2]}
	r := geom.Quat{X: node.Rotation[0], Y: node.Rotation[1], Z: node.Rotation[2], W: node.Rotation[3]}
	s := geom.Vec3{X: node.Scale[0], Y: node.Scale[1], Z: node.Scale[2]}
	return t, r, s
}

// readInverseBind returns the skin's inverse bind transforms, or nil when the
// skin does not carry them. glTF stores the matrices column-major, which lays
// each one out as three rotation-scale rows followed by the translation.
func readInverseBind(doc *gltf.Document, skin *gltf.Skin) ([]geom.Transform, error) {
	if skin.InverseBindMatrices == nil {
		return nil, nil
	}
	acc, err := accessorAt(doc, *skin.InverseBindMatrices)
	if err != nil {
		return nil, fmt.Errorf("inverse bind matrices: %w", err)
	}
	data, err := modeler.ReadAccessor(doc, acc, nil)
	if err != nil {
		return nil, fmt.Errorf("reading inverse bind matrices: %w", err)
	}
	matrices, ok := data.([][4][4]float32)
	if !ok {
		return nil, fmt.Errorf("unsupported inverse bind accessor type %T", data)
	}
	out := make([]geom.Transform, len(matrices))
	for i, m := range matrices {
		out[i] = geom.Transform{
			RS: [3]geom.Vec3{
				{X: m[0][0], Y: m[0][1], Z: m[0][2]},
				{X: m[1][0], Y: m[1][1], Z: m[1][2]},
				{X: m[2][0], Y: m[2][1], Z: m[2][2]},
			},
			T: geom.Vec3{X: m[3][0], Y: m[3][1], Z: m[3][2]},
		}
	}
	return out, nil
}

// RemapJointIndices rewrites vertex joint attributes from skin-local indices
// to internal joint ids. Entries outside the mapping fall back to joint 0.
func RemapJointIndices(indices [][4]uint16, skinToJoint []int) [][4]uint16 {
	out := make([][4]uint16, len(indices))
	for i, quad := range indices {
		for k, idx := range quad {
			joint := 0
			if int(idx) < len(skinToJoint) && skinToJoint[idx] >= 0 {
				joint = skinToJoint[idx]
			}
			out[i][k] = uint16(joint)
		}
	}
	return out
}

func accessorAt(doc *gltf.Document, idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range (%d accessors)", idx, len(doc.Accessors))
	}
	return doc.Accessors[idx], nil
}
