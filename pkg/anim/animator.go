// Package anim evaluates keyframe clips against a joint hierarchy and
// produces the skinning matrices a renderer consumes.
package anim

import (
	"fmt"

	"github.com/Faultbox/posekit/pkg/geom"
)

// Node is one joint's local TRS pose.
type Node struct {
	Translation geom.Vec3
	Rotation    geom.Quat
	Scale       geom.Vec3
}

// Transform returns the node's local transform.
func (n Node) Transform() geom.Transform {
	return geom.FromTRS(n.Translation, n.Rotation, n.Scale)
}

// NodeSpec describes one node of the source hierarchy as handed over by an
// asset importer. Children index into the same slice.
type NodeSpec struct {
	Children    []int
	Translation geom.Vec3
	Rotation    geom.Quat
	Scale       geom.Vec3
}

// Animator owns a skeleton: rest pose, current pose, inverse bind
// transforms and clips. Joints are stored parent-before-child under compact
// internal ids, so one forward pass resolves the whole hierarchy.
type Animator struct {
	nodes             []Node
	startNodes        []Node
	inverseTransforms []geom.Transform
	parents           []int
	animations        []Animation
	scratch           []geom.Transform
}

// NewAnimator builds an animator from a node hierarchy and the skin's joint
// list. inverseBind supplies the inverse bind transforms in skin order; when
// nil they are derived from the joints' rest transforms. The two returned
// index tables map hierarchy node ids and skin-local indices to internal
// joint ids; non-joint nodes map to -1.
//
// The hierarchy must be a tree containing every joint: an unreachable or
// cyclic joint graph is an error.
func NewAnimator(hierarchy []NodeSpec, joints []int, inverseBind []geom.Transform) (*Animator, []int, []int, error) {
	if len(joints) == 0 {
		return nil, nil, nil, fmt.Errorf("skin has no joints")
	}
	if inverseBind != nil && len(inverseBind) != len(joints) {
		return nil, nil, nil, fmt.Errorf("%d inverse bind transforms for %d joints", len(inverseBind), len(joints))
	}

	allParents := make([]int, len(hierarchy))
	for i := range allParents {
		allParents[i] = -1
	}
	for id, spec := range hierarchy {
		for _, child := range spec.Children {
			if child < 0 || child >= len(hierarchy) {
				return nil, nil, nil, fmt.Errorf("node %d lists child %d outside the hierarchy", id, child)
			}
			allParents[child] = id
		}
	}

	skinIndex := make([]int, len(hierarchy))
	for i := range skinIndex {
		skinIndex[i] = -1
	}
	for si, id := range joints {
		if id < 0 || id >= len(hierarchy) {
			return nil, nil, nil, fmt.Errorf("joint %d outside the hierarchy", id)
		}
		skinIndex[id] = si
	}

	// Walk up from any joint to find the skeleton root.
	root := joints[0]
	for steps := 0; allParents[root] != -1; steps++ {
		if steps > len(hierarchy) {
			return nil, nil, nil, fmt.Errorf("hierarchy contains a cycle above joint %d", joints[0])
		}
		root = allParents[root]
	}

	a := &Animator{
		nodes:             make([]Node, 0, len(joints)),
		parents:           make([]int, 0, len(joints)),
		inverseTransforms: make([]geom.Transform, 0, len(joints)),
	}
	nodeToJoint := make([]int, len(hierarchy))
	for i := range nodeToJoint {
		nodeToJoint[i] = -1
	}

	// Depth-first from the root so every parent is numbered before its
	// children. Revisiting a node means the children lists form a cycle or
	// share a subtree, either of which breaks the tree contract.
	visited := make([]bool, len(hierarchy))
	stack := []int{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			return nil, nil, nil, fmt.Errorf("hierarchy is not a tree: node %d is reachable twice", id)
		}
		visited[id] = true
		stack = append(stack, hierarchy[id].Children...)

		si := skinIndex[id]
		if si < 0 {
			continue
		}

		parent := -1
		if p := allParents[id]; p != -1 {
			parent = nodeToJoint[p]
		}
		nodeToJoint[id] = len(a.nodes)

		spec := hierarchy[id]
		a.nodes = append(a.nodes, Node{
			Translation: spec.Translation,
			Rotation:    spec.Rotation,
			Scale:       spec.Scale,
		})
		a.parents = append(a.parents, parent)

		var inverse geom.Transform
		if inverseBind != nil {
			inverse = inverseBind[si]
		} else {
			inverse = geom.FromTRSReversed(spec.Translation, spec.Rotation, spec.Scale)
			if parent != -1 {
				inverse = inverse.Compose(a.inverseTransforms[parent])
			}
		}
		a.inverseTransforms = append(a.inverseTransforms, inverse)
	}

	for _, id := range joints {
		if nodeToJoint[id] == -1 {
			return nil, nil, nil, fmt.Errorf("joint %d is not reachable from hierarchy root %d", id, root)
		}
	}

	a.startNodes = make([]Node, len(a.nodes))
	copy(a.startNodes, a.nodes)
	a.scratch = make([]geom.Transform, len(a.nodes))

	skinToJoint := make([]int, len(joints))
	for si, id := range joints {
		skinToJoint[si] = nodeToJoint[id]
	}
	return a, nodeToJoint, skinToJoint, nil
}

// Reset restores every joint to its rest pose.
func (a *Animator) Reset() {
	copy(a.nodes, a.startNodes)
}

// Animate samples every channel of the given clip at time t and writes the
// results into the current pose. Channels apply in clip order, so a later
// duplicate overwrites an earlier one.
func (a *Animator) Animate(clip int, t float32) error {
	if clip < 0 || clip >= len(a.animations) {
		return fmt.Errorf("animation %d out of range (have %d)", clip, len(a.animations))
	}
	a.animate(clip, t)
	return nil
}

func (a *Animator) animate(clip int, t float32) {
	channels := a.animations[clip].Channels
	for i := range channels {
		a.apply(channels[i].Compute(t))
	}
}

func (a *Animator) apply(v Value) {
	node := &a.nodes[v.Node]
	switch v.Property {
	case PropertyTranslation:
		node.Translation = v.Vec
	case PropertyRotation:
		node.Rotation = v.Quat
	case PropertyScale:
		node.Scale = v.Vec
	}
}

// ComputeTransforms resolves the current pose into one skinning matrix per
// joint, in internal id order.
func (a *Animator) ComputeTransforms() []geom.Mat4 {
	return a.ComputeTransformsInto(make([]geom.Mat4, len(a.nodes)))
}

// ComputeTransformsInto is ComputeTransforms writing into dst, which must
// hold JointCount elements. Every entry is overwritten.
func (a *Animator) ComputeTransformsInto(dst []geom.Mat4) []geom.Mat4 {
	for i := range a.nodes {
		local := a.nodes[i].Transform()
		if i == 0 || a.parents[i] < 0 {
			a.scratch[i] = local
		} else {
			a.scratch[i] = a.scratch[a.parents[i]].Compose(local)
		}
		dst[i] = a.scratch[i].Compose(a.inverseTransforms[i]).ToHomogeneous()
	}
	return dst
}

// TranslateNode offsets a joint's current local translation.
func (a *Animator) TranslateNode(id int, offset geom.Vec3) {
	a.nodes[id].Translation = a.nodes[id].Translation.Add(offset)
}

// RotateNode multiplies a rotation into a joint's current local rotation.
func (a *Animator) RotateNode(id int, rotation geom.Quat) {
	a.nodes[id].Rotation = a.nodes[id].Rotation.Mul(rotation)
}

// ScaleNode multiplies factors into a joint's current local scale.
func (a *Animator) ScaleNode(id int, factors geom.Vec3) {
	a.nodes[id].Scale = a.nodes[id].Scale.Mul(factors)
}

// JointCount returns the number of joints.
func (a *Animator) JointCount() int { return len(a.nodes) }

// Node returns the current local pose of a joint.
func (a *Animator) Node(id int) Node { return a.nodes[id] }

// RestNode returns the rest pose of a joint.
func (a *Animator) RestNode(id int) Node { return a.startNodes[id] }

// Parent returns a joint's parent internal id, or -1 for the root.
func (a *Animator) Parent(id int) int { return a.parents[id] }

// InverseBind returns a joint's inverse bind transform.
func (a *Animator) InverseBind(id int) geom.Transform { return a.inverseTransforms[id] }

// Animations returns the clips attached to the animator.
func (a *Animator) Animations() []Animation { return a.animations }

// AddAnimation appends a clip and returns its index. Every channel must
// target an existing joint.
func (a *Animator) AddAnimation(animation Animation) (int, error) {
	for i := range animation.Channels {
		if n := animation.Channels[i].Node(); n >= len(a.nodes) {
			return 0, fmt.Errorf("animation %q channel %d targets joint %d of %d", animation.Name, i, n, len(a.nodes))
		}
	}
	a.animations = append(a.animations, animation)
	return len(a.animations) - 1, nil
}

// FindAnimation returns the index of the named clip, or -1.
func (a *Animator) FindAnimation(name string) int {
	for i := range a.animations {
		if a.animations[i].Name == name {
			return i
		}
	}
	return -1
}
