// Package loader imports skinned glTF models into animators.
package loader

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"go.uber.org/zap"

	"github.com/Faultbox/posekit/pkg/anim"
)

// Loader imports skinned models and their clips from glTF documents.
// Structural problems (broken hierarchies, malformed accessors) are errors;
// channels the animator cannot represent are logged and skipped.
type Loader struct {
	// Logger receives skip diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Model is a loaded skinned asset.
type Model struct {
	Animator *anim.Animator
	// NodeToJoint maps document node ids to internal joint ids, -1 for
	// nodes outside the skin.
	NodeToJoint []int
	// SkinToJoint maps skin-local joint indices to internal joint ids,
	// matching the order of vertex joint attributes.
	SkinToJoint []int
	// SkinName is the skin's name, falling back to the skinned node's.
	SkinName string
	// Doc is the source document, kept for callers that need meshes or
	// materials.
	Doc *gltf.Document
}

// Load imports the first skinned model of a glTF or GLB file with a default
// loader.
func Load(path string) (*Model, error) {
	return (&Loader{}).Load(path)
}

// Load opens a glTF or GLB file and imports its first skinned model.
func (l *Loader) Load(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return l.LoadDocument(doc)
}

// LoadDocument imports the first skinned node of the document.
func (l *Loader) LoadDocument(doc *gltf.Document) (*Model, error) {
	for _, node := range doc.Nodes {
		if node.Skin != nil {
			return l.loadSkin(doc, node)
		}
	}
	return nil, fmt.Errorf("document has no skinned node")
}

// LoadNamed imports the skin attached to the named node.
func (l *Loader) LoadNamed(doc *gltf.Document, name string) (*Model, error) {
	for _, node := range doc.Nodes {
		if node.Name == name {
			if node.Skin == nil {
				return nil, fmt.Errorf("node %s has no skin", name)
			}
			return l.loadSkin(doc, node)
		}
	}
	return nil, fmt.Errorf("node %s not found", name)
}

func (l *Loader) loadSkin(doc *gltf.Document, node *gltf.Node) (*Model, error) {
	if int(*node.Skin) >= len(doc.Skins) {
		return nil, fmt.Errorf("node %s references skin %d of %d", node.Name, *node.Skin, len(doc.Skins))
	}
	skin := doc.Skins[*node.Skin]

	joints := make([]int, len(skin.Joints))
	for i, j := range skin.Joints {
		joints[i] = int(j)
	}
	inverseBind, err := readInverseBind(doc, skin)
	if err != nil {
		return nil, err
	}

	animator, nodeToJoint, skinToJoint, err := anim.NewAnimator(nodeSpecs(doc), joints, inverseBind)
	if err != nil {
		return nil, fmt.Errorf("building skeleton %s: %w", skinLabel(skin, node), err)
	}

	for _, src := range doc.Animations {
		clip, err := l.loadAnimation(doc, src, nodeToJoint)
		if err != nil {
			return nil, err
		}
		if _, err := animator.AddAnimation(clip); err != nil {
			return nil, err
		}
	}

	return &Model{
		Animator:    animator,
		NodeToJoint: nodeToJoint,
		SkinToJoint: skinToJoint,
		SkinName:    skinLabel(skin, node),
		Doc:         doc,
	}, nil
}

func skinLabel(skin *gltf.Skin, node *gltf.Node) string {
	if skin.Name != "" {
		return skin.Name
	}
	return node.Name
}

func (l *Loader) logger() *zap.Logger {
	if l == nil || l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger
}
