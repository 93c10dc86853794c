package asset

import (
	"github.com/Faultbox/glbrig/pkg/formats"
	"github.com/Faultbox/glbrig/pkg/math"
)

// SceneTransform is the placement of a mesh taken from the first node that
// references it.
type SceneTransform struct {
	Translation [3]float32
	Rotation    [4]float32 // Quaternion x, y, z, w
	Scale       [3]float32
}

// DefaultSceneTransform returns the identity placement.
func DefaultSceneTransform() SceneTransform {
	return SceneTransform{
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
}

// Matrix returns T * R * S.
func (s SceneTransform) Matrix() math.Mat4 {
	t := math.TranslateVec(math.Vec3FromArray(s.Translation))
	r := math.QuatFromArray(s.Rotation).ToMat4()
	sc := math.Scale(s.Scale[0], s.Scale[1], s.Scale[2])
	return t.Mul(r).Mul(sc)
}

func sceneTransform(doc *formats.Document, mesh int) SceneTransform {
	st := DefaultSceneTransform()
	n, ok := doc.MeshNode(mesh)
	if !ok {
		return st
	}
	node := &doc.Nodes[n]
	if node.Translation != nil {
		st.Translation = *node.Translation
	}
	if node.Rotation != nil {
		st.Rotation = *node.Rotation
	}
	if node.Scale != nil {
		st.Scale = *node.Scale
	}
	return st
}
