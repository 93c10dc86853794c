// Skin hierarchy flattening.
package formats

import "slices"

// SkinJoint is one entry of a flattened skin hierarchy.
type SkinJoint struct {
	Name     string     // Empty when the node is unnamed
	JointNum int        // Position in skin.joints, -1 if not listed
	Parent   int        // Slot of the parent in the result, -1 for root
	Node     int        // Source node index
	Position [3]float32 // Rest translation
	Rotation [4]float32 // Rest rotation quaternion (x, y, z, w)
	Scale    [3]float32 // Rest scale
}

type skinFrame struct {
	node   int
	parent int
}

// BuildSkin flattens the skin of the first node referencing mesh.
// Parents always precede their children in the result.
func BuildSkin(doc *Document, mesh int) ([]SkinJoint, bool) {
	if doc == nil {
		return nil, false
	}
	meshNode, ok := doc.MeshNode(mesh)
	if !ok {
		return nil, false
	}
	skinIdx := doc.Nodes[meshNode].Skin
	if skinIdx == nil || *skinIdx < 0 || *skinIdx >= len(doc.Skins) {
		return nil, false
	}
	skin := doc.Skins[*skinIdx]
	if len(skin.Joints) == 0 {
		return nil, false
	}

	var joints []SkinJoint
	visited := make(map[int]bool)
	stack := []skinFrame{{node: skin.Joints[0], parent: -1}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node < 0 || top.node >= len(doc.Nodes) || visited[top.node] {
			continue
		}
		visited[top.node] = true

		node := &doc.Nodes[top.node]
		joints = append(joints, newSkinJoint(node, top.node, top.parent, skin.Joints))

		slot := len(joints) - 1
		for _, child := range node.Children {
			stack = append(stack, skinFrame{node: child, parent: slot})
		}
	}

	return joints, true
}

func newSkinJoint(node *Node, index, parent int, skinJoints []int) SkinJoint {
	j := SkinJoint{
		Name:     node.Name,
		JointNum: slices.Index(skinJoints, index),
		Parent:   parent,
		Node:     index,
		Rotation: [4]float32{0, 0, 0, 1},
		Scale:    [3]float32{1, 1, 1},
	}
	if node.Translation != nil {
		j.Position = *node.Translation
	}
	if node.Rotation != nil {
		j.Rotation = *node.Rotation
	}
	if node.Scale != nil {
		j.Scale = *node.Scale
	}
	return j
}
