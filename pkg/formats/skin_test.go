package formats

import "testing"

// chainDocument builds mesh node -> skin [A, B, C] with A -> B -> C.
func chainDocument() *Document {
	doc := &Document{
		Nodes: []Node{
			{Name: "A", Children: []int{1}, Translation: &[3]float32{0, 1, 0}},
			{Name: "B", Children: []int{2}, Rotation: &[4]float32{0, 0, 0.7071068, 0.7071068}},
			{Name: "C", Scale: &[3]float32{2, 2, 2}},
			{Name: "body", Mesh: intPtr(0), Skin: intPtr(0)},
		},
		Meshes: []Mesh{{Primitives: []Primitive{{Attributes: map[string]int{}}}}},
		Skins:  []Skin{{Joints: []int{0, 1, 2}}},
	}
	return doc
}

func TestBuildSkin_LinearChain(t *testing.T) {
	joints, ok := BuildSkin(chainDocument(), 0)
	if !ok {
		t.Fatal("expected skin")
	}
	if len(joints) != 3 {
		t.Fatalf("expected 3 joints, got %d", len(joints))
	}

	tests := []struct {
		name     string
		jointNum int
		parent   int
	}{
		{"A", 0, -1},
		{"B", 1, 0},
		{"C", 2, 1},
	}
	for i, tt := range tests {
		j := joints[i]
		if j.Name != tt.name || j.JointNum != tt.jointNum || j.Parent != tt.parent {
			t.Errorf("joint %d: expected {%s %d %d}, got {%s %d %d}",
				i, tt.name, tt.jointNum, tt.parent, j.Name, j.JointNum, j.Parent)
		}
	}

	if joints[0].Position != [3]float32{0, 1, 0} {
		t.Errorf("expected A position (0,1,0), got %v", joints[0].Position)
	}
	if joints[0].Rotation != [4]float32{0, 0, 0, 1} {
		t.Errorf("expected default identity rotation, got %v", joints[0].Rotation)
	}
	if joints[0].Scale != [3]float32{1, 1, 1} {
		t.Errorf("expected default unit scale, got %v", joints[0].Scale)
	}
	if joints[1].Rotation[2] != 0.7071068 {
		t.Errorf("expected B rotation z 0.7071068, got %v", joints[1].Rotation)
	}
	if joints[2].Scale != [3]float32{2, 2, 2} {
		t.Errorf("expected C scale 2, got %v", joints[2].Scale)
	}
}

func TestBuildSkin_SiblingStackOrder(t *testing.T) {
	doc := &Document{
		Nodes: []Node{
			{Name: "root", Children: []int{1, 2}},
			{Name: "left"},
			{Name: "right", Children: []int{3}},
			{Name: "extra"},
			{Mesh: intPtr(0), Skin: intPtr(0)},
		},
		Meshes: []Mesh{{Primitives: []Primitive{{}}}},
		Skins:  []Skin{{Joints: []int{0, 1, 2}}},
	}

	joints, ok := BuildSkin(doc, 0)
	if !ok {
		t.Fatal("expected skin")
	}

	// Last pushed child is popped first.
	wantNames := []string{"root", "right", "extra", "left"}
	wantParents := []int{-1, 0, 1, 0}
	wantNums := []int{0, 2, -1, 1}
	if len(joints) != len(wantNames) {
		t.Fatalf("expected %d joints, got %d", len(wantNames), len(joints))
	}
	for i := range joints {
		if joints[i].Name != wantNames[i] {
			t.Errorf("slot %d: expected %s, got %s", i, wantNames[i], joints[i].Name)
		}
		if joints[i].Parent != wantParents[i] {
			t.Errorf("slot %d: expected parent %d, got %d", i, wantParents[i], joints[i].Parent)
		}
		if joints[i].JointNum != wantNums[i] {
			t.Errorf("slot %d: expected joint num %d, got %d", i, wantNums[i], joints[i].JointNum)
		}
		if joints[i].Parent >= i {
			t.Errorf("slot %d: parent %d not emitted before child", i, joints[i].Parent)
		}
	}
}

func TestBuildSkin_CycleAndCorruptIndices(t *testing.T) {
	doc := &Document{
		Nodes: []Node{
			{Name: "A", Children: []int{1, 17, -3}},
			{Name: "B", Children: []int{0}},
			{Mesh: intPtr(0), Skin: intPtr(0)},
		},
		Meshes: []Mesh{{Primitives: []Primitive{{}}}},
		Skins:  []Skin{{Joints: []int{0, 1}}},
	}

	joints, ok := BuildSkin(doc, 0)
	if !ok {
		t.Fatal("expected skin")
	}
	if len(joints) != 2 {
		t.Errorf("expected 2 joints, got %d", len(joints))
	}
}

func TestBuildSkin_Absent(t *testing.T) {
	tests := []struct {
		name string
		doc  *Document
		mesh int
	}{
		{"nil document", nil, 0},
		{"no node references mesh", chainDocument(), 5},
		{"node without skin", &Document{Nodes: []Node{{Mesh: intPtr(0)}}}, 0},
		{"skin out of range", &Document{Nodes: []Node{{Mesh: intPtr(0), Skin: intPtr(3)}}}, 0},
		{"skin without joints", &Document{
			Nodes: []Node{{Mesh: intPtr(0), Skin: intPtr(0)}},
			Skins: []Skin{{}},
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if joints, ok := BuildSkin(tt.doc, tt.mesh); ok {
				t.Errorf("expected absent skin, got %d joints", len(joints))
			}
		})
	}
}
