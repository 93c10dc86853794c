package formats

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"testing"
)

// glbBuilder assembles in-memory GLB fixtures.
type glbBuilder struct {
	doc Document
	bin []byte
}

func newBuilder() *glbBuilder {
	return &glbBuilder{doc: Document{Asset: Asset{Version: "2.0"}}}
}

func intPtr(v int) *int { return &v }

// view appends raw bytes (4-byte aligned) and returns the buffer view index.
func (b *glbBuilder) view(data []byte) int {
	for len(b.bin)%4 != 0 {
		b.bin = append(b.bin, 0)
	}
	b.doc.BufferViews = append(b.doc.BufferViews, BufferView{
		Buffer:     0,
		ByteOffset: len(b.bin),
		ByteLength: len(data),
	})
	b.bin = append(b.bin, data...)
	return len(b.doc.BufferViews) - 1
}

func (b *glbBuilder) accessor(view, count int, typ string, componentType int) int {
	b.doc.Accessors = append(b.doc.Accessors, Accessor{
		BufferView:    intPtr(view),
		ComponentType: componentType,
		Count:         count,
		Type:          typ,
	})
	return len(b.doc.Accessors) - 1
}

func (b *glbBuilder) floats(typ string, width int, values ...float32) int {
	return b.accessor(b.view(float32Bytes(values...)), len(values)/width, typ, 5126)
}

func (b *glbBuilder) uint16s(values ...uint16) int {
	data := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(data[i*2:], v)
	}
	return b.accessor(b.view(data), len(values), "SCALAR", 5123)
}

func (b *glbBuilder) uint8s(values ...uint8) int {
	return b.accessor(b.view(append([]byte(nil), values...)), len(values)/4, "VEC4", 5121)
}

func (b *glbBuilder) mesh(attrs map[string]int, indices *int, material *int) int {
	b.doc.Meshes = append(b.doc.Meshes, Mesh{
		Primitives: []Primitive{{Attributes: attrs, Indices: indices, Material: material}},
	})
	return len(b.doc.Meshes) - 1
}

func (b *glbBuilder) node(n Node) int {
	b.doc.Nodes = append(b.doc.Nodes, n)
	return len(b.doc.Nodes) - 1
}

func (b *glbBuilder) build(t testing.TB) []byte {
	t.Helper()
	for len(b.bin)%4 != 0 {
		b.bin = append(b.bin, 0)
	}
	b.doc.Buffers = []Buffer{{ByteLength: len(b.bin)}}
	js, err := json.Marshal(&b.doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	return assembleGLB(js, b.bin)
}

// assembleGLB writes header, JSON chunk and BIN chunk with glTF padding rules.
func assembleGLB(js, bin []byte) []byte {
	for len(js)%4 != 0 {
		js = append(js, ' ')
	}
	total := GLBHeaderSize + GLBChunkHeadSize + len(js) + GLBChunkHeadSize + len(bin)
	out := make([]byte, 0, total)
	out = binary.LittleEndian.AppendUint32(out, GLBMagic)
	out = binary.LittleEndian.AppendUint32(out, 2)
	out = binary.LittleEndian.AppendUint32(out, uint32(total))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(js)))
	out = binary.LittleEndian.AppendUint32(out, ChunkTypeJSON)
	out = append(out, js...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(bin)))
	out = binary.LittleEndian.AppendUint32(out, ChunkTypeBIN)
	out = append(out, bin...)
	return out
}

func float32Bytes(values ...float32) []byte {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return data
}

func parseFixture(t *testing.T, data []byte) *GLB {
	t.Helper()
	glb, err := ParseGLB(data)
	if err != nil {
		t.Fatalf("ParseGLB: %v", err)
	}
	return glb
}
