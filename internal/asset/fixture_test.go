package asset

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"testing"

	"github.com/Faultbox/glbrig/pkg/formats"
)

// fixture builds GLB containers for assembler tests.
type fixture struct {
	doc formats.Document
	bin []byte
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) view(data []byte) int {
	for len(f.bin)%4 != 0 {
		f.bin = append(f.bin, 0)
	}
	f.doc.BufferViews = append(f.doc.BufferViews, formats.BufferView{ByteOffset: len(f.bin), ByteLength: len(data)})
	f.bin = append(f.bin, data...)
	return len(f.doc.BufferViews) - 1
}

func (f *fixture) accessor(data []byte, count int) int {
	f.doc.Accessors = append(f.doc.Accessors, formats.Accessor{BufferView: ptr(f.view(data)), Count: count})
	return len(f.doc.Accessors) - 1
}

func (f *fixture) floats(width int, values ...float32) int {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return f.accessor(data, len(values)/width)
}

func (f *fixture) uint16s(values ...uint16) int {
	data := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(data[i*2:], v)
	}
	return f.accessor(data, len(values))
}

func (f *fixture) bytes(values ...uint8) int {
	return f.accessor(append([]byte(nil), values...), len(values)/4)
}

func (f *fixture) glb(t testing.TB) []byte {
	t.Helper()
	f.doc.Asset.Version = "2.0"
	f.doc.Buffers = []formats.Buffer{{ByteLength: len(f.bin)}}
	js, err := json.Marshal(&f.doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for len(js)%4 != 0 {
		js = append(js, ' ')
	}
	for len(f.bin)%4 != 0 {
		f.bin = append(f.bin, 0)
	}

	total := formats.GLBHeaderSize + 2*formats.GLBChunkHeadSize + len(js) + len(f.bin)
	header, _ := formats.GLBHeader{Magic: formats.GLBMagic, Version: 2, Length: uint32(total)}.MarshalBinary()
	out := append([]byte(nil), header...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(js)))
	out = binary.LittleEndian.AppendUint32(out, formats.ChunkTypeJSON)
	out = append(out, js...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(f.bin)))
	out = binary.LittleEndian.AppendUint32(out, formats.ChunkTypeBIN)
	return append(out, f.bin...)
}

// skinnedFixture is a skinned quad (mesh 0, "body") animated on its
// "spine" joint, plus an unskinned triangle (mesh 1, "prop").
func skinnedFixture() *fixture {
	f := &fixture{}

	pos := f.floats(3, -1, 0, 0, 1, 0, 0, 1, 2, 0, -1, 2, 0)
	nrm := f.floats(3, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1)
	uv := f.floats(2, 0, 0, 1, 0, 1, 1, 0, 1)
	joints := f.bytes(0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0)
	weights := f.floats(4, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0)
	idx := f.uint16s(0, 1, 2, 0, 2, 3)

	albedo := f.view([]byte("\x89PNG\r\n\x1a\n"))
	f.doc.Images = []formats.Image{{MimeType: "image/png", BufferView: ptr(albedo)}}
	f.doc.Textures = []formats.Texture{{Source: ptr(0)}}
	f.doc.Materials = []formats.Material{{
		PBRMetallicRoughness: &formats.PBRMetallicRoughness{BaseColorTexture: &formats.TextureInfo{Index: 0}},
	}}

	propPos := f.floats(3, 0, 0, 0, 1, 0, 0, 0, 1, 0)

	f.doc.Meshes = []formats.Mesh{
		{Name: "body", Primitives: []formats.Primitive{{
			Attributes: map[string]int{
				"POSITION":   pos,
				"NORMAL":     nrm,
				"TEXCOORD_0": uv,
				"JOINTS_0":   joints,
				"WEIGHTS_0":  weights,
			},
			Indices:  ptr(idx),
			Material: ptr(0),
		}}},
		{Name: "prop", Primitives: []formats.Primitive{{
			Attributes: map[string]int{"POSITION": propPos},
		}}},
	}

	f.doc.Nodes = []formats.Node{
		{Name: "body", Mesh: ptr(0), Skin: ptr(0), Translation: &[3]float32{0, 0, -5}},
		{Name: "root", Children: []int{2}},
		{Name: "spine", Translation: &[3]float32{0, 1, 0}},
		{Name: "prop", Mesh: ptr(1), Scale: &[3]float32{2, 2, 2}},
	}
	f.doc.Skins = []formats.Skin{{Joints: []int{1, 2}}}

	times := f.floats(1, 0, 0.5, 1)
	s := float32(math.Sqrt2 / 2)
	rots := f.floats(4,
		0, 0, 0, 1,
		0, 0, s, s,
		0, 0, 1, 0,
	)
	f.doc.Animations = []formats.Animation{{
		Channels: []formats.AnimationChannel{{Sampler: 0, Target: formats.ChannelTarget{Node: ptr(2), Path: "rotation"}}},
		Samplers: []formats.AnimationSampler{{Input: times, Output: rots, Interpolation: "STEP"}},
	}}

	return f
}
