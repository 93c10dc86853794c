// Vertex attribute decoding from accessor byte ranges.
package formats

import (
	"encoding/binary"
	"math"

	"golang.org/x/exp/constraints"
)

// AttributeKind names a primitive vertex attribute.
type AttributeKind string

// Attribute semantics.
const (
	AttrPosition AttributeKind = "POSITION"
	AttrNormal   AttributeKind = "NORMAL"
	AttrTangent  AttributeKind = "TANGENT"
	AttrTexCoord AttributeKind = "TEXCOORD_0"
	AttrJoints   AttributeKind = "JOINTS_0"
	AttrWeights  AttributeKind = "WEIGHTS_0"
)

// Component strides in bytes.
const (
	strideFloat32 = 4
	strideUint16  = 2
	strideUint8   = 1
)

// component is a scalar type a buffer can hold.
type component interface {
	constraints.Float | constraints.Unsigned
}

// decodeComponents reads len(data)/stride elements in source order.
// A trailing partial element is dropped.
func decodeComponents[T component](data []byte, stride int, read func([]byte) T) []T {
	n := len(data) / stride
	out := make([]T, n)
	for i := range out {
		out[i] = read(data[i*stride:])
	}
	return out
}

func readFloat32(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
func readUint16(b []byte) uint16   { return binary.LittleEndian.Uint16(b) }
func readUint8(b []byte) uint8     { return b[0] }

// floatsAt decodes an accessor as a float32 stream.
func (d *Document) floatsAt(bin []byte, accessor int) ([]float32, bool) {
	data, ok := d.accessorBytes(bin, accessor)
	if !ok {
		return nil, false
	}
	return decodeComponents(data, strideFloat32, readFloat32), true
}

// attributeBytes resolves the bytes of kind on the first primitive of mesh.
func (d *Document) attributeBytes(bin []byte, mesh int, kind AttributeKind) ([]byte, bool) {
	prim, ok := d.primitive(mesh)
	if !ok {
		return nil, false
	}
	acc, ok := prim.Attributes[string(kind)]
	if !ok {
		return nil, false
	}
	return d.accessorBytes(bin, acc)
}

// DecodeFloats decodes a float32 attribute (position, normal, tangent,
// texcoord, weights) of the first primitive of mesh.
func DecodeFloats(doc *Document, bin []byte, mesh int, kind AttributeKind) ([]float32, bool) {
	if doc == nil {
		return nil, false
	}
	data, ok := doc.attributeBytes(bin, mesh, kind)
	if !ok {
		return nil, false
	}
	return decodeComponents(data, strideFloat32, readFloat32), true
}

// DecodeJoints decodes JOINTS_0 as unsigned bytes.
func DecodeJoints(doc *Document, bin []byte, mesh int) ([]uint8, bool) {
	if doc == nil {
		return nil, false
	}
	data, ok := doc.attributeBytes(bin, mesh, AttrJoints)
	if !ok {
		return nil, false
	}
	return decodeComponents(data, strideUint8, readUint8), true
}

// DecodeIndices decodes the index accessor as uint16.
func DecodeIndices(doc *Document, bin []byte, mesh int) ([]uint16, bool) {
	if doc == nil {
		return nil, false
	}
	prim, ok := doc.primitive(mesh)
	if !ok || prim.Indices == nil {
		return nil, false
	}
	data, ok := doc.accessorBytes(bin, *prim.Indices)
	if !ok {
		return nil, false
	}
	return decodeComponents(data, strideUint16, readUint16), true
}
