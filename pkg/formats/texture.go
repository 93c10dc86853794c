// Embedded texture resolution.
package formats

// TextureRef points at an image embedded in the BIN chunk.
type TextureRef struct {
	Texture  int
	Image    int
	MimeType string
	Data     []byte // Aliases the BIN payload
}

// TextureSlot selects a material texture.
type TextureSlot int

// Material texture slots.
const (
	SlotAlbedo TextureSlot = iota
	SlotNormal
)

// String returns the slot name.
func (s TextureSlot) String() string {
	switch s {
	case SlotAlbedo:
		return "albedo"
	case SlotNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// ResolveTexture resolves a material slot of the first primitive of mesh
// through textures -> images -> bufferView.
func ResolveTexture(doc *Document, bin []byte, mesh int, slot TextureSlot) (*TextureRef, bool) {
	if doc == nil {
		return nil, false
	}
	prim, ok := doc.primitive(mesh)
	if !ok || prim.Material == nil {
		return nil, false
	}
	m := *prim.Material
	if m < 0 || m >= len(doc.Materials) {
		return nil, false
	}
	mat := &doc.Materials[m]

	var info *TextureInfo
	switch slot {
	case SlotAlbedo:
		if mat.PBRMetallicRoughness != nil {
			info = mat.PBRMetallicRoughness.BaseColorTexture
		}
	case SlotNormal:
		info = mat.NormalTexture
	}
	if info == nil {
		return nil, false
	}
	return doc.resolveTextureIndex(bin, info.Index)
}

func (d *Document) resolveTextureIndex(bin []byte, tex int) (*TextureRef, bool) {
	if tex < 0 || tex >= len(d.Textures) {
		return nil, false
	}
	src := d.Textures[tex].Source
	if src == nil || *src < 0 || *src >= len(d.Images) {
		return nil, false
	}
	img := &d.Images[*src]
	if img.BufferView == nil {
		return nil, false
	}
	data, ok := d.viewBytes(bin, *img.BufferView)
	if !ok {
		return nil, false
	}
	return &TextureRef{
		Texture:  tex,
		Image:    *src,
		MimeType: img.MimeType,
		Data:     data,
	}, true
}
