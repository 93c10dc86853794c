// glTF 2.0 JSON metadata schema.
// Only the members the decoders read are declared; unknown members are ignored.
package formats

// Document is the JSON metadata chunk of a GLB container.
type Document struct {
	Asset       Asset        `json:"asset"`
	Scene       *int         `json:"scene,omitempty"`
	Scenes      []Scene      `json:"scenes,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Accessors   []Accessor   `json:"accessors,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
	Materials   []Material   `json:"materials,omitempty"`
	Textures    []Texture    `json:"textures,omitempty"`
	Images      []Image      `json:"images,omitempty"`
	Skins       []Skin       `json:"skins,omitempty"`
	Animations  []Animation  `json:"animations,omitempty"`
}

// Asset holds generator metadata.
type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

// Scene lists root node indices.
type Scene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// Node is an entry of the transform hierarchy.
// Nil transform members mean the glTF default.
type Node struct {
	Name        string      `json:"name,omitempty"`
	Children    []int       `json:"children,omitempty"`
	Mesh        *int        `json:"mesh,omitempty"`
	Skin        *int        `json:"skin,omitempty"`
	Translation *[3]float32 `json:"translation,omitempty"`
	Rotation    *[4]float32 `json:"rotation,omitempty"`
	Scale       *[3]float32 `json:"scale,omitempty"`
}

// Mesh is a set of primitives.
type Mesh struct {
	Name       string      `json:"name,omitempty"`
	Primitives []Primitive `json:"primitives"`
}

// Primitive maps attribute semantics to accessor indices.
type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       *int           `json:"mode,omitempty"`
}

// Accessor describes a typed view into a buffer view.
type Accessor struct {
	BufferView    *int      `json:"bufferView,omitempty"`
	ByteOffset    int       `json:"byteOffset,omitempty"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Max           []float32 `json:"max,omitempty"`
	Min           []float32 `json:"min,omitempty"`
}

// BufferView is a byte range of a buffer.
type BufferView struct {
	Buffer     int  `json:"buffer"`
	ByteOffset int  `json:"byteOffset,omitempty"`
	ByteLength int  `json:"byteLength"`
	ByteStride *int `json:"byteStride,omitempty"`
	Target     *int `json:"target,omitempty"`
}

// Buffer is a binary blob; in a GLB buffer 0 is the BIN chunk.
type Buffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri,omitempty"`
}

// Material holds the texture slots the decoder resolves.
type Material struct {
	Name                 string                `json:"name,omitempty"`
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *TextureInfo          `json:"normalTexture,omitempty"`
}

// PBRMetallicRoughness is the metallic-roughness material model.
type PBRMetallicRoughness struct {
	BaseColorFactor  *[4]float32  `json:"baseColorFactor,omitempty"`
	BaseColorTexture *TextureInfo `json:"baseColorTexture,omitempty"`
}

// TextureInfo references a texture.
type TextureInfo struct {
	Index    int `json:"index"`
	TexCoord int `json:"texCoord,omitempty"`
}

// Texture points at an image source.
type Texture struct {
	Source  *int `json:"source,omitempty"`
	Sampler *int `json:"sampler,omitempty"`
}

// Image is an embedded image stored in a buffer view.
type Image struct {
	Name       string `json:"name,omitempty"`
	URI        string `json:"uri,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
}

// Skin lists the joint nodes of a skeleton.
type Skin struct {
	Name                string `json:"name,omitempty"`
	InverseBindMatrices *int   `json:"inverseBindMatrices,omitempty"`
	Skeleton            *int   `json:"skeleton,omitempty"`
	Joints              []int  `json:"joints"`
}

// Animation is a set of channels driven by samplers.
type Animation struct {
	Name     string             `json:"name,omitempty"`
	Channels []AnimationChannel `json:"channels"`
	Samplers []AnimationSampler `json:"samplers"`
}

// AnimationChannel binds a sampler to a node property.
type AnimationChannel struct {
	Sampler int           `json:"sampler"`
	Target  ChannelTarget `json:"target"`
}

// ChannelTarget names the animated node and property path.
type ChannelTarget struct {
	Node *int   `json:"node,omitempty"`
	Path string `json:"path"`
}

// AnimationSampler pairs time and value accessors.
type AnimationSampler struct {
	Input         int    `json:"input"`
	Output        int    `json:"output"`
	Interpolation string `json:"interpolation,omitempty"`
}

// MeshNode returns the index of the first node referencing mesh.
func (d *Document) MeshNode(mesh int) (int, bool) {
	for i := range d.Nodes {
		if m := d.Nodes[i].Mesh; m != nil && *m == mesh {
			return i, true
		}
	}
	return -1, false
}

// primitive returns the first primitive of a mesh.
func (d *Document) primitive(mesh int) (*Primitive, bool) {
	if mesh < 0 || mesh >= len(d.Meshes) || len(d.Meshes[mesh].Primitives) == 0 {
		return nil, false
	}
	return &d.Meshes[mesh].Primitives[0], true
}

// viewBytes resolves a buffer view against the BIN payload.
func (d *Document) viewBytes(bin []byte, view int) ([]byte, bool) {
	if view < 0 || view >= len(d.BufferViews) {
		return nil, false
	}
	bv := d.BufferViews[view]
	start, end := bv.ByteOffset, bv.ByteOffset+bv.ByteLength
	if start < 0 || end < start || end > len(bin) {
		return nil, false
	}
	return bin[start:end], true
}

// accessorBytes resolves accessor -> buffer view -> bytes.
func (d *Document) accessorBytes(bin []byte, accessor int) ([]byte, bool) {
	if accessor < 0 || accessor >= len(d.Accessors) {
		return nil, false
	}
	view := d.Accessors[accessor].BufferView
	if view == nil {
		return nil, false
	}
	return d.viewBytes(bin, *view)
}
