package asset

import (
	"go.uber.org/zap"

	"github.com/Faultbox/glbrig/pkg/formats"
)

// decodeMesh assembles the record for mesh index i.
//
// The animation with the same index as the mesh is attached to it.
func decodeMesh(doc *formats.Document, bin []byte, i int, log *zap.Logger) *Mesh {
	log = log.With(zap.Int("mesh", i))

	m := &Mesh{
		ID:    i,
		Name:  doc.Meshes[i].Name,
		Scene: sceneTransform(doc, i),
	}

	var ok bool
	if m.Positions, ok = formats.DecodeFloats(doc, bin, i, formats.AttrPosition); !ok {
		log.Warn("mesh has no positions")
	}
	m.Normals = floats(doc, bin, i, formats.AttrNormal, log)
	m.Tangents = floats(doc, bin, i, formats.AttrTangent, log)
	m.UVs = floats(doc, bin, i, formats.AttrTexCoord, log)
	m.Weights = floats(doc, bin, i, formats.AttrWeights, log)

	if m.Joints, ok = formats.DecodeJoints(doc, bin, i); !ok {
		log.Debug("attribute absent", zap.String("kind", string(formats.AttrJoints)))
	}
	if m.Indices, ok = formats.DecodeIndices(doc, bin, i); !ok {
		log.Debug("mesh has no indices")
	}

	if ref, ok := formats.ResolveTexture(doc, bin, i, formats.SlotAlbedo); ok {
		m.Textures.Albedo = ref
	}
	if ref, ok := formats.ResolveTexture(doc, bin, i, formats.SlotNormal); ok {
		m.Textures.Normal = ref
	}

	if m.Skin, ok = formats.BuildSkin(doc, i); !ok {
		log.Debug("mesh has no skin")
	}
	if m.Animations, ok = formats.DecodeAnimation(doc, bin, i); !ok {
		log.Debug("mesh has no animation")
	}

	return m
}

func floats(doc *formats.Document, bin []byte, i int, kind formats.AttributeKind, log *zap.Logger) []float32 {
	v, ok := formats.DecodeFloats(doc, bin, i, kind)
	if !ok {
		log.Debug("attribute absent", zap.String("kind", string(kind)))
	}
	return v
}
