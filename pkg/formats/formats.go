// Package formats provides the GLB (binary glTF 2.0) container reader and
// decoders for vertex attributes, skins, animations and embedded textures.
//
// Decoders never fail on dangling references: an index that cannot be
// resolved yields an absent value (ok == false). Only container structure
// errors are reported as errors.
package formats
