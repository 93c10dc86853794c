// Package math provides the vector, quaternion and matrix types used by the
// skinning runtime. Matrices are column-major float32 to match GPU uploads.
package math

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec3FromArray converts a glTF-style [x, y, z] array.
func Vec3FromArray(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}
