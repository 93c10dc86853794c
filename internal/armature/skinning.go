package armature

// SkinPositions applies linear blend skinning to a position stream using
// the current offset matrices. positions holds 3 floats per vertex; joints
// and weights hold 4 influences per vertex. Vertices without influences,
// or with zero total weight, are copied unchanged.
func (a *Armature) SkinPositions(positions []float32, joints []uint8, weights []float32) []float32 {
	offsets := a.OffsetMatrices()

	out := make([]float32, len(positions))
	copy(out, positions)

	vertices := min(len(positions)/3, len(joints)/4, len(weights)/4)
	for v := range vertices {
		p := [3]float32{positions[v*3], positions[v*3+1], positions[v*3+2]}

		var acc [3]float32
		var total float32
		for k := range 4 {
			w := weights[v*4+k]
			slot := int(joints[v*4+k])
			if w == 0 || slot >= len(offsets) {
				continue
			}
			tp := offsets[slot].TransformPoint(p)
			acc[0] += w * tp[0]
			acc[1] += w * tp[1]
			acc[2] += w * tp[2]
			total += w
		}
		if total == 0 {
			continue
		}

		out[v*3] = acc[0] / total
		out[v*3+1] = acc[1] / total
		out[v*3+2] = acc[2] / total
	}

	return out
}
