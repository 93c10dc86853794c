// Keyframe animation decoding.
package formats

// Animation target paths.
const (
	PathRotation    = "rotation"
	PathTranslation = "translation"
	PathScale       = "scale"
	PathWeights     = "weights"
)

// Sample is one keyframe.
type Sample struct {
	Time  float32
	Value []float32
}

// Track is the keyframe sequence of one joint property, indexed by frame.
type Track struct {
	Interpolation string
	Samples       []Sample
}

// Len returns the number of samples.
func (t *Track) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Samples)
}

// TrackSet maps joint name -> path -> track.
type TrackSet map[string]map[string]*Track

// Track returns the track for a joint and path, or nil.
func (s TrackSet) Track(joint, path string) *Track {
	return s[joint][path]
}

// Rotation returns the rotation track of joint, or nil.
func (s TrackSet) Rotation(joint string) *Track {
	return s.Track(joint, PathRotation)
}

// FrameCount returns the longest track length in the set.
func (s TrackSet) FrameCount() int {
	n := 0
	for _, paths := range s {
		for _, tr := range paths {
			n = max(n, tr.Len())
		}
	}
	return n
}

// pathWidth returns the number of floats per sample for a target path.
func pathWidth(path string) int {
	switch path {
	case PathRotation:
		return 4
	case PathTranslation, PathScale:
		return 3
	default:
		return 1
	}
}

// DecodeAnimation decodes the animation at index into a TrackSet.
// Channels without a named target node or with unresolvable data are skipped;
// later channels overwrite earlier ones for the same joint and path.
func DecodeAnimation(doc *Document, bin []byte, index int) (TrackSet, bool) {
	if doc == nil || index < 0 || index >= len(doc.Animations) {
		return nil, false
	}
	anim := &doc.Animations[index]
	set := make(TrackSet)

	for _, ch := range anim.Channels {
		target := ch.Target.Node
		if target == nil || *target < 0 || *target >= len(doc.Nodes) {
			continue
		}
		name := doc.Nodes[*target].Name
		if name == "" {
			continue
		}
		if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
			continue
		}
		sampler := anim.Samplers[ch.Sampler]

		times, ok := doc.floatsAt(bin, sampler.Input)
		if !ok {
			continue
		}
		values, ok := doc.floatsAt(bin, sampler.Output)
		if !ok {
			continue
		}

		width := pathWidth(ch.Target.Path)
		count := min(doc.Accessors[sampler.Input].Count, len(times), len(values)/width)
		if count < 0 {
			count = 0
		}

		track := &Track{
			Interpolation: sampler.Interpolation,
			Samples:       make([]Sample, count),
		}
		for i := range count {
			v := make([]float32, width)
			copy(v, values[i*width:(i+1)*width])
			track.Samples[i] = Sample{Time: times[i], Value: v}
		}

		if set[name] == nil {
			set[name] = make(map[string]*Track)
		}
		set[name][ch.Target.Path] = track
	}

	return set, true
}
