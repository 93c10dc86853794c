// Package armature evolves a skeletal joint hierarchy frame by frame and
// produces the per-joint offset (skinning) matrices consumed by a renderer.
//
// Joints are kept in two orders: table order, in which parents precede
// children and matrices are recomputed, and slot order, indexed by the
// joint number the vertex JOINTS_0 attribute refers to.
package armature

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/glbrig/internal/logger"
	"github.com/Faultbox/glbrig/pkg/formats"
	"github.com/Faultbox/glbrig/pkg/math"
)

// PlaybackMode selects how animation frames are driven.
type PlaybackMode int

const (
	// PlaybackWindow advances an internal frame counter through a window.
	PlaybackWindow PlaybackMode = iota
	// PlaybackExternal samples the frame number supplied by the caller.
	PlaybackExternal
)

// String returns the mode name.
func (m PlaybackMode) String() string {
	switch m {
	case PlaybackWindow:
		return "window"
	case PlaybackExternal:
		return "external"
	default:
		return "unknown"
	}
}

// State is the lifecycle state of an Armature.
type State int

const (
	StateUnloaded State = iota
	StateBound
	StatePlaying
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateBound:
		return "bound"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Joint is a runtime joint: the decoded skin joint plus its matrices.
type Joint struct {
	formats.SkinJoint

	Local  math.Mat4 // Parent space
	World  math.Mat4 // Parent.World * Local
	Bind   math.Mat4 // Inverse of World at bind time
	Offset math.Mat4 // World * Bind, uploaded per frame

	Modified bool
}

// Option configures an Armature.
type Option func(*Armature)

// WithMode sets the playback mode.
func WithMode(mode PlaybackMode) Option {
	return func(a *Armature) {
		a.mode = mode
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(l *zap.Logger) Option {
	return func(a *Armature) {
		a.log = l
	}
}

// Armature is a skeleton runtime. It is safe for concurrent use.
type Armature struct {
	mu sync.RWMutex

	joints  []*Joint // Table order
	ordered []*Joint // Slot order, nil for unused slots
	byName  map[string]*Joint

	tracks formats.TrackSet
	mode   PlaybackMode
	state  State

	active  bool
	loop    bool
	start   int
	end     int
	current int

	log *zap.Logger
}

// New creates an empty armature.
func New(opts ...Option) *Armature {
	a := &Armature{
		byName: make(map[string]*Joint),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Armature) logger() *zap.Logger {
	if a.log != nil {
		return a.log
	}
	return logger.Named("armature")
}

// Mode returns the configured playback mode.
func (a *Armature) Mode() PlaybackMode {
	return a.mode
}

// State returns the lifecycle state.
func (a *Armature) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Frame returns the next frame the window playback will apply.
func (a *Armature) Frame() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// FrameCount returns the longest attached track length.
func (a *Armature) FrameCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tracks.FrameCount()
}

// Joints returns a snapshot of the joints in table order.
func (a *Armature) Joints() []Joint {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]Joint, len(a.joints))
	for i, j := range a.joints {
		out[i] = *j
	}
	return out
}

// Joint returns a snapshot of the named joint.
func (a *Armature) Joint(name string) (Joint, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	j, ok := a.byName[name]
	if !ok {
		return Joint{}, false
	}
	return *j, true
}

// OrderedJoints returns a snapshot of the joints in slot order.
// Slots no joint claims are nil.
func (a *Armature) OrderedJoints() []*Joint {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*Joint, len(a.ordered))
	for i, j := range a.ordered {
		if j != nil {
			c := *j
			out[i] = &c
		}
	}
	return out
}

// OffsetMatrices returns the offset matrices in slot order.
// Slots no joint claims hold the identity.
func (a *Armature) OffsetMatrices() []math.Mat4 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]math.Mat4, len(a.ordered))
	for i, j := range a.ordered {
		if j == nil {
			out[i] = math.Identity()
			continue
		}
		out[i] = j.Offset
	}
	return out
}
