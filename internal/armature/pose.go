package armature

import (
	"go.uber.org/zap"

	"github.com/Faultbox/glbrig/pkg/formats"
	"github.com/Faultbox/glbrig/pkg/math"
)

// rotationMatrix returns the row-vector layout of the quaternion matrix.
// Bind pose inverts it and poses store inverted quaternions, so both
// reduce to the usual parent-space rotation.
func rotationMatrix(q [4]float32) math.Mat4 {
	return math.QuatFromArray(q).ToMat4().Transpose()
}

// LoadJoints replaces the joint table, computes the bind pose and fills
// the slot-ordered view.
func (a *Armature) LoadJoints(joints []formats.SkinJoint) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.joints = make([]*Joint, len(joints))
	a.byName = make(map[string]*Joint, len(joints))
	for i, sj := range joints {
		j := &Joint{
			SkinJoint: sj,
			Local:     math.Identity(),
			World:     math.Identity(),
			Bind:      math.Identity(),
			Offset:    math.Identity(),
		}
		a.joints[i] = j
		if sj.Name == "" {
			continue
		}
		if _, dup := a.byName[sj.Name]; !dup {
			a.byName[sj.Name] = j
		}
	}

	a.active = false
	a.start, a.end, a.current = 0, 0, 0
	a.state = StateBound

	a.setBindPose()
	a.update()

	a.logger().Debug("joints loaded", zap.Int("joints", len(a.joints)), zap.Int("slots", len(a.ordered)))
}

// SetBindPose recomputes local, world and bind matrices from the rest
// transforms of every joint.
func (a *Armature) SetBindPose() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setBindPose()
}

func (a *Armature) setBindPose() {
	for i, j := range a.joints {
		j.Local = math.TranslateVec(math.Vec3FromArray(j.Position)).Mul(rotationMatrix(j.Rotation).Inverse())
		j.Modified = false

		if p := a.parent(i); p != nil {
			j.World = p.World.Mul(j.Local)
		} else {
			j.World = j.Local
		}
		j.Bind = j.World.Inverse()
		j.Offset = j.World.Mul(j.Bind)
	}
}

// parent returns the parent of the joint at table index i.
// Parents that do not precede the child are treated as absent.
func (a *Armature) parent(i int) *Joint {
	p := a.joints[i].Parent
	if p < 0 || p >= i {
		return nil
	}
	return a.joints[p]
}

// SetPose sets the rotation of the named joint. The change takes effect on
// the next Update.
func (a *Armature) SetPose(name string, q math.Quat) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setPose(name, q)
}

func (a *Armature) setPose(name string, q math.Quat) bool {
	j, ok := a.byName[name]
	if !ok {
		a.logger().Warn("pose target not found", zap.String("joint", name))
		return false
	}
	j.Rotation = q.Inverse().Array()
	j.Modified = true
	return true
}

// SetAnimations attaches a track set. A nil set detaches.
func (a *Armature) SetAnimations(tracks formats.TrackSet) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tracks = tracks
}

// Update recomputes local matrices of modified joints and world and offset
// matrices of every joint from the first modified one onward, then rebuilds
// the slot-ordered view.
func (a *Armature) Update() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.update()
}

func (a *Armature) update() {
	cascade := false

	for i, j := range a.joints {
		if j.Modified {
			cascade = true
			j.Local = math.TranslateVec(math.Vec3FromArray(j.Position)).Mul(rotationMatrix(j.Rotation))
			j.Modified = false
		}

		if !cascade {
			continue
		}
		if p := a.parent(i); p != nil {
			j.World = p.World.Mul(j.Local)
		} else {
			j.World = j.Local
		}
		j.Offset = j.World.Mul(j.Bind)
	}

	a.rebuildOrdered()
}

func (a *Armature) rebuildOrdered() {
	slots := 0
	for _, j := range a.joints {
		slots = max(slots, j.JointNum+1)
	}

	if cap(a.ordered) >= slots {
		a.ordered = a.ordered[:slots]
		clear(a.ordered)
	} else {
		a.ordered = make([]*Joint, slots)
	}

	for _, j := range a.joints {
		if j.JointNum >= 0 {
			a.ordered[j.JointNum] = j
		}
	}
}
