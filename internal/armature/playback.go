package armature

import "github.com/Faultbox/glbrig/pkg/math"

// Play activates playback over the frame window [start, end). Reaching end
// wraps to start when looping and holds otherwise. A negative end selects
// the frame count of the attached tracks, so every sample is played.
func (a *Armature) Play(start, end int, loop bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateUnloaded {
		a.logger().Warn("play requested before joints were loaded")
		return
	}

	start = max(start, 0)
	if end < 0 {
		end = a.tracks.FrameCount()
	}

	a.active = true
	a.loop = loop
	a.start = start
	a.end = end
	a.current = start
	a.state = StatePlaying
}

// Stop deactivates playback and zeroes the frame window.
func (a *Armature) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.active = false
	a.loop = false
	a.start, a.end, a.current = 0, 0, 0
	if a.state != StateUnloaded {
		a.state = StateStopped
	}
}

// Tick advances one render frame in the configured mode. frame is only
// used in external mode.
func (a *Armature) Tick(frame int) {
	switch a.mode {
	case PlaybackExternal:
		a.PlayFrame(frame)
	default:
		a.PlayAnimation()
	}
}

// PlayAnimation applies the current window frame and advances it. Call it
// once per render frame in window mode. Once current reaches end without
// looping every further call is a no-op, including the update pass.
func (a *Armature) PlayAnimation() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mode != PlaybackWindow {
		a.logger().Warn("PlayAnimation called in external playback mode")
		return
	}
	if len(a.tracks) == 0 {
		a.logger().Debug("no animation set")
		return
	}

	if a.current >= a.end {
		if !a.loop {
			return
		}
		a.current = a.start
	}

	if a.active {
		a.applyFrame(a.current)
		a.current++
	}

	a.update()
}

// PlayFrame applies the given frame. Call it once per render frame in
// external mode; the caller owns advancement and looping.
func (a *Armature) PlayFrame(frame int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mode != PlaybackExternal {
		a.logger().Warn("PlayFrame called in window playback mode")
		return
	}
	if len(a.tracks) == 0 {
		a.logger().Debug("no animation set")
		return
	}

	if a.active {
		a.current = frame
		a.applyFrame(frame)
	}

	a.update()
}

// applyFrame poses every tracked joint with its rotation sample at frame.
// Tracks shorter than frame, and tracks naming no joint, are skipped.
func (a *Armature) applyFrame(frame int) {
	if frame < 0 {
		return
	}
	for name := range a.tracks {
		track := a.tracks.Rotation(name)
		if frame >= track.Len() {
			continue
		}
		if _, ok := a.byName[name]; !ok {
			continue
		}
		a.setPose(name, math.QuatFromSlice(track.Samples[frame].Value))
	}
}
