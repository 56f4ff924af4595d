package editor

import "github.com/matt-g-everett/scenetx/scene"

// Play starts the animation clock from its current time.
func (e *Editor) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = true
}

// Pause stops the clock and keeps the current time.
func (e *Editor) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = false
}

// Stop stops the clock and rewinds it to zero.
func (e *Editor) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = false
	e.time = 0
}

// Seek sets the clock to t seconds.
func (e *Editor) Seek(t float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.time = t
}

// Advance moves the clock forward by dt seconds while playing.
func (e *Editor) Advance(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playing {
		e.time += dt
	}
}

// Playing reports whether the clock is running.
func (e *Editor) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Time is the clock position in seconds.
func (e *Editor) Time() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.time
}

// Evaluate returns the frame at the current clock. While the clock is not
// running every object shows its base transform and material, unless the
// editor holds the paused pose and the clock has moved.
func (e *Editor) Evaluate() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playing || (e.holdPausedPose && e.time != 0) {
		return e.frame(e.time, true)
	}
	return e.frame(e.time, false)
}

// EvaluateAt returns the frame at t seconds without touching the clock.
func (e *Editor) EvaluateAt(t float64) Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame(t, true)
}

func (e *Editor) frame(t float64, animate bool) Frame {
	f := Frame{Time: t, Playing: e.playing}
	for _, o := range e.scene.Objects() {
		f.Objects = append(f.Objects, e.evaluate(o, t, animate))
	}
	return f
}

// Every enabled autoplay animation is evaluated against the base values
// and the last one in the list wins.
func (e *Editor) evaluate(o scene.Object, t float64, animate bool) ObjectState {
	s := ObjectState{ID: o.ID, Transform: o.Transform, Material: o.Material, Visible: o.Visible}
	if animate {
		for i := range o.Animations {
			a := &o.Animations[i]
			if a.Enabled && a.AutoPlay {
				s.Transform, s.Material = e.interp.Calculate(a, t, o.Transform, o.Material)
			}
		}
	}
	if o.Type != scene.TypeHTMLWidget {
		d := scene.ObjectDimensions(o.Type, s.Transform.Scale)
		s.Dimensions = &d
	}
	return s
}
