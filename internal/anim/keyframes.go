package anim

import (
	"math"
	"sort"
)

// Keyframe pins the Julia constant at a normalized point on the animation
// timeline, time in [0,1].
type Keyframe struct {
	Time  float64
	CReal float64
	CImag float64
}

// DefaultKeyframes is a closed loop through four classic Julia constants,
// returning to the start.
func DefaultKeyframes() []Keyframe {
	return []Keyframe{
		{Time: 0.0, CReal: -0.7, CImag: 0.27015},
		{Time: 0.25, CReal: -0.8, CImag: 0.156},
		{Time: 0.5, CReal: 0.285, CImag: 0.01},
		{Time: 0.75, CReal: -0.4, CImag: 0.6},
		{Time: 1.0, CReal: -0.7, CImag: 0.27015},
	}
}

// Animator sweeps the Julia constant along a keyframe trajectory. It is a
// small state machine: Start moves it to running, Tick advances it by an
// explicit dt, and it drops back to idle on completion or Stop. The dt
// parameter keeps it independent of any frame-rate assumption.
type Animator struct {
	keyframes []Keyframe
	duration  float64
	elapsed   float64
	active    bool
	cReal     float64
	cImag     float64
}

// NewAnimator copies and time-sorts the keyframes. Degenerate lists (empty,
// single entry, zero-length intervals) are valid trivial animations, not
// errors.
func NewAnimator(keyframes []Keyframe, duration float64) *Animator {
	kfs := make([]Keyframe, len(keyframes))
	copy(kfs, keyframes)
	sort.SliceStable(kfs, func(i, j int) bool { return kfs[i].Time < kfs[j].Time })

	a := &Animator{keyframes: kfs, duration: duration}
	if len(kfs) > 0 {
		a.cReal, a.cImag = kfs[0].CReal, kfs[0].CImag
	}
	return a
}

func (a *Animator) Active() bool      { return a.active }
func (a *Animator) Duration() float64 { return a.duration }

func (a *Animator) SetDuration(d float64) {
	if d > 0 {
		a.duration = d
	}
}

// Constant returns the most recently computed Julia constant.
func (a *Animator) Constant() (cr, ci float64) { return a.cReal, a.cImag }

func (a *Animator) Progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	return math.Min(a.elapsed/a.duration, 1)
}

func (a *Animator) Start() {
	a.active = true
	a.elapsed = 0
}

// Stop forces idle and leaves the last computed constant in place.
func (a *Animator) Stop() {
	a.active = false
	a.elapsed = 0
}

// Tick advances the animation by dt seconds and returns the current constant
// and whether the animation is still running. On completion it lands exactly
// on the final keyframe, resets, and goes idle.
func (a *Animator) Tick(dt float64) (cr, ci float64, running bool) {
	if !a.active {
		return a.cReal, a.cImag, false
	}

	a.elapsed += dt
	progress := 1.0
	if a.duration > 0 {
		progress = math.Min(a.elapsed/a.duration, 1)
	}

	a.cReal, a.cImag = a.At(progress)

	if progress >= 1 {
		a.active = false
		a.elapsed = 0
		return a.cReal, a.cImag, false
	}
	return a.cReal, a.cImag, true
}

// At interpolates the constant at the given progress in [0,1]: locate the
// bracketing keyframe pair, apply smoothstep to the local parameter, then
// lerp real and imaginary parts independently. Progress outside the keyframe
// range falls back to the first or last keyframe.
func (a *Animator) At(progress float64) (cr, ci float64) {
	if len(a.keyframes) == 0 {
		return a.cReal, a.cImag
	}

	prev := a.keyframes[0]
	next := a.keyframes[len(a.keyframes)-1]
	for i := 0; i < len(a.keyframes)-1; i++ {
		if progress >= a.keyframes[i].Time && progress <= a.keyframes[i+1].Time {
			prev = a.keyframes[i]
			next = a.keyframes[i+1]
			break
		}
	}

	span := next.Time - prev.Time
	local := 0.0
	if span > 0 {
		local = (progress - prev.Time) / span
	}
	local = math.Max(0, math.Min(local, 1))

	s := local * local * (3 - 2*local)

	return prev.CReal + (next.CReal-prev.CReal)*s,
		prev.CImag + (next.CImag-prev.CImag)*s
}
