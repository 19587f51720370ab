package render

// Phase tracks where the caller is in an interaction gesture. The shell
// reports gesture starts and ends; the tracker answers which fidelity the
// next frame should use.
type Phase int

const (
	// PhaseIdle means no gesture is in flight and no preview needs
	// replacing.
	PhaseIdle Phase = iota
	// PhaseInteracting means a drag or zoom gesture is in progress.
	PhaseInteracting
	// PhaseSettling means the gesture just ended and one HighQuality pass
	// is owed to replace the coarse preview.
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseInteracting:
		return "interacting"
	case PhaseSettling:
		return "settling"
	default:
		return "idle"
	}
}

// Tracker is the two-tier fidelity policy: Fast frames while a gesture is in
// flight, exactly one HighQuality frame once it ends.
type Tracker struct {
	phase Phase
}

func NewTracker() *Tracker {
	return &Tracker{phase: PhaseIdle}
}

func (t *Tracker) Phase() Phase { return t.phase }

// Interact records that a gesture is in progress. Safe to call every frame
// while a drag continues.
func (t *Tracker) Interact() {
	t.phase = PhaseInteracting
}

// Release records the end of a gesture, scheduling the settle pass.
func (t *Tracker) Release() {
	if t.phase == PhaseInteracting {
		t.phase = PhaseSettling
	}
}

// Next returns the fidelity for the upcoming frame and whether the tracker
// itself demands a render. Settling consumes itself: it yields one
// HighQuality frame and drops to idle.
func (t *Tracker) Next() (Fidelity, bool) {
	switch t.phase {
	case PhaseInteracting:
		return Fast, true
	case PhaseSettling:
		t.phase = PhaseIdle
		return HighQuality, true
	default:
		return HighQuality, false
	}
}
