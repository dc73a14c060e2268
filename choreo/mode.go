package choreo

// Mode is the active choreography mode. Exactly one is active at a time.
type Mode int

const (
	// ModeIdle lets pointer hover open and close the lid.
	ModeIdle Mode = iota
	// ModeForcedOpening plays the lid clip unattended until the zoom-in guard passes.
	ModeForcedOpening
	// ModeWaitingForAnimation holds an exit-seeded session until its deferred zoom-out start.
	ModeWaitingForAnimation
	ModeZoomingIn
	ModeZoomingOut
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeForcedOpening:
		return "forced-opening"
	case ModeWaitingForAnimation:
		return "waiting-for-animation"
	case ModeZoomingIn:
		return "zooming-in"
	case ModeZoomingOut:
		return "zooming-out"
	default:
		return "unknown"
	}
}

// Forced reports whether m is a scripted sequence during which hover input is ignored.
func (m Mode) Forced() bool {
	return m != ModeIdle
}

// Zooming reports whether m drives an active camera segment.
func (m Mode) Zooming() bool {
	return m == ModeZoomingIn || m == ModeZoomingOut
}
