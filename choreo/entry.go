package choreo

// EntryFlag is the persisted "exit requested" page state. It is read once
// when a session starts and cleared when the exit sequence completes.
type EntryFlag interface {
	ExitRequested() bool
	ClearExit() error
}

// Navigator performs the outbound page transition.
type Navigator interface {
	Navigate(target string)
}

// PointerMoved is delivered when the pointer moves, in viewport pixels.
type PointerMoved struct {
	X, Y float64
}

// ActivateRequested is delivered when the activate key is pressed.
type ActivateRequested struct{}
