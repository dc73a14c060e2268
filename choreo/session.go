package choreo

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

// Deps are the collaborators a Session drives. Any of them may be nil; a nil
// collaborator turns its side effect into a no-op.
type Deps struct {
	Clip      ClipHost
	Viewport  Viewport
	Hover     HoverDetector
	Targets   TargetStrategy
	Navigator Navigator
	Entry     EntryFlag
}

// Session is the lid and camera choreography state machine. It is owned by
// the landing page and mutated only from Tick and Deliver.
type Session struct {
	cfg  Config
	mode Mode

	clip *ClipDriver
	rig  *CameraRig

	viewport  Viewport
	hover     HoverDetector
	targets   TargetStrategy
	navigator Navigator
	entry     EntryFlag

	exitPending bool
	navigated   bool

	pointerX, pointerY float64
	hasPointer         bool
	viewW, viewH       int

	deferred []func()
}

// NewSession builds a session. When the entry flag requests an exit the
// session starts pre-seeded for the zoom out, which begins after the first
// tick.
func NewSession(cfg Config, deps Deps) *Session {
	s := &Session{
		cfg:       cfg,
		mode:      ModeIdle,
		clip:      NewClipDriver(deps.Clip),
		rig:       NewCameraRig(cfg.Initial),
		viewport:  deps.Viewport,
		hover:     deps.Hover,
		targets:   deps.Targets,
		navigator: deps.Navigator,
		entry:     deps.Entry,
	}
	if s.targets == nil {
		s.targets = FixedTarget(cfg.Fallback)
	}
	s.rig.Apply(s.viewport)

	if s.entry != nil && s.entry.ExitRequested() {
		s.startExit()
	}
	s.clip.Tick(0)
	return s
}

func (s *Session) Mode() Mode {
	if s == nil {
		return ModeIdle
	}
	return s.mode
}

// Cursor returns the clip cursor.
func (s *Session) Cursor() AnimationCursor {
	if s == nil {
		return AnimationCursor{}
	}
	return s.clip.Cursor()
}

// Camera returns the rig's current pose.
func (s *Session) Camera() Pose {
	if s == nil {
		return Pose{}
	}
	return s.rig.Pose()
}

// Segment returns the active zoom segment, if any.
func (s *Session) Segment() (ZoomSegment, bool) {
	if s == nil {
		return ZoomSegment{}, false
	}
	return s.rig.Segment()
}

// ExitPending reports whether the exit flag was set and has not been cleared yet.
func (s *Session) ExitPending() bool {
	return s != nil && s.exitPending
}

// Navigated reports whether the zoom in has fired its navigation.
func (s *Session) Navigated() bool {
	return s != nil && s.navigated
}

// Resize records the viewport size used to normalize pointer positions.
func (s *Session) Resize(width, height int) {
	if s == nil {
		return
	}
	s.viewW, s.viewH = width, height
}

// Reconfigure swaps the tunables and target strategy. It only applies while
// the session is idle and reports whether it did.
func (s *Session) Reconfigure(cfg Config, targets TargetStrategy) bool {
	if s == nil || s.mode != ModeIdle {
		return false
	}
	s.cfg = cfg
	if targets != nil {
		s.targets = targets
	} else {
		s.targets = FixedTarget(cfg.Fallback)
	}
	s.rig = NewCameraRig(cfg.Initial)
	s.rig.Apply(s.viewport)
	log.Printf("choreo: reconfigured")
	return true
}

// Deliver hands an inbound input message to the session. Messages of other
// types are ignored.
func (s *Session) Deliver(msg any) {
	if s == nil {
		return
	}
	switch m := msg.(type) {
	case PointerMoved:
		s.pointerX, s.pointerY = m.X, m.Y
		s.hasPointer = true
	case ActivateRequested:
		s.activate()
	}
}

// Tick advances the choreography by delta seconds.
func (s *Session) Tick(delta float64) {
	if s == nil {
		return
	}
	if delta < 0 {
		delta = 0
	}

	if s.mode == ModeIdle {
		s.updateHover(delta)
	}
	s.clip.Tick(delta)

	switch s.mode {
	case ModeForcedOpening:
		if s.clip.Time() >= s.cfg.Activate.ZoomGuard {
			s.beginZoomIn()
		}
	case ModeZoomingIn:
		s.updateZoomIn(delta)
	case ModeZoomingOut:
		s.updateZoomOut(delta)
	}

	s.runDeferred()
}

func (s *Session) activate() {
	if s.mode != ModeIdle || s.exitPending {
		log.Printf("choreo: activate ignored in mode %s", s.mode)
		return
	}
	s.rig.Clear()
	s.rig.SnapTo(s.rig.Initial())
	s.rig.Apply(s.viewport)
	s.clip.ForcePlayFrom(0, s.cfg.Activate.Rate)
	s.setMode(ModeForcedOpening)
}

func (s *Session) updateHover(delta float64) {
	over := false
	if s.hasPointer && s.hover != nil {
		over = s.hover.PointerOverModel(s.pointerNDC())
	}
	if over {
		s.clip.AdvanceTowardOpen(delta, s.cfg.Hover.Rate, s.cfg.Hover.OpenThreshold)
	} else {
		s.clip.AdvanceTowardClosed(delta, s.cfg.Hover.Rate)
	}
}

func (s *Session) beginZoomIn() {
	target := s.hoverTarget()
	s.rig.SetTargets(s.rig.Initial(), target, s.cfg.ZoomIn.Duration)
	s.setMode(ModeZoomingIn)
}

func (s *Session) updateZoomIn(delta float64) {
	if s.navigated {
		return
	}
	_, t := s.rig.Tick(delta)
	s.rig.Apply(s.viewport)
	if t < 1 {
		return
	}
	s.navigated = true
	s.rig.Clear()
	log.Printf("choreo: zoom in complete, navigating to %q", s.cfg.ZoomIn.NextPage)
	if s.navigator != nil {
		s.navigator.Navigate(s.cfg.ZoomIn.NextPage)
	}
}

func (s *Session) startExit() {
	s.exitPending = true
	s.rig.SnapTo(s.hoverTarget())
	s.rig.Apply(s.viewport)
	s.clip.ForcePlayFrom(s.cfg.Exit.Seek, s.cfg.Exit.Rate)
	s.rig.SetTargets(s.rig.Pose(), s.cfg.Exit.Target, s.cfg.Exit.Duration)
	s.setMode(ModeWaitingForAnimation)
	s.afterTick(func() {
		if s.mode == ModeWaitingForAnimation {
			s.setMode(ModeZoomingOut)
		}
	})
}

func (s *Session) updateZoomOut(delta float64) {
	pose, t := s.rig.Tick(delta)

	forward := mgl64.Vec3{0, 0, -1}
	if s.viewport != nil {
		forward = s.viewport.Forward()
	}
	lookAt := StableLookAt(pose.Position, pose.LookAt, forward, s.cfg.Exit.MinForward, s.cfg.Exit.ForwardScale)
	if s.viewport != nil {
		s.viewport.Place(pose.Position, lookAt)
	}

	cameraDone := t >= s.cfg.Exit.CameraDone
	clipDone := s.clip.Time() >= s.cfg.Exit.ClipDone*s.clip.Duration()
	if cameraDone && clipDone {
		s.finishExit()
	}
}

func (s *Session) finishExit() {
	log.Printf("choreo: zoom out and lid animation complete, clearing exit flag")
	if s.entry != nil {
		if err := s.entry.ClearExit(); err != nil {
			log.Printf("choreo: clear exit flag: %v", err)
		}
	}
	s.exitPending = false

	s.clip.Reset()
	s.clip.Tick(0)

	s.rig.Clear()
	s.rig.SnapTo(s.rig.Initial())
	s.rig.Apply(s.viewport)
	s.setMode(ModeIdle)
}

func (s *Session) hoverTarget() Pose {
	p, err := s.targets.HoverTarget()
	if err != nil {
		log.Printf("choreo: hover target: %v, using fallback", err)
		return s.cfg.Fallback
	}
	return p
}

func (s *Session) pointerNDC() mgl64.Vec2 {
	return PointerNDC(s.pointerX, s.pointerY, s.viewW, s.viewH)
}

func (s *Session) setMode(m Mode) {
	if s.mode == m {
		return
	}
	log.Printf("choreo: mode %s -> %s", s.mode, m)
	s.mode = m
}

// afterTick queues fn to run once the current or next Tick completes.
func (s *Session) afterTick(fn func()) {
	s.deferred = append(s.deferred, fn)
}

func (s *Session) runDeferred() {
	if len(s.deferred) == 0 {
		return
	}
	pending := s.deferred
	s.deferred = nil
	for _, fn := range pending {
		fn()
	}
}
