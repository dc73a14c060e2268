package choreo

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/smartystreets/goconvey/convey"
)

const tick = 0.125

type stubHover struct {
	over    bool
	calls   int
	lastNDC mgl64.Vec2
}

func (h *stubHover) PointerOverModel(ndc mgl64.Vec2) bool {
	h.calls++
	h.lastNDC = ndc
	return h.over
}

type stubNavigator struct {
	targets []string
}

func (n *stubNavigator) Navigate(target string) { n.targets = append(n.targets, target) }

type stubEntry struct {
	exit     bool
	cleared  int
	clearErr error
}

func (e *stubEntry) ExitRequested() bool { return e.exit }

func (e *stubEntry) ClearExit() error {
	e.cleared++
	e.exit = false
	return e.clearErr
}

type fixture struct {
	host     *recordingHost
	viewport *recordingViewport
	hover    *stubHover
	nav      *stubNavigator
	entry    *stubEntry
	session  *Session
}

var screenPose = Pose{Position: mgl64.Vec3{-0.03, 12.5, -9}, LookAt: mgl64.Vec3{-0.03, 10, -15}}

func newFixture(exit bool, targets TargetStrategy) *fixture {
	f := &fixture{
		host:     &recordingHost{duration: 12},
		viewport: &recordingViewport{},
		hover:    &stubHover{},
		nav:      &stubNavigator{},
		entry:    &stubEntry{exit: exit},
	}
	f.session = NewSession(DefaultConfig(), Deps{
		Clip:      f.host,
		Viewport:  f.viewport,
		Hover:     f.hover,
		Targets:   targets,
		Navigator: f.nav,
		Entry:     f.entry,
	})
	f.session.Resize(1280, 720)
	f.session.Deliver(PointerMoved{X: 640, Y: 360})
	return f
}

func (f *fixture) ticks(n int) {
	for i := 0; i < n; i++ {
		f.session.Tick(tick)
	}
}

func TestHoverControlledLid(t *testing.T) {
	Convey("Given an idle session with the pointer over the model", t, func() {
		f := newFixture(false, FixedTarget(screenPose))
		f.hover.over = true

		Convey("two seconds of hover open the lid to the threshold and pause", func() {
			f.ticks(16)
			cur := f.session.Cursor()
			So(cur.Time, ShouldEqual, 6)
			So(cur.Paused, ShouldBeTrue)
			So(f.session.Mode(), ShouldEqual, ModeIdle)
			So(f.hover.lastNDC, ShouldResemble, mgl64.Vec2{0, 0})

			Convey("and further hover keeps it there", func() {
				f.ticks(8)
				So(f.session.Cursor().Time, ShouldEqual, 6)
			})

			Convey("and leaving the model closes it back to zero", func() {
				f.hover.over = false
				f.ticks(16)
				So(f.session.Cursor().Time, ShouldEqual, 0)
				So(f.session.Cursor().Paused, ShouldBeTrue)
			})
		})

		Convey("the host is posed at the cursor time every tick", func() {
			f.ticks(2)
			last := f.host.evaluated[len(f.host.evaluated)-1]
			So(last, ShouldEqual, f.session.Cursor().Time)
		})
	})
}

func TestActivate(t *testing.T) {
	Convey("Given the lid hovered open to two seconds", t, func() {
		f := newFixture(false, FixedTarget(screenPose))
		f.hover.over = true
		f.session.Tick(2.0 / 3.0)
		So(f.session.Cursor().Time, ShouldAlmostEqual, 2.0)

		f.viewport.position = mgl64.Vec3{9, 9, 9}

		Convey("activating forces the opening from zero", func() {
			f.session.Deliver(ActivateRequested{})
			cur := f.session.Cursor()
			So(f.session.Mode(), ShouldEqual, ModeForcedOpening)
			So(cur.Time, ShouldEqual, 0)
			So(cur.Rate, ShouldEqual, 3)
			So(cur.Unattended, ShouldBeTrue)
			So(f.session.Camera(), ShouldResemble, DefaultConfig().Initial)
			So(f.viewport.position, ShouldResemble, DefaultConfig().Initial.Position)

			Convey("hover is ignored while forced", func() {
				calls := f.hover.calls
				f.hover.over = false
				f.session.Tick(tick)
				So(f.hover.calls, ShouldEqual, calls)
				So(f.session.Cursor().Time, ShouldEqual, 0.375)
			})

			Convey("a second activate is a no-op", func() {
				f.session.Tick(tick)
				before := f.session.Cursor()
				f.session.Deliver(ActivateRequested{})
				So(f.session.Cursor(), ShouldResemble, before)
				So(f.session.Mode(), ShouldEqual, ModeForcedOpening)
			})
		})
	})
}

func TestZoomIn(t *testing.T) {
	Convey("Given a forced opening", t, func() {
		f := newFixture(false, FixedTarget(screenPose))
		f.session.Deliver(ActivateRequested{})

		Convey("the zoom waits for the clip to pass the guard", func() {
			f.session.Tick(tick)
			So(f.session.Mode(), ShouldEqual, ModeForcedOpening)
			_, active := f.session.Segment()
			So(active, ShouldBeFalse)

			f.session.Tick(tick)
			So(f.session.Mode(), ShouldEqual, ModeZoomingIn)
			seg, active := f.session.Segment()
			So(active, ShouldBeTrue)
			So(seg.Duration, ShouldEqual, 2)
			So(seg.From, ShouldResemble, DefaultConfig().Initial)
			So(seg.To, ShouldResemble, screenPose)
			So(seg.Elapsed, ShouldEqual, 0)

			Convey("and navigates exactly once after two seconds", func() {
				f.ticks(15)
				So(f.nav.targets, ShouldBeEmpty)
				So(f.session.Navigated(), ShouldBeFalse)

				f.ticks(1)
				So(f.nav.targets, ShouldResemble, []string{"interactive"})
				So(f.viewport.position.ApproxEqual(screenPose.Position), ShouldBeTrue)
				So(f.viewport.lookAt.ApproxEqual(screenPose.LookAt), ShouldBeTrue)

				f.ticks(20)
				So(len(f.nav.targets), ShouldEqual, 1)
			})

			Convey("and activate during the zoom changes nothing", func() {
				f.session.Deliver(ActivateRequested{})
				So(f.session.Mode(), ShouldEqual, ModeZoomingIn)
			})
		})
	})

	Convey("Given a model without a screen node", t, func() {
		cfg := DefaultConfig()
		targets := WithFallback(cfg.Fallback, MeshTarget{Locator: stubLocator{}, Node: "screen"})
		f := newFixture(false, targets)
		f.session.Deliver(ActivateRequested{})
		f.ticks(2)

		Convey("the zoom heads for the fallback pose", func() {
			seg, active := f.session.Segment()
			So(active, ShouldBeTrue)
			So(seg.To, ShouldResemble, cfg.Fallback)
		})
	})
}

func TestExitSeededStart(t *testing.T) {
	Convey("Given the exit flag at startup", t, func() {
		f := newFixture(true, FixedTarget(screenPose))

		Convey("the session starts pre-seeded for the zoom out", func() {
			cur := f.session.Cursor()
			So(f.session.Mode(), ShouldEqual, ModeWaitingForAnimation)
			So(f.session.ExitPending(), ShouldBeTrue)
			So(cur.Time, ShouldEqual, 9)
			So(cur.Rate, ShouldEqual, 1)
			So(cur.Unattended, ShouldBeTrue)
			So(f.session.Camera(), ShouldResemble, screenPose)
			So(f.viewport.position, ShouldResemble, screenPose.Position)

			seg, active := f.session.Segment()
			So(active, ShouldBeTrue)
			So(seg.From, ShouldResemble, screenPose)
			So(seg.To, ShouldResemble, DefaultConfig().Exit.Target)
			So(seg.Duration, ShouldEqual, 3)
		})

		Convey("the first tick only starts the zoom out", func() {
			f.session.Tick(tick)
			So(f.session.Mode(), ShouldEqual, ModeZoomingOut)
			So(f.session.Camera(), ShouldResemble, screenPose)
			So(f.hover.calls, ShouldEqual, 0)

			Convey("activate is ignored while the exit is pending", func() {
				f.session.Deliver(ActivateRequested{})
				So(f.session.Mode(), ShouldEqual, ModeZoomingOut)
			})

			Convey("the exit completes within the zoom duration and returns to idle", func() {
				n := 0
				for f.session.Mode() != ModeIdle && n < 24 {
					f.session.Tick(tick)
					n++
				}
				So(f.session.Mode(), ShouldEqual, ModeIdle)
				So(n, ShouldBeGreaterThan, 1)
				So(f.entry.cleared, ShouldEqual, 1)
				So(f.session.ExitPending(), ShouldBeFalse)

				cur := f.session.Cursor()
				So(cur.Time, ShouldEqual, 0)
				So(cur.Paused, ShouldBeTrue)
				So(f.host.evaluated[len(f.host.evaluated)-1], ShouldEqual, 0)
				So(f.session.Camera(), ShouldResemble, DefaultConfig().Initial)
				So(f.viewport.position, ShouldResemble, DefaultConfig().Initial.Position)
				_, active := f.session.Segment()
				So(active, ShouldBeFalse)
				So(f.nav.targets, ShouldBeEmpty)

				Convey("and hover control resumes", func() {
					f.hover.over = true
					f.session.Tick(tick)
					So(f.session.Cursor().Time, ShouldEqual, 0.375)
				})
			})
		})
	})

	Convey("Given an exit flag that fails to clear", t, func() {
		f := newFixture(true, FixedTarget(screenPose))
		f.entry.clearErr = errors.New("store offline")
		f.ticks(24)

		Convey("the session still returns to idle", func() {
			So(f.session.Mode(), ShouldEqual, ModeIdle)
			So(f.entry.cleared, ShouldEqual, 1)
		})
	})
}

func TestReconfigureOnlyWhileIdle(t *testing.T) {
	Convey("Given a session", t, func() {
		f := newFixture(false, nil)
		cfg := DefaultConfig()
		cfg.Hover.OpenThreshold = 3

		Convey("reconfigure applies while idle", func() {
			So(f.session.Reconfigure(cfg, nil), ShouldBeTrue)
			f.hover.over = true
			f.ticks(16)
			So(f.session.Cursor().Time, ShouldEqual, 3)
		})

		Convey("reconfigure is refused mid-sequence", func() {
			f.session.Deliver(ActivateRequested{})
			So(f.session.Reconfigure(cfg, nil), ShouldBeFalse)
		})
	})
}

func TestNilSession(t *testing.T) {
	var s *Session
	s.Tick(1)
	s.Deliver(ActivateRequested{})
	s.Resize(10, 10)
	if s.Mode() != ModeIdle || s.ExitPending() || s.Navigated() {
		t.Fatalf("nil session should report idle defaults")
	}
}
