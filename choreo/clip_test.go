package choreo

import "testing"

type recordingHost struct {
	duration  float64
	evaluated []float64
}

func (h *recordingHost) Duration() float64 { return h.duration }

func (h *recordingHost) Evaluate(t float64) { h.evaluated = append(h.evaluated, t) }

func TestAdvanceTowardOpenStaysWithinThreshold(t *testing.T) {
	cases := []struct {
		name       string
		start      float64
		delta      float64
		rate       float64
		threshold  float64
		wantTime   float64
		wantPaused bool
	}{
		{"small_step", 0, 0.125, 3, 6, 0.375, false},
		{"lands_on_threshold", 5.625, 0.125, 3, 6, 6, true},
		{"overshoot_clamped", 5.9, 1, 3, 6, 6, true},
		{"already_open", 6, 0.125, 3, 6, 6, true},
		{"past_threshold_holds", 8, 0.125, 3, 6, 8, true},
		{"negative_delta", 2, -1, 3, 6, 2, false},
		{"threshold_beyond_clip", 11.5, 1, 3, 20, 12, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewClipDriver(&recordingHost{duration: 12})
			d.ForcePlayFrom(c.start, 1)
			d.AdvanceTowardOpen(c.delta, c.rate, c.threshold)

			cur := d.Cursor()
			if cur.Time != c.wantTime {
				t.Fatalf("time = %v, want %v", cur.Time, c.wantTime)
			}
			if cur.Paused != c.wantPaused {
				t.Fatalf("paused = %v, want %v", cur.Paused, c.wantPaused)
			}
			if cur.Unattended {
				t.Fatalf("advance should end unattended playback")
			}
		})
	}
}

func TestAdvanceTowardClosedStaysAboveZero(t *testing.T) {
	cases := []struct {
		name       string
		start      float64
		delta      float64
		wantTime   float64
		wantPaused bool
	}{
		{"small_step", 3, 0.125, 2.625, false},
		{"lands_on_zero", 0.375, 0.125, 0, true},
		{"undershoot_clamped", 0.2, 1, 0, true},
		{"already_closed", 0, 0.125, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := NewClipDriver(&recordingHost{duration: 12})
			d.ForcePlayFrom(c.start, 1)
			d.AdvanceTowardClosed(c.delta, 3)

			cur := d.Cursor()
			if cur.Time != c.wantTime || cur.Paused != c.wantPaused {
				t.Fatalf("cursor = %+v, want time %v paused %v", cur, c.wantTime, c.wantPaused)
			}
		})
	}
}

func TestForcePlayFromClampsAndPlaysOnce(t *testing.T) {
	host := &recordingHost{duration: 12}
	d := NewClipDriver(host)

	d.ForcePlayFrom(-4, 3)
	if d.Time() != 0 {
		t.Fatalf("start clamped to %v, want 0", d.Time())
	}

	d.ForcePlayFrom(11, 1)
	cur := d.Cursor()
	if !cur.Unattended || cur.Paused || cur.Rate != 1 {
		t.Fatalf("unexpected cursor after force play: %+v", cur)
	}

	for i := 0; i < 16; i++ {
		d.Tick(0.125)
	}
	cur = d.Cursor()
	if cur.Time != 12 || !cur.Paused {
		t.Fatalf("expected clip clamped at end and paused, got %+v", cur)
	}
	if got := host.evaluated[len(host.evaluated)-1]; got != 12 {
		t.Fatalf("host evaluated %v last, want 12", got)
	}
}

func TestTickDoesNotMoveHoverControlledCursor(t *testing.T) {
	host := &recordingHost{duration: 12}
	d := NewClipDriver(host)
	d.AdvanceTowardOpen(0.125, 3, 6)

	before := d.Time()
	d.Tick(1)
	if d.Time() != before {
		t.Fatalf("tick moved hover cursor from %v to %v", before, d.Time())
	}
	if len(host.evaluated) != 1 || host.evaluated[0] != before {
		t.Fatalf("expected one evaluation at %v, got %v", before, host.evaluated)
	}
}

func TestResetParksAtZero(t *testing.T) {
	d := NewClipDriver(&recordingHost{duration: 12})
	d.ForcePlayFrom(9, 1)
	d.Tick(0.5)
	d.Reset()

	cur := d.Cursor()
	if cur.Time != 0 || !cur.Paused || cur.Unattended || cur.Duration != 12 {
		t.Fatalf("unexpected cursor after reset: %+v", cur)
	}
}

func TestNilClipDriver(t *testing.T) {
	var d *ClipDriver
	d.Tick(1)
	d.AdvanceTowardOpen(1, 3, 6)
	d.AdvanceTowardClosed(1, 3)
	d.ForcePlayFrom(1, 1)
	d.Reset()
	if d.Time() != 0 || d.Duration() != 0 {
		t.Fatalf("nil driver should report zero values")
	}
}
