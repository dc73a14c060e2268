package choreo

import "github.com/milk9111/lidscene/common"

// ClipHost is the playback host for one clip bound to a node hierarchy.
// Evaluate poses the hierarchy at the given clip time.
type ClipHost interface {
	Duration() float64
	Evaluate(t float64)
}

// AnimationCursor is the logical playback state of the lid clip, decoupled
// from the render clock.
type AnimationCursor struct {
	Duration float64
	Time     float64
	Rate     float64
	Paused   bool
	// Unattended is set by ForcePlayFrom; Tick only advances Time while it is set.
	Unattended bool
}

// ClipDriver moves an AnimationCursor and asks its host to evaluate the pose.
type ClipDriver struct {
	host   ClipHost
	cursor AnimationCursor
}

// NewClipDriver creates a paused driver at time 0.
func NewClipDriver(host ClipHost) *ClipDriver {
	d := &ClipDriver{host: host}
	if host != nil {
		d.cursor.Duration = host.Duration()
	}
	if d.cursor.Duration < 0 {
		d.cursor.Duration = 0
	}
	d.cursor.Rate = 1
	d.cursor.Paused = true
	return d
}

// Cursor returns a copy of the current cursor.
func (d *ClipDriver) Cursor() AnimationCursor {
	if d == nil {
		return AnimationCursor{}
	}
	return d.cursor
}

func (d *ClipDriver) Time() float64 {
	if d == nil {
		return 0
	}
	return d.cursor.Time
}

func (d *ClipDriver) Duration() float64 {
	if d == nil {
		return 0
	}
	return d.cursor.Duration
}

// AdvanceTowardOpen moves the cursor forward by delta*rate, never past threshold.
// The cursor is paused whenever it rests at the threshold.
func (d *ClipDriver) AdvanceTowardOpen(delta, rate, threshold float64) {
	if d == nil {
		return
	}
	d.cursor.Unattended = false
	threshold = common.Clamp(threshold, 0, d.cursor.Duration)
	if d.cursor.Time >= threshold {
		d.cursor.Paused = true
		return
	}
	d.cursor.Time = d.clamp(min(d.cursor.Time+step(delta, rate), threshold))
	d.cursor.Paused = d.cursor.Time >= threshold
}

// AdvanceTowardClosed moves the cursor backward by delta*rate, never below 0,
// and is paused whenever it rests at 0.
func (d *ClipDriver) AdvanceTowardClosed(delta, rate float64) {
	if d == nil {
		return
	}
	d.cursor.Unattended = false
	if d.cursor.Time <= 0 {
		d.cursor.Time = 0
		d.cursor.Paused = true
		return
	}
	d.cursor.Time = d.clamp(max(d.cursor.Time-step(delta, rate), 0))
	d.cursor.Paused = d.cursor.Time <= 0
}

// ForcePlayFrom resets the cursor and starts unattended playback at t with rate.
func (d *ClipDriver) ForcePlayFrom(t, rate float64) {
	if d == nil {
		return
	}
	d.cursor = AnimationCursor{
		Duration:   d.cursor.Duration,
		Time:       d.clamp(t),
		Rate:       rate,
		Unattended: true,
	}
}

// Reset parks the cursor at time 0, paused.
func (d *ClipDriver) Reset() {
	if d == nil {
		return
	}
	d.cursor = AnimationCursor{Duration: d.cursor.Duration, Rate: 1, Paused: true}
}

// Tick advances unattended playback (play once, clamp at the end) and then
// evaluates the pose at the cursor time.
func (d *ClipDriver) Tick(delta float64) {
	if d == nil {
		return
	}
	if d.cursor.Unattended && !d.cursor.Paused {
		d.cursor.Time = d.clamp(d.cursor.Time + step(delta, d.cursor.Rate))
		if d.cursor.Time >= d.cursor.Duration {
			d.cursor.Paused = true
		}
	}
	if d.host != nil {
		d.host.Evaluate(d.cursor.Time)
	}
}

func (d *ClipDriver) clamp(t float64) float64 {
	return common.Clamp(t, 0, d.cursor.Duration)
}

func step(delta, rate float64) float64 {
	if delta < 0 || rate < 0 {
		return 0
	}
	return delta * rate
}
