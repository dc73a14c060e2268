package choreo

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lidscene/common"
)

// Pose is a camera placement: where the camera sits and what it looks at.
type Pose struct {
	Position mgl64.Vec3
	LookAt   mgl64.Vec3
}

// Lerp interpolates both endpoints of the pose linearly.
func (p Pose) Lerp(to Pose, t float64) Pose {
	return Pose{
		Position: common.LerpVec3(p.Position, to.Position, t),
		LookAt:   common.LerpVec3(p.LookAt, to.LookAt, t),
	}
}

// Viewport is the camera the rig drives.
type Viewport interface {
	Place(position, lookAt mgl64.Vec3)
	// Forward is the unit view direction of the current orientation.
	Forward() mgl64.Vec3
}

// ZoomSegment is one eased camera move between two poses.
type ZoomSegment struct {
	From     Pose
	To       Pose
	Elapsed  float64
	Duration float64
}

// Progress returns the raw, uneased progress in [0,1].
func (s ZoomSegment) Progress() float64 {
	if s.Duration <= 0 {
		return 1
	}
	return common.Clamp(s.Elapsed/s.Duration, 0, 1)
}

// CameraRig owns the camera pose and the single active zoom segment.
type CameraRig struct {
	initial Pose
	current Pose
	segment *ZoomSegment
}

// NewCameraRig creates a rig resting at the initial pose.
func NewCameraRig(initial Pose) *CameraRig {
	return &CameraRig{initial: initial, current: initial}
}

func (r *CameraRig) Pose() Pose {
	if r == nil {
		return Pose{}
	}
	return r.current
}

func (r *CameraRig) Initial() Pose {
	if r == nil {
		return Pose{}
	}
	return r.initial
}

// Segment returns the active segment, if any.
func (r *CameraRig) Segment() (ZoomSegment, bool) {
	if r == nil || r.segment == nil {
		return ZoomSegment{}, false
	}
	return *r.segment, true
}

func (r *CameraRig) Active() bool {
	return r != nil && r.segment != nil
}

// SnapTo places the camera immediately without interpolation.
func (r *CameraRig) SnapTo(p Pose) {
	if r == nil {
		return
	}
	r.current = p
}

// SetTargets starts a new segment, replacing any active one.
func (r *CameraRig) SetTargets(from, to Pose, duration float64) {
	if r == nil {
		return
	}
	r.segment = &ZoomSegment{From: from, To: to, Duration: duration}
}

// Clear drops the active segment and leaves the pose where it is.
func (r *CameraRig) Clear() {
	if r == nil {
		return
	}
	r.segment = nil
}

// Tick advances the active segment by delta and returns the interpolated pose
// together with the smoothstep-eased progress. Without a segment it returns
// the current pose and 1.
func (r *CameraRig) Tick(delta float64) (Pose, float64) {
	if r == nil {
		return Pose{}, 1
	}
	if r.segment == nil {
		return r.current, 1
	}
	if delta > 0 {
		r.segment.Elapsed += delta
	}
	if r.segment.Duration > 0 && r.segment.Elapsed > r.segment.Duration {
		r.segment.Elapsed = r.segment.Duration
	}
	t := common.Smoothstep(r.segment.Progress())
	r.current = r.segment.From.Lerp(r.segment.To, t)
	return r.current, t
}

// Apply pushes the current pose to the viewport.
func (r *CameraRig) Apply(v Viewport) {
	if r == nil || v == nil {
		return
	}
	v.Place(r.current.Position, r.current.LookAt)
}

// StableLookAt returns lookAt unless it sits closer than minForward to
// position, in which case it substitutes a point forwardScale units along the
// viewport's current forward direction.
func StableLookAt(position, lookAt, forward mgl64.Vec3, minForward, forwardScale float64) mgl64.Vec3 {
	dir := lookAt.Sub(position)
	if dir.Len() >= minForward {
		return lookAt
	}
	if forward.Len() == 0 {
		forward = mgl64.Vec3{0, 0, -1}
	}
	return position.Add(forward.Normalize().Mul(forwardScale))
}
