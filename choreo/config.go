package choreo

import "github.com/go-gl/mathgl/mgl64"

// HoverConfig controls the hover-driven lid.
type HoverConfig struct {
	Rate          float64
	OpenThreshold float64
}

// ActivateConfig controls the forced opening started by the activate key.
type ActivateConfig struct {
	Rate      float64
	ZoomGuard float64
}

// ZoomInConfig controls the zoom into the screen.
type ZoomInConfig struct {
	Duration float64
	NextPage string
}

// ExitConfig controls the exit-seeded zoom out.
type ExitConfig struct {
	Seek     float64
	Rate     float64
	Duration float64
	Target   Pose
	// CameraDone and ClipDone are the completion fractions of the eased
	// camera progress and the clip duration.
	CameraDone   float64
	ClipDone     float64
	MinForward   float64
	ForwardScale float64
}

// Config holds the tunables of a Session.
type Config struct {
	Initial  Pose
	Fallback Pose
	Hover    HoverConfig
	Activate ActivateConfig
	ZoomIn   ZoomInConfig
	Exit     ExitConfig
}

// DefaultConfig matches the stock laptop scene.
func DefaultConfig() Config {
	return Config{
		Initial: Pose{
			Position: mgl64.Vec3{0, 15, 40},
			LookAt:   mgl64.Vec3{0, 0, 0},
		},
		Fallback: Pose{
			Position: mgl64.Vec3{0, 10, 12},
			LookAt:   mgl64.Vec3{0, 3, 0},
		},
		Hover:    HoverConfig{Rate: 3, OpenThreshold: 6},
		Activate: ActivateConfig{Rate: 3, ZoomGuard: 0.5},
		ZoomIn:   ZoomInConfig{Duration: 2, NextPage: "interactive"},
		Exit: ExitConfig{
			Seek:     9,
			Rate:     1,
			Duration: 3,
			Target: Pose{
				Position: mgl64.Vec3{0, 25, 40},
				LookAt:   mgl64.Vec3{0, 10, 0},
			},
			CameraDone:   0.8,
			ClipDone:     0.8,
			MinForward:   0.1,
			ForwardScale: 10,
		},
	}
}
