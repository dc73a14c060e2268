package choreo

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrMissingTargetGeometry is returned when the screen-facing node a target
// is derived from does not exist.
var ErrMissingTargetGeometry = errors.New("choreo: target geometry missing")

// TargetStrategy computes the screen-facing hover target pose.
type TargetStrategy interface {
	HoverTarget() (Pose, error)
}

// FixedTarget always returns the same pose.
type FixedTarget Pose

func (f FixedTarget) HoverTarget() (Pose, error) {
	return Pose(f), nil
}

// MeshLocator finds the world-space center of a named node with the clip
// evaluated at clipTime.
type MeshLocator interface {
	NodeCenter(name string, clipTime float64) (mgl64.Vec3, bool)
}

// MeshTarget looks at the center of a named node and places the camera at a
// fixed offset from it.
type MeshTarget struct {
	Locator  MeshLocator
	Node     string
	Offset   mgl64.Vec3
	ClipTime float64
}

func (m MeshTarget) HoverTarget() (Pose, error) {
	if m.Locator == nil {
		return Pose{}, fmt.Errorf("%w: no locator", ErrMissingTargetGeometry)
	}
	center, ok := m.Locator.NodeCenter(m.Node, m.ClipTime)
	if !ok {
		return Pose{}, fmt.Errorf("%w: node %q", ErrMissingTargetGeometry, m.Node)
	}
	return Pose{Position: center.Add(m.Offset), LookAt: center}, nil
}

type fallbackTarget struct {
	strategies []TargetStrategy
	fallback   Pose
}

// WithFallback tries each strategy in order and returns fallback when all of
// them fail. The result never returns an error.
func WithFallback(fallback Pose, strategies ...TargetStrategy) TargetStrategy {
	return &fallbackTarget{strategies: strategies, fallback: fallback}
}

func (f *fallbackTarget) HoverTarget() (Pose, error) {
	for _, s := range f.strategies {
		if s == nil {
			continue
		}
		p, err := s.HoverTarget()
		if err == nil {
			return p, nil
		}
		log.Printf("choreo: hover target strategy %T failed: %v", s, err)
	}
	log.Printf("choreo: using fallback hover target %v -> %v", f.fallback.Position, f.fallback.LookAt)
	return f.fallback, nil
}
