package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lidscene/common"
)

var ErrClipNotFound = errors.New("scene: clip not found")

// Mixer binds one clip to a model's node hierarchy and poses it on demand.
type Mixer struct {
	model *Model
	clip  *Clip
	time  float64
	bound []boundTrack
}

type boundTrack struct {
	track Track
	node  *Node
}

// NewMixer binds the named clip. Tracks that reference missing nodes are
// dropped.
func NewMixer(model *Model, clipName string) (*Mixer, error) {
	if model == nil {
		return nil, fmt.Errorf("scene: mixer: %w: no model", ErrClipNotFound)
	}
	clip, ok := model.Clips[clipName]
	if !ok {
		return nil, fmt.Errorf("scene: mixer %q: %w", clipName, ErrClipNotFound)
	}
	m := &Mixer{model: model, clip: clip}
	for _, t := range clip.Tracks {
		n, ok := model.Node(t.Node)
		if !ok {
			continue
		}
		m.bound = append(m.bound, boundTrack{track: t, node: n})
	}
	return m, nil
}

func (m *Mixer) Duration() float64 {
	if m == nil || m.clip == nil {
		return 0
	}
	return m.clip.Duration
}

// Time returns the clip time of the last evaluation.
func (m *Mixer) Time() float64 {
	if m == nil {
		return 0
	}
	return m.time
}

// Evaluate poses the hierarchy at clip time t, clamped to the clip.
func (m *Mixer) Evaluate(t float64) {
	if m == nil {
		return
	}
	m.time = common.Clamp(t, 0, m.Duration())
	for _, b := range m.bound {
		b.track.apply(b.node, m.time)
	}
}

// NodeCenter reports the world-space center of the named node as it would be
// posed at clipTime. The current pose is restored afterwards.
func (m *Mixer) NodeCenter(name string, clipTime float64) (mgl64.Vec3, bool) {
	if m == nil {
		return mgl64.Vec3{}, false
	}
	prev := m.time
	m.Evaluate(clipTime)
	c, ok := m.model.NodeCenter(name)
	m.Evaluate(prev)
	return c, ok
}
