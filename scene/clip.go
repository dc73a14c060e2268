package scene

import (
	"fmt"
	"sort"
)

// Property names a node channel a track animates.
type Property string

const (
	PositionX Property = "position_x"
	PositionY Property = "position_y"
	PositionZ Property = "position_z"
	RotationX Property = "rotation_x"
	RotationY Property = "rotation_y"
	RotationZ Property = "rotation_z"
)

// Keyframe is a value at a clip time. Rotation values are radians.
type Keyframe struct {
	Time  float64
	Value float64
}

// Track animates one property of one node.
type Track struct {
	Node     string
	Property Property
	Keys     []Keyframe
}

// Clip is a named set of tracks sharing one timeline.
type Clip struct {
	Name     string
	Duration float64
	Tracks   []Track
}

// NewTrack validates the property and sorts keys by time.
func NewTrack(node string, prop Property, keys []Keyframe) (Track, error) {
	switch prop {
	case PositionX, PositionY, PositionZ, RotationX, RotationY, RotationZ:
	default:
		return Track{}, fmt.Errorf("scene: track %s: unknown property %q", node, prop)
	}
	if len(keys) == 0 {
		return Track{}, fmt.Errorf("scene: track %s.%s: no keyframes", node, prop)
	}
	sorted := append([]Keyframe(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return Track{Node: node, Property: prop, Keys: sorted}, nil
}

// Sample linearly interpolates the track at t, holding the first and last
// values outside the keyed range.
func (t Track) Sample(at float64) float64 {
	if len(t.Keys) == 0 {
		return 0
	}
	if at <= t.Keys[0].Time {
		return t.Keys[0].Value
	}
	last := t.Keys[len(t.Keys)-1]
	if at >= last.Time {
		return last.Value
	}
	i := sort.Search(len(t.Keys), func(i int) bool { return t.Keys[i].Time > at })
	a, b := t.Keys[i-1], t.Keys[i]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Value
	}
	f := (at - a.Time) / span
	return a.Value + (b.Value-a.Value)*f
}

func (t Track) apply(n *Node, at float64) {
	v := t.Sample(at)
	switch t.Property {
	case PositionX:
		n.Translation[0] = v
	case PositionY:
		n.Translation[1] = v
	case PositionZ:
		n.Translation[2] = v
	case RotationX:
		n.Rotation[0] = v
	case RotationY:
		n.Rotation[1] = v
	case RotationZ:
		n.Rotation[2] = v
	}
}
