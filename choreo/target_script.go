package choreo

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
)

// ScriptTarget computes the hover target with a tengo script. The script sees
// `screen` ({center: [x, y, z]} or undefined when the node is missing) and
// `offset` ([x, y, z]) and must set the globals `look_at` and `camera`.
type ScriptTarget struct {
	compiled *tengo.Compiled
	locator  MeshLocator
	node     string
	offset   mgl64.Vec3
	clipTime float64
}

// NewScriptTarget compiles src. The locator may be nil, in which case the
// script always sees an undefined screen.
func NewScriptTarget(src []byte, locator MeshLocator, node string, offset mgl64.Vec3, clipTime float64) (*ScriptTarget, error) {
	script := tengo.NewScript(src)
	_ = script.Add("screen", nil)
	_ = script.Add("offset", vecToArray(offset))
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("choreo: compile target script: %w", err)
	}
	return &ScriptTarget{
		compiled: compiled,
		locator:  locator,
		node:     node,
		offset:   offset,
		clipTime: clipTime,
	}, nil
}

func (s *ScriptTarget) HoverTarget() (Pose, error) {
	if s == nil || s.compiled == nil {
		return Pose{}, fmt.Errorf("%w: no script", ErrMissingTargetGeometry)
	}
	run := s.compiled.Clone()

	var screen any
	if s.locator != nil {
		if center, ok := s.locator.NodeCenter(s.node, s.clipTime); ok {
			screen = map[string]any{"center": vecToArray(center)}
		}
	}
	if err := run.Set("screen", screen); err != nil {
		return Pose{}, fmt.Errorf("choreo: set script screen: %w", err)
	}
	if err := run.Run(); err != nil {
		return Pose{}, fmt.Errorf("choreo: run target script: %w", err)
	}

	lookAt, ok := arrayToVec(run.Get("look_at"))
	if !ok {
		return Pose{}, fmt.Errorf("%w: script left look_at unset", ErrMissingTargetGeometry)
	}
	camera, ok := arrayToVec(run.Get("camera"))
	if !ok {
		return Pose{}, fmt.Errorf("%w: script left camera unset", ErrMissingTargetGeometry)
	}
	return Pose{Position: camera, LookAt: lookAt}, nil
}

func vecToArray(v mgl64.Vec3) []any {
	return []any{v[0], v[1], v[2]}
}

func arrayToVec(v *tengo.Variable) (mgl64.Vec3, bool) {
	if v == nil || v.IsUndefined() {
		return mgl64.Vec3{}, false
	}
	items := v.Array()
	if len(items) != 3 {
		return mgl64.Vec3{}, false
	}
	var out mgl64.Vec3
	for i, it := range items {
		switch n := it.(type) {
		case float64:
			out[i] = n
		case int64:
			out[i] = float64(n)
		default:
			return mgl64.Vec3{}, false
		}
	}
	return out, true
}
