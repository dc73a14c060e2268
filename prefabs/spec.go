package prefabs

import (
	"fmt"
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lidscene/choreo"
	"github.com/milk9111/lidscene/scene"
	"gopkg.in/yaml.v3"
)

// SceneFile is the scene description loaded at startup.
const SceneFile = "scene.yaml"

// LoadSpec decodes a YAML prefab over defaults; keys missing from the file
// keep their default values.
func LoadSpec[T any](filename string, defaults T) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec, err := decodeSpec(data, defaults)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func decodeSpec[T any](data []byte, defaults T) (T, error) {
	spec := defaults
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// SceneSpec describes the landing scene: which model and clip to use, where
// the camera goes, and the choreography timings.
type SceneSpec struct {
	Name     string       `yaml:"name"`
	Model    string       `yaml:"model"`
	Clip     string       `yaml:"clip"`
	Camera   CameraSpec   `yaml:"camera"`
	Hover    HoverSpec    `yaml:"hover"`
	Activate ActivateSpec `yaml:"activate"`
	ZoomIn   ZoomInSpec   `yaml:"zoom_in"`
	Exit     ExitSpec     `yaml:"exit"`
	Target   TargetSpec   `yaml:"target"`
	Lighting LightingSpec `yaml:"lighting"`
}

type PoseSpec struct {
	Position [3]float64 `yaml:"position,flow"`
	LookAt   [3]float64 `yaml:"look_at,flow"`
}

func (p PoseSpec) Pose() choreo.Pose {
	return choreo.Pose{Position: mgl64.Vec3(p.Position), LookAt: mgl64.Vec3(p.LookAt)}
}

// NewPoseSpec is the YAML form of a pose.
func NewPoseSpec(p choreo.Pose) PoseSpec {
	return PoseSpec{Position: [3]float64(p.Position), LookAt: [3]float64(p.LookAt)}
}

type CameraSpec struct {
	FOV      float64  `yaml:"fov"`
	Initial  PoseSpec `yaml:"initial"`
	Fallback PoseSpec `yaml:"fallback"`
}

type HoverSpec struct {
	Rate          float64 `yaml:"rate"`
	OpenThreshold float64 `yaml:"open_threshold"`
}

type ActivateSpec struct {
	Rate      float64 `yaml:"rate"`
	ZoomGuard float64 `yaml:"zoom_guard"`
}

type ZoomInSpec struct {
	Duration float64 `yaml:"duration"`
	NextPage string  `yaml:"next_page"`
}

type ExitSpec struct {
	Seek         float64  `yaml:"seek"`
	Rate         float64  `yaml:"rate"`
	Duration     float64  `yaml:"duration"`
	Target       PoseSpec `yaml:"target"`
	CameraDone   float64  `yaml:"camera_done"`
	ClipDone     float64  `yaml:"clip_done"`
	MinForward   float64  `yaml:"min_forward"`
	ForwardScale float64  `yaml:"forward_scale"`
}

// TargetSpec configures how the screen-facing hover target is found.
type TargetSpec struct {
	Node     string     `yaml:"node"`
	Offset   [3]float64 `yaml:"offset"`
	ClipTime float64    `yaml:"clip_time"`
	Script   string     `yaml:"script"`
}

type LightingSpec struct {
	Ambient     float64    `yaml:"ambient"`
	Directional float64    `yaml:"directional"`
	Direction   [3]float64 `yaml:"direction"`
	Background  *YAMLColor `yaml:"background"`
}

// DefaultSceneSpec is the stock laptop scene. Keys missing from scene.yaml
// keep these values.
func DefaultSceneSpec() SceneSpec {
	cfg := choreo.DefaultConfig()
	light := scene.DefaultLighting()
	return SceneSpec{
		Name:  "landing",
		Model: "laptop.yaml",
		Clip:  "open",
		Camera: CameraSpec{
			FOV:      scene.DefaultFOV,
			Initial:  NewPoseSpec(cfg.Initial),
			Fallback: NewPoseSpec(cfg.Fallback),
		},
		Hover:    HoverSpec{Rate: cfg.Hover.Rate, OpenThreshold: cfg.Hover.OpenThreshold},
		Activate: ActivateSpec{Rate: cfg.Activate.Rate, ZoomGuard: cfg.Activate.ZoomGuard},
		ZoomIn:   ZoomInSpec{Duration: cfg.ZoomIn.Duration, NextPage: cfg.ZoomIn.NextPage},
		Exit: ExitSpec{
			Seek:         cfg.Exit.Seek,
			Rate:         cfg.Exit.Rate,
			Duration:     cfg.Exit.Duration,
			Target:       NewPoseSpec(cfg.Exit.Target),
			CameraDone:   cfg.Exit.CameraDone,
			ClipDone:     cfg.Exit.ClipDone,
			MinForward:   cfg.Exit.MinForward,
			ForwardScale: cfg.Exit.ForwardScale,
		},
		Target: TargetSpec{
			Node:     "screen",
			Offset:   [3]float64{0, 2.5, 6},
			ClipTime: 6,
		},
		Lighting: LightingSpec{
			Ambient:     light.Ambient,
			Directional: light.Directional,
			Direction:   [3]float64(light.Direction),
		},
	}
}

// LoadSceneSpec loads a scene description by prefab name.
func LoadSceneSpec(filename string) (SceneSpec, error) {
	return LoadSpec(filename, DefaultSceneSpec())
}

// Config converts the scene description into choreography tunables.
func (s SceneSpec) Config() choreo.Config {
	return choreo.Config{
		Initial:  s.Camera.Initial.Pose(),
		Fallback: s.Camera.Fallback.Pose(),
		Hover:    choreo.HoverConfig{Rate: s.Hover.Rate, OpenThreshold: s.Hover.OpenThreshold},
		Activate: choreo.ActivateConfig{Rate: s.Activate.Rate, ZoomGuard: s.Activate.ZoomGuard},
		ZoomIn:   choreo.ZoomInConfig{Duration: s.ZoomIn.Duration, NextPage: s.ZoomIn.NextPage},
		Exit: choreo.ExitConfig{
			Seek:         s.Exit.Seek,
			Rate:         s.Exit.Rate,
			Duration:     s.Exit.Duration,
			Target:       s.Exit.Target.Pose(),
			CameraDone:   s.Exit.CameraDone,
			ClipDone:     s.Exit.ClipDone,
			MinForward:   s.Exit.MinForward,
			ForwardScale: s.Exit.ForwardScale,
		},
	}
}

// LightingConfig returns the scene lighting and the clear color, nil when the
// spec leaves the background unset.
func (s SceneSpec) LightingConfig() (scene.Lighting, color.Color) {
	l := scene.Lighting{
		Ambient:     s.Lighting.Ambient,
		Directional: s.Lighting.Directional,
		Direction:   mgl64.Vec3(s.Lighting.Direction),
	}
	if s.Lighting.Background == nil {
		return l, nil
	}
	return l, s.Lighting.Background.Color
}

// TargetStrategy builds the hover target chain: the script when one is given
// and compiles, then the named node, then the fallback pose.
func (s SceneSpec) TargetStrategy(locator choreo.MeshLocator, script []byte) choreo.TargetStrategy {
	cfg := s.Config()
	offset := mgl64.Vec3(s.Target.Offset)

	var strategies []choreo.TargetStrategy
	if len(script) > 0 {
		st, err := choreo.NewScriptTarget(script, locator, s.Target.Node, offset, s.Target.ClipTime)
		if err != nil {
			log.Printf("prefabs: target script %s: %v", s.Target.Script, err)
		} else {
			strategies = append(strategies, st)
		}
	}
	if s.Target.Node != "" {
		strategies = append(strategies, choreo.MeshTarget{
			Locator:  locator,
			Node:     s.Target.Node,
			Offset:   offset,
			ClipTime: s.Target.ClipTime,
		})
	}
	return choreo.WithFallback(cfg.Fallback, strategies...)
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
