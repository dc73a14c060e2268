package assets

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lidscene/prefabs"
	"github.com/milk9111/lidscene/scene"
	"gopkg.in/yaml.v3"
)

// ErrAssetLoad is the single failure reported for a model that could not be
// read or parsed.
var ErrAssetLoad = errors.New("assets: load failed")

var defaultMeshColor = color.RGBA{R: 160, G: 160, B: 168, A: 255}

type ModelSpec struct {
	Name     string     `yaml:"name"`
	Position [3]float64 `yaml:"position"`
	Root     NodeSpec   `yaml:"root"`
	Clips    []ClipSpec `yaml:"clips"`
}

type NodeSpec struct {
	Name      string      `yaml:"name"`
	Translate [3]float64  `yaml:"translate"`
	Rotate    [3]float64  `yaml:"rotate"` // degrees
	Scale     *[3]float64 `yaml:"scale"`
	Mesh      *MeshSpec   `yaml:"mesh"`
	Children  []NodeSpec  `yaml:"children"`
}

type MeshSpec struct {
	Color prefabs.YAMLColor `yaml:"color"`
	Boxes []BoxSpec         `yaml:"boxes"`
	Quads [][4][3]float64   `yaml:"quads"`
}

type BoxSpec struct {
	Center [3]float64 `yaml:"center"`
	Size   [3]float64 `yaml:"size"`
}

type ClipSpec struct {
	Name     string      `yaml:"name"`
	Duration float64     `yaml:"duration"`
	Tracks   []TrackSpec `yaml:"tracks"`
}

type TrackSpec struct {
	Node     string       `yaml:"node"`
	Property string       `yaml:"property"`
	Degrees  bool         `yaml:"degrees"`
	Keys     [][2]float64 `yaml:"keys"`
}

// LoadModel reads and builds a model. Every failure wraps ErrAssetLoad.
func LoadModel(path string) (*scene.Model, error) {
	data, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrAssetLoad, path, err)
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParseModel decodes a YAML model description.
func ParseModel(data []byte) (*scene.Model, error) {
	var spec ModelSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %w", ErrAssetLoad, err)
	}
	return spec.Build()
}

// Build converts the model description into a scene model.
func (s ModelSpec) Build() (*scene.Model, error) {
	if s.Root.Name == "" && len(s.Root.Children) == 0 && s.Root.Mesh == nil {
		return nil, fmt.Errorf("%w: model %q has no root", ErrAssetLoad, s.Name)
	}
	root := buildNode(s.Root)
	root.Translation = root.Translation.Add(mgl64.Vec3(s.Position))

	clips := make([]*scene.Clip, 0, len(s.Clips))
	for _, cs := range s.Clips {
		clip, err := cs.build()
		if err != nil {
			return nil, fmt.Errorf("%w: model %q: %w", ErrAssetLoad, s.Name, err)
		}
		clips = append(clips, clip)
	}
	return scene.NewModel(s.Name, root, clips...), nil
}

func buildNode(ns NodeSpec) *scene.Node {
	n := scene.NewNode(ns.Name)
	n.Translation = mgl64.Vec3(ns.Translate)
	n.Rotation = mgl64.Vec3{
		mgl64.DegToRad(ns.Rotate[0]),
		mgl64.DegToRad(ns.Rotate[1]),
		mgl64.DegToRad(ns.Rotate[2]),
	}
	if ns.Scale != nil {
		n.Scale = mgl64.Vec3(*ns.Scale)
	}
	if ns.Mesh != nil {
		n.Mesh = ns.Mesh.build()
	}
	for _, c := range ns.Children {
		n.Add(buildNode(c))
	}
	return n
}

func (ms MeshSpec) build() *scene.Mesh {
	mesh := &scene.Mesh{Color: defaultMeshColor}
	if ms.Color.Color != nil {
		mesh.Color = color.RGBAModel.Convert(ms.Color.Color).(color.RGBA)
	}
	for _, b := range ms.Boxes {
		mesh.Triangles = append(mesh.Triangles, scene.Box(mgl64.Vec3(b.Center), mgl64.Vec3(b.Size))...)
	}
	for _, q := range ms.Quads {
		mesh.Triangles = append(mesh.Triangles, scene.Quad([4]mgl64.Vec3{
			mgl64.Vec3(q[0]), mgl64.Vec3(q[1]), mgl64.Vec3(q[2]), mgl64.Vec3(q[3]),
		})...)
	}
	return mesh
}

func (cs ClipSpec) build() (*scene.Clip, error) {
	if cs.Name == "" {
		return nil, errors.New("clip without name")
	}
	if cs.Duration <= 0 {
		return nil, fmt.Errorf("clip %q: duration must be positive", cs.Name)
	}
	clip := &scene.Clip{Name: cs.Name, Duration: cs.Duration}
	for _, ts := range cs.Tracks {
		keys := make([]scene.Keyframe, 0, len(ts.Keys))
		for _, k := range ts.Keys {
			v := k[1]
			if ts.Degrees {
				v = mgl64.DegToRad(v)
			}
			keys = append(keys, scene.Keyframe{Time: k[0], Value: v})
		}
		track, err := scene.NewTrack(ts.Node, scene.Property(ts.Property), keys)
		if err != nil {
			return nil, fmt.Errorf("clip %q: %w", cs.Name, err)
		}
		clip.Tracks = append(clip.Tracks, track)
	}
	return clip, nil
}
