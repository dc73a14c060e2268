package assets

import (
	"errors"
	"testing"

	"github.com/milk9111/lidscene/scene"
)

func TestLoadEmbeddedLaptop(t *testing.T) {
	m, err := LoadModel("laptop.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, name := range []string{"base", "lid", "screen", "keyboard"} {
		if _, ok := m.Node(name); !ok {
			t.Fatalf("node %q missing", name)
		}
	}
	clip, ok := m.Clips["open"]
	if !ok || clip.Duration != 12 {
		t.Fatalf("open clip = %+v", clip)
	}
}

func TestLaptopLidOpensWithClip(t *testing.T) {
	m, err := LoadModel("assets/laptop.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mixer, err := scene.NewMixer(m, "open")
	if err != nil {
		t.Fatalf("mixer: %v", err)
	}

	closed, _ := m.NodeCenter("screen")
	mixer.Evaluate(6)
	open, _ := m.NodeCenter("screen")
	if closed.Y() > 0 || open.Y() < 5 {
		t.Fatalf("screen center closed=%v open=%v", closed, open)
	}
	mixer.Evaluate(12)
	back, _ := m.NodeCenter("screen")
	if back.Sub(closed).Len() > 1e-6 {
		t.Fatalf("clip should end closed: %v vs %v", back, closed)
	}
}

func TestParseModelFailures(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"bad yaml", "root: [unterminated"},
		{"no root", "name: empty"},
		{"clip without duration", "root: {name: r}\nclips: [{name: open}]"},
		{"unknown property", "root: {name: r}\nclips: [{name: open, duration: 1, tracks: [{node: r, property: spin, keys: [[0, 1]]}]}]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseModel([]byte(c.data)); !errors.Is(err, ErrAssetLoad) {
				t.Fatalf("err = %v, want ErrAssetLoad", err)
			}
		})
	}
}

func TestLoadModelMissingFile(t *testing.T) {
	if _, err := LoadModel("nope/missing.yaml"); !errors.Is(err, ErrAssetLoad) {
		t.Fatalf("err = %v, want ErrAssetLoad", err)
	}
}

func TestCleanAssetPath(t *testing.T) {
	cases := map[string]string{
		"":                      "",
		"laptop.yaml":           "laptop.yaml",
		"assets/laptop.yaml":    "laptop.yaml",
		"/srv/assets/desk.yaml": "desk.yaml",
		"/tmp/other.yaml":       "other.yaml",
	}
	for in, want := range cases {
		if got := cleanAssetPath(in); got != want {
			t.Errorf("cleanAssetPath(%q) = %q, want %q", in, got, want)
		}
	}
}
