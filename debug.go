package main

import (
	"fmt"
	"log"

	"github.com/milk9111/lidscene/choreo"
	"github.com/milk9111/lidscene/prefabs"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// DebugTools are only created with -debug: prefab hot reload and copying the
// current camera pose for pasting into scene.yaml.
type DebugTools struct {
	watcher   *prefabs.Watcher
	clipboard bool
}

func NewDebugTools() *DebugTools {
	d := &DebugTools{}
	if w, err := prefabs.NewWatcher(); err != nil {
		log.Printf("debug: prefab watcher disabled: %v", err)
	} else {
		d.watcher = w
	}
	if err := clipboard.Init(); err != nil {
		log.Printf("debug: clipboard unavailable: %v", err)
	} else {
		d.clipboard = true
	}
	return d
}

// Changes returns the prefab and script files changed since the last call.
func (d *DebugTools) Changes() []string {
	if d == nil {
		return nil
	}
	return d.watcher.Drain()
}

// CopyPose writes the pose to the clipboard as a scene.yaml snippet and
// returns the snippet.
func (d *DebugTools) CopyPose(p choreo.Pose) (string, error) {
	if d == nil {
		return "", nil
	}
	out, err := poseYAML(p)
	if err != nil {
		return "", err
	}
	if d.clipboard {
		clipboard.Write(clipboard.FmtText, []byte(out))
	}
	return out, nil
}

func (d *DebugTools) Close() {
	if d == nil {
		return
	}
	if err := d.watcher.Close(); err != nil {
		log.Printf("debug: close watcher: %v", err)
	}
}

func poseYAML(p choreo.Pose) (string, error) {
	data, err := yaml.Marshal(prefabs.NewPoseSpec(p))
	if err != nil {
		return "", fmt.Errorf("debug: marshal pose: %w", err)
	}
	return string(data), nil
}
