package assets

import (
	"context"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/lidscene/prefabs"
	"github.com/milk9111/lidscene/scene"
	"golang.org/x/sync/errgroup"
)

// Bundle is everything the landing page needs before its session can start.
type Bundle struct {
	Scene  prefabs.SceneSpec
	Model  *scene.Model
	Script []byte
}

// Result is the single value a Loader publishes.
type Result struct {
	Bundle Bundle
	Err    error
}

// Loader loads a scene bundle on its own goroutine. Update polls it once per
// frame; there is no retry.
type Loader struct {
	results chan Result
	result  Result
	done    bool
}

// LoaderOptions selects what a Loader reads. Empty fields use the scene
// description's own values.
type LoaderOptions struct {
	SceneFile string
	ModelPath string
}

// StartLoader begins loading in the background.
func StartLoader(ctx context.Context, opts LoaderOptions) *Loader {
	l := &Loader{results: make(chan Result, 1)}
	go func() {
		b, err := LoadBundle(ctx, opts)
		if err != nil {
			log.Printf("loader: %v", err)
		} else {
			log.Printf("loader: %s ready (%d nodes with clip %q)", b.Model.Name, countNodes(b.Model), b.Scene.Clip)
		}
		l.results <- Result{Bundle: b, Err: err}
	}()
	return l
}

// Poll reports the result once it is available. It never blocks.
func (l *Loader) Poll() (Result, bool) {
	if l == nil {
		return Result{}, false
	}
	if l.done {
		return l.result, true
	}
	select {
	case r := <-l.results:
		l.result = r
		l.done = true
		return r, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the result is available or ctx is done.
func (l *Loader) Wait(ctx context.Context) (Result, error) {
	if l == nil {
		return Result{}, fmt.Errorf("assets: wait: nil loader")
	}
	if l.done {
		return l.result, nil
	}
	select {
	case r := <-l.results:
		l.result = r
		l.done = true
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// LoadBundle reads the scene description, then the model and the target
// script concurrently. A missing or broken model or scene description wraps
// ErrAssetLoad. A missing script only loses the scripted target.
func LoadBundle(ctx context.Context, opts LoaderOptions) (Bundle, error) {
	sceneFile := opts.SceneFile
	if sceneFile == "" {
		sceneFile = prefabs.SceneFile
	}
	spec, err := prefabs.LoadSceneSpec(sceneFile)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: scene %s: %w", ErrAssetLoad, sceneFile, err)
	}
	modelPath := opts.ModelPath
	if modelPath == "" {
		modelPath = spec.Model
	}

	b := Bundle{Scene: spec}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		m, err := LoadModel(modelPath)
		if err != nil {
			return err
		}
		if _, ok := m.Clips[spec.Clip]; !ok {
			return fmt.Errorf("%w: model %s has no clip %q", ErrAssetLoad, modelPath, spec.Clip)
		}
		b.Model = m
		return nil
	})
	if spec.Target.Script != "" {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := prefabs.LoadScript(spec.Target.Script)
			if err != nil {
				log.Printf("loader: script %s: %v", spec.Target.Script, err)
				return nil
			}
			b.Script = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

func countNodes(m *scene.Model) int {
	n := 0
	m.Walk(func(*scene.Node, mgl64.Mat4) { n++ })
	return n
}
