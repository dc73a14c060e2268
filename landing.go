package main

import (
	"context"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lidscene/assets"
	"github.com/milk9111/lidscene/choreo"
	"github.com/milk9111/lidscene/page"
	"github.com/milk9111/lidscene/prefabs"
	"github.com/milk9111/lidscene/scene"
)

type loadState int

const (
	stateLoading loadState = iota
	stateReady
	stateFailed
)

// LandingPage shows the laptop. It polls the asset loader and, once the
// model is ready, hands input and ticks to a choreography session.
type LandingPage struct {
	nav   choreo.Navigator
	entry *page.EntryFlag
	tools *DebugTools
	opts  assets.LoaderOptions

	loader  *assets.Loader
	state   loadState
	loading *LoadingUI

	spec      prefabs.SceneSpec
	model     *scene.Model
	mixer     *scene.Mixer
	camera    *scene.Camera
	raycaster *scene.Raycaster
	renderer  *scene.Renderer
	session   *choreo.Session

	reloadPending bool
	width, height int
}

// NewLandingPage starts loading immediately. The entry flag is sampled now,
// so the address at page creation decides whether the exit sequence plays.
func NewLandingPage(ctx context.Context, nav choreo.Navigator, entry *page.EntryFlag, opts assets.LoaderOptions, tools *DebugTools, width, height int) *LandingPage {
	return &LandingPage{
		nav:     nav,
		entry:   entry,
		tools:   tools,
		opts:    opts,
		loader:  assets.StartLoader(ctx, opts),
		loading: NewLoadingUI(),
		camera:  scene.NewCamera(width, height),
		width:   width,
		height:  height,
	}
}

func (p *LandingPage) Update(dt float64, in *Input) error {
	switch p.state {
	case stateLoading:
		if res, ok := p.loader.Poll(); ok {
			p.finishLoading(res)
		}
		p.loading.Update()
		return nil
	case stateFailed:
		p.loading.Update()
		return nil
	}

	p.applyDebug(in)
	for _, msg := range in.Messages() {
		p.session.Deliver(msg)
	}
	p.session.Tick(dt)
	return nil
}

func (p *LandingPage) finishLoading(res assets.Result) {
	if res.Err != nil {
		p.state = stateFailed
		p.loading.SetFailed()
		return
	}
	if err := p.start(res.Bundle); err != nil {
		log.Printf("landing: %v", err)
		p.state = stateFailed
		p.loading.SetFailed()
		return
	}
	p.state = stateReady
}

func (p *LandingPage) start(b assets.Bundle) error {
	mixer, err := scene.NewMixer(b.Model, b.Scene.Clip)
	if err != nil {
		return fmt.Errorf("%w: %w", assets.ErrAssetLoad, err)
	}
	p.spec = b.Scene
	p.model = b.Model
	p.mixer = mixer
	p.camera.SetFOV(b.Scene.Camera.FOV)
	p.raycaster = scene.NewRaycaster(p.camera, p.model)
	p.renderer = scene.NewRenderer()
	p.applyLighting(b.Scene)

	p.session = choreo.NewSession(b.Scene.Config(), choreo.Deps{
		Clip:      p.mixer,
		Viewport:  p.camera,
		Hover:     p.raycaster,
		Targets:   b.Scene.TargetStrategy(p.mixer, b.Script),
		Navigator: p.nav,
		Entry:     p.entry,
	})
	p.session.Resize(p.width, p.height)
	return nil
}

func (p *LandingPage) applyLighting(spec prefabs.SceneSpec) {
	light, bg := spec.LightingConfig()
	p.renderer.Lighting = light
	if bg != nil {
		p.renderer.Background = bg
	}
}

// applyDebug reloads changed prefabs and copies the camera pose on request.
func (p *LandingPage) applyDebug(in *Input) {
	if p.tools == nil {
		return
	}
	if len(p.tools.Changes()) > 0 {
		p.reloadPending = true
	}
	if p.reloadPending {
		p.reloadScene()
	}
	if in != nil && in.CopyPosePressed {
		out, err := p.tools.CopyPose(p.session.Camera())
		if err != nil {
			log.Printf("landing: %v", err)
		} else {
			log.Printf("landing: camera pose copied\n%s", out)
		}
	}
}

// reloadScene re-reads scene.yaml and its target script. The session only
// accepts the new configuration while idle, so a reload during a scripted
// sequence waits for the session to settle.
func (p *LandingPage) reloadScene() {
	if p.session.Mode() != choreo.ModeIdle {
		return
	}
	p.reloadPending = false

	sceneFile := p.opts.SceneFile
	if sceneFile == "" {
		sceneFile = prefabs.SceneFile
	}
	spec, err := prefabs.LoadSceneSpec(sceneFile)
	if err != nil {
		log.Printf("landing: reload: %v", err)
		return
	}
	var script []byte
	if spec.Target.Script != "" {
		if script, err = prefabs.LoadScript(spec.Target.Script); err != nil {
			log.Printf("landing: reload script %s: %v", spec.Target.Script, err)
		}
	}
	if p.session.Reconfigure(spec.Config(), spec.TargetStrategy(p.mixer, script)) {
		p.spec = spec
		p.camera.SetFOV(spec.Camera.FOV)
		p.applyLighting(spec)
	}
}

func (p *LandingPage) Draw(screen *ebiten.Image) {
	if p.state != stateReady {
		screen.Fill(loadingBackground)
		p.loading.Draw(screen)
		return
	}
	p.renderer.Draw(screen, p.model, p.camera)
}

func (p *LandingPage) Resize(w, h int) {
	p.width, p.height = w, h
	p.camera.SetViewport(w, h)
	p.session.Resize(w, h)
}

// Status is the debug overlay line for this page.
func (p *LandingPage) Status() string {
	switch p.state {
	case stateLoading:
		return "landing: loading"
	case stateFailed:
		return "landing: " + p.loading.Text()
	}
	c := p.session.Cursor()
	return fmt.Sprintf("landing: %s  clip %.2f/%.2f", p.session.Mode(), c.Time, c.Duration)
}
