// Command choreosim runs the landing page choreography without a window and
// prints every mode change. It loads the same model and scene description as
// the app.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/milk9111/lidscene/assets"
	"github.com/milk9111/lidscene/choreo"
	"github.com/milk9111/lidscene/common"
	"github.com/milk9111/lidscene/page"
	"github.com/milk9111/lidscene/scene"
)

type simConfig struct {
	exit       bool
	activateAt int
	pointerX   float64
	pointerY   float64
	tps        int
	maxTicks   int
	opts       assets.LoaderOptions
}

type simResult struct {
	ticks     int
	navigated []string
	final     choreo.Mode
	address   string
}

type recordingNavigator struct {
	targets []string
}

func (n *recordingNavigator) Navigate(target string) {
	n.targets = append(n.targets, target)
}

func main() {
	exit := flag.Bool("exit", false, "start as if returning from the interactive page")
	activateAt := flag.Int("activate", -1, "tick at which Enter is pressed (-1 never)")
	px := flag.Float64("x", common.BaseWidth/2, "pointer x in pixels")
	py := flag.Float64("y", common.BaseHeight/2, "pointer y in pixels")
	tps := flag.Int("tps", 60, "ticks per second")
	maxTicks := flag.Int("ticks", 600, "stop after this many ticks")
	modelPath := flag.String("model", "", "model override")
	sceneFile := flag.String("scene", "", "scene description override")
	quiet := flag.Bool("q", false, "silence session logs")
	flag.Parse()

	if *quiet {
		log.SetOutput(io.Discard)
	}

	cfg := simConfig{
		exit:       *exit,
		activateAt: *activateAt,
		pointerX:   *px,
		pointerY:   *py,
		tps:        *tps,
		maxTicks:   *maxTicks,
		opts:       assets.LoaderOptions{SceneFile: *sceneFile, ModelPath: *modelPath},
	}
	res, err := run(context.Background(), cfg, os.Stdout)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	fmt.Printf("done after %d ticks: mode %s, address %s, navigated %v\n", res.ticks, res.final, res.address, res.navigated)
}

func run(ctx context.Context, cfg simConfig, out io.Writer) (simResult, error) {
	if cfg.tps <= 0 {
		cfg.tps = 60
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	loaded, err := assets.StartLoader(ctx, cfg.opts).Wait(ctx)
	if err != nil {
		return simResult{}, err
	}
	if loaded.Err != nil {
		return simResult{}, loaded.Err
	}
	b := loaded.Bundle

	mixer, err := scene.NewMixer(b.Model, b.Scene.Clip)
	if err != nil {
		return simResult{}, err
	}
	camera := scene.NewCamera(common.BaseWidth, common.BaseHeight)
	camera.SetFOV(b.Scene.Camera.FOV)

	start := page.MustParseAddress(page.Landing)
	if cfg.exit {
		start = start.With(page.ExitParam, "true")
	}
	history := page.NewHistory(start, nil)
	nav := &recordingNavigator{}

	s := choreo.NewSession(b.Scene.Config(), choreo.Deps{
		Clip:      mixer,
		Viewport:  camera,
		Hover:     scene.NewRaycaster(camera, b.Model),
		Targets:   b.Scene.TargetStrategy(mixer, b.Script),
		Navigator: nav,
		Entry:     page.NewEntryFlag(history),
	})
	s.Resize(common.BaseWidth, common.BaseHeight)
	s.Deliver(choreo.PointerMoved{X: cfg.pointerX, Y: cfg.pointerY})

	dt := 1.0 / float64(cfg.tps)
	mode := s.Mode()
	fmt.Fprintf(out, "%5s %8s  %-22s %7s  %s\n", "tick", "time", "mode", "clip", "camera")
	report := func(tick int) {
		p := s.Camera()
		fmt.Fprintf(out, "%5d %8.3f  %-22s %7.3f  pos %v look %v\n",
			tick, float64(tick)*dt, s.Mode(), s.Cursor().Time, fmtVec(p.Position), fmtVec(p.LookAt))
	}
	report(0)

	tick := 0
	for tick < cfg.maxTicks {
		if tick == cfg.activateAt {
			s.Deliver(choreo.ActivateRequested{})
		}
		s.Tick(dt)
		tick++
		if s.Mode() != mode {
			mode = s.Mode()
			report(tick)
		}
		if s.Navigated() {
			break
		}
		if cfg.exit && !s.ExitPending() {
			break
		}
	}
	report(tick)

	return simResult{
		ticks:     tick,
		navigated: nav.targets,
		final:     s.Mode(),
		address:   history.Current().String(),
	}, nil
}

func fmtVec(v [3]float64) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
