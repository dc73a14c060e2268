package main

import (
	"context"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lidscene/assets"
	"github.com/milk9111/lidscene/page"
)

const appName = "lidscene"

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (overlay, prefab hot reload, C copies the camera pose)")
	exit := flag.Bool("exit", false, "start with the exit sequence, as when returning from the interactive page")
	address := flag.String("address", "", "start address, e.g. landing or landing?exit=true (default: last saved address)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	modelPath := flag.String("model", "", "model file in assets/ overriding the scene's model")
	sceneFile := flag.String("scene", "", "scene description in prefabs/ (default scene.yaml)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	store := page.OpenStore(appName)
	start, err := startAddress(store, *address, *exit)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w*3/4, h*3/4)
	ebiten.SetWindowTitle(appName)

	game := NewGame(context.Background(), page.NewHistory(start, store), assets.LoaderOptions{
		SceneFile: *sceneFile,
		ModelPath: *modelPath,
	}, *debug)
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// startAddress picks the first address: the flag, else the saved address,
// else the landing page. exit adds the exit parameter to whichever wins.
func startAddress(store *page.Store, flagValue string, exit bool) (page.Address, error) {
	start := page.MustParseAddress(page.Landing)
	if flagValue != "" {
		a, err := page.ParseAddress(flagValue)
		if err != nil {
			return page.Address{}, err
		}
		start = a
	} else if saved, ok, err := store.LoadAddress(); err != nil {
		log.Printf("main: saved address: %v", err)
	} else if ok {
		start = saved
	}
	if exit {
		start = start.With(page.ExitParam, "true")
	}
	return start, nil
}
