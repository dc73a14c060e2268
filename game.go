package main

import (
	"context"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/lidscene/assets"
	"github.com/milk9111/lidscene/common"
	"github.com/milk9111/lidscene/page"
)

// Page is one screen of the app. Only the current page is updated and drawn.
type Page interface {
	Update(dt float64, in *Input) error
	Draw(screen *ebiten.Image)
	Resize(w, h int)
	Status() string
}

// Game routes between pages. Navigation requested during an Update takes
// effect at the start of the next one.
type Game struct {
	frames int
	debug  bool

	ctx     context.Context
	input   *Input
	history *page.History
	opts    assets.LoaderOptions
	tools   *DebugTools

	current Page
	pending *page.Address

	width, height    int
	layoutW, layoutH int
}

func NewGame(ctx context.Context, history *page.History, opts assets.LoaderOptions, debug bool) *Game {
	g := &Game{
		debug:   debug,
		ctx:     ctx,
		input:   NewInput(),
		history: history,
		opts:    opts,
		width:   common.BaseWidth,
		height:  common.BaseHeight,
		layoutW: common.BaseWidth,
		layoutH: common.BaseHeight,
	}
	if debug {
		g.tools = NewDebugTools()
	}
	g.open(history.Current())
	return g
}

// Navigate implements choreo.Navigator. target is an address such as
// "interactive" or "landing?exit=true".
func (g *Game) Navigate(target string) {
	a, err := page.ParseAddress(target)
	if err != nil {
		log.Printf("game: navigate %q: %v", target, err)
		return
	}
	g.pending = &a
}

func (g *Game) Update() error {
	g.frames++

	g.input.Update()
	if g.input.QuitPressed {
		return ebiten.Termination
	}

	if g.pending != nil {
		a := *g.pending
		g.pending = nil
		if err := g.history.Push(a); err != nil {
			log.Printf("game: save address: %v", err)
		}
		g.open(a)
	} else if g.input.ReloadPressed {
		g.open(g.history.Current())
	}

	if g.layoutW != g.width || g.layoutH != g.height {
		g.width, g.height = g.layoutW, g.layoutH
		g.current.Resize(g.width, g.height)
	}

	dt := 1.0 / float64(ebiten.TPS())
	return g.current.Update(dt, g.input)
}

// open builds a fresh page for the address.
func (g *Game) open(a page.Address) {
	log.Printf("game: open %s", a)
	switch a.Page {
	case page.Interactive:
		g.current = NewInteractivePage(g)
	case page.Landing:
		g.current = NewLandingPage(g.ctx, g, page.NewEntryFlag(g.history), g.opts, g.tools, g.width, g.height)
	default:
		log.Printf("game: unknown page %q, showing %s", a.Page, page.Landing)
		if err := g.history.Replace(page.MustParseAddress(page.Landing)); err != nil {
			log.Printf("game: save address: %v", err)
		}
		g.current = NewLandingPage(g.ctx, g, page.NewEntryFlag(g.history), g.opts, g.tools, g.width, g.height)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f    %s    %s", ebiten.ActualFPS(), g.history.Current(), g.current.Status()))
	}
}

// LayoutF renders at the window size so the camera aspect follows resizes.
func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	if outsideWidth >= 1 && outsideHeight >= 1 {
		g.layoutW, g.layoutH = int(outsideWidth), int(outsideHeight)
	}
	return float64(g.layoutW), float64(g.layoutH)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	g.tools.Close()
}
