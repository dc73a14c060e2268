package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/lidscene/page"
)

// returnAddress is where Back goes: the landing page with the exit sequence
// requested.
var returnAddress = page.MustParseAddress(page.Landing).With(page.ExitParam, "true")

// InteractivePage is the page reached by zooming into the screen.
type InteractivePage struct {
	nav *Game
	ui  *ebitenui.UI
}

func NewInteractivePage(nav *Game) *InteractivePage {
	p := &InteractivePage{nav: nav}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x12, B: 0x1c, A: 255})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x48, B: 0x55, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}

	title := widget.NewText(
		widget.TextOpts.Text("Interactive", uiFace(), textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	backBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
		widget.ButtonOpts.Text("Back", uiFace(), btnTextColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(120, 32),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			p.Back()
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(16),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 24, Bottom: 24, Left: 40, Right: 40}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(backBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	p.ui = &ebitenui.UI{Container: root}
	return p
}

// Back returns to the landing page, which then plays the exit sequence.
func (p *InteractivePage) Back() {
	p.nav.Navigate(returnAddress.String())
}

func (p *InteractivePage) Update(_ float64, in *Input) error {
	if in != nil && in.BackPressed {
		p.Back()
	}
	p.ui.Update()
	return nil
}

func (p *InteractivePage) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x0b, G: 0x0c, B: 0x14, A: 0xff})
	p.ui.Draw(screen)
}

func (p *InteractivePage) Resize(int, int) {}

func (p *InteractivePage) Status() string {
	return "interactive"
}
