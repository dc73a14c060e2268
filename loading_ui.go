package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const (
	loadingText = "Loading..."
	failedText  = "Failed to load model. Please refresh."
)

var (
	textColor         = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	loadingBackground = color.NRGBA{R: 0x0f, G: 0x10, B: 0x20, A: 0xff}
)

// LoadingUI is the centered status panel shown until the model resolves.
type LoadingUI struct {
	ui    *ebitenui.UI
	label *widget.Text
}

// uiFace returns a text.Face from the built-in basic font, so no theme fonts
// need to be loaded.
func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func NewLoadingUI() *LoadingUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})

	label := widget.NewText(
		widget.TextOpts.Text(loadingText, uiFace(), textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(label)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &LoadingUI{ui: &ebitenui.UI{Container: root}, label: label}
}

// SetFailed replaces the loading indicator with the failure message.
func (l *LoadingUI) SetFailed() {
	if l == nil || l.label == nil {
		return
	}
	l.label.Label = failedText
}

func (l *LoadingUI) Text() string {
	if l == nil || l.label == nil {
		return ""
	}
	return l.label.Label
}

func (l *LoadingUI) Update() {
	if l == nil {
		return
	}
	l.ui.Update()
}

func (l *LoadingUI) Draw(screen *ebiten.Image) {
	if l == nil {
		return
	}
	l.ui.Draw(screen)
}
