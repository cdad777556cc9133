package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/save/common"
)

// Choice is one clickable option on a panel.
type Choice struct {
	Label   string
	OnClick func()
}

// Panel is a lazily built ebitenui overlay. Update and Draw are no-ops until
// the first Draw builds the widget tree, so scenes that own a panel can be
// updated headless.
type Panel struct {
	build func() *ebitenui.UI
	ui    *ebitenui.UI
}

func (p *Panel) Update() {
	if p == nil || p.ui == nil {
		return
	}
	p.ui.Update()
}

func (p *Panel) Draw(screen *ebiten.Image) {
	if p == nil || p.build == nil {
		return
	}
	if p.ui == nil {
		p.ui = p.build()
	}
	p.ui.Draw(screen)
}

// Built reports whether the widget tree exists yet.
func (p *Panel) Built() bool {
	return p != nil && p.ui != nil
}

// NewChoicePanel builds a centered panel with a title and one button per
// choice, laid out in a row near the bottom of the screen.
func NewChoicePanel(title string, choices []Choice) *Panel {
	return &Panel{build: func() *ebitenui.UI {
		return buildPanel(title, choices, widget.DirectionHorizontal, widget.AnchorLayoutPositionEnd, 0)
	}}
}

// NewMenuPanel builds a vertical list of buttons in a grid with the given
// number of columns, centered on screen. The debug overlay uses it.
func NewMenuPanel(title string, choices []Choice, columns int) *Panel {
	return &Panel{build: func() *ebitenui.UI {
		return buildPanel(title, choices, widget.DirectionVertical, widget.AnchorLayoutPositionCenter, columns)
	}}
}

func buildPanel(title string, choices []Choice, dir widget.Direction, vpos widget.AnchorLayoutPosition, columns int) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x26, B: 0x2c, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x3a, B: 0x44, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x11, G: 0x13, B: 0x16, A: 255})

	var face text.Face = Face(Sans, 18)
	btnTextColor := &widget.ButtonTextColor{Idle: Corporate}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(12),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   vpos,
			}),
		),
	)

	if title != "" {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(title, &face, Corporate),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		))
	}

	var buttons *widget.Container
	if columns > 0 {
		buttons = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(columns),
			widget.GridLayoutOpts.Spacing(8, 8),
		)))
	} else {
		buttons = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(dir),
			widget.RowLayoutOpts.Spacing(16),
		)))
	}

	for _, c := range choices {
		onClick := c.OnClick
		buttons.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnPressed}),
			widget.ButtonOpts.Text(c.Label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(common.BaseWidth/8, 36)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		))
	}
	panel.AddChild(buttons)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
