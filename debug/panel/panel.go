// Package panel draws the registered debug actions as ebitenui buttons.
package panel

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/experience/debug"
)

// Width is the panel width in pixels.
const Width = 220

// New builds a panel anchored top-right with one titled group per folder.
// Rebuild it after actions are added.
func New(d *debug.Debug) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 220})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	folderColor := color.NRGBA{R: 0xaa, G: 0xcc, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	stretch := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(Width, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	actions := d.Actions()
	for _, folder := range d.Folders() {
		panel.AddChild(widget.NewText(widget.TextOpts.Text(folder, &face, folderColor)))
		for _, a := range actions {
			if a.Folder != folder {
				continue
			}
			name := a.Name
			panel.AddChild(widget.NewButton(
				widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnPressed}),
				widget.ButtonOpts.Text(name, &face, btnTextColor),
				widget.ButtonOpts.WidgetOpts(stretch),
				widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
					_ = d.Invoke(name)
				}),
			))
		}
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
