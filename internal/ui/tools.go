package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"ShapeBoard/internal/shapes"
)

const (
	targetBorder = "Border"
	targetFill   = "Fill"
)

// colorSwatch is a tappable colour square.
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(24, 24))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func (a *App) newToolbar() fyne.CanvasObject {
	kinds := make([]string, len(shapes.Kinds))
	for i, k := range shapes.Kinds {
		kinds[i] = string(k)
	}
	shapeSelect := widget.NewSelect(kinds, func(s string) {
		if k, ok := shapes.ParseKind(s); ok {
			a.model.SetCurrentShapeType(k)
		}
	})
	shapeSelect.SetSelected(string(a.model.CurrentShapeType()))

	fill := widget.NewCheck("Solid fill", a.model.SetFill)
	fill.SetChecked(a.model.Fill())

	width := widget.NewSlider(1, 20)
	width.SetValue(float64(a.borderWidth))
	width.OnChanged = func(v float64) {
		a.borderWidth = int(v)
		if sel := a.model.SelectedShape(); sel != nil {
			a.model.ChangeShapeBorderWidth(sel, a.borderWidth)
		}
	}
	widthBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), width)

	target := widget.NewRadioGroup([]string{targetBorder, targetFill}, func(s string) {
		if s != "" {
			a.colorTarget = s
		}
	})
	target.Horizontal = true
	target.SetSelected(a.colorTarget)

	palette := container.NewHBox()
	for _, c := range shapes.Swatches {
		palette.Add(newColorSwatch(c, a.pickColor))
	}

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), a.model.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), a.model.Redo),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaReplayIcon(), func() { a.rotateSelected(-30) }),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() { a.rotateSelected(30) }),
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { a.resizeSelected(1.1) }),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { a.resizeSelected(0.9) }),
		widget.NewToolbarAction(theme.DeleteIcon(), a.deleteSelected),
	)

	return container.NewHBox(
		shapeSelect,
		fill,
		widget.NewLabel("Width:"),
		widthBox,
		widget.NewSeparator(),
		target,
		palette,
		widget.NewSeparator(),
		tb,
		layout.NewSpacer(),
	)
}

// pickColor sets the border or fill pen and recolours the selection.
func (a *App) pickColor(c color.Color) {
	sel := a.model.SelectedShape()
	if a.colorTarget == targetFill {
		a.fillColor = c
		if sel != nil {
			a.model.ChangeShapeFillColor(sel, c)
		}
		return
	}
	a.model.SetCurrentColor(c)
	if sel != nil {
		a.model.ChangeShapeBorderColor(sel, c)
	}
}

func (a *App) rotateSelected(deg int) {
	if sel := a.model.SelectedShape(); sel != nil {
		sel.Rotate(deg)
		a.model.NotifyShapeChanged(sel)
	}
}

func (a *App) resizeSelected(factor float64) {
	if sel := a.model.SelectedShape(); sel != nil {
		a.model.ResizeShape(sel, factor)
	}
}

func (a *App) deleteSelected() {
	if sel := a.model.SelectedShape(); sel != nil {
		a.model.RemoveShape(sel)
		a.model.SetSelected(nil)
	}
}

func (a *App) addShortcuts() {
	c := a.win.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.model.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { a.model.Redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyDelete},
		func(fyne.Shortcut) { a.deleteSelected() })
}
