package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"ShapeBoard/internal/export"
	"ShapeBoard/internal/shapes"
	"ShapeBoard/internal/state"
	"ShapeBoard/internal/ui/gesture"
)

var selectionColor = color.NRGBA{R: 30, G: 120, B: 255, A: 255}

// BoardWidget draws the model's shapes and turns pointer input into model
// calls: a press on a shape selects and drags it, a press elsewhere drags
// out a new shape of the current type.
type BoardWidget struct {
	widget.BaseWidget

	model *state.Model
	style func() gesture.Style
	size  fyne.Size

	start, last fyne.Position
	drawing     bool
	moving      shapes.Shape
	preview     shapes.Shape
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

// NewBoardWidget returns a board of the given minimum size. style is asked
// for the pen each time a shape is drawn.
func NewBoardWidget(m *state.Model, size fyne.Size, style func() gesture.Style) *BoardWidget {
	b := &BoardWidget{model: m, style: style, size: size}
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	raster := canvas.NewRaster(b.render)
	raster.SetMinSize(b.size)
	return widget.NewSimpleRenderer(raster)
}

// render paints server shapes under local ones, then the drag preview and
// the selection marker.
func (b *BoardWidget) render(w, h int) image.Image {
	r := export.NewRaster(w, h)
	if size := b.Size(); size.Width > 0 {
		r.Scale(float64(w) / float64(size.Width))
	}
	r.Draw(b.model.ShapesFromServer())
	r.Draw(b.model.Shapes())
	if b.preview != nil {
		shapes.Paint(r, b.preview)
	}
	if sel := b.model.SelectedShape(); sel != nil {
		r.Outline(sel.Bounds(), selectionColor)
	}
	return r.Image()
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	pos := e.Position
	b.last = pos
	if sh := b.model.ShapeAt(float64(pos.X), float64(pos.Y)); sh != nil {
		b.moving = sh
		b.model.SetSelected(sh)
		return
	}
	if b.model.SelectedShape() != nil {
		b.model.SetSelected(nil)
	}
	b.start = pos
	b.drawing = true
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	pos := e.Position
	switch {
	case b.moving != nil:
		b.model.MoveShape(b.moving, float64(pos.X-b.last.X), float64(pos.Y-b.last.Y))
	case b.drawing:
		b.preview = b.shapeTo(pos, false)
		b.Refresh()
	}
	b.last = pos
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if b.moving != nil {
		b.moving = nil
		return
	}
	if !b.drawing {
		return
	}
	b.drawing = false
	b.preview = nil
	pos := e.Position
	if gesture.IsClick(float64(b.start.X), float64(b.start.Y), float64(pos.X), float64(pos.Y)) {
		b.Refresh()
		return
	}
	if sh := b.shapeTo(pos, e.Modifier&fyne.KeyModifierShift != 0); sh != nil {
		b.model.AddShape(sh)
	}
}

func (b *BoardWidget) shapeTo(pos fyne.Position, square bool) shapes.Shape {
	return gesture.ShapeFromDrag(b.model.CurrentShapeType(),
		float64(b.start.X), float64(b.start.Y), float64(pos.X), float64(pos.Y),
		square, b.style())
}
