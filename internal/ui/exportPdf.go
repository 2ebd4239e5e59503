package ui

import (
	"io"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"ShapeBoard/internal/export"
	"ShapeBoard/internal/shapes"
)

type writeFunc func(out io.Writer, list []shapes.Shape, w, h int) error

func (a *App) savePNG()   { a.saveAs("board.png", ".png", export.WritePNG) }
func (a *App) exportPDF() { a.saveAs("board.pdf", ".pdf", export.WritePDF) }

// saveAs asks for a destination and writes the local and server shapes
// there at the configured canvas size.
func (a *App) saveAs(name, ext string, write writeFunc) {
	list := append(a.model.ShapesFromServer(), a.model.Shapes()...)
	w, h := a.opts.Config.CanvasWidth, a.opts.Config.CanvasHeight

	d := dialog.NewFileSave(func(out fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if out == nil {
			return
		}
		err = write(out, list, w, h)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			a.log.Warn("export failed", slog.String("file", out.URI().String()), slog.String("error", err.Error()))
			dialog.ShowError(err, a.win)
			return
		}
		a.log.Info("exported", slog.String("file", out.URI().String()), slog.Int("shapes", len(list)))
		a.setStatus("Saved %s", out.URI().Name())
	}, a.win)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}
