package ui

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/atotto/clipboard"

	"ShapeBoard/internal/remote"
	"ShapeBoard/internal/shapes"
)

func (a *App) mainMenu() *fyne.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("Save as PNG...", a.savePNG),
		fyne.NewMenuItem("Export PDF...", a.exportPDF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear", func() {
			dialog.ShowConfirm("Clear", "Remove every local shape?", func(ok bool) {
				if ok {
					a.model.ClearShapes()
				}
			}, a.win)
		}),
	)
	edit := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.model.Undo),
		fyne.NewMenuItem("Redo", a.model.Redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy Shape", a.copyShape),
		fyne.NewMenuItem("Paste Shape", a.pasteShape),
	)
	server := fyne.NewMenu("Server",
		fyne.NewMenuItem("Get Drawings", func() {
			a.serverAction("Get drawings", func(s *remote.Syncer) (string, error) {
				n, err := s.Fetch()
				return fmt.Sprintf("Fetched %d drawings", n), err
			})
		}),
		fyne.NewMenuItem("Upload Drawings", func() {
			a.serverAction("Upload", func(s *remote.Syncer) (string, error) {
				n, err := s.Upload()
				return fmt.Sprintf("Uploaded %d shapes", n), err
			})
		}),
		fyne.NewMenuItem("Update My Drawing", func() {
			a.serverAction("Update drawing", func(s *remote.Syncer) (string, error) {
				return "Drawing updated", s.UpdateSelected()
			})
		}),
		fyne.NewMenuItem("Delete My Drawing", func() {
			a.serverAction("Delete drawing", func(s *remote.Syncer) (string, error) {
				return "Drawing deleted", s.DeleteSelected()
			})
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Disconnect", func() {
			a.disconnect()
			a.setStatus("Offline")
		}),
		fyne.NewMenuItem("Reconnect", func() {
			if a.opts.Connect == nil {
				dialog.ShowInformation("Reconnect", "No server configured.", a.win)
				return
			}
			go a.connect()
		}),
	)
	return fyne.NewMainMenu(file, edit, server)
}

// copyShape puts the selected shape's record on the system clipboard as
// JSON.
func (a *App) copyShape() {
	sel := a.model.SelectedShape()
	if sel == nil {
		return
	}
	data, err := json.MarshalIndent(shapes.ToRecord(sel), "", "  ")
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		a.log.Warn("clipboard write failed", slog.String("error", err.Error()))
		dialog.ShowError(err, a.win)
		return
	}
	a.setStatus("Copied %s", sel.Kind())
}

// pasteShape adds a shape built from a JSON record on the clipboard. The
// copy is a new local shape, so any server id is dropped.
func (a *App) pasteShape() {
	text, err := clipboard.ReadAll()
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	var rec shapes.Record
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		a.setStatus("Clipboard does not hold a shape")
		return
	}
	sh := shapes.FromRecord(rec)
	if sh == nil {
		a.setStatus("Clipboard does not hold a shape")
		return
	}
	b := sh.Common()
	b.ID = ""
	b.Owner = nil
	sh.Move(10, 10)
	a.model.AddShape(sh)
	a.model.SetSelected(sh)
}
