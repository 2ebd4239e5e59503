// Package remote moves shapes between a Model and a drawing server.
package remote

import (
	"errors"
	"fmt"
	"log/slog"

	"ShapeBoard/internal/shapes"
	"ShapeBoard/internal/state"
)

// Drawings is the set of server operations the syncer needs.
// *net.Client implements it.
type Drawings interface {
	GetDrawings() ([]shapes.Record, error)
	AddDrawing(s shapes.Shape) (string, error)
	UpdateDrawing(id string, s shapes.Shape) error
	DeleteDrawing(id string) error
}

var (
	ErrNoSelection = errors.New("no shape selected")
	ErrNotUploaded = errors.New("selected shape has not been uploaded")
)

// Syncer applies server operations to a Model. Its methods block on the
// network, so a UI calls them off its event goroutine and sets Do to hand
// model access back to it.
type Syncer struct {
	Model    *state.Model
	Drawings Drawings
	Logger   *slog.Logger
	// Do runs f on the goroutine that owns Model and waits for it. Nil
	// runs f directly.
	Do func(f func())
}

func (s *Syncer) do(f func()) {
	if s.Do == nil {
		f()
		return
	}
	s.Do(f)
}

func (s *Syncer) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Upload sends every local shape that has no id yet and stores the id the
// server assigns. Failures do not stop the upload; they are joined into
// the returned error. The count is the number of shapes uploaded.
func (s *Syncer) Upload() (int, error) {
	var pending, copies []shapes.Shape
	s.do(func() {
		for _, sh := range s.Model.Shapes() {
			if sh.Common().ID == "" {
				pending = append(pending, sh)
				copies = append(copies, shapes.Clone(sh))
			}
		}
	})

	var (
		uploaded int
		errs     []error
	)
	for i, sh := range pending {
		id, err := s.Drawings.AddDrawing(copies[i])
		if err != nil {
			errs = append(errs, fmt.Errorf("upload %s: %w", sh.Kind(), err))
			continue
		}
		s.do(func() {
			b := sh.Common()
			b.ID = id
			b.SetOwner(true)
		})
		uploaded++
	}
	if uploaded > 0 {
		s.do(func() { s.Model.NotifyShapeChanged(nil) })
	}
	s.logger().Info("upload finished", slog.Int("uploaded", uploaded), slog.Int("failed", len(errs)))
	return uploaded, errors.Join(errs...)
}

// Fetch replaces the server-mirrored shapes with what the server holds
// now. Records the factory rejects are skipped. It returns the number of
// shapes added.
func (s *Syncer) Fetch() (int, error) {
	records, err := s.Drawings.GetDrawings()
	if err != nil {
		return 0, err
	}
	var built []shapes.Shape
	for _, rec := range records {
		if sh := shapes.FromRecord(rec); sh != nil {
			built = append(built, sh)
		}
	}
	added := len(built)
	s.do(func() {
		s.Model.ClearServerShapes()
		for _, sh := range built {
			s.Model.AddShapeFromServer(sh)
		}
	})
	s.logger().Info("fetched drawings", slog.Int("received", len(records)), slog.Int("added", added))
	return added, nil
}

// selectedUploaded returns the selection, a copy of it and its id.
func (s *Syncer) selectedUploaded() (sh, copied shapes.Shape, id string, err error) {
	s.do(func() {
		sh = s.Model.SelectedShape()
		switch {
		case sh == nil:
			err = ErrNoSelection
		case sh.Common().ID == "":
			err = ErrNotUploaded
		default:
			id = sh.Common().ID
			copied = shapes.Clone(sh)
		}
	})
	return sh, copied, id, err
}

// UpdateSelected pushes the selected shape's current state to the server.
func (s *Syncer) UpdateSelected() error {
	_, copied, id, err := s.selectedUploaded()
	if err != nil {
		return err
	}
	return s.Drawings.UpdateDrawing(id, copied)
}

// DeleteSelected deletes the selected shape on the server and, once the
// server agrees, from the model.
func (s *Syncer) DeleteSelected() error {
	sh, _, id, err := s.selectedUploaded()
	if err != nil {
		return err
	}
	if err := s.Drawings.DeleteDrawing(id); err != nil {
		return err
	}
	s.do(func() {
		s.Model.RemoveShape(sh)
		if s.Model.SelectedShape() == sh {
			s.Model.SetSelected(nil)
		}
	})
	return nil
}
