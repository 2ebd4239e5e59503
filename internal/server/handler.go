package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	boardnet "ShapeBoard/internal/net"
	"ShapeBoard/internal/shapes"
)

// session is the per-connection login state.
type session struct {
	token string
}

// addRequest is the addDrawing payload.
type addRequest struct {
	Type       string         `json:"type"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Properties map[string]any `json:"properties"`
}

// handle answers one request. The reply is a boardnet.Response, except for
// getDrawings which answers with an array of records.
func (s *Server) handle(ctx context.Context, sess *session, raw json.RawMessage) any {
	var req boardnet.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return boardnet.Fail("malformed request")
	}

	if req.Action == boardnet.ActionLogin {
		var data boardnet.LoginData
		if err := json.Unmarshal(req.Data, &data); err != nil || data.Token == "" {
			return boardnet.Fail("login requires a token")
		}
		sess.token = data.Token
		return boardnet.OK(nil)
	}
	if sess.token == "" {
		return boardnet.Fail("not logged in")
	}

	switch req.Action {
	case boardnet.ActionGetDrawings:
		drawings, err := s.store.List(ctx)
		if err != nil {
			s.logger.Error("list drawings", slog.String("error", err.Error()))
			return boardnet.Fail("could not list drawings")
		}
		records := make([]shapes.Record, len(drawings))
		for i, d := range drawings {
			records[i] = d.Record(sess.token)
		}
		return records

	case boardnet.ActionAddDrawing:
		var data addRequest
		if err := json.Unmarshal(req.Data, &data); err != nil {
			return boardnet.Fail("malformed drawing")
		}
		kind, ok := shapes.ParseKind(data.Type)
		if !ok {
			return boardnet.Fail("unknown drawing type %q", data.Type)
		}
		d := Drawing{
			ID:         uuid.NewString(),
			Type:       kind.String(),
			X:          data.X,
			Y:          data.Y,
			Properties: data.Properties,
			Owner:      sess.token,
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.store.Add(ctx, d); err != nil {
			s.logger.Error("add drawing", slog.String("error", err.Error()))
			return boardnet.Fail("could not store drawing")
		}
		s.logger.Info("drawing added", slog.String("id", d.ID), slog.String("type", d.Type))
		return boardnet.OK(boardnet.IDData{ID: d.ID})

	case boardnet.ActionUpdateDrawing:
		var data boardnet.UpdateData
		if err := json.Unmarshal(req.Data, &data); err != nil || data.ID == "" {
			return boardnet.Fail("update requires an id")
		}
		err := s.store.Update(ctx, data.ID, Patch{X: data.X, Y: data.Y, Properties: data.Properties})
		return s.result("update", data.ID, err)

	case boardnet.ActionDeleteDrawing:
		var data boardnet.IDData
		if err := json.Unmarshal(req.Data, &data); err != nil || data.ID == "" {
			return boardnet.Fail("delete requires an id")
		}
		return s.result("delete", data.ID, s.store.Delete(ctx, data.ID))
	}
	return boardnet.Fail("unknown action %q", req.Action)
}

func (s *Server) result(op, id string, err error) boardnet.Response {
	switch {
	case err == nil:
		s.logger.Info("drawing "+op+"d", slog.String("id", id))
		return boardnet.OK(nil)
	case errors.Is(err, ErrNotFound):
		return boardnet.Fail("no such drawing id %q", id)
	default:
		s.logger.Error(op+" drawing", slog.String("id", id), slog.String("error", err.Error()))
		return boardnet.Fail("could not %s drawing", op)
	}
}
