package http

import (
	"errors"
	"log/slog"
	"net/http"

	"stashline/internal/core"
	"stashline/internal/projection"
	"stashline/internal/services"
)

type eventPayload struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Type   core.EventType `json:"type"`
	Month  string         `json:"month"`
	ItemID string         `json:"itemId"`
	Amount core.Money     `json:"amount"`
}

// projectionPayload is the wire shape of a projection request. Dates travel
// as YYYY-MM-DD strings; the cursor is optional.
type projectionPayload struct {
	Start     string               `json:"start"`
	End       string               `json:"end"`
	Cursor    string               `json:"cursor,omitempty"`
	Overrides projection.Overrides `json:"overrides"`
	Events    []eventPayload       `json:"events"`
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var payload projectionPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, err := parseDate(payload.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start must be YYYY-MM-DD")
		return
	}
	end, err := parseDate(payload.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "end must be YYYY-MM-DD")
		return
	}

	req := services.ComputeRequest{
		Overrides: payload.Overrides,
		Start:     start,
		End:       end,
	}
	if payload.Cursor != "" {
		cursor, err := parseDate(payload.Cursor)
		if err != nil {
			writeError(w, http.StatusBadRequest, "cursor must be YYYY-MM-DD")
			return
		}
		req.Cursor = &cursor
	}
	for _, ev := range payload.Events {
		req.Events = append(req.Events, core.NamedEvent{
			ID:     ev.ID,
			Name:   ev.Name,
			Type:   ev.Type,
			Month:  ev.Month,
			ItemID: ev.ItemID,
			Amount: ev.Amount,
		})
	}

	result, err := s.projections.Compute(r.Context(), req)
	var rangeErr *projection.InvalidRangeError
	if errors.As(err, &rangeErr) {
		writeError(w, http.StatusBadRequest, rangeErr.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Projection failed", "error", err)
		writeError(w, http.StatusInternalServerError, "compute projection")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
