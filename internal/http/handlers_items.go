package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"stashline/internal/core"
	"stashline/internal/storage"
)

// itemPayload is the wire shape of a stash item. Monetary fields travel as
// decimal strings, the target date as YYYY-MM-DD.
type itemPayload struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	CurrentBalance core.Money      `json:"currentBalance"`
	PlannedBudget  core.Money      `json:"plannedBudget"`
	TargetAmount   *core.Money     `json:"targetAmount,omitempty"`
	TargetDate     string          `json:"targetDate,omitempty"`
	GoalType       core.GoalType   `json:"goalType"`
	APY            decimal.Decimal `json:"apy"`
}

func (p itemPayload) toItem() (core.StashItem, error) {
	item := core.StashItem{
		ID:             p.ID,
		Name:           p.Name,
		CurrentBalance: p.CurrentBalance,
		PlannedBudget:  p.PlannedBudget,
		TargetAmount:   p.TargetAmount,
		GoalType:       p.GoalType,
		APY:            p.APY,
	}
	if item.GoalType == "" {
		item.GoalType = core.GoalOngoing
	}
	if p.TargetDate != "" {
		date, err := parseDate(p.TargetDate)
		if err != nil {
			return core.StashItem{}, errors.New("targetDate must be YYYY-MM-DD")
		}
		item.TargetDate = &date
	}
	return item, nil
}

func toPayload(item core.StashItem) itemPayload {
	p := itemPayload{
		ID:             item.ID,
		Name:           item.Name,
		CurrentBalance: item.CurrentBalance,
		PlannedBudget:  item.PlannedBudget,
		TargetAmount:   item.TargetAmount,
		GoalType:       item.GoalType,
		APY:            item.APY,
	}
	if item.TargetDate != nil {
		p.TargetDate = item.TargetDate.UTC().Format(dateLayout)
	}
	return p
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItems(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List items failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list items")
		return
	}

	payloads := make([]itemPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, toPayload(item))
	}
	writeJSON(w, http.StatusOK, payloads)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := payload.toItem()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.CreateItem(r.Context(), item); err != nil {
		slog.ErrorContext(r.Context(), "Create item failed", "id", item.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "create item")
		return
	}
	s.projections.InvalidateCache()

	writeJSON(w, http.StatusCreated, toPayload(item))
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.store.GetItem(r.Context(), r.PathValue("id"))
	if errors.Is(err, storage.ErrItemNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Get item failed", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "get item")
		return
	}
	writeJSON(w, http.StatusOK, toPayload(item))
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := readJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payload.ID = r.PathValue("id")

	item, err := payload.toItem()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := item.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	err = s.store.UpdateItem(r.Context(), item)
	if errors.Is(err, storage.ErrItemNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Update item failed", "id", item.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "update item")
		return
	}
	s.projections.InvalidateCache()

	writeJSON(w, http.StatusOK, toPayload(item))
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteItem(r.Context(), r.PathValue("id"))
	if errors.Is(err, storage.ErrItemNotFound) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Delete item failed", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "delete item")
		return
	}
	s.projections.InvalidateCache()

	w.WriteHeader(http.StatusNoContent)
}
