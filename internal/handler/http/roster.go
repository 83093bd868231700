package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shriajj/roster-backend-go/internal/domain/roster"
	"github.com/shriajj/roster-backend-go/internal/handler/http/response"
	"github.com/shriajj/roster-backend-go/internal/pkg/week"
)

type RosterHandler interface {
	GetWeek(w http.ResponseWriter, r *http.Request)
	SaveWeek(w http.ResponseWriter, r *http.Request)
	UpsertShift(w http.ResponseWriter, r *http.Request)
	DeleteShift(w http.ResponseWriter, r *http.Request)
	GetHolidays(w http.ResponseWriter, r *http.Request)
	SetHoliday(w http.ResponseWriter, r *http.Request)
}

type RosterHandlerImpl struct {
	store roster.Store
}

func NewRosterHandler(store roster.Store) RosterHandler {
	return &RosterHandlerImpl{store: store}
}

func (h *RosterHandlerImpl) weekResponse(weekKey string, grid roster.WeekGrid) (roster.WeekResponse, error) {
	start, err := week.ParseKey(weekKey)
	if err != nil {
		return roster.WeekResponse{}, roster.ErrInvalidWeekKey
	}
	return roster.WeekResponse{
		WeekKey: weekKey,
		Days:    week.DayLabels(start),
		Grid:    grid,
		Synced:  h.store.Connected(),
	}, nil
}

// GetWeek implements RosterHandler.
func (h *RosterHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	weekKey := chi.URLParam(r, "weekKey")

	grid, err := h.store.Week(r.Context(), weekKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.weekResponse(weekKey, grid)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// SaveWeek implements RosterHandler: it replaces the whole week grid.
func (h *RosterHandlerImpl) SaveWeek(w http.ResponseWriter, r *http.Request) {
	weekKey := chi.URLParam(r, "weekKey")
	if _, err := week.ParseKey(weekKey); err != nil {
		response.HandleError(w, roster.ErrInvalidWeekKey)
		return
	}

	var grid roster.WeekGrid
	if err := json.NewDecoder(r.Body).Decode(&grid); err != nil {
		slog.Error("SaveWeek decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	synced := h.store.Save(r.Context(), weekKey, grid)

	resp, err := h.weekResponse(weekKey, grid)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	resp.Synced = synced
	if synced {
		response.SuccessWithMessage(w, "Week saved", resp)
		return
	}
	response.SuccessWithMessage(w, "Week saved locally only", resp)
}

// UpsertShift implements RosterHandler.
func (h *RosterHandlerImpl) UpsertShift(w http.ResponseWriter, r *http.Request) {
	weekKey := chi.URLParam(r, "weekKey")

	var req roster.UpsertShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertShift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	synced, err := h.store.UpsertShift(r.Context(), weekKey, req.Location, req.Day, req.Shift)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	grid, err := h.store.Week(r.Context(), weekKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	resp, err := h.weekResponse(weekKey, grid)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	resp.Synced = synced
	response.SuccessWithMessage(w, "Shift saved", resp)
}

// DeleteShift implements RosterHandler.
func (h *RosterHandlerImpl) DeleteShift(w http.ResponseWriter, r *http.Request) {
	weekKey := chi.URLParam(r, "weekKey")

	var req roster.DeleteShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DeleteShift decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	synced, err := h.store.DeleteShift(r.Context(), weekKey, req.Location, req.Day, req.Employee)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	grid, err := h.store.Week(r.Context(), weekKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	resp, err := h.weekResponse(weekKey, grid)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	resp.Synced = synced
	response.SuccessWithMessage(w, "Shift deleted", resp)
}

// GetHolidays implements RosterHandler.
func (h *RosterHandlerImpl) GetHolidays(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.store.PublicHolidays())
}

// SetHoliday implements RosterHandler.
func (h *RosterHandlerImpl) SetHoliday(w http.ResponseWriter, r *http.Request) {
	var req roster.SetHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	h.store.SetPublicHoliday(r.Context(), req.Day, req.Holiday)
	response.SuccessWithMessage(w, "Public holiday updated", h.store.PublicHolidays())
}
