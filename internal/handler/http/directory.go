package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shriajj/roster-backend-go/internal/domain/directory"
	"github.com/shriajj/roster-backend-go/internal/handler/http/response"
)

type DirectoryHandler interface {
	ListEmployees(w http.ResponseWriter, r *http.Request)
	SaveEmployees(w http.ResponseWriter, r *http.Request)
	ListLocations(w http.ResponseWriter, r *http.Request)
	SaveLocations(w http.ResponseWriter, r *http.Request)
}

type DirectoryHandlerImpl struct {
	dir directory.Service
}

func NewDirectoryHandler(dir directory.Service) DirectoryHandler {
	return &DirectoryHandlerImpl{dir: dir}
}

// ListEmployees implements DirectoryHandler.
func (h *DirectoryHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.dir.Employees())
}

// SaveEmployees implements DirectoryHandler: it replaces the whole set.
func (h *DirectoryHandlerImpl) SaveEmployees(w http.ResponseWriter, r *http.Request) {
	var req directory.SaveNamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveEmployees decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	synced, err := h.dir.SaveEmployees(r.Context(), req.Names)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data := map[string]any{"names": h.dir.Employees(), "synced": synced}
	if synced {
		response.SuccessWithMessage(w, "Employees saved", data)
		return
	}
	response.SuccessWithMessage(w, "Employees saved locally only", data)
}

// ListLocations implements DirectoryHandler.
func (h *DirectoryHandlerImpl) ListLocations(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.dir.Locations())
}

// SaveLocations implements DirectoryHandler: it replaces the whole set.
func (h *DirectoryHandlerImpl) SaveLocations(w http.ResponseWriter, r *http.Request) {
	var req directory.SaveNamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveLocations decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	synced, err := h.dir.SaveLocations(r.Context(), req.Names)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data := map[string]any{"names": h.dir.Locations(), "synced": synced}
	if synced {
		response.SuccessWithMessage(w, "Locations saved", data)
		return
	}
	response.SuccessWithMessage(w, "Locations saved locally only", data)
}
