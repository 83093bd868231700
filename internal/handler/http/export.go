package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shriajj/roster-backend-go/internal/handler/http/response"
	"github.com/shriajj/roster-backend-go/internal/pkg/week"
	"github.com/shriajj/roster-backend-go/internal/service/export"
)

type ExportHandler interface {
	Document(w http.ResponseWriter, r *http.Request)
	Timesheet(w http.ResponseWriter, r *http.Request)
}

type ExportHandlerImpl struct {
	exporter *export.Service
}

func NewExportHandler(exporter *export.Service) ExportHandler {
	return &ExportHandlerImpl{exporter: exporter}
}

// weekKeyParam reads the optional week query parameter, defaulting to the
// current week.
func weekKeyParam(r *http.Request) string {
	if key := r.URL.Query().Get("week"); key != "" {
		return key
	}
	return week.Key(week.Anchor(time.Now()))
}

// Document implements ExportHandler: the full JSON backup.
func (h *ExportHandlerImpl) Document(w http.ResponseWriter, r *http.Request) {
	doc, err := h.exporter.BuildDocument(r.Context(), weekKeyParam(r))
	if err != nil {
		slog.Error("Document export error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, doc)
}

// Timesheet implements ExportHandler: the per-week xlsx download.
func (h *ExportHandlerImpl) Timesheet(w http.ResponseWriter, r *http.Request) {
	weekKey := weekKeyParam(r)

	buf, err := h.exporter.BuildTimesheet(r.Context(), weekKey)
	if err != nil {
		slog.Error("Timesheet export error", "week_key", weekKey, "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="timesheet-%s.xlsx"`, weekKey))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Timesheet write error", "error", err)
	}
}
