package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shriajj/roster-backend-go/internal/domain/auth"
	"github.com/shriajj/roster-backend-go/internal/handler/http/response"
	"github.com/shriajj/roster-backend-go/internal/pkg/jwt"
	"github.com/shriajj/roster-backend-go/internal/pkg/sse"
)

type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type EventsHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
}

func NewEventsHandler(hub *sse.Hub, jwtService jwt.Service) EventsHandler {
	return &EventsHandlerImpl{hub: hub, jwtService: jwtService}
}

// Stream implements EventsHandler: the change stream browsers subscribe to.
// The token rides in the query string because EventSource cannot set headers,
// so only the short-lived SSE token type is accepted here.
func (h *EventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	username, err := h.jwtService.ValidateSSEToken(r.URL.Query().Get("token"))
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	events, cleanup := h.hub.Subscribe()
	defer cleanup()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	slog.Info("SSE client connected", "username", username, "subscribers", h.hub.TotalSubscribers())

	for {
		select {
		case <-r.Context().Done():
			slog.Info("SSE client disconnected", "username", username)
			return
		case event, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Error("SSE encode error", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()
		}
	}
}
