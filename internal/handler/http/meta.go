package http

import (
	"net/http"
	"time"

	"github.com/shriajj/roster-backend-go/internal/config"
	"github.com/shriajj/roster-backend-go/internal/domain/roster"
	"github.com/shriajj/roster-backend-go/internal/handler/http/response"
)

type MetaHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
	Config(w http.ResponseWriter, r *http.Request)
}

type MetaHandlerImpl struct {
	cfg   *config.Config
	store roster.Store
}

func NewMetaHandler(cfg *config.Config, store roster.Store) MetaHandler {
	return &MetaHandlerImpl{cfg: cfg, store: store}
}

// Health implements MetaHandler. It always returns 200; database reports
// whether the remote store is reachable.
func (h *MetaHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"database":  h.store.Connected(),
	})
}

// Config implements MetaHandler: the site settings the app shell needs
// before anyone logs in. Secrets never leave the server.
func (h *MetaHandlerImpl) Config(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]any{
		"endpoint":    h.cfg.StoreEndpoint(),
		"credential":  h.cfg.Database.User,
		"companyName": h.cfg.Roster.CompanyName,
		"systemTitle": h.cfg.Roster.SystemTitle,
		"timezone":    h.cfg.Roster.Timezone,
	})
}
