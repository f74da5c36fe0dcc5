package http

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"runtime"
	"time"
)

// ContactCounter reports how many contacts are stored.
type ContactCounter interface {
	CountContacts(ctx context.Context) (int, error)
}

const apiName = "API Agenda de Contatos"

var serviceFeatures = []string{
	"crud_contacts",
	"name_normalization",
	"phone_formatting",
	"category_filter",
	"name_search",
	"statistics",
	"backup_export",
	"prometheus_metrics",
}

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
</head>
<body>
<h1>{{.Name}}</h1>
<p>Status: online. Version {{.Version}}, running since {{.StartedAt}}.</p>
<ul>
<li><a href="/contacts">/contacts</a> list contacts</li>
<li><a href="/contacts/statistics">/contacts/statistics</a> statistics</li>
<li><a href="/contacts/backup">/contacts/backup</a> export every contact</li>
<li><a href="/health">/health</a> health check</li>
<li><a href="/info">/info</a> service information</li>
<li><a href="/metrics">/metrics</a> Prometheus metrics</li>
</ul>
</body>
</html>
`))

// HealthResponseDTO is the body of GET /health.
type HealthResponseDTO struct {
	Status         string   `json:"status"`
	Service        string   `json:"service"`
	Version        string   `json:"version"`
	Timestamp      string   `json:"timestamp"`
	Uptime         string   `json:"uptime"`
	DatabaseStatus string   `json:"database_status"`
	ContactsCount  int      `json:"contacts_count"`
	Features       []string `json:"features"`
}

// EndpointsInfoDTO summarizes the routes served.
type EndpointsInfoDTO struct {
	Total      int      `json:"total"`
	Categories []string `json:"categories"`
}

// InfoResponseDTO is the body of GET /info.
type InfoResponseDTO struct {
	APIName     string           `json:"api_name"`
	Version     string           `json:"version"`
	Framework   string           `json:"framework"`
	GoVersion   string           `json:"go_version"`
	Features    []string         `json:"features"`
	Endpoints   EndpointsInfoDTO `json:"endpoints"`
	LastUpdated string           `json:"last_updated"`
}

// SystemHandler serves the landing page and the health and info probes.
type SystemHandler struct {
	counter     ContactCounter
	serviceName string
	version     string
	startedAt   time.Time
	logger      *slog.Logger
	now         func() time.Time
}

func NewSystemHandler(counter ContactCounter, serviceName, version string, startedAt time.Time, logger *slog.Logger) *SystemHandler {
	return &SystemHandler{
		counter:     counter,
		serviceName: serviceName,
		version:     version,
		startedAt:   startedAt.UTC(),
		logger:      logger.With("component", "system_handler"),
		now:         time.Now,
	}
}

// Landing handles GET /.
func (h *SystemHandler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Name      string
		Version   string
		StartedAt string
	}{
		Name:      apiName,
		Version:   h.version,
		StartedAt: h.startedAt.Format("02/01/2006 15:04:05 MST"),
	}
	if err := landingTemplate.Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render landing page", "error", err)
	}
}

// Health handles GET /health. The store lives in memory, so a failing count
// is reported as degraded rather than as an HTTP error.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	resp := HealthResponseDTO{
		Status:         "healthy",
		Service:        h.serviceName,
		Version:        h.version,
		Timestamp:      formatTimestamp(now),
		Uptime:         now.Sub(h.startedAt).Round(time.Second).String(),
		DatabaseStatus: "in_memory",
		Features:       serviceFeatures,
	}
	count, err := h.counter.CountContacts(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to count contacts for health check", "error", err)
		resp.Status = "degraded"
		resp.DatabaseStatus = "unavailable"
	}
	resp.ContactsCount = count
	respondWithJSON(w, http.StatusOK, resp)
}

// Info handles GET /info.
func (h *SystemHandler) Info(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, InfoResponseDTO{
		APIName:   apiName,
		Version:   h.version,
		Framework: "go-chi/chi v5",
		GoVersion: runtime.Version(),
		Features:  serviceFeatures,
		Endpoints: EndpointsInfoDTO{
			Total:      12,
			Categories: []string{"system", "contacts", "queries", "metrics"},
		},
		LastUpdated: formatTimestamp(h.now()),
	})
}
