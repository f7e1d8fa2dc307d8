package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"heatpump-insight/internal/analysis/application"
	analysis "heatpump-insight/internal/analysis/domain"
	"heatpump-insight/internal/analysis/interfaces"
	catalog "heatpump-insight/internal/catalog/domain"
	"heatpump-insight/internal/observability/metrics"
)

// Handler provides analysis HTTP endpoints.
type Handler struct {
	service *application.Service
	catalog *catalog.Catalog
}

// NewHandler constructs a handler.
func NewHandler(service *application.Service, cat *catalog.Catalog) (*Handler, error) {
	if service == nil {
		return nil, errors.New("analysis handler: nil service")
	}
	if cat == nil {
		return nil, errors.New("analysis handler: nil catalog")
	}
	return &Handler{service: service, catalog: cat}, nil
}

// ServeHTTP handles /api/v1/analyze and /api/v1/scenarios subroutes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/analyze":
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleAnalyze(w, r)
	case r.URL.Path == "/api/v1/scenarios":
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleList(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/scenarios/"):
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.handleScenario(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var scenario catalog.Scenario
	if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.analyze(w, r, scenario)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	type scenarioSummary struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		EventType  string `json:"event_type,omitempty"`
		Timestamp  string `json:"timestamp,omitempty"`
		PropertyID string `json:"property_id,omitempty"`
	}
	summaries := make([]scenarioSummary, 0, len(h.catalog.Scenarios))
	for _, scenario := range h.catalog.Scenarios {
		summary := scenarioSummary{
			ID:         scenario.ID,
			Name:       scenario.Name,
			EventType:  scenario.EventType,
			Timestamp:  scenario.Timestamp,
			PropertyID: scenario.PropertyID,
		}
		if summary.PropertyID == "" && scenario.Profile != nil {
			summary.PropertyID = scenario.Profile.PropertyID
		}
		summaries = append(summaries, summary)
	}
	writeJSON(w, summaries)
}

func (h *Handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/scenarios/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	scenario, err := h.catalog.Scenario(parts[0])
	if err != nil {
		http.Error(w, "scenario not found", http.StatusNotFound)
		return
	}

	switch parts[1] {
	case "analysis":
		h.analyze(w, r, scenario)
	case "report":
		h.report(w, r, scenario)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request, scenario catalog.Scenario) {
	result, err := h.service.AnalyzeScenario(r.Context(), scenario)
	if err != nil {
		var missing analysis.MissingFieldError
		if errors.As(err, &missing) {
			http.Error(w, missing.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request, scenario catalog.Scenario) {
	result, err := h.service.AnalyzeScenario(r.Context(), scenario)
	if err != nil {
		var missing analysis.MissingFieldError
		if errors.As(err, &missing) {
			http.Error(w, missing.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}
	start := time.Now()
	switch format {
	case "pdf":
		data, err := interfaces.BuildReportPDF(result)
		if err != nil {
			metrics.ObserveReportExport(format, "error", time.Since(start))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.ObserveReportExport(format, "", time.Since(start))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="analysis-`+scenario.ID+`.pdf"`)
		_, _ = w.Write(data)
	case "xlsx":
		data, err := interfaces.BuildReportXLSX(result)
		if err != nil {
			metrics.ObserveReportExport(format, "error", time.Since(start))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metrics.ObserveReportExport(format, "", time.Since(start))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="analysis-`+scenario.ID+`.xlsx"`)
		_, _ = w.Write(data)
	default:
		http.Error(w, "unsupported format", http.StatusBadRequest)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
