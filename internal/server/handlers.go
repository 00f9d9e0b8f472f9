package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"aquaeco/internal/charts"
	"aquaeco/internal/loader"
	"aquaeco/internal/models"
)

// HandleDashboard serves the main dashboard page. Every request loads
// the datasets fresh; section failures render as inline warnings.
func (s *Server) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := s.Builder.BuildPage(r.Context())
	if err != nil {
		s.log.Error("dashboard render failed", err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// HandleAssistant serves the AI assistant page
func (s *Server) HandleAssistant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := s.Builder.BuildAssistantPage()
	if err != nil {
		s.log.Error("assistant render failed", err)
		http.Error(w, "Failed to render assistant page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

// HandleHealth provides a health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": s.Config.Environment,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleDatasets lists dataset files available in the local data directory
func (s *Server) HandleDatasets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	files, err := s.local.ListDir(r.Context(), ".")
	if err != nil {
		s.log.Error("failed to list data directory", err)
		http.Error(w, "Failed to list datasets", http.StatusInternalServerError)
		return
	}

	var datasets []string
	for _, f := range files {
		if strings.HasSuffix(f, ".csv") {
			datasets = append(datasets, f)
		}
	}

	response := map[string]interface{}{
		"datasets": datasets,
		"count":    len(datasets),
		"sources": map[string]string{
			"energy": s.Config.EnergySourceURL,
			"sensor": s.Config.SensorSourceURL,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// chartSpec binds a chart name to its dataset and presentation
type chartSpec struct {
	source  string
	schema  models.Schema
	columns []string
	title   string
}

func (s *Server) chartSpecFor(name string) (chartSpec, bool) {
	switch name {
	case "energy":
		return chartSpec{
			source:  s.Config.EnergySourceURL,
			schema:  models.EnergySchema,
			columns: models.EnergySchema.Columns,
			title:   "Energy Generation Over Time",
		}, true
	case "water":
		return chartSpec{
			source:  s.Config.SensorSourceURL,
			schema:  models.SensorSchema,
			columns: models.SensorSchema.Columns,
			title:   "Temperature and Humidity Over Time",
		}, true
	default:
		return chartSpec{}, false
	}
}

// HandleChart serves standalone chart renderings:
// /charts/{energy|water}.png and /charts/{energy|water}.html
func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/charts/")
	base, ext, found := strings.Cut(name, ".")
	if !found || (ext != "png" && ext != "html") {
		http.NotFound(w, r)
		return
	}

	spec, ok := s.chartSpecFor(base)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ds, err := s.Loader.Load(r.Context(), spec.source, spec.schema)
	if err != nil {
		s.log.Error("chart dataset load failed", err, map[string]interface{}{"chart": name})
		if loader.IsUnavailable(err) {
			http.Error(w, "Dataset source unavailable", http.StatusServiceUnavailable)
		} else {
			http.Error(w, "Dataset could not be parsed", http.StatusBadGateway)
		}
		return
	}

	switch ext {
	case "png":
		s.serveChartPNG(w, ds, spec)
	case "html":
		s.serveChartPage(w, ds, spec)
	}
}

func (s *Server) serveChartPNG(w http.ResponseWriter, ds *models.Dataset, spec chartSpec) {
	// Render into a buffer first so failures can still change the status code
	var buf bytes.Buffer
	err := charts.TrendPNG(ds, spec.columns, spec.title, &buf)
	if err != nil && !charts.IsMissingColumn(err) {
		s.log.Error("chart PNG render failed", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	if err != nil {
		// Partial render: missing columns logged, present series served
		s.log.Warn("chart rendered partially", map[string]interface{}{"reason": err.Error()})
	}
	if buf.Len() == 0 {
		http.Error(w, "No plottable columns in dataset", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) serveChartPage(w http.ResponseWriter, ds *models.Dataset, spec chartSpec) {
	page, err := charts.TrendPage(ds, spec.columns, charts.Line, spec.title, "")
	if err != nil && !charts.IsMissingColumn(err) {
		s.log.Error("chart page render failed", err)
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	if err != nil {
		s.log.Warn("chart rendered partially", map[string]interface{}{"reason": err.Error()})
	}
	if len(page) == 0 {
		http.Error(w, "No plottable columns in dataset", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
