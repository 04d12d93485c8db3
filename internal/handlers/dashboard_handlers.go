package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"cropyield-platform/internal/dataset"
	"cropyield-platform/internal/services"
	"cropyield-platform/pkg/logging"
	"cropyield-platform/pkg/metrics"
)

// noDataNotice is returned per view when a filter matches no records. The
// dashboard degrades gracefully instead of failing the whole session.
const noDataNotice = "No data available for the selected filters."

// DashboardHandler handles crop dashboard API endpoints
type DashboardHandler struct {
	analytics *services.AnalyticsService
	logger    *logging.StructuredLogger
	metrics   *metrics.Collector
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	analytics *services.AnalyticsService,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *DashboardHandler {
	return &DashboardHandler{
		analytics: analytics,
		logger:    logger,
		metrics:   metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}

// ViewResponse wraps a single dashboard view. NoData is set with a notice
// when the filter matched no records.
type ViewResponse struct {
	Data   interface{} `json:"data,omitempty"`
	NoData bool        `json:"no_data,omitempty"`
	Notice string      `json:"notice,omitempty"`
}

// parseFilterSpec builds a FilterSpec from query parameters. A missing
// parameter leaves its constraint unset, which matches all records.
func parseFilterSpec(r *http.Request) (dataset.FilterSpec, error) {
	var spec dataset.FilterSpec
	q := r.URL.Query()

	if v := q.Get("state"); v != "" {
		spec.State = &v
	}
	if v := q.Get("crop"); v != "" {
		spec.Crop = &v
	}
	if v := q.Get("season"); v != "" {
		spec.Season = &v
	}
	if v := q.Get("start_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return spec, &badParamError{param: "start_year", value: v}
		}
		spec.MinYear = &year
	}
	if v := q.Get("end_year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return spec, &badParamError{param: "end_year", value: v}
		}
		spec.MaxYear = &year
	}

	return spec, nil
}

type badParamError struct {
	param string
	value string
}

func (e *badParamError) Error() string {
	return "invalid " + e.param + ": expected integer, got " + e.value
}

// GetRecords handles GET /api/crops
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/api/crops").Observe(time.Since(startTime).Seconds())
	}()

	spec, err := parseFilterSpec(r)
	if err != nil {
		h.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	page := 1
	limit := 100
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}
	offset := (page - 1) * limit

	records, total := h.analytics.Records(ctx, spec, limit, offset)
	totalPages := (total + limit - 1) / limit

	response := PaginatedResponse{
		Data:       records,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}

	h.metrics.RecordAPIRequest("/api/crops", "GET", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// GetSummary handles GET /api/crops/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, "/api/crops/summary", func(spec dataset.FilterSpec) (interface{}, bool) {
		summary := h.analytics.Summary(r.Context(), spec)
		return summary, summary.Records > 0
	})
}

// GetYieldTrend handles GET /api/crops/trend
func (h *DashboardHandler) GetYieldTrend(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, "/api/crops/trend", func(spec dataset.FilterSpec) (interface{}, bool) {
		trend := h.analytics.YieldTrend(r.Context(), spec)
		return trend, len(trend) > 0
	})
}

// GetTopStates handles GET /api/crops/top-states
func (h *DashboardHandler) GetTopStates(w http.ResponseWriter, r *http.Request) {
	n := services.DefaultTopStates
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			n = parsed
		}
	}

	h.view(w, r, "/api/crops/top-states", func(spec dataset.FilterSpec) (interface{}, bool) {
		ranked := h.analytics.TopStates(r.Context(), spec, n)
		return ranked, len(ranked) > 0
	})
}

// GetSeasons handles GET /api/crops/seasons
func (h *DashboardHandler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, "/api/crops/seasons", func(spec dataset.FilterSpec) (interface{}, bool) {
		shares := h.analytics.SeasonShares(r.Context(), spec)
		return shares, len(shares) > 0
	})
}

// GetRainfall handles GET /api/crops/rainfall
func (h *DashboardHandler) GetRainfall(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, "/api/crops/rainfall", func(spec dataset.FilterSpec) (interface{}, bool) {
		relation := h.analytics.Rainfall(r.Context(), spec)
		return relation, len(relation.Points) > 0
	})
}

// GetCorrelations handles GET /api/crops/correlation
func (h *DashboardHandler) GetCorrelations(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, "/api/crops/correlation", func(spec dataset.FilterSpec) (interface{}, bool) {
		matrix, ok := h.analytics.Correlations(r.Context(), spec)
		if !ok {
			return nil, false
		}
		return matrix, true
	})
}

// GetInsights handles GET /api/crops/insights
func (h *DashboardHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	h.view(w, r, "/api/crops/insights", func(spec dataset.FilterSpec) (interface{}, bool) {
		insights, err := h.analytics.DeriveInsights(r.Context(), spec)
		if err != nil {
			return nil, false
		}
		return insights, true
	})
}

// GetOptions handles GET /api/crops/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues("/api/crops/options").Observe(time.Since(startTime).Seconds())
	}()

	h.metrics.RecordAPIRequest("/api/crops/options", "GET", "200")
	h.sendJSON(w, h.analytics.Options(r.Context()), http.StatusOK)
}

// HealthCheck handles GET /health
func (h *DashboardHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// view runs the shared request flow of a filtered dashboard view: parse the
// filter, compute, and wrap empty results in a no-data notice.
func (h *DashboardHandler) view(w http.ResponseWriter, r *http.Request, endpoint string, compute func(dataset.FilterSpec) (interface{}, bool)) {
	startTime := time.Now()
	defer func() {
		h.metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	spec, err := parseFilterSpec(r)
	if err != nil {
		h.sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	data, ok := compute(spec)
	if !ok {
		h.metrics.RecordAPIRequest(endpoint, "GET", "200")
		h.sendJSON(w, ViewResponse{NoData: true, Notice: noDataNotice}, http.StatusOK)
		return
	}

	h.metrics.RecordAPIRequest(endpoint, "GET", "200")
	h.sendJSON(w, ViewResponse{Data: data}, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *DashboardHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *DashboardHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all dashboard API routes
func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/crops", h.GetRecords).Methods("GET")
	router.HandleFunc("/api/crops/summary", h.GetSummary).Methods("GET")
	router.HandleFunc("/api/crops/trend", h.GetYieldTrend).Methods("GET")
	router.HandleFunc("/api/crops/top-states", h.GetTopStates).Methods("GET")
	router.HandleFunc("/api/crops/seasons", h.GetSeasons).Methods("GET")
	router.HandleFunc("/api/crops/rainfall", h.GetRainfall).Methods("GET")
	router.HandleFunc("/api/crops/correlation", h.GetCorrelations).Methods("GET")
	router.HandleFunc("/api/crops/insights", h.GetInsights).Methods("GET")
	router.HandleFunc("/api/crops/options", h.GetOptions).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
	router.HandleFunc("/api/docs/openapi.json", OpenAPISpec).Methods("GET")
	router.HandleFunc("/api/docs", SwaggerUI).Methods("GET")
}
