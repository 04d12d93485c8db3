package handlers

import (
	"encoding/json"
	"net/http"
)

// filterParams are the query parameters shared by every /api/crops view.
func filterParams() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"name":        "state",
			"in":          "query",
			"description": "Filter by state; omit for all states",
			"required":    false,
			"schema":      map[string]string{"type": "string"},
		},
		{
			"name":        "crop",
			"in":          "query",
			"description": "Filter by crop; omit for all crops",
			"required":    false,
			"schema":      map[string]string{"type": "string"},
		},
		{
			"name":        "season",
			"in":          "query",
			"description": "Filter by season; omit for all seasons",
			"required":    false,
			"schema":      map[string]string{"type": "string"},
		},
		{
			"name":        "start_year",
			"in":          "query",
			"description": "Inclusive lower bound of the year range",
			"required":    false,
			"schema":      map[string]string{"type": "integer"},
		},
		{
			"name":        "end_year",
			"in":          "query",
			"description": "Inclusive upper bound of the year range",
			"required":    false,
			"schema":      map[string]string{"type": "integer"},
		},
	}
}

func viewPath(summary, description string) map[string]interface{} {
	return map[string]interface{}{
		"get": map[string]interface{}{
			"summary":     summary,
			"description": description,
			"parameters":  filterParams(),
			"responses": map[string]interface{}{
				"200": map[string]interface{}{
					"description": "Successful response; no_data is true with a notice when the filter matched no records",
					"content": map[string]interface{}{
						"application/json": map[string]interface{}{
							"schema": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"data":    map[string]string{"type": "object"},
									"no_data": map[string]string{"type": "boolean"},
									"notice":  map[string]string{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	}
}

// OpenAPISpec returns the OpenAPI 3.0 specification for the Crop Yield Platform API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	recordParams := append(filterParams(),
		map[string]interface{}{
			"name":        "page",
			"in":          "query",
			"description": "Page number (default: 1)",
			"required":    false,
			"schema":      map[string]interface{}{"type": "integer", "default": 1},
		},
		map[string]interface{}{
			"name":        "limit",
			"in":          "query",
			"description": "Records per page (default: 100)",
			"required":    false,
			"schema":      map[string]interface{}{"type": "integer", "default": 100},
		},
	)

	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Crop Yield Platform API",
			"description": "Descriptive statistics and exploratory series over Indian crop yield records, filterable by state, crop, season, and year range",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "Crop Yield Platform Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/crops": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get crop records",
					"description": "Retrieve filtered crop yield records with pagination",
					"parameters":  recordParams,
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful response",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"data": map[string]interface{}{
												"type": "array",
												"items": map[string]interface{}{
													"type": "object",
													"properties": map[string]interface{}{
														"state":           map[string]string{"type": "string"},
														"crop":            map[string]string{"type": "string"},
														"season":          map[string]string{"type": "string"},
														"year":            map[string]string{"type": "integer"},
														"area":            map[string]interface{}{"type": "number", "nullable": true},
														"production":      map[string]interface{}{"type": "number", "nullable": true},
														"yield":           map[string]interface{}{"type": "number", "nullable": true},
														"annual_rainfall": map[string]interface{}{"type": "number", "nullable": true},
													},
												},
											},
											"total":       map[string]string{"type": "integer"},
											"page":        map[string]string{"type": "integer"},
											"limit":       map[string]string{"type": "integer"},
											"total_pages": map[string]string{"type": "integer"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/api/crops/summary":     viewPath("Summary metrics", "Record count, average yield, total production, and total area for the filtered records"),
			"/api/crops/trend":       viewPath("Yield trend", "Mean yield per year (line series)"),
			"/api/crops/top-states":  viewPath("Top states", "States ranked by mean yield, descending with ties broken by name (bar series)"),
			"/api/crops/seasons":     viewPath("Season distribution", "Mean yield per season with percentage shares (pie series)"),
			"/api/crops/rainfall":    viewPath("Rainfall vs yield", "Rainfall/yield scatter points with Pearson correlation and impact band"),
			"/api/crops/correlation": viewPath("Correlation matrix", "Pairwise Pearson correlation across numeric columns (heatmap series)"),
			"/api/crops/insights":    viewPath("Key insights", "Best state and crop by mean yield, most productive season, and rainfall impact"),
			"/api/crops/options": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Filter options",
					"description": "Distinct states, crops, seasons, and the dataset year range for filter widgets",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful response",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"states":   map[string]interface{}{"type": "array", "items": map[string]string{"type": "string"}},
											"crops":    map[string]interface{}{"type": "array", "items": map[string]string{"type": "string"}},
											"seasons":  map[string]interface{}{"type": "array", "items": map[string]string{"type": "string"}},
											"min_year": map[string]string{"type": "integer"},
											"max_year": map[string]string{"type": "integer"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Health check",
					"description": "Check if the API is running",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "API is healthy",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"status": map[string]string{"type": "string"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/metrics": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Prometheus metrics",
					"description": "Prometheus metrics endpoint for monitoring",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Prometheus metrics in text format",
							"content": map[string]interface{}{
								"text/plain": map[string]interface{}{
									"schema": map[string]string{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}
