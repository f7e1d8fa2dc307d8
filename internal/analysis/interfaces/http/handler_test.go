package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"heatpump-insight/internal/analysis/application"
	analysis "heatpump-insight/internal/analysis/domain"
	catalog "heatpump-insight/internal/catalog/domain"
	"heatpump-insight/internal/narrative"
)

func f64(v float64) *float64 { return &v }

func testHandler(t *testing.T) *Handler {
	t.Helper()
	service, err := application.NewService(narrative.NewGenerator(nil))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	profiles := []catalog.PropertyProfile{{PropertyID: "EOH0423", ProfileName: "Average ASHP"}}
	scenarios := []catalog.Scenario{
		{
			ID:         "cold_day",
			Name:       "Cold Weather Performance",
			EventType:  "normal_winter_behavior",
			Timestamp:  "2024-01-20T08:00:00",
			PropertyID: "EOH0423",
			Data: analysis.TelemetrySnapshot{
				IndoorTemp:         f64(19.8),
				OutdoorTemp:        f64(-5.0),
				COP:                f64(2.0),
				PowerConsumptionKW: f64(3.5),
				HeatPumpStatus:     analysis.StatusHeating,
			},
		},
		{
			ID:   "broken",
			Name: "Missing Required Fields",
			Data: analysis.TelemetrySnapshot{IndoorTemp: f64(19.0)},
		},
	}
	handler, err := NewHandler(service, catalog.NewCatalog(profiles, scenarios))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func TestListScenarios(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var summaries []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0]["id"] != "cold_day" || summaries[0]["property_id"] != "EOH0423" {
		t.Fatalf("unexpected summary: %v", summaries[0])
	}
}

func TestScenarioAnalysis(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/cold_day/analysis", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var result analysis.AnalysisResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Pattern.PatternType != analysis.PatternColdWeatherOperation {
		t.Fatalf("expected cold_weather_operation, got %s", result.Pattern.PatternType)
	}
	if result.Explanation == "" || result.WordCount == 0 {
		t.Fatalf("expected explanation, got %+v", result)
	}
}

func TestScenarioAnalysisUnknownID(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/missing/analysis", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestScenarioAnalysisMissingField(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/broken/analysis", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "outdoor_temp") {
		t.Fatalf("expected missing field in body, got %q", resp.Body.String())
	}
}

func TestAnalyzeAdHocScenario(t *testing.T) {
	handler := testHandler(t)
	body := `{
		"id": "adhoc",
		"name": "Ad Hoc",
		"data": {
			"indoor_temp": 19.0,
			"outdoor_temp": 3.0,
			"cop": 1.5,
			"power_consumption_kw": 2.0
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var result analysis.AnalysisResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Pattern.PatternType != analysis.PatternEfficiencyAnomaly {
		t.Fatalf("expected efficiency_anomaly, got %s", result.Pattern.PatternType)
	}
	if result.Guidance.Tier != analysis.TierFault {
		t.Fatalf("expected fault tier, got %s", result.Guidance.Tier)
	}
}

func TestAnalyzeRejectsBadBody(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader("{"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeMethodNotAllowed(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyze", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Code)
	}
}

func TestScenarioReportPDF(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/cold_day/report", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", got)
	}
	if !strings.HasPrefix(resp.Body.String(), "%PDF") {
		t.Fatal("expected PDF payload")
	}
}

func TestScenarioReportXLSX(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/cold_day/report?format=xlsx", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Body.Len() == 0 {
		t.Fatal("expected workbook payload")
	}
}

func TestScenarioReportUnsupportedFormat(t *testing.T) {
	handler := testHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/scenarios/cold_day/report?format=csv", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
