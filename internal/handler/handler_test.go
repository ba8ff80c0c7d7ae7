package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roamscope/internal/domain"
	"roamscope/internal/observability"
	"roamscope/internal/repository/sqlite"
	"roamscope/internal/service"
)

const testCapture = `
BSSID, First time seen, Last time seen, channel, Speed, Privacy, Cipher, Authentication, Power, # beacons, # IV, LAN IP, ID-length, ESSID, Key
AA:BB:CC:00:00:01, 2025-11-13 09:15:02, 2025-11-13 09:42:11,   6,  130, WPA2, CCMP, PSK, -48,  120,    0,   0.  0.  0.  0,   9, SLU-users,
AA:BB:CC:00:00:02, 2025-11-13 09:16:30, 2025-11-13 09:41:55,  36,  866, WPA2, CCMP, PSK, -62,   88,    0,   0.  0.  0.  0,   9, SLU-users,

Station MAC, First time seen, Last time seen, Power, # packets, BSSID, Probed ESSIDs
11:22:33:44:55:66, 2025-11-13 09:15:10, 2025-11-13 09:40:00, -60,   45, AA:BB:CC:00:00:01,
`

func newTestServer(t *testing.T) (*httptest.Server, *service.SurveyService) {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	bus := service.NewEventBus()
	metrics := observability.NewMetricsForTesting()

	surveys := service.NewSurveyService(repo, bus, metrics)
	analysis := service.NewAnalysisService(repo, bus, metrics, service.AnalysisOptions{
		TargetSSID:  "SLU-users",
		TopNetworks: 10,
	})
	validation := service.NewValidationService(repo, bus, metrics, []domain.ReferenceBaseline{
		{Floor: "ground", APs: 2, BSSIDs: 2, Networks: 1, AvgSignal: -55.0},
	}, "SLU-users")

	mux := http.NewServeMux()
	NewSurveyHandler(surveys, analysis, validation).Register(mux)

	srv := httptest.NewServer(Chain(mux, Recover, CORS, Logger, Metrics(metrics)))
	t.Cleanup(srv.Close)

	return srv, surveys
}

func importTestCapture(t *testing.T, surveys *service.SurveyService, floor string) {
	t.Helper()
	if _, err := surveys.ImportAirodump(context.Background(), floor, strings.NewReader(testCapture)); err != nil {
		t.Fatalf("failed to import capture: %v", err)
	}
}

func decodeBody(t *testing.T, resp *http.Response, into interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestImportAirodumpEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("import with floor parameter", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/import/airodump?floor=ground", "text/csv", strings.NewReader(testCapture))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}

		var body map[string]interface{}
		decodeBody(t, resp, &body)
		if body["floor"] != "ground" || body["aps"].(float64) != 2 {
			t.Errorf("unexpected response: %v", body)
		}
	})

	t.Run("floor derived from filename", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/import/airodump?filename=survey_top-01.csv", "text/csv", strings.NewReader(testCapture))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var body map[string]interface{}
		decodeBody(t, resp, &body)
		if body["floor"] != "top" {
			t.Errorf("expected floor top, got %v", body["floor"])
		}
	})

	t.Run("missing floor is rejected", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/import/airodump", "text/csv", strings.NewReader(testCapture))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})

	t.Run("malformed capture is rejected", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/import/airodump?floor=ground", "text/csv", strings.NewReader("garbage"))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var body ErrorResponse
		decodeBody(t, resp, &body)
		if resp.StatusCode != http.StatusBadRequest || body.Error == "" {
			t.Errorf("expected 400 with error body, got %d %v", resp.StatusCode, body)
		}
	})
}

func TestSurveyEndpoints(t *testing.T) {
	srv, surveys := newTestServer(t)
	importTestCapture(t, surveys, "ground")

	t.Run("list surveys", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/surveys")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var list []domain.Survey
		decodeBody(t, resp, &list)
		if len(list) != 1 || list[0].Floor != "ground" {
			t.Errorf("unexpected survey list: %+v", list)
		}
	})

	t.Run("get survey", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/surveys/ground")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var survey domain.Survey
		decodeBody(t, resp, &survey)
		if len(survey.Observations) != 2 {
			t.Errorf("expected 2 observations, got %d", len(survey.Observations))
		}
	})

	t.Run("get missing survey", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/surveys/mezzanine")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("delete survey", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/surveys/ground", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected 204, got %d", resp.StatusCode)
		}

		resp, err = http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 on second delete, got %d", resp.StatusCode)
		}
	})
}

func TestAnalysisEndpoints(t *testing.T) {
	srv, surveys := newTestServer(t)
	importTestCapture(t, surveys, "ground")

	t.Run("analyze floor", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/analysis/ground")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var analysis domain.FloorAnalysis
		decodeBody(t, resp, &analysis)
		if analysis.Summary.TotalAPs != 2 {
			t.Errorf("expected 2 APs, got %d", analysis.Summary.TotalAPs)
		}
		if analysis.TargetSSID != "SLU-users" {
			t.Errorf("expected target SSID in analysis, got %q", analysis.TargetSSID)
		}
	})

	t.Run("analyze building", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/analysis")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var report domain.BuildingReport
		decodeBody(t, resp, &report)
		if len(report.Floors) != 1 || report.TotalAPs != 2 {
			t.Errorf("unexpected report: %+v", report)
		}
	})

	t.Run("analyze missing floor", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/analysis/mezzanine")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestValidationEndpoints(t *testing.T) {
	srv, surveys := newTestServer(t)
	importTestCapture(t, surveys, "ground")

	t.Run("validate floor", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/validation/ground")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var result domain.ValidationResult
		decodeBody(t, resp, &result)
		if result.BSSIDMatchPct != 100 {
			t.Errorf("expected full BSSID match, got %f", result.BSSIDMatchPct)
		}
	})

	t.Run("validate floor without baseline", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/validation/top")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("validate building", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/validation")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var report service.ValidationReport
		decodeBody(t, resp, &report)
		if len(report.Results) != 1 {
			t.Errorf("expected 1 result, got %d", len(report.Results))
		}
	})
}

func TestExportEndpoint(t *testing.T) {
	srv, surveys := newTestServer(t)
	importTestCapture(t, surveys, "ground")

	t.Run("json export", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/export/ground")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if got := resp.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected JSON content type, got %q", got)
		}
		var analysis domain.FloorAnalysis
		decodeBody(t, resp, &analysis)
		if analysis.Floor != "ground" {
			t.Errorf("expected ground analysis, got %q", analysis.Floor)
		}
	})

	t.Run("yaml export", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/export/ground?format=yaml")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if got := resp.Header.Get("Content-Type"); got != "application/x-yaml" {
			t.Errorf("expected YAML content type, got %q", got)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/export/ground?format=xml")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestHealthAndCORS(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("expected ok status, got %v", body)
	}

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/surveys", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected CORS header on preflight response")
	}
}
