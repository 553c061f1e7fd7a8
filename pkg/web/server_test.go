package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ritzau/practice-graph/pkg/model"
	"github.com/ritzau/practice-graph/pkg/query"
	"github.com/ritzau/practice-graph/pkg/validate"
)

func testReport(t *testing.T) *model.ValidationReport {
	t.Helper()

	practice := func(id, typ, category string) map[string]any {
		return map[string]any{
			"id":           id,
			"name":         "Practice " + id,
			"type":         typ,
			"category":     category,
			"description":  "Description of " + id,
			"requirements": []any{"req"},
			"benefits":     []any{"benefit"},
		}
	}
	doc := map[string]any{
		"practices": []any{
			practice("cd", "root", "core"),
			practice("ci", "practice", "automation"),
			practice("tbd", "practice", "behavior"),
			practice("vc", "practice", "automation"),
		},
		"dependencies": []any{
			map[string]any{"practice_id": "cd", "depends_on_id": "ci"},
			map[string]any{"practice_id": "ci", "depends_on_id": "tbd"},
			map[string]any{"practice_id": "tbd", "depends_on_id": "vc"},
		},
		"metadata": map[string]any{"version": "1.0.0", "lastUpdated": "2025-01-01"},
	}

	report := validate.FullSchema(doc, validate.Options{})
	if !report.IsValid {
		t.Fatalf("Test fixture catalog is invalid: %+v", report.Errors)
	}
	return report
}

func testServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer()
	s.SetReport(testReport(t))
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandlePractice(t *testing.T) {
	rec := get(t, testServer(t), "/api/practices/ci")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var detail PracticeDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if detail.DirectCount != 1 {
		t.Errorf("Expected 1 direct dependency, got %d", detail.DirectCount)
	}
	if detail.TotalCount != 2 {
		t.Errorf("Expected 2 transitive dependencies, got %d", detail.TotalCount)
	}
}

func TestHandlePractice_Unknown(t *testing.T) {
	rec := get(t, testServer(t), "/api/practices/ghost")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHandleTree(t *testing.T) {
	rec := get(t, testServer(t), "/api/tree")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var levels []query.Level
	if err := json.Unmarshal(rec.Body.Bytes(), &levels); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(levels) != 4 {
		t.Fatalf("Expected 4 levels for the chain cd->ci->tbd->vc, got %d", len(levels))
	}
	if levels[0].Practices[0] != "cd" {
		t.Errorf("Expected root at level 0, got %v", levels[0])
	}
}

func TestHandleAdoption(t *testing.T) {
	rec := get(t, testServer(t), "/api/practices/ci/adoption?adopted=tbd,stale&includeSelf=true")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	// One of two (tbd plus unadopted self); the stale ID is filtered out.
	if resp["percent"] != 50 {
		t.Errorf("Expected 50%%, got %d", resp["percent"])
	}

	rec = get(t, testServer(t), "/api/adoption?adopted=cd,ci")
	var catalogResp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &catalogResp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if catalogResp["percent"] != 50 {
		t.Errorf("Expected 50%% of 4 practices, got %d", catalogResp["percent"])
	}
}

func TestHandleChain(t *testing.T) {
	s := testServer(t)
	body := strings.NewReader(`{"chain": ["cd"], "current": "ci"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chain", body)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp["chain"]) != 2 || resp["chain"][1] != "ci" {
		t.Errorf("Expected chain [cd ci], got %v", resp["chain"])
	}
}

func TestInvalidCatalogBlocksQueries(t *testing.T) {
	s := NewServer()
	s.SetReport(validate.FullSchema(map[string]any{}, validate.Options{}))

	if rec := get(t, s, "/api/graph"); rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 for invalid catalog, got %d", rec.Code)
	}
	// The validation report itself stays available for diagnosis.
	if rec := get(t, s, "/api/validation"); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for validation report, got %d", rec.Code)
	}
}

func TestNoCatalogLoaded(t *testing.T) {
	s := NewServer()
	if rec := get(t, s, "/api/validation"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 before any catalog is loaded, got %d", rec.Code)
	}
}
