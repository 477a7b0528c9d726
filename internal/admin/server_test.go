package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"graphlod/internal/config"
	"graphlod/internal/graph"
	"graphlod/internal/lod"
	"graphlod/internal/monitor"
	"graphlod/internal/report"
)

func testGovernor() *monitor.Governor {
	nodes := make([]graph.Node, 0, 500)
	for i := 0; i < 500; i++ {
		nodes = append(nodes, graph.Node{
			ID: fmt.Sprintf("n%d", i),
			X:  float64(i%50) * 20,
			Y:  float64(i/50) * 20,
		})
	}
	cfg := config.Default()
	cfg.SessionID = "admin-test"
	cfg.SamplingSeed = 1
	return monitor.NewGovernor(cfg, monitor.StaticProvider{Snap: graph.Snapshot{Nodes: nodes}}, nil, nil, nil, nil, nil)
}

func TestHandleReport(t *testing.T) {
	gov := testGovernor()
	defer gov.Destroy()
	server := NewServer(gov)

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	w := httptest.NewRecorder()
	server.handleReport(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v", resp.StatusCode)
	}
	var rep report.Report
	if err := json.NewDecoder(resp.Body).Decode(&rep); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if rep.NodeCount != 500 {
		t.Errorf("node count = %d, want 500", rep.NodeCount)
	}
}

func TestHandleReduce(t *testing.T) {
	gov := testGovernor()
	defer gov.Destroy()
	server := NewServer(gov)

	req := httptest.NewRequest(http.MethodPost, "/reduce?tier=medium", nil)
	w := httptest.NewRecorder()
	server.handleReduce(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %v", resp.StatusCode)
	}
	var red lod.Reduction
	if err := json.NewDecoder(resp.Body).Decode(&red); err != nil {
		t.Fatalf("decode reduction: %v", err)
	}
	if red.Tier != lod.TierMedium {
		t.Errorf("tier = %v, want medium", red.Tier)
	}
	if len(red.Nodes) >= 500 {
		t.Errorf("reduction kept all %d nodes", len(red.Nodes))
	}
}

func TestHandleReduce_UnknownTier(t *testing.T) {
	gov := testGovernor()
	defer gov.Destroy()
	server := NewServer(gov)

	req := httptest.NewRequest(http.MethodPost, "/reduce?tier=bogus", nil)
	w := httptest.NewRecorder()
	server.handleReduce(w, req)

	if w.Result().StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown tier, got %v", w.Result().StatusCode)
	}
}

func TestHandleAggressiveAndReset(t *testing.T) {
	gov := testGovernor()
	defer gov.Destroy()
	server := NewServer(gov)

	w := httptest.NewRecorder()
	server.handleAggressive(w, httptest.NewRequest(http.MethodPost, "/aggressive", nil))

	var body map[string]any
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["applied"] != true {
		t.Errorf("applied = %v", body["applied"])
	}
	if body["lod_level"].(float64) != float64(lod.TierMedium) {
		t.Errorf("lod_level = %v, want %d", body["lod_level"], lod.TierMedium)
	}

	w = httptest.NewRecorder()
	server.handleReset(w, httptest.NewRequest(http.MethodPost, "/reset", nil))
	body = map[string]any{}
	if err := json.NewDecoder(w.Result().Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["reset"] != true || body["lod_level"].(float64) != 0 {
		t.Errorf("unexpected reset response: %v", body)
	}
}

func TestHandleIndex_RendersHTML(t *testing.T) {
	gov := testGovernor()
	defer gov.Destroy()
	server := NewServer(gov)

	w := httptest.NewRecorder()
	server.handleIndex(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %v", w.Result().StatusCode)
	}
	if w.Body.Len() == 0 {
		t.Error("empty index page")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	gov := testGovernor()
	defer gov.Destroy()
	server := NewServer(gov)

	gov.RecordRender(16)

	w := httptest.NewRecorder()
	server.mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %v", w.Result().StatusCode)
	}
	if w.Body.Len() == 0 {
		t.Error("empty metrics exposition")
	}
}
