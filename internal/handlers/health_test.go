package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		generationLive bool
		retrievalLive  bool
		wantGeneration string
		wantRetrieval  string
	}{
		{"all live", true, true, "live", "live"},
		{"all offline", false, false, "offline", "offline"},
		{"generation only", true, false, "live", "offline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.generationLive, tt.retrievalLive)
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			var resp HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid response: %v", err)
			}
			if resp.Status != "ok" {
				t.Errorf("status = %q, want ok", resp.Status)
			}
			if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
				t.Errorf("timestamp %q is not RFC3339: %v", resp.Timestamp, err)
			}
			if resp.Modes["generation"] != tt.wantGeneration {
				t.Errorf("generation mode = %q, want %q", resp.Modes["generation"], tt.wantGeneration)
			}
			if resp.Modes["retrieval"] != tt.wantRetrieval {
				t.Errorf("retrieval mode = %q, want %q", resp.Modes["retrieval"], tt.wantRetrieval)
			}
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(true, true).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
