package gemproxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServeHTTP(t *testing.T) {
	cases := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantCalls  int
		wantField  string
		wantValue  string
	}{
		{"chat", http.MethodPost, `{"query":"สวัสดี"}`, http.StatusOK, 1, "text", "สวัสดีครับ"},
		{"lower-case post", "post", `{"query":"สวัสดี"}`, http.StatusOK, 1, "text", "สวัสดีครับ"},
		{"get", http.MethodGet, `{"query":"สวัสดี"}`, http.StatusMethodNotAllowed, 0, "error", "Method Not Allowed"},
		{"options", http.MethodOptions, "", http.StatusMethodNotAllowed, 0, "error", "Method Not Allowed"},
		{"empty post", http.MethodPost, "", http.StatusBadRequest, 0, "error", "Missing request body"},
		{"bad json", http.MethodPost, "{", http.StatusBadRequest, 0, "error", "Invalid JSON body"},
		{"no query", http.MethodPost, `{"isSearch":true}`, http.StatusBadRequest, 0, "error", "Missing query"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fp := &fakeProvider{outcome: CallOutcome{Kind: OutcomeSuccess, Text: "สวัสดีครับ"}}
			h := newTestHandler(fp)

			req := httptest.NewRequest(tc.method, "/api/gemini", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("expected CORS header, got %q", got)
			}
			if got := rec.Header().Get("Content-Type"); got != "application/json" {
				t.Errorf("expected JSON content type, got %q", got)
			}
			if rec.Header().Get(RequestIDHeader) == "" {
				t.Errorf("expected %s header", RequestIDHeader)
			}

			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
			}
			if body[tc.wantField] != tc.wantValue {
				t.Fatalf("expected %s=%q, got %v", tc.wantField, tc.wantValue, body)
			}
			if fp.callCount() != tc.wantCalls {
				t.Fatalf("expected %d upstream calls, got %d", tc.wantCalls, fp.callCount())
			}
		})
	}
}

func TestServeHTTP_OversizeBody(t *testing.T) {
	var logs bytes.Buffer
	fp := &fakeProvider{}
	h := newTestHandler(fp)
	h.log = slog.New(slog.NewTextHandler(&logs, nil))

	big := `{"query":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/gemini", strings.NewReader(big))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if fp.callCount() != 0 {
		t.Fatalf("upstream must not be called")
	}
	reqID := rec.Header().Get(RequestIDHeader)
	if reqID == "" {
		t.Fatalf("expected %s header on unreadable body", RequestIDHeader)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] != "Invalid JSON body" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if !strings.Contains(logs.String(), "msg=request.done") || !strings.Contains(logs.String(), "request_id="+reqID) {
		t.Fatalf("expected request.done log with request id, got %s", logs.String())
	}
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestServeHTTP_WriteFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	h := newTestHandler(&fakeProvider{outcome: CallOutcome{Kind: OutcomeSuccess, Text: "ok"}})
	h.log = slog.New(slog.NewTextHandler(&logs, nil))

	w := brokenWriter{httptest.NewRecorder()}
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/gemini", strings.NewReader(`{"query":"hi"}`)))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 status to be written, got %d", w.Code)
	}
	if !strings.Contains(logs.String(), "response.write.failed") || !strings.Contains(logs.String(), "connection reset") {
		t.Fatalf("expected write failure to be logged, got %s", logs.String())
	}
}
