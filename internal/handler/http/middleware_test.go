package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func jsonLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func TestLoggingEmitsRequestLine(t *testing.T) {
	logger, buf := jsonLogger()

	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/programs?lang=ar", nil)
	req.Header.Set("User-Agent", "amal-admin/2.1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusCreated)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if line["msg"] != "request completed" {
		t.Errorf("msg = %v, want 'request completed'", line["msg"])
	}
	if line["method"] != "POST" || line["path"] != "/programs" || line["query"] != "lang=ar" {
		t.Errorf("request fields wrong: %v", line)
	}
	if line["status"] != float64(http.StatusCreated) {
		t.Errorf("status field = %v, want 201", line["status"])
	}
	if line["bytes"] != float64(len(`{"id":7}`)) {
		t.Errorf("bytes field = %v, want %d", line["bytes"], len(`{"id":7}`))
	}
	if line["user_agent"] != "amal-admin/2.1" {
		t.Errorf("user_agent = %v", line["user_agent"])
	}
}

func TestRecover(t *testing.T) {
	t.Run("panic becomes masked 500", func(t *testing.T) {
		logger, buf := jsonLogger()

		handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("nil stats row for kind publication")
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/publications", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "internal server error") {
			t.Errorf("body should carry generic message, got %v", rr.Body.String())
		}
		if strings.Contains(rr.Body.String(), "stats row") {
			t.Errorf("panic detail leaked to client: %v", rr.Body.String())
		}
		if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), "stats row") {
			t.Errorf("panic detail missing from log: %v", buf.String())
		}
	})

	t.Run("clean handler passes through", func(t *testing.T) {
		logger, _ := jsonLogger()

		handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/faqs", nil))

		if rr.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rr.Code)
		}
	})
}

func TestLimitRequestBody(t *testing.T) {
	readAll := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		maxBytes int64
		bodySize int
		want     int
	}{
		{"under the cap", 1024, 512, http.StatusOK},
		{"exactly at the cap", 1024, 1024, http.StatusOK},
		{"over the cap", 100, 200, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := LimitRequestBody(tt.maxBytes)(readAll)

			body := strings.NewReader(strings.Repeat("a", tt.bodySize))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/stories", body))

			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
