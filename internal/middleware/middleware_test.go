package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), RequestID(), Logger(), CrossOrigin())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(RequestIDKey)})
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("secret failure detail")
	})
	return r
}

func TestCrossOrigin_Headers(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))

	expected := map[string]string{
		"Cross-Origin-Embedder-Policy": "require-corp",
		"Cross-Origin-Opener-Policy":   "same-origin",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
	}
	for header, value := range expected {
		if got := w.Header().Get(header); got != value {
			t.Errorf("%s: expected %q, got %q", header, value, got)
		}
	}
}

func TestCrossOrigin_Preflight(t *testing.T) {
	r := newTestRouter()

	for _, path := range []string{"/ok", "/panic", "/does/not/exist"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("OPTIONS", path, nil))

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d", path, w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("%s: expected empty body, got %q", path, w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Errorf("%s: expected CORS header on preflight", path)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := newTestRouter()

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/ok", nil))

		id := w.Header().Get(RequestIDHeader)
		if len(id) != 36 {
			t.Errorf("expected uuid request id, got %q", id)
		}
		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if body["id"] != id {
			t.Errorf("expected context id %q, got %q", id, body["id"])
		}
	})

	t.Run("propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ok", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		r.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("expected incoming id to be kept, got %q", got)
		}
	})
}

func TestRecovery(t *testing.T) {
	r := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("expected generic error, got %q", body["error"])
	}
	if len(body) != 1 {
		t.Errorf("expected only the error field, got %v", body)
	}
}
