package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestGetJsonHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	GetJsonHandler(func() map[string]int { return map[string]int{"readers": 2} }).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"readers":2}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	rec := httptest.NewRecorder()
	CORS(noContent).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	rec = httptest.NewRecorder()
	CORS(noContent).ServeHTTP(rec, req)
	assert.Equal(t, "http://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBasicAuth(t *testing.T) {
	h := BasicAuth("admin", "secret", noContent)
	for _, tc := range []struct {
		user, pass string
		code       int
	}{
		{"admin", "secret", http.StatusNoContent},
		{"admin", "wrong", http.StatusUnauthorized},
		{"", "", http.StatusUnauthorized},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.user != "" {
			req.SetBasicAuth(tc.user, tc.pass)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.code, rec.Code)
	}
}
