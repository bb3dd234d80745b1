package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newKeyedEcho(key string) *echo.Echo {
	e := echo.New()
	g := e.Group("/v1", EchoAPIKey(key, SkipPathSuffix("/captions")))
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	g.GET("/meetings", ok)
	g.POST("/captures/:id/captions", ok)
	return e
}

func TestEchoAPIKey(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		method string
		path   string
		header map[string]string
		want   int
	}{
		{"missing key", "secret", http.MethodGet, "/v1/meetings", nil, http.StatusUnauthorized},
		{"wrong key", "secret", http.MethodGet, "/v1/meetings", map[string]string{APIKeyHeader: "nope"}, http.StatusUnauthorized},
		{"header key", "secret", http.MethodGet, "/v1/meetings", map[string]string{APIKeyHeader: "secret"}, http.StatusOK},
		{"bearer key", "secret", http.MethodGet, "/v1/meetings", map[string]string{echo.HeaderAuthorization: "Bearer secret"}, http.StatusOK},
		{"basic scheme rejected", "secret", http.MethodGet, "/v1/meetings", map[string]string{echo.HeaderAuthorization: "Basic secret"}, http.StatusUnauthorized},
		{"skipped path", "secret", http.MethodPost, "/v1/captures/abc/captions", nil, http.StatusOK},
		{"disabled", "", http.MethodGet, "/v1/meetings", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newKeyedEcho(tt.key)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
