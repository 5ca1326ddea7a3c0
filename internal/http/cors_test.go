package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware_DisabledReturnsNil(t *testing.T) {
	middleware := createCORSMiddleware(false, "https://portal.clinic.example", slog.Default())
	assert.Nil(t, middleware)
}

func TestCreateCORSMiddleware_EnabledWithoutOriginsReturnsNil(t *testing.T) {
	middleware := createCORSMiddleware(true, "", slog.Default())
	assert.Nil(t, middleware)
}

func TestCreateCORSMiddleware_ParsesOrigins(t *testing.T) {
	middleware := createCORSMiddleware(true, " https://portal.clinic.example , https://backoffice.clinic.example ", slog.Default())
	assert.NotNil(t, middleware)
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "CommaSeparated",
			input: "https://portal.clinic.example,https://backoffice.clinic.example",
			want:  []string{"https://portal.clinic.example", "https://backoffice.clinic.example"},
		},
		{
			name:  "TrimsWhitespace",
			input: " https://portal.clinic.example , https://backoffice.clinic.example ",
			want:  []string{"https://portal.clinic.example", "https://backoffice.clinic.example"},
		},
		{
			name:  "EmptyString",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOrigins(tt.input))
		})
	}
}

func corsTestRouter(middleware gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if middleware != nil {
		router.Use(middleware)
	}
	router.GET("/v1/cases", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"cases": []any{}})
	})
	router.POST("/v1/cases", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})
	return router
}

func TestCORSIntegration_HeadersAddedWhenEnabled(t *testing.T) {
	middleware := createCORSMiddleware(true, "https://portal.clinic.example", slog.Default())
	router := corsTestRouter(middleware)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/cases", nil)
	req.Header.Set("Origin", "https://portal.clinic.example")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://portal.clinic.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIntegration_NoHeadersWhenDisabled(t *testing.T) {
	middleware := createCORSMiddleware(false, "https://portal.clinic.example", slog.Default())
	router := corsTestRouter(middleware)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/cases", nil)
	req.Header.Set("Origin", "https://portal.clinic.example")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSIntegration_PreflightRequestHandled(t *testing.T) {
	middleware := createCORSMiddleware(true, "https://portal.clinic.example", slog.Default())
	router := corsTestRouter(middleware)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/cases", nil)
	req.Header.Set("Origin", "https://portal.clinic.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://portal.clinic.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
