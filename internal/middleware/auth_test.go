package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgf/backend/internal/config"
	"github.com/pgf/backend/pkg/jwt"
)

func adminTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	admin := r.Group("/admin", AdminAuth(cfg))
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func TestAdminAuth(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	router := adminTestRouter(cfg)

	validToken, err := jwt.GenerateToken("admin", jwt.AdminToken, cfg.JWTSecret, time.Hour)
	require.NoError(t, err)
	expiredToken, err := jwt.GenerateToken("admin", jwt.AdminToken, cfg.JWTSecret, -time.Minute)
	require.NoError(t, err)
	wrongTypeToken, err := jwt.GenerateToken("admin", jwt.TokenType("refresh"), cfg.JWTSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer " + validToken, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not a bearer scheme", "Basic abc123", http.StatusUnauthorized},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"wrong token type", "Bearer " + wrongTypeToken, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
