package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/soporte-code/API-PORTALWEB/internal/apierror"
	"github.com/soporte-code/API-PORTALWEB/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func init() { gin.SetMode(gin.TestMode) }

func signToken(t *testing.T, typ string, perfil int, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "u-1", "rol": 1, "perfil": perfil, "typ": typ,
		"exp": time.Now().Add(dur).Unix(), "iat": time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func protectedRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": middleware.GetClaims(c).UsuarioID()})
	})
	r.GET("/p", handlers...)
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_AccessTokenOK(t *testing.T) {
	r := protectedRouter(middleware.JWTAuth(testSecret))
	w := get(r, signToken(t, middleware.TokenAcceso, 1, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u-1")
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	w := get(protectedRouter(middleware.JWTAuth(testSecret)), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_RejectsRefreshToken(t *testing.T) {
	w := get(protectedRouter(middleware.JWTAuth(testSecret)), signToken(t, middleware.TokenRefresco, 1, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_Expired(t *testing.T) {
	w := get(protectedRouter(middleware.JWTAuth(testSecret)), signToken(t, middleware.TokenAcceso, 1, -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRefresh_AcceptsOnlyRefresh(t *testing.T) {
	r := protectedRouter(middleware.JWTRefresh(testSecret))
	assert.Equal(t, http.StatusOK, get(r, signToken(t, middleware.TokenRefresco, 1, time.Hour)).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, signToken(t, middleware.TokenAcceso, 1, time.Hour)).Code)
}

func TestRequirePerfil(t *testing.T) {
	r := protectedRouter(middleware.JWTAuth(testSecret), middleware.RequirePerfil(3))
	assert.Equal(t, http.StatusOK, get(r, signToken(t, middleware.TokenAcceso, 3, time.Hour)).Code)
	w := get(r, signToken(t, middleware.TokenAcceso, 1, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "No autorizado")
}

func TestErrorHandler_MapsDomainErrors(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/nf", func(c *gin.Context) { _ = c.Error(apierror.NoEncontrado("Cuartel no encontrado")) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("pq: connection refused")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Cuartel no encontrado"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/p", func(c *gin.Context) { panic("x") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestID_GeneratedAndPropagated(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/p", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS("https://portal.example.cl"))
	r.GET("/p", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/p", nil)
	req.Header.Set("Origin", "https://portal.example.cl")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://portal.example.cl", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRateLimiter_Blocks21st(t *testing.T) {
	r := gin.New()
	r.POST("/login", middleware.LoginRateLimiter(), func(c *gin.Context) { c.Status(http.StatusOK) })
	var last int
	for i := 0; i < 21; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
