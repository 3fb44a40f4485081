package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/tgcs/experience-api/internal/config"
	"github.com/tgcs/experience-api/internal/modules/handler"
	"github.com/tgcs/experience-api/internal/modules/service"
)

type staticAuth map[string]*service.Principal

func (a staticAuth) Authenticate(ctx context.Context, cookie string) (*service.Principal, error) {
	if p, ok := a[cookie]; ok {
		return p, nil
	}
	return nil, service.ErrSessionNotFound
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		App:  config.AppCfg{Name: "experience-api"},
		Auth: config.AuthCfg{SessionCookie: "experience_session"},
		CORS: config.CORSCfg{AllowOrigins: []string{"https://catalogue.example.com"}},
	}
	return NewRouter(RouterDeps{
		Config: cfg,
		Log:    zap.NewNop(),
		Auth: staticAuth{
			"user": {SessionID: "u", Email: "user@example.com"},
		},
		CatalogueHandler:      handler.NewCatalogueHandler(nil, nil, nil),
		TableHandler:          handler.NewTableHandler(nil),
		AuthHandler:           handler.NewAuthHandler(nil, cfg),
		ScraperHandler:        handler.NewScraperHandler(nil),
		RecommendationHandler: handler.NewRecommendationHandler(nil),
	})
}

func TestRouter_Public(t *testing.T) {
	r := testRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"msg":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRouter_AdminRoutes(t *testing.T) {
	r := testRouter()

	for _, path := range []string{"/insert", "/update", "/remove", "/create-user", "/scraper"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`)))
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
			req.AddCookie(&http.Cookie{Name: "experience_session", Value: "user"})
			w = httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestRouter_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/experiences", nil)
	req.Header.Set("Origin", "https://catalogue.example.com")
	w := httptest.NewRecorder()
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://catalogue.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
