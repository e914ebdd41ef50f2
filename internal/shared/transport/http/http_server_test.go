package http

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"AlliancePlanner/modules/kit/logx"
)

func TestNewHttpServer_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New(), logx.Nop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("期望 status=%d，实际=%d", nethttp.StatusOK, w.Code)
	}
}

func TestNewHttpServer_Metrics暴露指标(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New(), logx.Nop())

	// 先打一次请求，保证 http_requests_total 有样本
	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(nethttp.MethodGet, "/healthz", nil))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))
	if w.Code != nethttp.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "alliance_planner_http_requests_total") {
		t.Fatalf("期望包含 http 请求计数指标")
	}
}

func TestNewHttpServer_Cors预检(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New(), logx.Nop())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodOptions, "/api/catalog", nil)
	req.Header.Set("Origin", "http://example.com")
	s.Handler().ServeHTTP(w, req)

	if w.Code != nethttp.StatusNoContent {
		t.Fatalf("期望 204，实际=%d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("期望带 CORS 头")
	}
}

func TestShutdown_readyz返回503(t *testing.T) {
	gin.SetMode(gin.TestMode)

	s := NewHttpServer(":0", gin.New(), logx.Nop())
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/readyz", nil))
	if w.Code != nethttp.StatusOK {
		t.Fatalf("期望 200，实际=%d", w.Code)
	}

	_ = s.Shutdown(context.Background())
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/readyz", nil))
	if w.Code != nethttp.StatusServiceUnavailable {
		t.Fatalf("期望 503，实际=%d", w.Code)
	}
}
