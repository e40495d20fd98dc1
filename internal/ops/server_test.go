package ops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	alertDTO "github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
)

type stubHooks struct {
	sweep       *alertDTO.RefreshResult
	recalculate *dto.RecalculateResult
	err         error
}

func (s *stubHooks) OnOrderCreated(context.Context, string) (*dto.CreatedResult, error) {
	return nil, nil
}

func (s *stubHooks) OnOrderStatusChanged(context.Context, string, model.OrderStatus, model.OrderStatus) (*dto.StatusChangeResult, error) {
	return nil, nil
}

func (s *stubHooks) OnOrderDeleted(context.Context, string) (int, error) { return 0, nil }

func (s *stubHooks) RecalculateAllReservations(context.Context) (*dto.RecalculateResult, error) {
	return s.recalculate, s.err
}

func (s *stubHooks) SweepAlerts(context.Context) (*alertDTO.RefreshResult, error) {
	return s.sweep, s.err
}

func serve(t *testing.T, c *Controller, method, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	NewRouter(c).ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %q", w.Body.String())
	}
	return w, body
}

func TestHealth(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantCode   int
		wantStatus string
	}{
		{"all healthy", map[string]Pinger{"postgres": ok, "redis": ok}, http.StatusOK, "ok"},
		{"redis down", map[string]Pinger{"postgres": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&stubHooks{}, tt.checks, logger.NewNop())
			w, body := serve(t, c, http.MethodGet, "/healthz")
			if w.Code != tt.wantCode {
				t.Errorf("Expected %d, got %d", tt.wantCode, w.Code)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("Expected status %s, got %v", tt.wantStatus, body["status"])
			}
			deps, _ := body["dependencies"].(map[string]any)
			if deps["postgres"] != "ok" {
				t.Errorf("Expected postgres ok, got %v", deps["postgres"])
			}
		})
	}
}

func TestMaintenanceRoutes(t *testing.T) {
	hooks := &stubHooks{
		sweep:       &alertDTO.RefreshResult{Checked: 4, Alerts: []model.InventoryAlert{}, Failed: []string{}},
		recalculate: &dto.RecalculateResult{OrdersUpdated: 3, Failed: []string{}},
	}
	c := NewController(hooks, nil, logger.NewNop())

	w, body := serve(t, c, http.MethodPost, "/ops/alerts/refresh")
	if w.Code != http.StatusOK || body["checked"] != float64(4) {
		t.Errorf("Expected 200 with 4 checked, got %d %v", w.Code, body)
	}

	w, body = serve(t, c, http.MethodPost, "/ops/reservations/recalculate")
	if w.Code != http.StatusOK || body["orders_updated"] != float64(3) {
		t.Errorf("Expected 200 with 3 updated, got %d %v", w.Code, body)
	}
}

func TestMaintenanceRouteErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"busy", apperr.ErrBusy, http.StatusConflict, apperr.ErrBusy.Error()},
		{"internal", errors.New("pq: too many connections"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&stubHooks{err: tt.err}, nil, logger.NewNop())
			w, body := serve(t, c, http.MethodPost, "/ops/alerts/refresh")
			if w.Code != tt.wantCode {
				t.Errorf("Expected %d, got %d", tt.wantCode, w.Code)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("Expected error %q, got %v", tt.wantMsg, body["error"])
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.Invalid("order_id", "is required"), http.StatusBadRequest},
		{apperr.NotFound("order", "o1"), http.StatusNotFound},
		{&apperr.InsufficientStockError{}, http.StatusConflict},
		{&apperr.InsufficientMaterialError{}, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := httpStatus(tt.err); got != tt.want {
			t.Errorf("httpStatus(%v): expected %d, got %d", tt.err, tt.want, got)
		}
	}
}
