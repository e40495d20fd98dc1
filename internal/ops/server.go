// Package ops exposes the small HTTP surface used by orchestrators and
// operators: health checks and on-demand maintenance jobs.
package ops

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/apperr"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is a dependency the health check pings.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Controller struct {
	hooks  lifecycle.UseCase
	checks map[string]Pinger
	logger logger.ZapLogger
}

func NewController(hooks lifecycle.UseCase, checks map[string]Pinger, log logger.ZapLogger) *Controller {
	return &Controller{
		hooks:  hooks,
		checks: checks,
		logger: log,
	}
}

// NewRouter builds the gin engine with every ops route registered.
func NewRouter(c *Controller) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", c.Health)
	ops := r.Group("/ops")
	{
		ops.POST("/alerts/refresh", c.RefreshAlerts)
		ops.POST("/reservations/recalculate", c.RecalculateReservations)
	}
	return r
}

// Health pings every dependency.
// GET /healthz
func (c *Controller) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	code := http.StatusOK
	deps := gin.H{}
	for name, p := range c.checks {
		if err := p.Ping(pingCtx); err != nil {
			c.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		deps[name] = "ok"
	}

	status := "ok"
	if code != http.StatusOK {
		status = "degraded"
	}
	ctx.JSON(code, gin.H{"status": status, "dependencies": deps})
}

// RefreshAlerts runs the alert sweep now.
// POST /ops/alerts/refresh
func (c *Controller) RefreshAlerts(ctx *gin.Context) {
	res, err := c.hooks.SweepAlerts(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// RecalculateReservations rebuilds reservations for every pending order.
// POST /ops/reservations/recalculate
func (c *Controller) RecalculateReservations(ctx *gin.Context) {
	res, err := c.hooks.RecalculateAllReservations(ctx.Request.Context())
	if err != nil {
		c.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (c *Controller) fail(ctx *gin.Context, err error) {
	code := httpStatus(err)
	if code == http.StatusInternalServerError {
		c.logger.Error("ops request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(code, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(code, gin.H{"error": err.Error()})
}

func httpStatus(err error) int {
	switch {
	case apperr.IsValidation(err):
		return http.StatusBadRequest
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrBusy), apperr.IsInsufficientStock(err):
		return http.StatusConflict
	}
	if _, ok := apperr.AsInsufficientMaterial(err); ok {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
