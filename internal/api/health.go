package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 3 * time.Second

// Check is one readiness dependency.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
//
//   - /healthz always answers 200 while the process is up.
//   - /readyz runs every Check; any failure answers 503. Info, when set, is
//     attached to the body (queue counters, session expiry).
type HealthHandler struct {
	checks []Check
	info   func() map[string]any
}

// NewHealthHandler builds the probe handler. info may be nil; checks run in
// order on every /readyz call.
func NewHealthHandler(info func() map[string]any, checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, info: info}
}

// Register mounts /healthz and /readyz on r.
func (h *HealthHandler) Register(r *gin.Engine) {
	// @Summary      Liveness probe
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// @Summary      Readiness probe
	// @Description  Ready when the vendor session can be obtained and the response cache answers
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]any
	// @Failure      503  {object}  map[string]any
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		status, code := "ready", http.StatusOK
		results := make(map[string]string, len(h.checks))
		for _, chk := range h.checks {
			if err := chk.Fn(ctx); err != nil {
				results[chk.Name] = err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			results[chk.Name] = "ok"
		}

		body := gin.H{"status": status, "checks": results}
		if h.info != nil {
			for k, v := range h.info() {
				body[k] = v
			}
		}
		c.JSON(code, body)
	})
}
