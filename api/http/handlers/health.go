package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/PriyanshiDabral/Employee-Management/api/http/presenter"
	"github.com/PriyanshiDabral/Employee-Management/pkg/health"
)

const readinessTimeout = 2 * time.Second

type HealthHandler struct{ svc health.ReadinessUseCase }

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler { return &HealthHandler{svc: svc} }

type statusResponse struct {
	Status string `json:"status"`
}

type notReadyResponse struct {
	Status     string `json:"status"`
	Dependency string `json:"dependency,omitempty"`
	Error      string `json:"error"`
}

// Health reports that the process is serving requests.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} statusResponse
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, statusResponse{Status: "ok"})
}

// Ready checks postgres and, when configured, redis. A failure names the
// dependency that did not answer.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} statusResponse
// @Failure 503 {object} notReadyResponse
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	err := h.svc.Ready(ctx)
	if err == nil {
		return presenter.JSON(c, http.StatusOK, statusResponse{Status: "ready"})
	}

	body := notReadyResponse{Status: "not_ready", Error: err.Error()}
	var dep *health.DependencyError
	if errors.As(err, &dep) {
		body.Dependency = dep.Dependency
		body.Error = dep.Err.Error()
	}
	log.Printf("readiness failed: %v", err)
	return presenter.JSON(c, http.StatusServiceUnavailable, body)
}
