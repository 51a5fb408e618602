package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go-qkart/utils"
)

// HealthController reports whether the server can reach its database
type HealthController struct {
	Ping    func(ctx context.Context) error
	Timeout time.Duration
}

func NewHealthController(ping func(ctx context.Context) error, timeout time.Duration) *HealthController {
	return &HealthController{Ping: ping, Timeout: timeout}
}

// Health answers 200 when the database responds and 503 otherwise
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), hc.Timeout)
	defer cancel()

	if err := hc.Ping(ctx); err != nil {
		log.Printf("health check failed: %v", err)
		utils.WriteError(w, utils.NewAPIError(http.StatusServiceUnavailable, "Database unavailable"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
