package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

// Store is the part of the store handle the probe needs.
type Store interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	store   Store
	backend string
}

func NewHandler(store Store, backend string) *Handler {
	return &Handler{store: store, backend: backend}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/healthz", h.Check)
}

// Check reports whether the store answers a ping.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"backend": h.backend,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": h.backend})
}
