package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder/internal/service/duesweep"
)

// SweepHandler lets an external scheduler (or an operator) trigger one due sweep.
// It is only mounted when an operator token is configured.
type SweepHandler struct {
	sweepService  *duesweep.Service
	operatorToken string
	now           func() time.Time
}

func NewSweepHandler(sweepService *duesweep.Service, operatorToken string) *SweepHandler {
	return &SweepHandler{
		sweepService:  sweepService,
		operatorToken: operatorToken,
		now:           time.Now,
	}
}

func (h *SweepHandler) HandleSweep(c *gin.Context) {
	ctx := c.Request.Context()

	slog.InfoContext(ctx, "handling sweep request",
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	// Sweeps always run at server time; a caller-chosen window could mark
	// far-future reminders notified early.
	if _, ok := c.GetQuery("from"); ok {
		respondError(c, http.StatusBadRequest, "validation_error", "from is not supported, sweeps run at server time")
		return
	}

	result, err := h.sweepService.Sweep(ctx, h.now())
	if err != nil {
		slog.ErrorContext(ctx, "due sweep failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to run due sweep")
		return
	}

	c.JSON(http.StatusOK, result)
}
