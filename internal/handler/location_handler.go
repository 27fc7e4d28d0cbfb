package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder/internal/geo"
	"github.com/KasumiMercury/primind-reminder/internal/service/proximity"
)

type CheckLocationResponse struct {
	Reminders []proximity.TriggeredReminder `json:"reminders"`
	Count     int                           `json:"count"`
}

type LocationHandler struct {
	proximityService *proximity.Service
	now              func() time.Time
}

func NewLocationHandler(proximityService *proximity.Service) *LocationHandler {
	return &LocationHandler{
		proximityService: proximityService,
		now:              time.Now,
	}
}

func (h *LocationHandler) HandleCheckLocation(c *gin.Context) {
	ctx := c.Request.Context()

	var req CheckLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user := currentUser(c)
	point := geo.Point{Lat: *req.Latitude, Lon: *req.Longitude}

	result, err := h.proximityService.Check(ctx, point, user.ID, h.now())
	if err != nil {
		slog.ErrorContext(ctx, "proximity check failed",
			slog.String("owner_id", user.ID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "server error")
		return
	}

	triggered := result.Triggered
	if triggered == nil {
		triggered = []proximity.TriggeredReminder{}
	}

	c.JSON(http.StatusOK, CheckLocationResponse{
		Reminders: triggered,
		Count:     len(triggered),
	})
}
