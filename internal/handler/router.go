package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder/internal/service/auth"
)

type Handlers struct {
	Auth     *AuthHandler
	Reminder *ReminderHandler
	Location *LocationHandler
	Sweep    *SweepHandler
}

// RegisterRoutes mounts the API under /api/v1 on r. The sweep endpoint is
// mounted only when h.Sweep carries an operator token.
func RegisterRoutes(r gin.IRouter, h Handlers, authService *auth.Service) {
	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", h.Auth.HandleRegister)
	authGroup.POST("/login", h.Auth.HandleLogin)

	requireAuth := RequireAuth(authService)
	authGroup.GET("/me", requireAuth, h.Auth.HandleMe)
	authGroup.POST("/logout", requireAuth, h.Auth.HandleLogout)

	reminders := v1.Group("/reminders", requireAuth)
	reminders.GET("", h.Reminder.HandleList)
	reminders.POST("", h.Reminder.HandleCreate)
	reminders.POST("/check-location", h.Location.HandleCheckLocation)
	reminders.GET("/:id", h.Reminder.HandleGet)
	reminders.PUT("/:id", h.Reminder.HandleUpdate)
	reminders.DELETE("/:id", h.Reminder.HandleDelete)

	if h.Sweep != nil && h.Sweep.operatorToken != "" {
		v1.POST("/sweep", RequireOperatorToken(h.Sweep.operatorToken), h.Sweep.HandleSweep)
	}
}
