package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder/internal/domain"
	"github.com/KasumiMercury/primind-reminder/internal/service/reminder"
)

type ReminderListResponse struct {
	Reminders []*domain.Reminder `json:"reminders"`
	Count     int                `json:"count"`
}

type ReminderHandler struct {
	reminderService *reminder.Service
}

func NewReminderHandler(reminderService *reminder.Service) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

func (h *ReminderHandler) HandleList(c *gin.Context) {
	var query ListRemindersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	reminders, err := h.reminderService.List(c.Request.Context(), currentUser(c).ID, reminder.ListOptions{
		Completed: query.Completed,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if reminders == nil {
		reminders = []*domain.Reminder{}
	}

	c.JSON(http.StatusOK, ReminderListResponse{
		Reminders: reminders,
		Count:     len(reminders),
	})
}

func (h *ReminderHandler) HandleGet(c *gin.Context) {
	r, err := h.reminderService.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ReminderHandler) HandleCreate(c *gin.Context) {
	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	r, err := h.reminderService.Create(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

func (h *ReminderHandler) HandleUpdate(c *gin.Context) {
	var req UpdateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	r, err := h.reminderService.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

func (h *ReminderHandler) HandleDelete(c *gin.Context) {
	if err := h.reminderService.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reminder removed"})
}
