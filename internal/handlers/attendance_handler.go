package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/usecase/attendance"
)

// ======================================================
// HANDLER
// ======================================================

// AttendanceHandler atende o link público de confirmação de presença.
type AttendanceHandler struct {
	confirm *attendance.ConfirmAttendance
}

func NewAttendanceHandler(confirm *attendance.ConfirmAttendance) *AttendanceHandler {
	return &AttendanceHandler{confirm: confirm}
}

// ======================================================
// REQUESTS
// ======================================================

type ConfirmAttendanceRequest struct {
	Date     string `json:"date" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
}

// ======================================================
// CONFIRM
// ======================================================

func (h *AttendanceHandler) Confirm(c *gin.Context) {
	var req ConfirmAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	err := h.confirm.Execute(c.Request.Context(), attendance.ConfirmInput{
		BookingID: c.Param("id"),
		Date:      req.Date,
		Email:     req.Email,
		FullName:  req.FullName,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Presença confirmada. Obrigado!"})
}
