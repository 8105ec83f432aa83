package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httpresp"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/middleware"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/pdfgen"
	usecase "github.com/lucasmarins-seget/agendamento-seget-back/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingAdminHandler struct {
	list           *usecase.ListAdminBookings
	get            *usecase.GetAdminBooking
	approve        *usecase.ApproveBooking
	reject         *usecase.RejectBooking
	analyze        *usecase.AnalyzeBooking
	approvePartial *usecase.ApprovePartialBooking
	attendance     *usecase.AttendanceSheet
}

func NewBookingAdminHandler(
	list *usecase.ListAdminBookings,
	get *usecase.GetAdminBooking,
	approve *usecase.ApproveBooking,
	reject *usecase.RejectBooking,
	analyze *usecase.AnalyzeBooking,
	approvePartial *usecase.ApprovePartialBooking,
	attendance *usecase.AttendanceSheet,
) *BookingAdminHandler {
	return &BookingAdminHandler{
		list:           list,
		get:            get,
		approve:        approve,
		reject:         reject,
		analyze:        analyze,
		approvePartial: approvePartial,
		attendance:     attendance,
	}
}

// actorFrom monta o ator a partir do contexto populado pelo AuthMiddleware.
func actorFrom(c *gin.Context) usecase.Actor {
	return usecase.Actor{
		Email:        c.GetString(middleware.ContextAdminEmail),
		IsSuperAdmin: c.GetBool(middleware.ContextIsSuperAdmin),
		RoomAccess:   c.GetString(middleware.ContextRoomAccess),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ApproveRequest struct {
	Local string `json:"local"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type AnalyzeRequest struct {
	Note string `json:"note"`
}

type ApprovePartialRequest struct {
	DatesToApprove []string `json:"dates_to_approve" binding:"required"`
	Local          string   `json:"local"`
	Reason         string   `json:"reason"`
}

// ======================================================
// LIST / DETAIL
// ======================================================

func (h *BookingAdminHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := h.list.Execute(c.Request.Context(), usecase.ListAdminInput{
		Actor:  actorFrom(c),
		Room:   c.Query("room"),
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Name:   c.Query("name"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *BookingAdminHandler) Details(c *gin.Context) {
	b, err := h.get.Execute(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, b)
}

// ======================================================
// TRANSIÇÕES
// ======================================================

func (h *BookingAdminHandler) Approve(c *gin.Context) {
	var req ApproveRequest
	_ = c.ShouldBindJSON(&req)

	err := h.approve.Execute(c.Request.Context(), usecase.ApproveInput{
		BookingID: c.Param("id"),
		Actor:     actorFrom(c),
		Local:     req.Local,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agendamento aprovado."})
}

func (h *BookingAdminHandler) Reject(c *gin.Context) {
	var req RejectRequest
	_ = c.ShouldBindJSON(&req)

	err := h.reject.Execute(c.Request.Context(), usecase.RejectInput{
		BookingID: c.Param("id"),
		Actor:     actorFrom(c),
		Reason:    req.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agendamento recusado."})
}

func (h *BookingAdminHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	_ = c.ShouldBindJSON(&req)

	err := h.analyze.Execute(c.Request.Context(), usecase.AnalyzeInput{
		BookingID: c.Param("id"),
		Actor:     actorFrom(c),
		Note:      req.Note,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Agendamento em análise."})
}

func (h *BookingAdminHandler) ApprovePartial(c *gin.Context) {
	var req ApprovePartialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	err := h.approvePartial.Execute(c.Request.Context(), usecase.ApprovePartialInput{
		BookingID:      c.Param("id"),
		Actor:          actorFrom(c),
		DatesToApprove: req.DatesToApprove,
		Local:          req.Local,
		Reason:         req.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Aprovação parcial aplicada."})
}

// ======================================================
// LISTA DE PRESENÇA
// ======================================================

func (h *BookingAdminHandler) Attendance(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	out, err := h.attendance.Execute(c.Request.Context(), c.Param("id"), date, actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *BookingAdminHandler) AttendancePDF(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	out, err := h.attendance.Execute(c.Request.Context(), c.Param("id"), date, actorFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	session, _ := out.Booking.SessionOn(date)

	rows := make([]pdfgen.AttendanceRow, 0, len(out.Entries))
	for _, e := range out.Entries {
		rows = append(rows, pdfgen.AttendanceRow{
			FullName: e.FullName,
			Email:    e.Email,
			Status:   e.Status,
		})
	}

	pdf, err := pdfgen.Render(pdfgen.AttendanceSheet{
		RoomName:    out.Booking.RoomName,
		Date:        domain.FormatDateBR(date),
		StartTime:   session.Start,
		EndTime:     session.End,
		Responsavel: out.Booking.Responsavel,
		Sector:      out.Booking.SetorSolicitante,
		Purpose:     out.Booking.Finalidade,
		Rows:        rows,
	})
	if err != nil {
		httperr.Internal(c, "pdf_error", "Erro ao gerar o PDF.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="lista-presenca-`+date+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
