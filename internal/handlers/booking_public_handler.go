package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httpresp"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	usecase "github.com/lucasmarins-seget/agendamento-seget-back/internal/usecase/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type BookingPublicHandler struct {
	create        *usecase.CreateBooking
	search        *usecase.SearchBookings
	getPublic     *usecase.GetPublicBooking
	occupiedHours *usecase.OccupiedHours
}

func NewBookingPublicHandler(
	create *usecase.CreateBooking,
	search *usecase.SearchBookings,
	getPublic *usecase.GetPublicBooking,
	occupiedHours *usecase.OccupiedHours,
) *BookingPublicHandler {
	return &BookingPublicHandler{
		create:        create,
		search:        search,
		getPublic:     getPublic,
		occupiedHours: occupiedHours,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type externalParticipantPayload struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type CreateBookingRequest struct {
	Room        string `json:"room" binding:"required"`
	RoomName    string `json:"room_name"`
	TipoReserva string `json:"tipo_reserva"`

	NomeCompleto     string `json:"nome_completo" binding:"required"`
	SetorSolicitante string `json:"setor_solicitante" binding:"required"`
	Responsavel      string `json:"responsavel"`
	Telefone         string `json:"telefone" binding:"required"`
	Email            string `json:"email" binding:"required,email"`

	// Formato atual: uma session por dia de uso.
	Sessions []models.Session `json:"sessions"`

	// Formato antigo do frontend: três arrays paralelos, pareados por
	// índice. Aceito enquanto houver clientes publicados com ele.
	Dates      []string `json:"dates"`
	HoraInicio []string `json:"hora_inicio"`
	HoraFim    []string `json:"hora_fim"`

	NumeroParticipantes int      `json:"numero_participantes"`
	Participantes       []string `json:"participantes"`
	Finalidade          string   `json:"finalidade"`
	Descricao           string   `json:"descricao"`
	Observacao          string   `json:"observacao"`

	Projetor    string `json:"projetor"`
	SomProjetor string `json:"som_projetor"`
	Internet    string `json:"internet"`
	WifiTodos   string `json:"wifi_todos"`
	ConexaoCabo string `json:"conexao_cabo"`

	SoftwareEspecifico string `json:"software_especifico"`
	QualSoftware       string `json:"qual_software"`
	Papelaria          string `json:"papelaria"`
	MaterialExterno    string `json:"material_externo"`
	ApoioEquipe        string `json:"apoio_equipe"`

	ExternalParticipants []externalParticipantPayload `json:"external_participants"`
}

// sessions junta os dois formatos de entrada em um só.
func (r *CreateBookingRequest) sessions() ([]models.Session, error) {
	if len(r.Sessions) > 0 {
		return r.Sessions, nil
	}

	if len(r.Dates) != len(r.HoraInicio) || len(r.Dates) != len(r.HoraFim) {
		return nil, httperr.ErrBusiness(
			"mismatched_session_arrays",
			"Datas e horários devem ter a mesma quantidade de itens.",
		)
	}

	sessions := make([]models.Session, 0, len(r.Dates))
	for i, d := range r.Dates {
		sessions = append(sessions, models.Session{
			Date:  d,
			Start: r.HoraInicio[i],
			End:   r.HoraFim[i],
		})
	}
	return sessions, nil
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingPublicHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !validators.IsEmailSyntaxValid(email) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	sessions, err := req.sessions()
	if err != nil {
		writeError(c, err)
		return
	}

	externals := make([]models.ExternalParticipant, 0, len(req.ExternalParticipants))
	for _, p := range req.ExternalParticipants {
		externals = append(externals, models.ExternalParticipant{
			FullName: p.FullName,
			Email:    validators.NormalizeEmail(p.Email),
		})
	}

	participantes := make([]string, 0, len(req.Participantes))
	for _, p := range req.Participantes {
		if e := validators.NormalizeEmail(p); e != "" {
			participantes = append(participantes, e)
		}
	}

	out, err := h.create.Execute(c.Request.Context(), usecase.CreateInput{
		Room:        strings.TrimSpace(req.Room),
		RoomName:    req.RoomName,
		TipoReserva: req.TipoReserva,

		NomeCompleto:     req.NomeCompleto,
		SetorSolicitante: req.SetorSolicitante,
		Responsavel:      req.Responsavel,
		Telefone:         req.Telefone,
		Email:            email,

		Sessions: sessions,

		NumeroParticipantes: req.NumeroParticipantes,
		Participantes:       participantes,
		Finalidade:          req.Finalidade,
		Descricao:           req.Descricao,
		Observacao:          req.Observacao,

		Projetor:    req.Projetor,
		SomProjetor: req.SomProjetor,
		Internet:    req.Internet,
		WifiTodos:   req.WifiTodos,
		ConexaoCabo: req.ConexaoCabo,

		SoftwareEspecifico: req.SoftwareEspecifico,
		QualSoftware:       req.QualSoftware,
		Papelaria:          req.Papelaria,
		MaterialExterno:    req.MaterialExterno,
		ApoioEquipe:        req.ApoioEquipe,

		ExternalParticipants: externals,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":               out.BookingID,
		"confirmation_url": out.ConfirmationURL,
		"message":          "Agendamento solicitado com sucesso. Aguarde a aprovação.",
	})
}

// ======================================================
// SEARCH / DETAIL
// ======================================================

func (h *BookingPublicHandler) Search(c *gin.Context) {
	var dates []string
	if raw := c.Query("dates"); raw != "" {
		dates = strings.Split(raw, ",")
	}

	results, err := h.search.Execute(c.Request.Context(), usecase.SearchInput{
		Room:   c.Query("room"),
		Status: c.Query("status"),
		Name:   c.Query("name"),
		Sector: c.Query("sector"),
		Dates:  dates,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, results)
}

func (h *BookingPublicHandler) GetByID(c *gin.Context) {
	b, err := h.getPublic.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, b)
}

// ======================================================
// OCCUPIED HOURS
// ======================================================

func (h *BookingPublicHandler) OccupiedHours(c *gin.Context) {
	room := c.Query("room")
	date := c.Query("date")
	if room == "" || date == "" {
		httperr.BadRequest(c, "missing_room_or_date", "Sala e data são obrigatórias.")
		return
	}

	out, err := h.occupiedHours.Execute(c.Request.Context(), usecase.OccupiedHoursInput{
		Room: room,
		Date: date,
		Tipo: c.Query("tipo"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}
