package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/audit"
	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httpresp"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// SettingsHandler cuida dos bloqueios de sala e da capacidade do
// laboratório. CRUD direto no banco, sem use case: não há regra de
// concorrência envolvida, só validação de forma.
type SettingsHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSettingsHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{db: db, audit: auditDisp}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBlockRequest struct {
	Room         string   `json:"room" binding:"required"`
	RoomName     string   `json:"room_name" binding:"required"`
	Dates        []string `json:"dates" binding:"required"`
	Times        []string `json:"times" binding:"required"`
	BookingTypes []string `json:"booking_types"`
	Reason       string   `json:"reason" binding:"required"`
}

type UpdateComputersRequest struct {
	AvailableComputers int `json:"available_computers" binding:"required,min=1"`
}

// ======================================================
// BLOQUEIOS
// ======================================================

func (h *SettingsHandler) CreateBlock(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	loc := timezone.Location()
	for _, d := range req.Dates {
		weekend, err := domain.IsWeekend(d, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida: "+d+".")
			return
		}
		if weekend {
			httperr.BadRequest(c, "weekend_not_allowed",
				"A data "+domain.FormatDateBR(d)+" cai em um final de semana.")
			return
		}
	}
	for _, t := range req.Times {
		if _, err := domain.MinutesOf(t); err != nil {
			httperr.BadRequest(c, "invalid_time", "Horário inválido: "+t+".")
			return
		}
	}

	actorEmail := actorFrom(c).Email

	block := models.RoomBlock{
		Room:         req.Room,
		RoomName:     req.RoomName,
		Dates:        req.Dates,
		Times:        req.Times,
		BookingTypes: req.BookingTypes,
		Reason:       req.Reason,
		CreatedBy:    actorEmail,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erro ao criar bloqueio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Room:       block.Room,
		ActorEmail: actorEmail,
		Action:     "block_created",
		Entity:     "room_block",
		EntityID:   &block.ID,
	})

	c.JSON(http.StatusCreated, block)
}

func (h *SettingsHandler) ListBlocks(c *gin.Context) {
	query := h.db.Order("created_at DESC")
	if room := c.Query("room"); room != "" {
		query = query.Where("room = ?", room)
	}

	var blocks []models.RoomBlock
	if err := query.Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Erro ao listar bloqueios.")
		return
	}

	httpresp.List(c, blocks)
}

func (h *SettingsHandler) DeleteBlock(c *gin.Context) {
	id := c.Param("id")

	var block models.RoomBlock
	if err := h.db.Where("id = ?", id).First(&block).Error; err != nil {
		httperr.NotFound(c, "block_not_found", "Bloqueio não encontrado.")
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_block", "Erro ao remover bloqueio.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Room:       block.Room,
		ActorEmail: actorFrom(c).Email,
		Action:     "block_deleted",
		Entity:     "room_block",
		EntityID:   &block.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Bloqueio removido."})
}

// ======================================================
// CAPACIDADE DO LABORATÓRIO
// ======================================================

func (h *SettingsHandler) GetComputers(c *gin.Context) {
	var setting models.RoomSetting
	err := h.db.Where("room = ?", domain.RoomEscolaFazendaria).First(&setting).Error
	if err != nil {
		httperr.NotFound(c, "setting_not_found", "Configuração não encontrada.")
		return
	}

	httpresp.OK(c, setting)
}

func (h *SettingsHandler) UpdateComputers(c *gin.Context) {
	var req UpdateComputersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var setting models.RoomSetting
	err := h.db.Where("room = ?", domain.RoomEscolaFazendaria).First(&setting).Error
	if err != nil {
		httperr.NotFound(c, "setting_not_found", "Configuração não encontrada.")
		return
	}

	setting.AvailableComputers = req.AvailableComputers
	if err := h.db.Save(&setting).Error; err != nil {
		httperr.Internal(c, "failed_to_update_setting", "Erro ao salvar configuração.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Room:       setting.Room,
		ActorEmail: actorFrom(c).Email,
		Action:     "lab_capacity_updated",
		Entity:     "room_setting",
		EntityID:   &setting.ID,
	})

	httpresp.OK(c, setting)
}
