package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httpresp"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/middleware"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// AdminUserHandler gerencia os usuários do painel. Todas as rotas ficam
// atrás do SuperAdminOnly.
type AdminUserHandler struct {
	db *gorm.DB
}

func NewAdminUserHandler(db *gorm.DB) *AdminUserHandler {
	return &AdminUserHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAdminRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	IsSuperAdmin bool   `json:"is_super_admin"`
	RoomAccess   string `json:"room_access"`
}

type UpdateAdminRequest struct {
	Password     string  `json:"password"`
	IsSuperAdmin *bool   `json:"is_super_admin"`
	RoomAccess   *string `json:"room_access"`
}

// ======================================================
// CRUD
// ======================================================

func (h *AdminUserHandler) List(c *gin.Context) {
	var admins []models.AdminUser
	if err := h.db.Order("email ASC").Find(&admins).Error; err != nil {
		httperr.Internal(c, "failed_to_list_admins", "Erro ao listar usuários.")
		return
	}
	httpresp.List(c, admins)
}

func (h *AdminUserHandler) Create(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var count int64
	h.db.Model(&models.AdminUser{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "Já existe um usuário com este e-mail.")
		return
	}

	if !req.IsSuperAdmin && req.RoomAccess == "" {
		httperr.BadRequest(c, "missing_room_access",
			"Um administrador de sala precisa ter uma sala atribuída.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao criar usuário.")
		return
	}

	admin := models.AdminUser{
		Email:        email,
		PasswordHash: string(hashed),
		IsSuperAdmin: req.IsSuperAdmin,
		RoomAccess:   req.RoomAccess,
	}

	if err := h.db.Create(&admin).Error; err != nil {
		httperr.Internal(c, "failed_to_create_admin", "Erro ao criar usuário.")
		return
	}

	c.JSON(http.StatusCreated, admin)
}

func (h *AdminUserHandler) Update(c *gin.Context) {
	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var admin models.AdminUser
	if err := h.db.Where("id = ?", c.Param("id")).First(&admin).Error; err != nil {
		httperr.NotFound(c, "admin_not_found", "Usuário não encontrado.")
		return
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Erro ao atualizar usuário.")
			return
		}
		admin.PasswordHash = string(hashed)
	}
	if req.IsSuperAdmin != nil {
		admin.IsSuperAdmin = *req.IsSuperAdmin
	}
	if req.RoomAccess != nil {
		admin.RoomAccess = *req.RoomAccess
	}

	if err := h.db.Save(&admin).Error; err != nil {
		httperr.Internal(c, "failed_to_update_admin", "Erro ao atualizar usuário.")
		return
	}

	httpresp.OK(c, admin)
}

func (h *AdminUserHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	// Ninguém se auto-remove.
	if id == c.GetString(middleware.ContextAdminID) {
		httperr.BadRequest(c, "cannot_delete_self", "Você não pode remover o próprio usuário.")
		return
	}

	var admin models.AdminUser
	if err := h.db.Where("id = ?", id).First(&admin).Error; err != nil {
		httperr.NotFound(c, "admin_not_found", "Usuário não encontrado.")
		return
	}

	if err := h.db.Delete(&admin).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_admin", "Erro ao remover usuário.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário removido."})
}
