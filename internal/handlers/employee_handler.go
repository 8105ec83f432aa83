package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httpresp"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// EmployeeHandler expõe o cadastro de servidores: leitura pública (o
// formulário de agendamento usa como seletor de participantes) e
// manutenção pelo painel.
type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type EmployeeRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Sector   string `json:"sector"`
	Orgao    string `json:"orgao"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *EmployeeHandler) List(c *gin.Context) {
	query := h.db.Order("full_name ASC")
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Erro ao listar servidores.")
		return
	}

	httpresp.List(c, employees)
}

// ======================================================
// ADMIN
// ======================================================

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var count int64
	h.db.Model(&models.Employee{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "email_already_exists", "Já existe um servidor com este e-mail.")
		return
	}

	emp := models.Employee{
		FullName: req.FullName,
		Email:    email,
		Sector:   req.Sector,
		Orgao:    req.Orgao,
	}

	if err := h.db.Create(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", "Erro ao criar servidor.")
		return
	}

	c.JSON(http.StatusCreated, emp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var emp models.Employee
	if err := h.db.Where("id = ?", c.Param("id")).First(&emp).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Servidor não encontrado.")
		return
	}

	emp.FullName = req.FullName
	emp.Email = validators.NormalizeEmail(req.Email)
	emp.Sector = req.Sector
	emp.Orgao = req.Orgao

	if err := h.db.Save(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", "Erro ao atualizar servidor.")
		return
	}

	httpresp.OK(c, emp)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	var emp models.Employee
	if err := h.db.Where("id = ?", c.Param("id")).First(&emp).Error; err != nil {
		httperr.NotFound(c, "employee_not_found", "Servidor não encontrado.")
		return
	}

	if err := h.db.Delete(&emp).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_employee", "Erro ao remover servidor.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Servidor removido."})
}
