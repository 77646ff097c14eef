package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VTekSistemas01/ponto-api/internal/audit"
	"github.com/VTekSistemas01/ponto-api/internal/httperr"
	"github.com/VTekSistemas01/ponto-api/internal/httpresp"
	"github.com/VTekSistemas01/ponto-api/internal/middleware"
	"github.com/VTekSistemas01/ponto-api/internal/models"
	"github.com/VTekSistemas01/ponto-api/internal/validators"
)

type FuncionarioHandler struct {
	db         *gorm.DB
	dispatcher *audit.Dispatcher
}

func NewFuncionarioHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *FuncionarioHandler {
	return &FuncionarioHandler{db: db, dispatcher: dispatcher}
}

// --------- Requests ---------

type CreateFuncionarioRequest struct {
	Nome      string  `json:"nome" binding:"required"`
	Pin       string  `json:"pin" binding:"required"`
	ValorHora float64 `json:"valor_hora"`
}

type UpdateFuncionarioRequest struct {
	Pin       *string  `json:"pin"`
	ValorHora *float64 `json:"valor_hora"`
	Ativo     *bool    `json:"ativo"`
}

// --------- Handlers ---------

func (h *FuncionarioHandler) List(c *gin.Context) {
	var funcs []models.Funcionario
	if err := h.db.
		Where("role = ?", "funcionario").
		Order("nome ASC").
		Find(&funcs).Error; err != nil {

		httperr.Internal(c, "funcionario_list_failed", "Erro ao listar funcionários.")
		return
	}
	httpresp.List(c, funcs)
}

func (h *FuncionarioHandler) Create(c *gin.Context) {
	var req CreateFuncionarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validators.IsPinValid(req.Pin) {
		httperr.BadRequest(c, "pin_invalido", "PIN deve ter de 4 a 6 dígitos.")
		return
	}

	var count int64
	h.db.Model(&models.Funcionario{}).Where("nome = ?", req.Nome).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "nome_ja_existe", "Já existe um funcionário com esse nome.")
		return
	}

	f := models.Funcionario{
		Nome:      req.Nome,
		Pin:       req.Pin,
		ValorHora: req.ValorHora,
		Role:      "funcionario",
		Ativo:     true,
	}
	if err := h.db.Create(&f).Error; err != nil {
		httperr.Internal(c, "internal_error", "Falha ao criar o funcionário.")
		return
	}

	c.JSON(201, f)
}

func (h *FuncionarioHandler) Update(c *gin.Context) {
	funcionarioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "id_invalido", "id deve ser um UUID.")
		return
	}

	var req UpdateFuncionarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var f models.Funcionario
	if err := h.db.
		Where("id = ? AND role = ?", funcionarioID, "funcionario").
		First(&f).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "funcionario_nao_encontrado", "Funcionário não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Falha ao buscar o funcionário.")
		return
	}

	adminNome := c.MustGet(middleware.ContextAdminNome).(string)

	if req.Pin != nil {
		if !validators.IsPinValid(*req.Pin) {
			httperr.BadRequest(c, "pin_invalido", "PIN deve ter de 4 a 6 dígitos.")
			return
		}
		f.Pin = *req.Pin
	}

	if req.ValorHora != nil && *req.ValorHora != f.ValorHora {
		h.dispatcher.Dispatch(audit.Alteracao{
			Tabela:        "funcionarios",
			RegistroID:    f.ID,
			FuncionarioID: &f.ID,
			AdminNome:     adminNome,
			CampoAlterado: "valor_hora",
			ValorAnterior: strconv.FormatFloat(f.ValorHora, 'f', 2, 64),
			ValorNovo:     strconv.FormatFloat(*req.ValorHora, 'f', 2, 64),
		})
		f.ValorHora = *req.ValorHora
	}

	if req.Ativo != nil && *req.Ativo != f.Ativo {
		h.dispatcher.Dispatch(audit.Alteracao{
			Tabela:        "funcionarios",
			RegistroID:    f.ID,
			FuncionarioID: &f.ID,
			AdminNome:     adminNome,
			CampoAlterado: "ativo",
			ValorAnterior: strconv.FormatBool(f.Ativo),
			ValorNovo:     strconv.FormatBool(*req.Ativo),
		})
		f.Ativo = *req.Ativo
	}

	if err := h.db.Save(&f).Error; err != nil {
		httperr.Internal(c, "internal_error", "Falha ao atualizar o funcionário.")
		return
	}

	httpresp.OK(c, f)
}
