package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VTekSistemas01/ponto-api/internal/audit"
	domain "github.com/VTekSistemas01/ponto-api/internal/domain/ponto"
	"github.com/VTekSistemas01/ponto-api/internal/httperr"
	"github.com/VTekSistemas01/ponto-api/internal/httpresp"
	"github.com/VTekSistemas01/ponto-api/internal/middleware"
	"github.com/VTekSistemas01/ponto-api/internal/models"
	"github.com/VTekSistemas01/ponto-api/internal/timezone"
	ucPonto "github.com/VTekSistemas01/ponto-api/internal/usecase/ponto"
)

// ======================================================
// HANDLER
// ======================================================

type RegistroHandler struct {
	db          *gorm.DB
	editarUC    *ucPonto.EditarRegistro
	historicoUC *ucPonto.ConsultarHistorico
	dispatcher  *audit.Dispatcher
}

func NewRegistroHandler(
	db *gorm.DB,
	editarUC *ucPonto.EditarRegistro,
	historicoUC *ucPonto.ConsultarHistorico,
	dispatcher *audit.Dispatcher,
) *RegistroHandler {
	return &RegistroHandler{
		db:          db,
		editarUC:    editarUC,
		historicoUC: historicoUC,
		dispatcher:  dispatcher,
	}
}

// --------- Requests ---------

type EditarRegistroRequest struct {
	Campo     string    `json:"campo" binding:"required,oneof=entrada saida"`
	NovoValor time.Time `json:"novo_valor" binding:"required"`
	Motivo    string    `json:"motivo" binding:"required"`
}

type MarcarPagamentoRequest struct {
	Pago bool `json:"pago"`
}

// ======================================================
// LISTAGEM (painel)
// ======================================================

func (h *RegistroHandler) List(c *gin.Context) {
	funcionarioID := c.Query("funcionario_id")
	dataInicio := c.Query("data_inicio")
	dataFim := c.Query("data_fim")
	pagoStr := c.Query("pago")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Query base
	// --------------------------------------------------

	q := h.db.Model(&models.RegistroPonto{})

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if funcionarioID != "" {
		id, err := uuid.Parse(funcionarioID)
		if err != nil {
			httperr.BadRequest(c, "funcionario_id_invalido", "funcionario_id deve ser um UUID.")
			return
		}
		q = q.Where("funcionario_id = ?", id)
	}

	if dataInicio != "" {
		if from, err := time.ParseInLocation("2006-01-02", dataInicio, timezone.Localizacao()); err == nil {
			q = q.Where("data >= ?", from)
		}
	}

	if dataFim != "" {
		if to, err := time.ParseInLocation("2006-01-02", dataFim, timezone.Localizacao()); err == nil {
			q = q.Where("data <= ?", to)
		}
	}

	if pagoStr != "" {
		if pago, err := strconv.ParseBool(pagoStr); err == nil {
			q = q.Where("pago = ?", pago)
		}
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "registro_count_failed", "Erro ao contar registros.")
		return
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	var regs []models.RegistroPonto
	if err := q.
		Preload("Funcionario").
		Order("entrada DESC").
		Limit(limit).
		Offset(offset).
		Find(&regs).Error; err != nil {

		httperr.Internal(c, "registro_list_failed", "Erro ao listar registros.")
		return
	}

	c.JSON(200, gin.H{
		"page":      page,
		"limit":     limit,
		"total":     total,
		"registros": regs,
	})
}

// ======================================================
// EDIÇÃO + AUDITORIA
// ======================================================

func (h *RegistroHandler) Editar(c *gin.Context) {
	registroID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "id_invalido", "id deve ser um UUID.")
		return
	}

	var req EditarRegistroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	adminNome := c.MustGet(middleware.ContextAdminNome).(string)

	out, err := h.editarUC.Execute(c.Request.Context(), ucPonto.EditarRegistroInput{
		RegistroID: registroID,
		Campo:      req.Campo,
		NovoValor:  req.NovoValor,
		Motivo:     req.Motivo,
		AdminNome:  adminNome,
	})
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			switch code {
			case "registro_nao_encontrado":
				httperr.NotFound(c, code, "Registro não encontrado.")
			case "saida_antes_da_entrada":
				httperr.Conflict(c, code, "A saída não pode ser anterior à entrada.")
			default:
				httperr.BadRequest(c, code, "Edição recusada.")
			}
			return
		}
		httperr.Internal(c, "internal_error", "Falha ao editar o registro.")
		return
	}

	resp := gin.H{
		"registro":             out.Registro,
		"auditoria_registrada": out.AuditoriaRegistrada,
	}
	if !out.AuditoriaRegistrada {
		resp["aviso"] = "Edição salva, mas o histórico de alterações não pôde ser registrado."
	}
	if out.Registro.TotalHoras != nil {
		resp["total_formatado"] = domain.FormatarHoras(*out.Registro.TotalHoras)
	}

	c.JSON(200, resp)
}

// ======================================================
// HISTÓRICO
// ======================================================

// Historico nunca devolve erro: falha na consulta vira lista vazia.
func (h *RegistroHandler) Historico(c *gin.Context) {
	registroID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "id_invalido", "id deve ser um UUID.")
		return
	}

	hist := h.historicoUC.Execute(c.Request.Context(), registroID)
	httpresp.List(c, hist)
}

// ======================================================
// PAGAMENTO
// ======================================================

func (h *RegistroHandler) MarcarPagamento(c *gin.Context) {
	registroID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "id_invalido", "id deve ser um UUID.")
		return
	}

	var req MarcarPagamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var reg models.RegistroPonto
	if err := h.db.Where("id = ?", registroID).First(&reg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "registro_nao_encontrado", "Registro não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Falha ao buscar o registro.")
		return
	}

	anterior := strconv.FormatBool(reg.Pago)

	reg.Pago = req.Pago
	if req.Pago {
		agora := timezone.Agora()
		reg.DataPagamento = &agora
	} else {
		reg.DataPagamento = nil
	}

	if err := h.db.Save(&reg).Error; err != nil {
		httperr.Internal(c, "internal_error", "Falha ao atualizar o pagamento.")
		return
	}

	adminNome := c.MustGet(middleware.ContextAdminNome).(string)

	// Pagamento é alteração secundária: auditoria em segundo plano.
	h.dispatcher.Dispatch(audit.Alteracao{
		Tabela:        "registros_ponto",
		RegistroID:    reg.ID,
		FuncionarioID: &reg.FuncionarioID,
		AdminNome:     adminNome,
		CampoAlterado: "pago",
		ValorAnterior: anterior,
		ValorNovo:     strconv.FormatBool(reg.Pago),
	})

	httpresp.OK(c, reg)
}
