package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VTekSistemas01/ponto-api/internal/backend"
	domain "github.com/VTekSistemas01/ponto-api/internal/domain/ponto"
	"github.com/VTekSistemas01/ponto-api/internal/httperr"
	"github.com/VTekSistemas01/ponto-api/internal/httpresp"
	"github.com/VTekSistemas01/ponto-api/internal/models"
	ucPonto "github.com/VTekSistemas01/ponto-api/internal/usecase/ponto"
	"github.com/VTekSistemas01/ponto-api/internal/validators"
)

// PontoHandler atende o quiosque: identificação por nome+PIN, sem JWT.
type PontoHandler struct {
	repo      domain.Repository
	entradaUC *ucPonto.RegistrarEntrada
	saidaUC   *ucPonto.RegistrarSaida
	log       *zap.Logger
}

func NewPontoHandler(
	repo domain.Repository,
	entradaUC *ucPonto.RegistrarEntrada,
	saidaUC *ucPonto.RegistrarSaida,
	log *zap.Logger,
) *PontoHandler {
	return &PontoHandler{
		repo:      repo,
		entradaUC: entradaUC,
		saidaUC:   saidaUC,
		log:       log,
	}
}

// --------- Requests ---------

type BaterPontoRequest struct {
	Funcionario string `json:"funcionario" binding:"required"`
	Pin         string `json:"pin" binding:"required"`
	Acao        string `json:"acao" binding:"required,oneof=entrada saida"`
}

type StatusPontoRequest struct {
	Funcionario string `json:"funcionario" binding:"required"`
	Pin         string `json:"pin" binding:"required"`
}

// --------- Handlers ---------

// ListarFuncionarios alimenta a lista de nomes do quiosque. Só nomes:
// PIN e valores nunca saem por aqui.
func (h *PontoHandler) ListarFuncionarios(c *gin.Context) {
	funcs, err := h.repo.ListarFuncionariosAtivos(c.Request.Context())
	if err != nil {
		if backend.EhConectividade(err) {
			httperr.Unavailable(c, "backend_indisponivel", "Sem conexão com o servidor.")
			return
		}
		httperr.Internal(c, "internal_error", "Falha ao listar funcionários.")
		return
	}

	nomes := make([]string, 0, len(funcs))
	for _, f := range funcs {
		nomes = append(nomes, f.Nome)
	}
	httpresp.List(c, nomes)
}

// BaterPonto registra entrada ou saída após validar o PIN no banco.
func (h *PontoHandler) BaterPonto(c *gin.Context) {
	var req BaterPontoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	f, ok := h.autenticar(c, req.Funcionario, req.Pin)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var (
		res *ucPonto.ResultadoPonto
		err error
	)
	if req.Acao == "entrada" {
		res, err = h.entradaUC.Execute(ctx, f.ID)
	} else {
		res, err = h.saidaUC.Execute(ctx, f.ID)
	}

	if err != nil {
		h.escreverErroPonto(c, err)
		return
	}

	resp := gin.H{
		"acao":        req.Acao,
		"funcionario": f.Nome,
		"enfileirado": res.Enfileirado,
	}
	if res.Registro != nil {
		resp["registro"] = res.Registro
	}
	if res.TotalHoras != nil {
		resp["total_horas"] = *res.TotalHoras
		resp["total_formatado"] = domain.FormatarHoras(*res.TotalHoras)
	}
	if res.Enfileirado {
		resp["mensagem"] = "Sem conexão: registro salvo e será sincronizado."
	}

	c.JSON(http.StatusOK, resp)
}

// Status devolve o último registro do funcionário e se há turno aberto.
func (h *PontoHandler) Status(c *gin.Context) {
	var req StatusPontoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	f, ok := h.autenticar(c, req.Funcionario, req.Pin)
	if !ok {
		return
	}

	ultimo, err := h.repo.BuscarUltimoRegistro(c.Request.Context(), f.ID)
	if err != nil {
		if backend.EhConectividade(err) {
			httperr.Unavailable(c, "verificacao_indisponivel", "Sem conexão para consultar o registro.")
			return
		}
		httperr.Internal(c, "internal_error", "Falha ao consultar o registro.")
		return
	}

	resp := gin.H{
		"funcionario": f.Nome,
		"status":      domain.StatusDe(ultimo),
	}
	if ultimo != nil {
		resp["ultimo_registro"] = ultimo
		if ultimo.TotalHoras != nil {
			resp["total_formatado"] = domain.FormatarHoras(*ultimo.TotalHoras)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// --------- Helpers ---------

// autenticar valida nome+PIN pela função do banco. Já escreve a resposta
// de erro quando devolve ok=false.
func (h *PontoHandler) autenticar(c *gin.Context, nome, pin string) (*models.Funcionario, bool) {
	nome = strings.TrimSpace(nome)

	if !validators.IsPinValid(pin) {
		httperr.BadRequest(c, "pin_invalido", "PIN deve ter de 4 a 6 dígitos.")
		return nil, false
	}

	f, err := h.repo.ValidarPin(c.Request.Context(), nome, pin)
	if err != nil {
		if backend.EhConectividade(err) {
			// Sem rede não dá para validar o PIN; nada é enfileirado aqui.
			httperr.Unavailable(c, "verificacao_indisponivel", "Sem conexão para validar o PIN.")
			return nil, false
		}
		httperr.Internal(c, "internal_error", "Falha ao validar o PIN.")
		return nil, false
	}
	if f == nil {
		httperr.Unauthorized(c, "pin_incorreto", "Nome ou PIN incorretos.")
		return nil, false
	}
	return f, true
}

func (h *PontoHandler) escreverErroPonto(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		switch code {
		case "entrada_em_aberto":
			httperr.Conflict(c, code, "Já existe uma entrada em aberto. Registre a saída primeiro.")
		case "entrada_obrigatoria":
			httperr.Conflict(c, code, "Nenhuma entrada em aberto. Registre a entrada primeiro.")
		case "registro_ja_fechado":
			httperr.Conflict(c, code, "Este registro já foi fechado.")
		case "saida_antes_da_entrada":
			httperr.Conflict(c, code, "Saída anterior à entrada. Procure o administrador.")
		default:
			httperr.BadRequest(c, code, "Operação recusada.")
		}
		return
	}

	if backend.EhConectividade(err) {
		// Só a verificação do turno aberto chega aqui sem enfileirar.
		httperr.Unavailable(c, "verificacao_indisponivel", "Sem conexão para verificar o turno aberto.")
		return
	}

	h.log.Error("falha ao bater ponto", zap.Error(err))
	httperr.Internal(c, "internal_error", "Falha ao registrar o ponto.")
}
