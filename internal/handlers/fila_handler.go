package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VTekSistemas01/ponto-api/internal/fila"
	"github.com/VTekSistemas01/ponto-api/internal/httperr"
)

// FilaHandler expõe a fila offline para inspeção e disparo manual — é por
// aqui que o administrador enxerga eventos retidos no teto de tentativas.
type FilaHandler struct {
	fila          *fila.Fila
	sinc          *fila.Sincronizador
	maxTentativas int
}

func NewFilaHandler(f *fila.Fila, sinc *fila.Sincronizador, maxTentativas int) *FilaHandler {
	return &FilaHandler{
		fila:          f,
		sinc:          sinc,
		maxTentativas: maxTentativas,
	}
}

type eventoPendenteView struct {
	fila.EventoPendente
	Retido bool `json:"retido"`
}

func (h *FilaHandler) List(c *gin.Context) {
	eventos, err := h.fila.Listar(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "fila_list_failed", "Erro ao ler a fila pendente.")
		return
	}

	views := make([]eventoPendenteView, 0, len(eventos))
	for _, ev := range eventos {
		views = append(views, eventoPendenteView{
			EventoPendente: ev,
			Retido:         ev.Tentativas >= h.maxTentativas,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"pendentes": views,
		"total":     len(views),
	})
}

// Sincronizar dispara uma passada manual. Quando já há passada em
// andamento, responde 202 sem relatório.
func (h *FilaHandler) Sincronizar(c *gin.Context) {
	rel, ok := h.sinc.Sincronizar(c.Request.Context())
	if !ok {
		c.JSON(http.StatusAccepted, gin.H{"status": "sincronizacao_em_andamento"})
		return
	}
	c.JSON(http.StatusOK, rel)
}
