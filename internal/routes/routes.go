package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/VTekSistemas01/ponto-api/internal/audit"
	"github.com/VTekSistemas01/ponto-api/internal/config"
	domain "github.com/VTekSistemas01/ponto-api/internal/domain/ponto"
	"github.com/VTekSistemas01/ponto-api/internal/fila"
	"github.com/VTekSistemas01/ponto-api/internal/handlers"
	"github.com/VTekSistemas01/ponto-api/internal/middleware"
	ucPonto "github.com/VTekSistemas01/ponto-api/internal/usecase/ponto"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
	repo domain.Repository,
	filaQ *fila.Fila,
	sinc *fila.Sincronizador,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	travas := ucPonto.NewTravas()

	// ======================================================
	// USE CASES — PONTO
	// ======================================================
	registrarEntradaUC := ucPonto.NewRegistrarEntrada(repo, filaQ, travas, log)
	registrarSaidaUC := ucPonto.NewRegistrarSaida(repo, filaQ, travas, log)

	editarRegistroUC := ucPonto.NewEditarRegistro(repo, auditLogger, log)
	consultarHistoricoUC := ucPonto.NewConsultarHistorico(auditLogger, log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	pontoHandler := handlers.NewPontoHandler(repo, registrarEntradaUC, registrarSaidaUC, log)
	registroHandler := handlers.NewRegistroHandler(db, editarRegistroUC, consultarHistoricoUC, auditDispatcher)
	funcionarioHandler := handlers.NewFuncionarioHandler(db, auditDispatcher)
	filaHandler := handlers.NewFilaHandler(filaQ, sinc, cfg.SyncMaxTentativas)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// QUIOSQUE (nome + PIN)
		// ------------------------------
		api.GET("/ponto/funcionarios", pontoHandler.ListarFuncionarios)
		api.POST("/ponto", pontoHandler.BaterPonto)
		api.POST("/ponto/status", pontoHandler.Status)

		// ------------------------------
		// AUTH (painel)
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PAINEL ADMINISTRATIVO
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/funcionarios", funcionarioHandler.List)
			admin.POST("/funcionarios", funcionarioHandler.Create)
			admin.PATCH("/funcionarios/:id", funcionarioHandler.Update)

			admin.GET("/registros", registroHandler.List)
			admin.PATCH("/registros/:id", registroHandler.Editar)
			admin.GET("/registros/:id/historico", registroHandler.Historico)
			admin.PATCH("/registros/:id/pagamento", registroHandler.MarcarPagamento)

			admin.GET("/fila", filaHandler.List)
			admin.POST("/fila/sincronizar", filaHandler.Sincronizar)
		}
	}
}
