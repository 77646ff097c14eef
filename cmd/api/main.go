package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/VTekSistemas01/ponto-api/internal/config"
	dbpkg "github.com/VTekSistemas01/ponto-api/internal/db"
	"github.com/VTekSistemas01/ponto-api/internal/fila"
	infraRepo "github.com/VTekSistemas01/ponto-api/internal/infra/repository"
	"github.com/VTekSistemas01/ponto-api/internal/logger"
	"github.com/VTekSistemas01/ponto-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// INFRA
	// ======================================================
	db := dbpkg.NewDB(cfg)
	repo := infraRepo.NewPontoGormRepository(db)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisSenha,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		// O slot local é pré-requisito: sem ele o modo offline não existe.
		log.Fatal("redis indisponível", zap.Error(err))
	}

	filaQ := fila.NewFila(fila.NewRedisStore(rdb, cfg.FilaChave))

	sinc := fila.NewSincronizador(filaQ, repo, fila.SincronizadorConfig{
		MaxTentativas: cfg.SyncMaxTentativas,
	}, log)

	monitor := fila.NewMonitor(repo, sinc, cfg.PingIntervalo, log)
	monitor.Iniciar(ctx)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, repo, filaQ, sinc)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info("servidor no ar", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("falha ao iniciar o servidor", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("encerrando")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown forçado", zap.Error(err))
	}
}
