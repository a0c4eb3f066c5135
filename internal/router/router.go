package router

import (
	"time"

	"estoquecestas/internal/config"
	"estoquecestas/internal/handler"
	"estoquecestas/internal/middleware"
	"estoquecestas/internal/repository"
	"estoquecestas/internal/service"
	"estoquecestas/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// dispatcher may be nil, which disables PDF receipt jobs.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, agora service.Relogio) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Prometheus())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	loteRepo := repository.NewLoteRepository(db)
	historicoRepo := repository.NewHistoricoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	var recibos service.ReciboEnfileirador
	if dispatcher != nil {
		recibos = dispatcher
	}
	estoqueSvc := service.NewEstoqueService(loteRepo, rdb, agora)
	historicoSvc := service.NewHistoricoService(historicoRepo, cfg.HistoricoDir, agora)
	cestaSvc := service.NewCestaService(loteRepo, estoqueSvc, historicoSvc, recibos, agora)

	// ── Handlers ─────────────────────────────────────────────────────────────
	produtosH := handler.NewProdutosHandler(estoqueSvc)
	cestasH := handler.NewCestasHandler(cestaSvc, historicoSvc)
	historicoH := handler.NewHistoricoHandler(historicoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/historico/:arquivo", historicoH.BaixarRecibo)

	api := r.Group("/api")
	{
		api.POST("/produtos", produtosH.Cadastrar)
		api.GET("/estoque", produtosH.ListarEstoque)

		api.POST("/cestas", cestasH.Montar)
		api.GET("/cestas/:id/itens", cestasH.Itens)

		api.GET("/historico", historicoH.Listar)
	}

	return r
}
