package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PalcoPro/band-agenda/internal/audit"
	"github.com/PalcoPro/band-agenda/internal/config"
	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/handlers"
	"github.com/PalcoPro/band-agenda/internal/infra/repository"
	"github.com/PalcoPro/band-agenda/internal/kv"
	"github.com/PalcoPro/band-agenda/internal/middleware"
	"github.com/PalcoPro/band-agenda/internal/session"
	"github.com/PalcoPro/band-agenda/internal/storage"
	"github.com/PalcoPro/band-agenda/internal/summarizer"
	"github.com/PalcoPro/band-agenda/internal/tokens"
	usecase "github.com/PalcoPro/band-agenda/internal/usecase/event"
)

// RegisterRoutes monta toda a árvore de dependências e as rotas.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// Infra compartilhada
	// ======================================================

	// Sem Redis configurado (desenvolvimento, testes) o armazenamento
	// chave-valor roda em memória: sessões e tokens não sobrevivem ao
	// restart, mas o comportamento é o mesmo.
	var store kv.Store
	if cfg.RedisAddr != "" {
		store = kv.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	} else {
		store = kv.NewMemory()
	}

	auditor := audit.NewDispatcher(audit.New(db))

	// Repositório de eventos com cache de última leitura boa por cima
	// do Postgres.
	var repo domain.Repository = repository.NewCachedRepository(repository.NewEventGormRepository(db))

	users := repository.NewUserGormRepository(db)
	sessions := session.NewManager(users, store, cfg.JWTSecret)
	tokenManager := tokens.NewManager(store)

	uploader := storage.NewS3(cfg)
	summaries := summarizer.New(cfg.SummarizerURL)

	// ======================================================
	// Casos de uso
	// ======================================================

	createEvent := usecase.NewCreateEvent(repo, auditor)
	updateEvent := usecase.NewUpdateEvent(repo, auditor)
	importEvents := usecase.NewImportEvents(repo, auditor)
	shareForm := usecase.NewShareContractorForm(repo, tokenManager, auditor)
	resolveForm := usecase.NewResolveContractorForm(repo, tokenManager)
	completeForm := usecase.NewCompleteContractorForm(repo, tokenManager, auditor)
	createProspect := usecase.NewCreateProspect(repo, tokenManager, auditor)

	// ======================================================
	// Handlers
	// ======================================================

	authHandler := handlers.NewAuthHandler(db, sessions, auditor)
	eventHandler := handlers.NewEventHandler(repo, createEvent, updateEvent, summaries, auditor)
	bandHandler := handlers.NewBandHandler(db, auditor)
	contractorHandler := handlers.NewContractorHandler(db, auditor)
	userHandler := handlers.NewUserHandler(db, auditor)
	contractHandler := handlers.NewContractHandler(repo, uploader, shareForm, auditor)
	importHandler := handlers.NewImportHandler(repo, importEvents)
	publicHandler := handlers.NewPublicHandler(resolveForm, completeForm, createProspect)
	prospectingHandler := handlers.NewProspectingHandler(tokenManager, auditor)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// Rotas
	// ======================================================

	api := r.Group("/api")

	// ---------- Públicas (sem sessão) ----------
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	public := api.Group("/public")
	{
		public.GET("/contractor-form/:token", publicHandler.GetContractorForm)
		public.POST("/contractor-form/:token", publicHandler.SubmitContractorForm)
		public.POST("/prospect/:token", publicHandler.SubmitProspect)
	}

	// ---------- Autenticadas ----------
	secured := api.Group("/")
	secured.Use(middleware.AuthMiddleware(sessions))
	{
		secured.POST("/auth/logout", authHandler.Logout)
		secured.GET("/auth/me", authHandler.Me)

		secured.GET("/events", eventHandler.List)
		secured.POST("/events", eventHandler.Create)
		secured.POST("/events/import/validate", importHandler.Validate)
		secured.POST("/events/import", importHandler.Commit)
		secured.GET("/events/:id", eventHandler.Get)
		secured.PUT("/events/:id", eventHandler.Update)
		secured.DELETE("/events/:id", eventHandler.Delete)
		secured.GET("/events/:id/summary", eventHandler.Summary)

		secured.POST("/events/:id/contract", contractHandler.Upload)
		secured.PATCH("/events/:id/contract", contractHandler.SetHasContract)
		secured.POST("/events/:id/share-form", contractHandler.ShareForm)

		secured.GET("/bands", bandHandler.List)
		secured.POST("/bands", bandHandler.Create)
		secured.GET("/bands/:id", bandHandler.Get)
		secured.PUT("/bands/:id", bandHandler.Update)
		secured.DELETE("/bands/:id", bandHandler.Delete)

		secured.GET("/contractors", contractorHandler.List)
		secured.POST("/contractors", contractorHandler.Create)
		secured.GET("/contractors/:id", contractorHandler.Get)
		secured.PUT("/contractors/:id", contractorHandler.Update)

		secured.GET("/users", userHandler.List)
		secured.POST("/users", userHandler.Create)
		secured.PUT("/users/:id", userHandler.Update)
		secured.DELETE("/users/:id", userHandler.Delete)

		secured.POST("/prospecting-tokens", prospectingHandler.IssueToken)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
