// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"labstock/internal/core/entity"
	"labstock/internal/domain"
	"labstock/internal/domain/records/batch"
	"labstock/internal/domain/records/equipment"
	"labstock/internal/domain/records/experiment"
	"labstock/internal/domain/records/reagent"
	"labstock/internal/domain/records/user"
	"labstock/internal/domain/reports"
	"labstock/internal/infrastructure/http/v1/handlers"
	"labstock/internal/infrastructure/http/v1/middleware"
	"labstock/internal/infrastructure/storage/postgres"
	"labstock/internal/infrastructure/storage/postgres/record_repo"
	"labstock/internal/infrastructure/storage/postgres/report_repo"
	"labstock/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations
	TxManager *postgres.TxManager

	// Audit records change history; nil disables auditing
	Audit *postgres.AuditService

	// Logger for request logging
	Logger *logger.Logger

	// BatchService is shared with background jobs (expiry sweeper),
	// so it is built by the caller rather than here
	BatchService *batch.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	// Health and metrics endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}
	router.GET("/metrics", middleware.MetricsHandler())

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerRecordRoutes(v1, cfg)
		registerFilterRoutes(v1, cfg)
		registerReportRoutes(v1, cfg)
		registerAuditRoutes(v1, cfg)
	}

	return router
}

// registerRecordRoutes registers the record (catalogue) endpoints.
func registerRecordRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	records := rg.Group("/records")
	baseHandler := handlers.NewBaseHandler()

	// --- REAGENTS ---
	{
		repo := record_repo.NewReagentRepo(cfg.TxManager)
		service := reagent.NewService(repo, cfg.TxManager)
		attachAuditHooks(service.Hooks(), cfg.Audit, "reagent")
		handler := handlers.NewReagentHandler(baseHandler, service)

		group := records.Group("/reagents")
		RegisterRecordRoutes(group, handler)
		group.GET("/low-stock", handler.LowStock)
	}

	// --- BATCHES ---
	{
		attachAuditHooks(cfg.BatchService.Hooks(), cfg.Audit, "batch")
		handler := handlers.NewBatchHandler(baseHandler, cfg.BatchService)

		group := records.Group("/batches")
		RegisterRecordRoutes(group, handler)
		group.POST("/:id/consume", handler.Consume)
		group.GET("/expiring", handler.Expiring)
		group.GET("/by-reagent/:reagentId", handler.ByReagent)
	}

	// --- EQUIPMENT ---
	{
		repo := record_repo.NewEquipmentRepo(cfg.TxManager)
		service := equipment.NewService(repo, cfg.TxManager)
		attachAuditHooks(service.Hooks(), cfg.Audit, "equipment")
		handler := handlers.NewEquipmentHandler(baseHandler, service)

		group := records.Group("/equipment")
		RegisterRecordRoutes(group, handler)
		group.POST("/:id/status", handler.SetStatus)
		group.GET("/calibration-due", handler.CalibrationDue)
	}

	// --- EXPERIMENTS ---
	{
		repo := record_repo.NewExperimentRepo(cfg.TxManager)
		service := experiment.NewService(repo, cfg.TxManager)
		attachAuditHooks(service.Hooks(), cfg.Audit, "experiment")
		handler := handlers.NewExperimentHandler(baseHandler, service)

		group := records.Group("/experiments")
		RegisterRecordRoutes(group, handler)
		group.POST("/:id/status", handler.SetStatus)
		group.GET("/by-lead/:leadId", handler.ByLead)
	}

	// --- USERS ---
	{
		repo := record_repo.NewUserRepo(cfg.TxManager)
		service := user.NewService(repo, cfg.TxManager)
		attachAuditHooks(service.Hooks(), cfg.Audit, "user")
		handler := handlers.NewUserHandler(baseHandler, service)

		group := records.Group("/users")
		RegisterRecordRoutes(group, handler)
		group.POST("/:id/change-password", handler.ChangePassword)
		group.POST("/:id/active", handler.SetActive)
	}
}

// registerFilterRoutes registers the filter-builder support endpoints.
func registerFilterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	reportService := reports.NewService(report_repo.NewReportRepo(cfg.TxManager))
	handler := handlers.NewFiltersHandler(baseHandler, reportService)

	filters := rg.Group("/filters")
	{
		filters.GET("/entities", handler.Entities)
		filters.GET("/metadata", handler.Metadata)
		filters.GET("/presets", handler.Presets)
		filters.POST("/validate", handler.Validate)
	}
}

// registerReportRoutes registers the report query endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()
	reportService := reports.NewService(report_repo.NewReportRepo(cfg.TxManager))
	handler := handlers.NewReportsHandler(baseHandler, reportService)

	reportsGroup := rg.Group("/reports")
	{
		reportsGroup.POST("/query", handler.Query)
		reportsGroup.GET("/query", handler.QueryGET)
		reportsGroup.POST("/preview", handler.Preview)
	}
}

// registerAuditRoutes registers the change history endpoint.
func registerAuditRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Audit == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	handler := handlers.NewAuditHandler(baseHandler, cfg.Audit)

	rg.GET("/audit/:entityType/:id", handler.History)
}

// attachAuditHooks wires change-history logging into a record service.
// After-hooks run outside the mutating transaction; a failed audit write is
// logged by the service but never fails the request.
func attachAuditHooks[T interface {
	entity.Validatable
	entity.Identifiable
}](hooks *domain.HookRegistry[T], audit *postgres.AuditService, entityType string) {
	if audit == nil {
		return
	}

	hooks.On(domain.AfterCreate, func(ctx context.Context, record T) error {
		return audit.LogChange(ctx, entityType, record.GetID(), postgres.AuditActionCreate, postgres.StructToMap(record))
	})
	hooks.On(domain.AfterUpdate, func(ctx context.Context, record T) error {
		return audit.LogChange(ctx, entityType, record.GetID(), postgres.AuditActionUpdate, postgres.StructToMap(record))
	})
	hooks.On(domain.AfterDelete, func(ctx context.Context, record T) error {
		return audit.LogChange(ctx, entityType, record.GetID(), postgres.AuditActionDelete, nil)
	})
}
