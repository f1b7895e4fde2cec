package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/middleware"
	"github.com/lacson1/UK-property-management/internal/services"
)

// Services are the business services the API exposes.
type Services struct {
	Properties   services.PropertyService
	Tenants      services.TenantService
	Maintenance  services.MaintenanceService
	Transactions services.TransactionService
	Documents    services.DocumentService
	Tradespeople services.TradespersonService
	Advisor      services.AdvisorService
	Dashboard    services.DashboardService
	Exports      services.ExportService
}

// RouterConfig holds the transport settings of the router.
type RouterConfig struct {
	Env            string
	Backend        string
	CORSOrigins    []string
	MaxUploadBytes int64
	Store          Pinger
}

// NewRouter builds the gin engine with middleware in order:
// RequestID -> Logger -> Recovery -> CORS.
func NewRouter(log *logger.Logger, cfg RouterConfig, svc Services) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log, "/health", "/health/ready"))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	healthHandler := NewHealthHandler(cfg.Store, cfg.Backend, cfg.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)

	propertyHandler := NewPropertyHandler(svc.Properties)
	tenantHandler := NewTenantHandler(svc.Tenants)
	maintenanceHandler := NewMaintenanceHandler(svc.Maintenance)
	financeHandler := NewFinanceHandler(svc.Transactions, svc.Exports)
	documentHandler := NewDocumentHandler(svc.Documents)
	tradespersonHandler := NewTradespersonHandler(svc.Tradespeople)
	advisorHandler := NewAdvisorHandler(svc.Advisor)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)
	exportHandler := NewExportHandler(svc.Exports)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.BodyLimit(cfg.MaxUploadBytes))
	{
		v1.GET("/info", healthHandler.Info)
		v1.GET("/dashboard", dashboardHandler.Overview)

		properties := v1.Group("/properties")
		{
			properties.GET("", propertyHandler.List)
			properties.POST("", propertyHandler.Create)
			properties.GET("/:id", propertyHandler.Get)
			properties.PATCH("/:id", propertyHandler.Update)
			properties.GET("/:id/detail", propertyHandler.Detail)
		}

		v1.GET("/tenants", tenantHandler.List)
		v1.POST("/tenants", tenantHandler.Create)

		maintenance := v1.Group("/maintenance")
		{
			maintenance.GET("", maintenanceHandler.List)
			maintenance.POST("", maintenanceHandler.Create)
			maintenance.POST("/:id/status", maintenanceHandler.Advance)
			maintenance.POST("/:id/assign", maintenanceHandler.Assign)
			maintenance.POST("/:id/quotes", maintenanceHandler.AddQuote)
			maintenance.POST("/:id/quotes/:quoteId/decision", maintenanceHandler.DecideQuote)
			maintenance.POST("/:id/complete", maintenanceHandler.Complete)
		}

		v1.GET("/transactions", financeHandler.List)
		v1.POST("/transactions", financeHandler.Create)

		finance := v1.Group("/finance")
		{
			finance.GET("/summary", financeHandler.Summary)
			finance.GET("/cash-flow", financeHandler.CashFlow)
			finance.GET("/report", financeHandler.Report)
			finance.GET("/years", financeHandler.Years)
			finance.GET("/tax-years", financeHandler.TaxYears)
			finance.POST("/tax-summary", financeHandler.TaxSummary)
			finance.POST("/tax-summary/pdf", financeHandler.TaxSummaryPDF)
		}

		documents := v1.Group("/documents")
		{
			documents.GET("", documentHandler.List)
			documents.GET("/:id", documentHandler.Get)
			documents.POST("", documentHandler.Upload)
		}

		v1.GET("/tradespeople", tradespersonHandler.List)
		v1.POST("/tradespeople", tradespersonHandler.Create)

		v1.POST("/guidance", advisorHandler.Guidance)
		v1.POST("/suggestions", advisorHandler.Suggestions)

		v1.GET("/exports/:entity", exportHandler.Export)
	}

	return router
}
