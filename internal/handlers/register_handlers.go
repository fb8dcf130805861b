package handlers

import (
	"regexp"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/finbooks/finbooks_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", middleware.MetricsHandler())

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators attaches the binding validators used by the DTOs.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("txntype", func(fl validator.FieldLevel) bool {
		return domain.TransactionType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("orgslug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	registerCurrencyRoutes(v1, services.Currency, services.Fx)
	registerOrganizationRoutes(v1, services)
}

// registerCurrencyRoutes wires the currency and exchange rate endpoints. These
// are shared reference data, not scoped to an organization.
func registerCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, fxService portssvc.FxSvcFacade) {
	h := newCurrencyHandler(currencyService, fxService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrency)
	}

	rates := rg.Group("/exchange-rates")
	{
		rates.POST("", h.createExchangeRate)
		rates.GET("/:from/:to", h.getExchangeRate)
	}
}

// registerOrganizationRoutes wires the organization endpoints and every route
// nested under /orgs/:org_slug.
func registerOrganizationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	orgHandler := newOrganizationHandler(services.Organization)
	accountHandler := newAccountHandler(services.Account)
	txnHandler := newTransactionHandler(services.Posting)
	reportingHandler := newReportingHandler(services.Reporting)

	orgs := rg.Group("/orgs")
	{
		orgs.POST("", orgHandler.createOrganization)
		orgs.GET("", orgHandler.listOrganizations)
	}

	// Routes under a specific organization resolve the slug once via middleware.
	org := orgs.Group("/:org_slug", orgHandler.resolveOrganization)
	{
		org.GET("", orgHandler.getOrganization)
		org.POST("/members", orgHandler.addMember)
		org.POST("/deactivate", orgHandler.deactivateOrganization)
		org.POST("/activate", orgHandler.activateOrganization)

		accounts := org.Group("/accounts")
		{
			accounts.POST("", accountHandler.createAccount)
			accounts.GET("", accountHandler.listAccounts)
			accounts.GET("/:accountID", accountHandler.getAccount)
			accounts.PUT("/:accountID", accountHandler.updateAccount)
			accounts.DELETE("/:accountID", accountHandler.deactivateAccount)
			accounts.GET("/:accountID/entries", txnHandler.listAccountEntries)
		}

		transactions := org.Group("/transactions")
		{
			transactions.POST("", txnHandler.createTransaction)
			transactions.GET("", txnHandler.listTransactions)
			transactions.GET("/:transactionID", txnHandler.getTransaction)
			transactions.POST("/:transactionID/post", txnHandler.postDraft)
			transactions.POST("/:transactionID/void", txnHandler.voidTransaction)
			transactions.POST("/:transactionID/reverse", txnHandler.reverseTransaction)
		}

		org.GET("/reports/trial-balance", reportingHandler.trialBalance)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
