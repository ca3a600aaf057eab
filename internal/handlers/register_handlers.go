package handlers

import (
	portssvc "github.com/avencare/hospital_finance_app/internal/core/ports/services"
	"github.com/avencare/hospital_finance_app/internal/middleware"
	"github.com/avencare/hospital_finance_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterHandlers mounts the full HTTP surface: public health and auth
// routes, then every finance route behind JWT auth under /api/v1.
func RegisterHandlers(r *gin.Engine, svcs *portssvc.ServiceContainer, cfg *config.Config) {
	r.GET("/health", HealthCheck)

	api := r.Group("/api/v1")
	authHandler := NewAuthHandler(svcs.Operator, cfg)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	RegisterOperatorRoutes(protected, authHandler)
	registerJournalRoutes(protected, NewJournalHandler(svcs.Posting, svcs.DoctorPayable, svcs.CashSession))
	RegisterDoctorFinanceRoutes(protected, NewDoctorFinanceHandler(svcs.DoctorPayable, svcs.CashSession))
	registerCashSessionRoutes(protected, NewCashSessionHandler(svcs.CashSession))
	registerCorporateRoutes(protected, NewCorporateHandler(svcs.Corporate))

	if !cfg.IsProduction {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	}
}
