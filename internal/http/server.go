package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	auditDomain "github.com/pitchside/medvault/internal/audit/domain"
	auditHTTP "github.com/pitchside/medvault/internal/audit/http"
	auditUseCase "github.com/pitchside/medvault/internal/audit/usecase"
	consentHTTP "github.com/pitchside/medvault/internal/consent/http"
	medicalHTTP "github.com/pitchside/medvault/internal/medical/http"
	"github.com/pitchside/medvault/internal/metrics"
	vaultHTTP "github.com/pitchside/medvault/internal/vault/http"
	vaultUseCase "github.com/pitchside/medvault/internal/vault/usecase"
)

// RouterConfig carries the handlers and middleware settings used to build
// the API router.
type RouterConfig struct {
	Logger *slog.Logger

	VaultHandler       *vaultHTTP.VaultHandler
	CaseHandler        *medicalHTTP.CaseHandler
	GDPRRequestHandler *medicalHTTP.GDPRRequestHandler
	ConsentHandler     *consentHTTP.ConsentHandler
	AuditLogHandler    *auditHTTP.AuditLogHandler

	AccessUseCase   vaultUseCase.AccessUseCase
	AuditLogUseCase auditUseCase.AuditLogUseCase

	// Require2FA gates mutating protected-resource requests behind a
	// second-factor header.
	Require2FA bool

	// Unlock attempt throttling, per tenant.
	UnlockRateLimitEnabled bool
	UnlockRatePerSecond    float64
	UnlockBurst            int

	CORSEnabled      bool
	CORSAllowOrigins string

	// MetricsProvider enables per-request HTTP metrics when set.
	MetricsProvider  *metrics.Provider
	MetricsNamespace string
}

// NewRouter builds the API gin engine with the full route surface.
//
// Middleware ordering is part of the access-control contract: identity is
// established first; the audit middleware comes immediately after so that
// rejections by the role, vault-gate, and second-factor checks are still
// recorded; the remaining checks then run in cheapest-first order.
func NewRouter(ctx context.Context, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(cfg.Logger))
	router.Use(requestid.New())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, cfg.Logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler(ctx))

	v1 := router.Group("/v1")
	v1.Use(vaultHTTP.IdentityMiddleware(cfg.Logger))

	audited := func(resourceType, action, lawfulBasis string) gin.HandlerFunc {
		return auditHTTP.AuditMiddleware(cfg.AuditLogUseCase, resourceType, action, lawfulBasis)
	}

	vault := v1.Group("/vault")
	{
		vault.POST("/enable",
			audited(auditDomain.ResourceTypeVault, auditDomain.ActionCreate, auditDomain.LawfulBasisLegalObligation),
			vaultHTTP.RequireMedicalAdminMiddleware(cfg.Logger),
			vaultHTTP.SecondFactorMiddleware(cfg.Require2FA, cfg.Logger),
			cfg.VaultHandler.EnableHandler,
		)

		unlockHandlers := []gin.HandlerFunc{
			audited(auditDomain.ResourceTypeVault, auditDomain.ActionUnlock, auditDomain.LawfulBasisLegitimateInterest),
			vaultHTTP.RequireMedicalRoleMiddleware(cfg.Logger),
		}
		if cfg.UnlockRateLimitEnabled {
			unlockHandlers = append(unlockHandlers,
				vaultHTTP.UnlockRateLimitMiddleware(cfg.UnlockRatePerSecond, cfg.UnlockBurst, cfg.Logger))
		}
		unlockHandlers = append(unlockHandlers, cfg.VaultHandler.UnlockHandler)
		vault.POST("/unlock", unlockHandlers...)

		vault.POST("/lock",
			audited(auditDomain.ResourceTypeVault, auditDomain.ActionLock, auditDomain.LawfulBasisLegitimateInterest),
			vaultHTTP.RequireMedicalRoleMiddleware(cfg.Logger),
			cfg.VaultHandler.LockHandler,
		)
	}

	cases := v1.Group("/cases")
	{
		cases.POST("",
			audited(auditDomain.ResourceTypeCase, auditDomain.ActionCreate, auditDomain.LawfulBasisConsent),
			vaultHTTP.RequireMedicalRoleMiddleware(cfg.Logger),
			vaultHTTP.VaultGateMiddleware(cfg.AccessUseCase, cfg.Logger),
			vaultHTTP.SecondFactorMiddleware(cfg.Require2FA, cfg.Logger),
			cfg.CaseHandler.CreateHandler,
		)
		cases.GET("/:id",
			audited(auditDomain.ResourceTypeCase, auditDomain.ActionRead, auditDomain.LawfulBasisLegitimateInterest),
			vaultHTTP.RequireMedicalRoleMiddleware(cfg.Logger),
			vaultHTTP.VaultGateMiddleware(cfg.AccessUseCase, cfg.Logger),
			cfg.CaseHandler.GetHandler,
		)
		cases.GET("",
			audited(auditDomain.ResourceTypeCase, auditDomain.ActionRead, auditDomain.LawfulBasisLegitimateInterest),
			vaultHTTP.RequireMedicalRoleMiddleware(cfg.Logger),
			vaultHTTP.VaultGateMiddleware(cfg.AccessUseCase, cfg.Logger),
			cfg.CaseHandler.ListHandler,
		)
	}

	v1.POST("/consents",
		audited(auditDomain.ResourceTypeConsent, auditDomain.ActionCreate, auditDomain.LawfulBasisConsent),
		vaultHTTP.RequireMedicalRoleMiddleware(cfg.Logger),
		vaultHTTP.VaultGateMiddleware(cfg.AccessUseCase, cfg.Logger),
		vaultHTTP.SecondFactorMiddleware(cfg.Require2FA, cfg.Logger),
		cfg.ConsentHandler.CreateHandler,
	)

	v1.POST("/gdpr-requests",
		audited(auditDomain.ResourceTypeGDPRRequest, auditDomain.ActionCreate, auditDomain.LawfulBasisLegalObligation),
		vaultHTTP.RequireMedicalRoleMiddleware(cfg.Logger),
		vaultHTTP.VaultGateMiddleware(cfg.AccessUseCase, cfg.Logger),
		vaultHTTP.SecondFactorMiddleware(cfg.Require2FA, cfg.Logger),
		cfg.GDPRRequestHandler.CreateHandler,
	)

	v1.GET("/audit-logs",
		vaultHTTP.RequireMedicalAdminMiddleware(cfg.Logger),
		cfg.AuditLogHandler.ListHandler,
	)

	return router
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new API server around the given router.
func NewServer(host string, port int, logger *slog.Logger, router *gin.Engine) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
