package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/ArowuTest/bridgetunes-raffle/internal/handlers"
	"github.com/ArowuTest/bridgetunes-raffle/internal/metrics"
	"github.com/ArowuTest/bridgetunes-raffle/internal/middleware"
	"github.com/ArowuTest/bridgetunes-raffle/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/exp/slog"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandlerDependencies holds everything the router wires together
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	DrawHandler        *handlers.DrawHandler
	ParticipantHandler *handlers.ParticipantHandler
	TemplateHandler    *handlers.TemplateHandler

	Tokens       *jwt.TokenService
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	Database     Pinger
	Logger       *slog.Logger
	AllowedHosts []string
}

// SetupRouter sets up the router
func SetupRouter(deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(deps.AllowedHosts))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))

	router.GET("/health", healthHandler(deps.Database))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))

	// Public routes
	public := router.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(deps.Tokens))
	{
		participants := protected.Group("/participants")
		{
			participants.POST("/import", deps.ParticipantHandler.Import)
			participants.GET("", deps.ParticipantHandler.GetParticipants)
			participants.GET("/count", deps.ParticipantHandler.GetParticipantCount)
		}

		draws := protected.Group("/draws")
		{
			draws.POST("", deps.DrawHandler.ExecuteDraw)
			draws.GET("", deps.DrawHandler.GetDraws)
			draws.GET("/:id", deps.DrawHandler.GetDrawByID)
			draws.GET("/:id/report", deps.DrawHandler.GetDrawReport)
			draws.GET("/:id/winners", deps.DrawHandler.GetWinners)
			draws.GET("/:id/manifest", deps.DrawHandler.GetManifest)
			draws.POST("/:id/verify", deps.DrawHandler.VerifyDraw)
		}

		templates := protected.Group("/templates")
		{
			templates.GET("", deps.TemplateHandler.GetTemplates)
			templates.GET("/:name", deps.TemplateHandler.GetTemplate)
			templates.POST("", deps.TemplateHandler.SaveTemplate)
			templates.PUT("", deps.TemplateHandler.SaveTemplate)
		}
	}

	return router
}

func healthHandler(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
