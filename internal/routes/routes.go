package routes

import (
	"mural_backend/internal/handlers"
	"mural_backend/internal/logger"
	"mural_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Options struct {
	// StaticDir раздается по /static (загрузки и заглушки)
	StaticDir string
	// Swagger включает /swagger/*any
	Swagger bool
}

// RegisterRoutes регистрирует все HTTP и WebSocket маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	mw *handlers.Middlewares,
	wsHandler *ws.Handler,
	opts Options,
) {
	api := ginRouter.Group("/api")
	appHandlers.RegisterAPI(api, mw)

	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if opts.Swagger {
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if opts.StaticDir != "" {
		ginRouter.Static("/static", opts.StaticDir)
	}

	if wsHandler != nil {
		ginRouter.GET("/ws/feed", mw.OptionalAuth, wsHandler.ServeWS)
		logger.Info("WebSocket route /ws/feed registered")
	}
}
