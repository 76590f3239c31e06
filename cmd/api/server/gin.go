package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	ginhandler "student-records/internal/adapter/gin/handler"
	ginrouter "student-records/internal/adapter/gin/router"
	"student-records/internal/config"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(handler *ginhandler.StudentHandler, cfg *config.Config, l *zap.Logger) *http.Server {
	mode := gin.DebugMode
	if cfg.App.Env == "production" {
		mode = gin.ReleaseMode
	}

	router := ginrouter.SetupRouter(handler, ginrouter.Options{
		ServiceName:    cfg.Logger.ServiceName,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
		Mode:           mode,
	}, l)

	l.Info("Gin REST API configured", zap.String("address", cfg.App.Addr()))

	return &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
