package server

import (
	"github.com/gin-gonic/gin"

	"github.com/abhisek/edudesign/internal/logger"
)

func newRouter(cfg Config, h *handlers, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.AllowedOrigins))

	r.GET("/healthcheck", h.healthCheck)

	api := r.Group("/api")
	api.Use(RateLimit(cfg.RequestsPerMinute, cfg.Burst))
	{
		api.GET("/personas", h.listPersonas)
		api.POST("/curriculum", h.generateCurriculum)
		api.POST("/chat", h.chat)
	}

	return r
}
