// Package httpapi exposes the lesson catalog over HTTP.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/uklc/lessons/internal/auth"
	"github.com/uklc/lessons/internal/catalog"
	"github.com/uklc/lessons/internal/logger"
)

type RouterConfig struct {
	Catalog     *catalog.Manager
	Verifier    auth.Verifier
	Log         *logger.Logger
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(CORS(cfg.CORSOrigins))
	}

	h := NewLessonHandler(log, cfg.Catalog)
	admin := NewAdminMiddleware(log, cfg.Verifier)

	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/values", h.Values)
		api.GET("/stats", h.Stats)
		api.GET("/export", h.Export)
		api.GET("/lessons", h.List)
		api.GET("/lessons/:id", h.Get)
		api.GET("/lessons/:id/document", h.Document)
	}

	protected := api.Group("/")
	protected.Use(admin.RequireAdmin())
	{
		protected.POST("/lessons", h.Create)
		protected.PUT("/lessons/:id", h.Update)
		protected.DELETE("/lessons/:id", h.Delete)
		protected.POST("/import", h.Import)
	}

	return r
}
