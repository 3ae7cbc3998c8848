package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/uklc/lessons/internal/auth"
	"github.com/uklc/lessons/internal/logger"
)

type AdminMiddleware struct {
	log      *logger.Logger
	verifier auth.Verifier
}

func NewAdminMiddleware(log *logger.Logger, verifier auth.Verifier) *AdminMiddleware {
	return &AdminMiddleware{log: log.With("middleware", "AdminMiddleware"), verifier: verifier}
}

// RequireAdmin rejects requests whose bearer secret does not verify.
func (am *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := bearerToken(c)
		if am.verifier == nil {
			writeError(c, auth.ErrUnauthorized)
			c.Abort()
			return
		}
		if err := am.verifier.Verify(secret); err != nil {
			am.log.Warn("admin check failed", "path", c.Request.URL.Path, "error", err)
			writeError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
	})
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request", fields...)
			return
		}
		log.Debug("request", fields...)
	}
}
