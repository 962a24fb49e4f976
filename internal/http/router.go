package http

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"sla-dashboard/internal/http/middleware"
)

func NewRouter(handler *Handler, templates *template.Template, log zerolog.Logger, environment string) *gin.Engine {
	switch environment {
	case "development":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
		cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    []string{http.MethodGet, http.MethodOptions},
			AllowHeaders:    []string{"Origin", "Content-Type", "X-Request-ID"},
			ExposeHeaders:   []string{"X-Request-ID"},
			MaxAge:          12 * time.Hour,
		}),
	)
	r.SetHTMLTemplate(templates)

	handler.Register(r)
	return r
}
