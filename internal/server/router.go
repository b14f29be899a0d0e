// Package server wires the gin router and runs the HTTP server.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Innocent9712/much-to-do/Server/TaskManager/docs"
	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/handlers"
	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/tasks"
	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/web"
)

// NewRouter builds the engine serving the page, the task API, static assets
// and the swagger UI.
func NewRouter(cfg config.ServerConfig, store tasks.Store, log *logrus.Logger) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	r := gin.New()
	r.Use(requestID(), requestLogger(log), gin.Recovery(), corsMiddleware(cfg.AllowedOrigins))
	r.SetHTMLTemplate(tmpl)

	r.StaticFS("/static", http.FS(web.Static()))

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handlers.NewTaskHandler(store, log).Register(r)
	return r, nil
}
