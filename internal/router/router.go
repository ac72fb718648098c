// Package router assembles the HTTP route table.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/docs"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/handler"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/metrics"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Deps struct {
	DB        *gorm.DB
	Logger    zerolog.Logger
	Metrics   *metrics.Manager
	Version   string
	StartTime time.Time
}

// New returns an engine serving the catalog API, health probes, metrics and
// the Swagger UI. Each call builds an independent engine.
func New(d Deps) (*gin.Engine, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	e := gin.New()
	e.HandleMethodNotAllowed = true

	if err := e.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	e.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Logger),
		middleware.Recovery(),
	)
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
		e.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, validation.ErrorResponse{
			Code:    "ROUTE_NOT_FOUND",
			Message: "route not found",
		})
	})
	e.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, validation.ErrorResponse{
			Code:    "METHOD_NOT_ALLOWED",
			Message: "method not allowed",
		})
	})

	handler.NewHealthHandler(sqlDB, d.StartTime, d.Version).RegisterRoutes(e)

	api := e.Group(docs.SwaggerInfo.BasePath)
	{
		handler.NewAuthorHandler(repository.NewAuthorRepository(d.DB)).RegisterRoutes(api)
		handler.NewBookHandler(repository.NewGormBookRepository(d.DB)).RegisterRoutes(api)
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e, nil
}
