package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-app/inkwell/internal/database"
	"github.com/inkwell-app/inkwell/internal/middleware"
	"github.com/inkwell-app/inkwell/internal/modules/content"
	"github.com/inkwell-app/inkwell/internal/modules/health"
	"github.com/inkwell-app/inkwell/internal/pkg/response"
	"github.com/inkwell-app/inkwell/web"
)

func (a *App) registerRoutes() error {
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	a.router.SetHTMLTemplate(tmpl)

	static, err := web.Static()
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	a.router.StaticFS("/static", http.FS(static))

	var limitMW gin.HandlerFunc
	if a.redis != nil {
		limitMW = middleware.RateLimit(a.redis, a.cfg.RateLimit.Max, a.cfg.RateLimit.Window(), a.logger)
	}
	content.NewHandler(a.content, a.cfg.RecentLimit, a.logger).RegisterRoutes(a.router, limitMW)

	health.RegisterRoutes(a.router, health.Deps{
		Database:     func(ctx context.Context) error { return database.Ping(ctx, a.db) },
		Redis:        a.redisCheck(),
		PermitsInUse: a.permits.InUse,
	})

	a.router.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	return nil
}
