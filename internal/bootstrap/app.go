package bootstrap

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/netopsio/maintreport/internal/config"
	"github.com/netopsio/maintreport/internal/handler"
	"github.com/netopsio/maintreport/internal/logger"
	"github.com/netopsio/maintreport/internal/report"
	"github.com/netopsio/maintreport/internal/service"
)

type App struct {
	Echo    *echo.Echo
	Profile *report.Profile
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.Info(ctx, "Environment variables loaded successfully")

	// Load the report profile once; it is read-only afterwards and shared
	// by every render.
	profile, err := report.LoadProfile(config.DefaultEnvConfig.REPORT_PROFILE_PATH)
	if err != nil {
		return fmt.Errorf("failed to load report profile: %w", err)
	}
	a.Profile = profile
	logger.Info(ctx, "Report profile loaded from %s", config.DefaultEnvConfig.REPORT_PROFILE_PATH)

	// Initialize dependencies
	reportSvc := service.NewReportService(profile)
	reportHandler := handler.NewReportHandler(reportSvc)

	a.RegisterMiddlewares()
	a.RegisterRoutes(reportHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(reportHandler *handler.ReportHandler) {
	a.Echo.POST("/reports/:mode", reportHandler.RenderHandler)
	a.Echo.GET("/healthz", reportHandler.HealthHandler)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
