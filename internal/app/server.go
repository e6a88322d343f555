package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/api/router"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/config"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/database"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/logger"
	pkgredis "github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/redis"
)

// StartServer 启动 HTTP 服务器并处理优雅退出
func StartServer(cfg *config.Config, handlers *Handlers, services *Services) {
	// Setup router
	r := router.Setup(
		handlers.Auth,
		handlers.Cycle,
		handlers.Section,
		handlers.Input,
		handlers.Submission,
		handlers.Appraisal,
		handlers.DepartmentGroup,
		handlers.Organization,
		services.Auth,
		cfg.Server.Mode,
	)

	addr := fmt.Sprintf(":%d", cfg.Server.APIPort)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	printStartupBanner(cfg)

	// Start HTTP server in goroutine
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Infof("\nShutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("  → Stopping HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Infof("  Warning: HTTP server shutdown error: %v", err)
	} else {
		logger.Infof("  ✓ HTTP server stopped")
	}

	logger.Infof("  → Closing database...")
	database.Close()
	logger.Infof("  ✓ Database closed")

	if cfg.Redis.Enabled {
		logger.Infof("  → Closing Redis...")
		pkgredis.Close()
		logger.Infof("  ✓ Redis closed")
	}

	logger.Infof("Shutdown complete")
}

// printStartupBanner 打印启动横幅
func printStartupBanner(cfg *config.Config) {
	logger.Infof("")
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("Staff Appraisal API Server")
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("")
	logger.Infof("Features:")
	logger.Infof("   • Appraisal cycles, sections and form templates")
	logger.Infof("   • Staff submissions with partial answer updates")
	logger.Infof("   • Per-staff summary reports")
	logger.Infof("")
	logger.Infof("Listening on :%d (mode: %s)", cfg.Server.APIPort, cfg.Server.Mode)
	logger.Infof("")
	logger.Infof("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	logger.Infof("")
}
