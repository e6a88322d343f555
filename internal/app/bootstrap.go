package app

import (
	"log"
	"os"

	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/config"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/database"
	"github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/logger"
	pkgredis "github.com/Catalyst-OTU/GoGo-Transport-Service/pkg/redis"
)

// Bootstrap 初始化基础设施（logger, database, redis）
func Bootstrap(cfgPath string) (*config.Config, error) {
	// 支持通过环境变量指定配置文件路径
	if cfgPath == "" {
		cfgPath = os.Getenv("APPRAISAL_CONFIG")
		if cfgPath == "" {
			cfgPath = "config/config.yaml"
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	// Initialize logger
	if err := logger.Init(&cfg.Logging); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (optional, for summary caching)
	if err := pkgredis.Init(&cfg.Redis); err != nil {
		logger.Warnf("Redis initialization failed: %v", err)
		logger.Info("   → Summary results will be computed on every request")
	} else if cfg.Redis.Enabled {
		logger.Infof("Redis initialized successfully - summary caching enabled")
	}

	return cfg, nil
}
