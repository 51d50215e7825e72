package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"app/internal/config"
)

// Connect は設定からDSNを組み立てて *gorm.DB を返す。
// 本番はsslmode=requireでSQLログを落とし、それ以外はローカル向けの設定にする。
func Connect(cfg config.Config) (*gorm.DB, error) {
	sslmode := "disable"
	logLevel := logger.Warn
	if cfg.GoEnv == "prod" {
		sslmode = "require"
		logLevel = logger.Error
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, sslmode,
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
}
