package db

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tgcs/experience-api/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

var sslmodeRegex = regexp.MustCompile(`(?i)\bsslmode\s*=\s*\w+`)

func dialector(cfg config.DatabaseCfg) (gorm.Dialector, error) {
	dsn := cfg.DSN
	switch strings.ToLower(cfg.Driver) {
	case "", DriverMySQL:
		if cfg.EnableTLS && !strings.Contains(dsn, "tls=") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "tls=true"
		}
		return mysql.Open(dsn), nil
	case DriverPostgres:
		if cfg.EnableTLS {
			if sslmodeRegex.MatchString(dsn) {
				dsn = sslmodeRegex.ReplaceAllString(dsn, "sslmode=require")
			} else {
				if !strings.HasSuffix(dsn, " ") {
					dsn += " "
				}
				dsn += "sslmode=require"
			}
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func New(cfg *config.Config) (*gorm.DB, error) {
	d, err := dialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	return db, nil
}

// RegisterOpenTelemetryPlugin must run after telemetry.SetupTracing so the
// plugin picks up the global tracer provider.
func RegisterOpenTelemetryPlugin(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin())
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
