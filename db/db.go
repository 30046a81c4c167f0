package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"omnily-go-admin/pkg/config"
	"omnily-go-admin/pkg/monitoring"
)

// Open connects to MySQL using the loaded configuration and returns the
// handle. Callers inject it into the services; there is no package-level
// instance.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is not configured")
	}

	dbLogger, err := newFileLogger(cfg.Database.LogLevel)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                                   dbLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("access underlying connection pool: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	log.Printf("database pool configured - MaxOpen: %d, MaxIdle: %d, MaxLifetime: %v",
		cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)

	if err := registerQueryMetrics(gormDB); err != nil {
		return nil, fmt.Errorf("register query metrics: %w", err)
	}

	go monitorPool(sqlDB)

	return gormDB, nil
}

const queryStartKey = "monitoring:query_start"

// registerQueryMetrics hooks query timing into the shared metrics collector.
func registerQueryMetrics(gormDB *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	afterFor := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			elapsed := time.Since(start)
			monitoring.GetMetrics().IncrementDBQuery(elapsed)
			monitoring.RecordDBQuery(operation, tx.Statement.Table, elapsed)
		}
	}

	cb := gormDB.Callback()
	if err := cb.Query().Before("gorm:query").Register("metrics:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:after_query", afterFor("query")); err != nil {
		return err
	}
	if err := cb.Create().Before("gorm:create").Register("metrics:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:after_create", afterFor("create")); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:after_update", afterFor("update")); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:after_delete", afterFor("delete")); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("metrics:before_row", before); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("metrics:after_row", afterFor("row")); err != nil {
		return err
	}
	return nil
}

// newFileLogger writes GORM query logs to a daily file under gormlog/.
func newFileLogger(level string) (logger.Interface, error) {
	logDir := "gormlog"
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logFile := filepath.Join(logDir, time.Now().Format("2006-01-02")+".log")
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	var logLevel logger.LogLevel
	switch level {
	case "silent":
		logLevel = logger.Silent
	case "error":
		logLevel = logger.Error
	case "warn":
		logLevel = logger.Warn
	default:
		logLevel = logger.Info
	}

	return logger.New(
		log.New(file, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			Colorful:                  false,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      false,
			LogLevel:                  logLevel,
		},
	), nil
}

// monitorPool samples connection pool stats once a minute, logging only when
// usage looks abnormal.
func monitorPool(sqlDB *sql.DB) {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		stats := sqlDB.Stats()

		poolUsageRate := float64(stats.OpenConnections) / float64(stats.MaxOpenConnections)
		if poolUsageRate > 0.7 || stats.InUse > 10 || stats.WaitCount > 0 {
			log.Printf("db pool - open: %d/%d (%.1f%%), in use: %d, idle: %d, waiting: %d",
				stats.OpenConnections, stats.MaxOpenConnections, poolUsageRate*100,
				stats.InUse, stats.Idle, stats.WaitCount)
		}

		monitoring.UpdateDBConnections(stats.InUse)
	}
}
