// Package mysql provides MySQL database connection and management
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	gormModels "github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/persistence/gorm"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionManager manages the MySQL connection with pooled settings
type ConnectionManager struct {
	config *config.Config
	logger *zap.Logger
	db     *gorm.DB
	sqlDB  *sql.DB
}

// NewConnectionManager opens the primary connection, configures the pool
// and verifies the server is reachable before returning.
func NewConnectionManager(cfg *config.Config, log *zap.Logger) (*ConnectionManager, error) {
	cm := &ConnectionManager{
		config: cfg,
		logger: log,
	}

	if err := cm.initializeConnection(); err != nil {
		return nil, fmt.Errorf("failed to initialize connection: %w", err)
	}

	log.Info("Database connection manager initialized",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
		zap.Duration("conn_max_lifetime", cfg.Database.ConnMaxLifetime),
	)

	return cm, nil
}

// initializeConnection sets up the database connection
func (cm *ConnectionManager) initializeConnection() error {
	dsn := cm.config.GetDSN()

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:      cm.createGORMLogger(),
		PrepareStmt: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cm.config.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cm.config.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cm.config.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cm.config.Database.ConnMaxIdleTime)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	cm.db = db
	cm.sqlDB = sqlDB

	return nil
}

// createGORMLogger maps the configured log level onto a GORM logger that
// writes through zap.
func (cm *ConnectionManager) createGORMLogger() logger.Interface {
	logLevel := logger.Warn
	switch cm.config.Database.LogLevel {
	case "silent":
		logLevel = logger.Silent
	case "info", "debug":
		logLevel = logger.Info
	case "warn":
		logLevel = logger.Warn
	case "error":
		logLevel = logger.Error
	}

	return logger.New(
		&gormLogWriter{logger: cm.logger},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// gormLogWriter adapts zap to GORM's log writer interface
type gormLogWriter struct {
	logger *zap.Logger
}

func (w *gormLogWriter) Printf(format string, args ...interface{}) {
	w.logger.Sugar().Debugf(format, args...)
}

// Migrate creates or updates the schema. AutoMigrate only adds missing
// tables, columns and indexes, so running it on every start is safe.
func (cm *ConnectionManager) Migrate() error {
	err := cm.db.AutoMigrate(
		&gormModels.IngredientModel{},
		&gormModels.RecipeHistoryModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	cm.logger.Info("Database schema migrated")

	return nil
}

// GetDB returns the main database connection
func (cm *ConnectionManager) GetDB() *gorm.DB {
	return cm.db
}

// Stats returns the connection pool statistics
func (cm *ConnectionManager) Stats() sql.DBStats {
	return cm.sqlDB.Stats()
}

// HealthCheck performs a health check on the database connection
func (cm *ConnectionManager) HealthCheck(ctx context.Context) error {
	if err := cm.sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// Close closes the database connection
func (cm *ConnectionManager) Close() error {
	if cm.sqlDB != nil {
		if err := cm.sqlDB.Close(); err != nil {
			cm.logger.Error("Failed to close database", zap.Error(err))
			return err
		}
	}

	return nil
}
