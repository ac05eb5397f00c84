// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	gormstore "github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/persistence/gorm"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDatabase provides a disposable MySQL instance with cleanup
type TestDatabase struct {
	Container testcontainers.Container
	DB        *sql.DB
	GormDB    *gorm.DB
	DSN       string
	Host      string
	Port      int
	t         *testing.T
}

// DatabaseConfig holds test database configuration
type DatabaseConfig struct {
	Image    string
	Database string
	Username string
	Password string
	Port     string
}

// DefaultDatabaseConfig returns the default test database configuration
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Image:    "mysql:8.0",
		Database: "pantry_test",
		Username: "pantry",
		Password: "pantry_secret",
		Port:     "3306",
	}
}

// SetupTestDatabase creates a new test database using testcontainers
func SetupTestDatabase(t *testing.T) *TestDatabase {
	return SetupTestDatabaseWithConfig(t, DefaultDatabaseConfig())
}

// SetupTestDatabaseWithConfig creates a test database with custom configuration
func SetupTestDatabaseWithConfig(t *testing.T, cfg DatabaseConfig) *TestDatabase {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        cfg.Image,
				ExposedPorts: []string{cfg.Port + "/tcp"},
				Env: map[string]string{
					"MYSQL_DATABASE":      cfg.Database,
					"MYSQL_USER":          cfg.Username,
					"MYSQL_PASSWORD":      cfg.Password,
					"MYSQL_ROOT_PASSWORD": cfg.Password,
				},
				WaitingFor: wait.ForAll(
					// mysqld prints this once for the bootstrap server and
					// again when the real one is listening.
					wait.ForLog("ready for connections").
						WithOccurrence(2).
						WithStartupTimeout(120*time.Second),
					wait.ForSQL(nat.Port(cfg.Port+"/tcp"), "mysql", func(host string, port nat.Port) string {
						return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=True",
							cfg.Username, cfg.Password, host, port.Port(), cfg.Database)
					}),
				),
				Tmpfs: map[string]string{
					"/var/lib/mysql": "rw,noexec,nosuid,size=1024m",
				},
			},
			Started: true,
		})
	require.NoError(t, err, "Failed to start mysql container")

	// Get connection details
	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, nat.Port(cfg.Port))
	require.NoError(t, err)

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, host, port.Port(), cfg.Database)

	// Create standard database connection
	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	// Verify connection
	err = db.Ping()
	require.NoError(t, err, "Failed to ping test database")

	// Create GORM connection
	gormDB, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Suppress logs in tests
	})
	require.NoError(t, err, "Failed to create GORM connection")

	testDB := &TestDatabase{
		Container: container,
		DB:        db,
		GormDB:    gormDB,
		DSN:       dsn,
		Host:      host,
		Port:      port.Int(),
		t:         t,
	}

	// Setup cleanup
	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Migrate creates the application schema on the test database
func (td *TestDatabase) Migrate() error {
	err := td.GormDB.AutoMigrate(
		&gormstore.IngredientModel{},
		&gormstore.RecipeHistoryModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate test database: %w", err)
	}

	return nil
}

// TruncateAllTables removes all data from tables while preserving structure
func (td *TestDatabase) TruncateAllTables() error {
	tables := []string{
		"ingredients",
		"recipe_history",
	}

	for _, table := range tables {
		_, err := td.DB.Exec("TRUNCATE TABLE " + table)
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// CountRows counts records in a table
func (td *TestDatabase) CountRows(table string) (int, error) {
	var count int
	err := td.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	return count, err
}

// Cleanup closes all connections and stops the container
func (td *TestDatabase) Cleanup() {
	ctx := context.Background()

	if td.GormDB != nil {
		if sqlDB, err := td.GormDB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if td.DB != nil {
		td.DB.Close()
	}

	if td.Container != nil {
		if err := td.Container.Terminate(ctx); err != nil {
			td.t.Logf("Failed to terminate mysql container: %v", err)
		}
	}
}
