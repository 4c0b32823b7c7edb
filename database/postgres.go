package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bluestock/ipo-platform/shared"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// Connect opens a pooled connection to Postgres and verifies it with a ping.
// The handle is returned to the caller rather than stored in a package global
// so services receive the store as an explicit dependency.
func Connect(dbURL string) (*sql.DB, error) {
	config := shared.DefaultDatabaseConfig()
	return ConnectWithConfig(dbURL, &config)
}

// ConnectWithConfig opens a connection with custom pool configuration.
func ConnectWithConfig(dbURL string, config *shared.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), config.PingTimeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"max_open_conns":     config.MaxOpenConns,
		"max_idle_conns":     config.MaxIdleConns,
		"conn_max_lifetime":  config.ConnMaxLifetime,
		"conn_max_idle_time": config.ConnMaxIdleTime,
	}).Info("Connected to database")

	return db, nil
}

func Close(db *sql.DB) {
	if db != nil {
		db.Close()
		logrus.Info("Database connection closed")
	}
}

// HealthCheck pings the database and inspects pool health.
func HealthCheck(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not established")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	stats := db.Stats()
	logrus.WithFields(logrus.Fields{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration,
	}).Debug("Database connection pool health check")

	return nil
}

// Migrate applies the schema file, statement by statement. Failures on
// individual statements are logged and skipped so re-running against an
// existing schema is harmless.
func Migrate(db *sql.DB, schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	statements := parseSQLStatements(string(content))

	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}

		if _, err = db.Exec(stmt); err != nil {
			logrus.Warnf("Migration statement failed (continuing): %v", err)
		}
	}

	logrus.Info("Database migration completed")
	return nil
}

// ValidateSchema checks that the tables the application queries actually
// exist, logging a warning for each missing one.
func ValidateSchema(db *sql.DB) error {
	requiredTables := []string{
		"users", "companies", "ipos", "ipo_details",
		"watchlists", "transactions", "notifications",
	}

	var missing []string
	for _, table := range requiredTables {
		exists, err := tableExists(db, table)
		if err != nil {
			return fmt.Errorf("failed to check if table %s exists: %w", table, err)
		}
		if !exists {
			missing = append(missing, table)
		}
	}

	if len(missing) > 0 {
		logrus.WithField("missing_tables", missing).Warn("Schema validation found missing tables")
		return nil
	}

	logrus.Info("Schema validation passed")
	return nil
}

func tableExists(db *sql.DB, tableName string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`
	var exists bool
	err := db.QueryRow(query, tableName).Scan(&exists)
	return exists, err
}

// parseSQLStatements splits SQL content into individual statements,
// handling multi-line statements and comment lines.
func parseSQLStatements(content string) []string {
	var statements []string
	var currentStatement strings.Builder

	lines := strings.Split(content, "\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		if currentStatement.Len() > 0 {
			currentStatement.WriteString(" ")
		}
		currentStatement.WriteString(line)

		if strings.HasSuffix(line, ";") {
			stmt := strings.TrimSuffix(currentStatement.String(), ";")
			stmt = strings.TrimSpace(stmt)
			if stmt != "" {
				statements = append(statements, stmt)
			}
			currentStatement.Reset()
		}
	}

	if currentStatement.Len() > 0 {
		stmt := strings.TrimSpace(currentStatement.String())
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}

	return statements
}
