package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/redact"
)

const (
	// StandardCIDatabase is the database name used when a CI URL names none.
	StandardCIDatabase = "taskboard_test"

	// StandardCIOptions are the connection options used when a CI URL has none.
	StandardCIOptions = "sslmode=disable"
)

// GetTestDatabaseURL returns the database URL for integration tests, checking
// DATABASE_URL, TASKBOARD_TEST_DB_URL and TASKBOARD_DATABASE_URL in that
// order. In CI a URL without a database name or options gets the standard
// ones. Returns "" when none is set.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks(
		[]string{EnvDatabaseURL, EnvTaskboardTestDBURL, EnvTaskboardDatabaseURL}, "", logger)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := standardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to standardize database URL", "error", redact.Error(err))
		}
		return dbURL
	}
	if standardized != dbURL && logger != nil {
		logger.Info("standardized database URL for CI", "url", redact.String(standardized))
	}
	return standardized
}

// standardizeDatabaseURL fills in the database name and connection options
// of a postgres URL when they are missing. Other URLs are returned unchanged.
func standardizeDatabaseURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}

	if strings.TrimPrefix(parsed.Path, "/") == "" {
		parsed.Path = "/" + StandardCIDatabase
	}
	if parsed.RawQuery == "" {
		parsed.RawQuery = StandardCIOptions
	}
	return parsed.String(), nil
}
