package ciutil

import "log/slog"

// testDatabaseURLVars lists where tests look for a database, in order.
var testDatabaseURLVars = []string{EnvDatabaseURL, EnvTodoTestDBURL, EnvTodoDatabaseURL}

// GetTestDatabaseURL returns the database URL tests should use, or an empty
// string when none of DATABASE_URL, TODO_TEST_DB_URL or TODO_DATABASE_URL
// is set.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks(testDatabaseURLVars, "", logger)
	if dbURL == "" && logger != nil {
		logger.Info("No database URL environment variables found")
	}
	return dbURL
}
