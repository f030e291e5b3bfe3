package ciutil

import (
	"log/slog"
	"os"

	"github.com/phrazzld/todo-api/internal/redact"
)

// Environment variable names used across the codebase.
const (
	// CI environment detection variables
	EnvCI              = "CI"
	EnvGitHubActions   = "GITHUB_ACTIONS"
	EnvGitHubWorkspace = "GITHUB_WORKSPACE"
	EnvGitLabCI        = "GITLAB_CI"
	EnvJenkinsURL      = "JENKINS_URL"
	EnvCircleCI        = "CIRCLECI"

	// Database connection environment variables
	EnvDatabaseURL     = "DATABASE_URL"
	EnvTodoTestDBURL   = "TODO_TEST_DB_URL"
	EnvTodoDatabaseURL = "TODO_DATABASE_URL"
)

// IsCI returns true if the current environment is a CI environment.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// IsGitHubActions returns true if the current environment is GitHub Actions.
func IsGitHubActions() bool {
	return os.Getenv(EnvGitHubActions) != "" && os.Getenv(EnvGitHubWorkspace) != ""
}

// GetEnvWithFallbacks returns the value of the first non-empty environment
// variable in envVars, or defaultValue if none is set. Using anything but the
// first name is logged as a warning.
func GetEnvWithFallbacks(envVars []string, defaultValue string, logger *slog.Logger) string {
	for i, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			if i > 0 && logger != nil {
				logger.Warn("Using fallback environment variable",
					"used_var", envVar,
					"preferred_var", envVars[0],
					"value", redact.String(val),
				)
			}
			return val
		}
	}
	return defaultValue
}
