package config

import (
	"os"
	"time"
)

const (
	apiBaseURLVar      = "API_BASE_URL"
	realtimeURLVar     = "REALTIME_URL"
	credentialsFileVar = "CREDENTIALS_FILE"
	httpTimeoutVar     = "HTTP_TIMEOUT"
	appNameVar         = "APP_NAME"
	logLevelVar        = "LOG_LEVEL"
	adminEmailVar      = "ADMIN_EMAIL"
	adminPasswordVar   = "ADMIN_PASSWORD"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ HTTPConfig = EnvVars{}
var _ RealtimeConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Admin Console")
}

// GetAPIBaseURL returns the base URL of the platform's admin REST API,
// e.g. "https://api.example.com/api".
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080/api")
}

// GetRealtimeURL returns the websocket endpoint for server push events.
func (EnvVars) GetRealtimeURL() string {
	return GetEnv(realtimeURLVar, "ws://localhost:8080/ws/admin")
}

func (EnvVars) GetCredentialsFile() string {
	return GetEnv(credentialsFileVar, "./data/admin-session.json")
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(httpTimeoutVar, "15s"))
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetAdminEmail and GetAdminPassword supply login credentials when no
// stored session exists. Empty means interactive use only.
func (EnvVars) GetAdminEmail() string {
	return GetEnv(adminEmailVar, "")
}

func (EnvVars) GetAdminPassword() string {
	return GetEnv(adminPasswordVar, "")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
