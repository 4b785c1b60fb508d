package config

import "time"

type Config interface {
	EnvConfig
	HTTPConfig
	RealtimeConfig
}

type EnvConfig interface {
	GetAppName() string
	GetCredentialsFile() string
	GetAdminEmail() string
	GetAdminPassword() string
	GetLogLevel() string
	GetEnv() string
}

type HTTPConfig interface {
	GetAPIBaseURL() string
	GetHTTPTimeout() time.Duration
}

type RealtimeConfig interface {
	GetRealtimeURL() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
