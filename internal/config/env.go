package config

import (
	"os"
	"strconv"

	"TaaraAgent/pkg/utils"
)

const (
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// AppConfig is the process configuration read from the environment.
type AppConfig struct {
	Port          string
	AppEnv        string
	Environment   string
	PolicyFile    string
	StorageDriver string
	CalendarFile  string
	AuditSink     string
	AuditFile     string
	AuditBlocked  bool
}

func LoadAppConfig() AppConfig {
	return AppConfig{
		Port:          getEnv("APP_PORT", "3000"),
		AppEnv:        os.Getenv("APP_ENV"),
		Environment:   getEnv("VERCEL_ENV", "development"),
		PolicyFile:    getEnv("POLICY_FILE", "policies.yaml"),
		StorageDriver: getEnv("STORAGE_DRIVER", DriverFile),
		CalendarFile:  utils.ExpandHome(getEnv("CALENDAR_FILE", "~/taara_calendar.json")),
		AuditSink:     getEnv("AUDIT_SINK", DriverFile),
		AuditFile:     getEnv("AUDIT_FILE", "./storage/audit/audit.log"),
		AuditBlocked:  getBool("AUDIT_BLOCKED", true),
	}
}

func (c AppConfig) NeedsDatabase() bool {
	return c.StorageDriver == DriverPostgres || c.AuditSink == DriverPostgres
}

func (c AppConfig) NeedsRedis() bool {
	return c.StorageDriver == DriverRedis || c.AuditSink == DriverRedis
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
