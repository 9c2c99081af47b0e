package armoriq

import (
	"context"
	"os"
	"strconv"
	"time"

	"TaaraAgent/internal/entity"
)

const (
	DefaultEndpoint = "https://api.armoriq.io/v1"
	DefaultTimeout  = 5 * time.Second

	requestSource  = "taara-agent"
	requestVersion = "1.0.0"

	HeaderAPIKey    = "X-ARMORIQ-API-KEY"
	HeaderSignature = "X-ARMORIQ-SIGNATURE"
	HeaderTimestamp = "X-ARMORIQ-TIMESTAMP"
	HeaderBypass    = "X-VERCEL-BYPASS"
)

// IArmoriq scores intents. Verify always returns a usable result: remote when
// the oracle answers 200, otherwise the local fallback.
type IArmoriq interface {
	Verify(ctx context.Context, intent entity.Intent) entity.Verification
}

type Config struct {
	Enabled      bool
	APIKey       string
	Secret       string
	Endpoint     string
	BypassSecret string
	Timeout      time.Duration
}

func ConfigFromEnv() Config {
	enabled := true
	if v := os.Getenv("ARMORIQ_ENABLED"); v != "" {
		enabled, _ = strconv.ParseBool(v)
	}

	endpoint := os.Getenv("ARMORIQ_ENDPOINT")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return Config{
		Enabled:      enabled,
		APIKey:       os.Getenv("ARMORIQ_API_KEY"),
		Secret:       os.Getenv("ARMORIQ_SECRET"),
		Endpoint:     endpoint,
		BypassSecret: os.Getenv("VERCEL_AUTOMATION_BYPASS_SECRET"),
		Timeout:      DefaultTimeout,
	}
}

type VerifyRequest struct {
	Intent    entity.Intent `json:"intent"`
	Timestamp string        `json:"timestamp"`
	Source    string        `json:"source"`
	Version   string        `json:"version"`
}

type VerifyResponse struct {
	RiskScore      *float64 `json:"risk_score"`
	VerificationID string   `json:"verification_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
