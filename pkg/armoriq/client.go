package armoriq

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"TaaraAgent/internal/entity"
	"TaaraAgent/pkg/canonical"
	contextPkg "TaaraAgent/pkg/context"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const maxResponseBytes = 64 * 1024

type armoriqClient struct {
	cfg    Config
	client *http.Client
	log    *logrus.Logger
	now    func() time.Time
}

func New(log *logrus.Logger, cfg Config) IArmoriq {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	return &armoriqClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
		now:    time.Now,
	}
}

func (c *armoriqClient) Verify(ctx context.Context, intent entity.Intent) entity.Verification {
	requestID := contextPkg.GetRequestID(ctx)

	payload := VerifyRequest{
		Intent:    intent,
		Timestamp: c.now().UTC().Format(time.RFC3339Nano),
		Source:    requestSource,
		Version:   requestVersion,
	}

	body, err := canonical.Marshal(payload)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to canonicalize verification payload")
		return LocalVerification(intent, "", err)
	}

	signature := Sign(c.cfg.Secret, body)

	result, err := c.callRemote(ctx, body, signature, payload.Timestamp)
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"action":     intent.Action,
			"error":      err.Error(),
		}).Warn("ARMORIQ verification unavailable, using local fallback")
		return LocalVerification(intent, signature, err)
	}

	c.log.WithFields(logrus.Fields{
		"request_id":      requestID,
		"action":          intent.Action,
		"risk_score":      result.RiskScore,
		"verification_id": result.VerificationID,
	}).Debug("ARMORIQ verification succeeded")

	result.Signature = signature
	return result
}

func (c *armoriqClient) callRemote(ctx context.Context, body []byte, signature, timestamp string) (entity.Verification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/verify"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return entity.Verification{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderAPIKey, c.cfg.APIKey)
	req.Header.Set(HeaderSignature, signature)
	req.Header.Set(HeaderTimestamp, timestamp)
	if c.cfg.BypassSecret != "" {
		req.Header.Set(HeaderBypass, c.cfg.BypassSecret)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.Verification{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return entity.Verification{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		_ = jsoniter.Unmarshal(respBody, &errResp)
		if errResp.Error == "" {
			errResp.Error = "Verification failed"
		}
		return entity.Verification{}, fmt.Errorf("status %d: %s", resp.StatusCode, errResp.Error)
	}

	var verifyResp VerifyResponse
	if err := jsoniter.Unmarshal(respBody, &verifyResp); err != nil {
		return entity.Verification{}, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if verifyResp.VerificationID == "" {
		return entity.Verification{}, errors.New("response missing verification_id")
	}

	score := 0.0
	if verifyResp.RiskScore != nil {
		score = *verifyResp.RiskScore
	}

	return entity.Verification{
		Verified:       true,
		RiskScore:      entity.ClampRisk(score),
		VerificationID: verifyResp.VerificationID,
		Mode:           entity.VerificationRemote,
	}, nil
}

// Sign is the hex HMAC-SHA256 of body under the pre-shared secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
