package entity

import "math"

type VerificationMode string

const (
	VerificationRemote      VerificationMode = "remote"
	VerificationFallback    VerificationMode = "fallback"
	VerificationUnavailable VerificationMode = "unavailable"
)

type Verification struct {
	Verified       bool             `json:"verified"`
	RiskScore      float64          `json:"risk_score"`
	VerificationID string           `json:"verification_id,omitempty"`
	Mode           VerificationMode `json:"mode"`
	Signature      string           `json:"signature,omitempty"`
	Error          string           `json:"error,omitempty"`
}

func (v Verification) Available() bool {
	return v.Mode == VerificationRemote || v.Mode == VerificationFallback
}

func UnavailableVerification(reason string) Verification {
	return Verification{
		Mode:  VerificationUnavailable,
		Error: reason,
	}
}

// ClampRisk forces a score into [0,1]; NaN counts as no risk.
func ClampRisk(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
