package armoriq

import (
	"strings"

	"TaaraAgent/internal/entity"
	"TaaraAgent/pkg/canonical"
)

const localIDPrefix = "local_"

var dangerousWords = []string{"delete", "remove", "clear", "erase", "destroy"}

// LocalScore is the deterministic fallback risk score, clamped to [0,1].
func LocalScore(intent entity.Intent) float64 {
	score := 0.0

	if mentionsDestruction(string(intent.Action)) || mentionsDestruction(string(intent.Classification)) {
		score += 0.5
		if intent.Parameters.String(entity.ParamScope, "") == "all" {
			score += 0.3
		}
	}

	command := strings.ToLower(intent.RawInput)
	if strings.Contains(command, "everything") {
		for _, word := range dangerousWords {
			if strings.Contains(command, word) {
				score += 0.4
				break
			}
		}
	}

	return entity.ClampRisk(score)
}

// LocalVerification builds the fallback result. cause is the remote failure
// that forced it, if any.
func LocalVerification(intent entity.Intent, signature string, cause error) entity.Verification {
	result := entity.Verification{
		Verified:       true,
		RiskScore:      LocalScore(intent),
		VerificationID: LocalVerificationID(intent),
		Mode:           entity.VerificationFallback,
		Signature:      signature,
	}
	if cause != nil {
		result.Error = cause.Error()
	}
	return result
}

func LocalVerificationID(intent entity.Intent) string {
	digest, err := canonical.Digest(intent)
	if err != nil {
		digest = canonical.HashBytes([]byte(intent.RawInput + "|" + string(intent.Action)))
	}
	return localIDPrefix + digest
}

func mentionsDestruction(s string) bool {
	return strings.Contains(s, "delete") || strings.Contains(s, "clear")
}
