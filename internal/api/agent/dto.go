package agent

import "TaaraAgent/internal/entity"

type ProcessCommandRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

type ProcessCommandResponse struct {
	Allowed          bool                    `json:"allowed"`
	Command          string                  `json:"command"`
	Action           entity.Action           `json:"action"`
	Message          string                  `json:"message,omitempty"`
	Reason           string                  `json:"reason,omitempty"`
	ArmoriqVerified  bool                    `json:"armoriq_verified"`
	VerificationMode entity.VerificationMode `json:"verification_mode"`
	RiskScore        *float64                `json:"risk_score,omitempty"`
	VerificationID   string                  `json:"verification_id,omitempty"`
	Result           *entity.ExecutionResult `json:"result,omitempty"`
	AuditHash        string                  `json:"audit_hash,omitempty"`
}

type CalendarResponse struct {
	Events []entity.CalendarEvent `json:"events"`
}

type PoliciesResponse struct {
	Policies []entity.Policy `json:"policies"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Message   string            `json:"message"`
	Armoriq   string            `json:"armoriq"`
	Endpoints map[string]string `json:"endpoints"`
}
