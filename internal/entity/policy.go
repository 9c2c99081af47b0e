package entity

type PolicyKind string

const (
	PolicyTimeRestriction      PolicyKind = "time_restriction"
	PolicyOperationRestriction PolicyKind = "operation_restriction"
	PolicyRiskThreshold        PolicyKind = "risk_threshold"
)

func (k PolicyKind) IsValid() bool {
	switch k {
	case PolicyTimeRestriction, PolicyOperationRestriction, PolicyRiskThreshold:
		return true
	default:
		return false
	}
}

type Policy struct {
	Kind         PolicyKind `yaml:"type" json:"type"`
	AllowedHours []int      `yaml:"allowed_hours,omitempty" json:"allowed_hours,omitempty"`
	BlockedOps   []string   `yaml:"blocked_ops,omitempty" json:"blocked_ops,omitempty"`
	MaxRisk      *float64   `yaml:"max_risk,omitempty" json:"max_risk,omitempty"`
}
