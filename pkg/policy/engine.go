package policy

import (
	"fmt"
	"time"

	"TaaraAgent/internal/entity"
)

const ReasonAllowed = "Allowed"

type IPolicyEngine interface {
	Evaluate(action entity.Action, params entity.Parameters, now time.Time) (bool, string)
	Policies() []entity.Policy
}

// Config is the ordered policy set. It is copied on New and never mutated
// afterwards.
type Config struct {
	Policies []entity.Policy `yaml:"policies" json:"policies"`
}

type engine struct {
	policies []entity.Policy
}

func New(cfg Config) (IPolicyEngine, error) {
	policies := make([]entity.Policy, 0, len(cfg.Policies))
	for i, p := range cfg.Policies {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("policy %d: %w", i, err)
		}
		policies = append(policies, clonePolicy(p))
	}

	return &engine{policies: policies}, nil
}

func (e *engine) Evaluate(action entity.Action, params entity.Parameters, now time.Time) (bool, string) {
	for _, p := range e.policies {
		if ok, reason := check(p, action, params, now); !ok {
			return false, reason
		}
	}
	return true, ReasonAllowed
}

func (e *engine) Policies() []entity.Policy {
	out := make([]entity.Policy, 0, len(e.policies))
	for _, p := range e.policies {
		out = append(out, clonePolicy(p))
	}
	return out
}

func check(p entity.Policy, action entity.Action, params entity.Parameters, now time.Time) (bool, string) {
	switch p.Kind {
	case entity.PolicyTimeRestriction:
		hour := now.Hour()
		for _, h := range p.AllowedHours {
			if h == hour {
				return true, ""
			}
		}
		return false, fmt.Sprintf("Not allowed at %d:00", hour)

	case entity.PolicyOperationRestriction:
		for _, op := range p.BlockedOps {
			if op == string(action) {
				return false, fmt.Sprintf("Operation '%s' is blocked", action)
			}
		}
		return true, ""

	case entity.PolicyRiskThreshold:
		score, ok := params.Float(entity.ParamRiskScore)
		if !ok || p.MaxRisk == nil {
			return true, ""
		}
		if score > *p.MaxRisk {
			return false, fmt.Sprintf("Risk score %.2f exceeds %.2f", score, *p.MaxRisk)
		}
		return true, ""
	}

	return true, ""
}

func validate(p entity.Policy) error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("unknown policy type %q", p.Kind)
	}

	for _, h := range p.AllowedHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("allowed hour %d out of range 0-23", h)
		}
	}

	if p.Kind == entity.PolicyRiskThreshold {
		if p.MaxRisk == nil {
			return fmt.Errorf("risk_threshold requires max_risk")
		}
		if *p.MaxRisk < 0 || *p.MaxRisk > 1 {
			return fmt.Errorf("max_risk %v out of range 0-1", *p.MaxRisk)
		}
	}

	return nil
}

func clonePolicy(p entity.Policy) entity.Policy {
	out := entity.Policy{Kind: p.Kind}
	if p.AllowedHours != nil {
		out.AllowedHours = append([]int(nil), p.AllowedHours...)
	}
	if p.BlockedOps != nil {
		out.BlockedOps = append([]string(nil), p.BlockedOps...)
	}
	if p.MaxRisk != nil {
		v := *p.MaxRisk
		out.MaxRisk = &v
	}
	return out
}
