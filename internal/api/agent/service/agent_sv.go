package agentService

import (
	"context"
	"strings"

	"TaaraAgent/internal/api/agent"
	"TaaraAgent/internal/entity"
	contextPkg "TaaraAgent/pkg/context"

	"github.com/sirupsen/logrus"
)

const (
	reasonVerifierDisabled = "verifier disabled"
	reasonNotVerifiable    = "no verifiable action"
)

func (s *agentService) ProcessCommand(ctx context.Context, req agent.ProcessCommandRequest) (*agent.ProcessCommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	user := contextPkg.GetUser(ctx)

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, agent.ErrInvalidCommand
	}

	now := s.now()
	intent := s.parser.Parse(text, now)

	verification := s.verify(ctx, intent)
	params := annotate(intent.Parameters, verification)

	resp := &agent.ProcessCommandResponse{
		Command:          req.Text,
		Action:           intent.Action,
		ArmoriqVerified:  verification.Verified,
		VerificationMode: verification.Mode,
		VerificationID:   verification.VerificationID,
	}
	if verification.Available() {
		score := verification.RiskScore
		resp.RiskScore = &score
	}

	s.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"action":         intent.Action,
		"classification": intent.Classification,
		"mode":           verification.Mode,
		"risk_score":     verification.RiskScore,
	}).Debug("Command interpreted")

	allowed, reason := s.policies.Evaluate(intent.Action, params, now)
	if !allowed {
		resp.Reason = reason
		resp.Message = "Blocked: " + reason

		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"action":     intent.Action,
			"reason":     reason,
			"user":       user,
		}).Warn("Command blocked by policy")

		if s.auditBlocked {
			hash, err := s.auditLogger.Record(ctx, string(intent.Action), entity.BlockedResult{Reason: reason, Blocked: true}, user)
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Error("Failed to audit blocked command")
			}
			resp.AuditHash = hash
		}

		return resp, nil
	}

	resp.Allowed = true

	result, err := s.executor.Execute(ctx, intent.Action, params)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"action":     intent.Action,
			"error":      err.Error(),
		}).Error("Failed to execute command")
		return nil, agent.ErrCommandFailed
	}

	resp.Message = result.Message
	resp.Result = &result

	if result.Succeeded() {
		hash, err := s.auditLogger.Record(ctx, string(intent.Action), result, user)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to audit executed command")
		}
		resp.AuditHash = hash
	}

	return resp, nil
}

func (s *agentService) verify(ctx context.Context, intent entity.Intent) entity.Verification {
	if s.verifier == nil {
		return entity.UnavailableVerification(reasonVerifierDisabled)
	}
	if intent.Action == entity.ActionUnknown {
		return entity.UnavailableVerification(reasonNotVerifiable)
	}
	return s.verifier.Verify(ctx, intent)
}

// annotate returns a copy of params carrying the verification outcome, so
// executed events record it and policies can read the score.
func annotate(params entity.Parameters, v entity.Verification) entity.Parameters {
	out := params.Clone()
	if !v.Available() || !v.Verified {
		return out
	}

	out[entity.ParamVerified] = true
	out[entity.ParamVerificationID] = v.VerificationID
	out[entity.ParamRiskScore] = v.RiskScore
	return out
}

func (s *agentService) GetCalendar(ctx context.Context) (*agent.CalendarResponse, error) {
	cal, err := s.calendar.Load(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to load calendar")
		return nil, agent.ErrCalendarUnavailable
	}

	events := cal.Events
	if events == nil {
		events = []entity.CalendarEvent{}
	}
	return &agent.CalendarResponse{Events: events}, nil
}

func (s *agentService) GetPolicies(ctx context.Context) *agent.PoliciesResponse {
	policies := s.policies.Policies()
	if policies == nil {
		policies = []entity.Policy{}
	}
	return &agent.PoliciesResponse{Policies: policies}
}
