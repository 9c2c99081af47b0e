package agentService

import (
	"context"
	"time"

	"TaaraAgent/internal/api/agent"
	"TaaraAgent/pkg/armoriq"
	"TaaraAgent/pkg/audit"
	"TaaraAgent/pkg/executor"
	"TaaraAgent/pkg/nlp"
	"TaaraAgent/pkg/policy"

	"github.com/sirupsen/logrus"
)

type IAgentService interface {
	ProcessCommand(ctx context.Context, req agent.ProcessCommandRequest) (*agent.ProcessCommandResponse, error)
	GetCalendar(ctx context.Context) (*agent.CalendarResponse, error)
	GetPolicies(ctx context.Context) *agent.PoliciesResponse
	VerifierEnabled() bool
}

type agentService struct {
	log          *logrus.Logger
	parser       nlp.IIntentParser
	verifier     armoriq.IArmoriq
	policies     policy.IPolicyEngine
	executor     executor.IExecutor
	calendar     executor.CalendarStore
	auditLogger  audit.IAuditLogger
	auditBlocked bool
	now          func() time.Time
}

type Config struct {
	// Verifier may be nil, in which case every command is unverified.
	Verifier     armoriq.IArmoriq
	Policies     policy.IPolicyEngine
	Calendar     executor.CalendarStore
	AuditLogger  audit.IAuditLogger
	AuditBlocked bool
}

func NewAgentService(log *logrus.Logger, cfg Config) IAgentService {
	return &agentService{
		log:          log,
		parser:       nlp.NewParser(),
		verifier:     cfg.Verifier,
		policies:     cfg.Policies,
		executor:     executor.New(log, cfg.Calendar),
		calendar:     cfg.Calendar,
		auditLogger:  cfg.AuditLogger,
		auditBlocked: cfg.AuditBlocked,
		now:          time.Now,
	}
}

func (s *agentService) VerifierEnabled() bool {
	return s.verifier != nil
}
