package agentHandler

import (
	agentService "TaaraAgent/internal/api/agent/service"
	"TaaraAgent/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AgentHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	agentService agentService.IAgentService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as agentService.IAgentService,
) *AgentHandler {
	return &AgentHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		agentService: as,
	}
}

func (h *AgentHandler) Start(srv fiber.Router) {
	agent := srv.Group("/agent")

	// Identity is optional; without a token the caller is audited as anonymous.
	agent.Use(h.middleware.NewOptionalTokenMiddleware)

	agent.Post("/process", h.middleware.NewRateLimiter, h.ProcessCommand)
	agent.Get("/calendar", h.GetCalendar)
	agent.Get("/policies", h.GetPolicies)
}
