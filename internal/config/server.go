package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"TaaraAgent/database/postgres"
	"TaaraAgent/internal/api/agent"
	agentHandler "TaaraAgent/internal/api/agent/handler"
	agentRepository "TaaraAgent/internal/api/agent/repository"
	agentService "TaaraAgent/internal/api/agent/service"
	"TaaraAgent/internal/middleware"
	"TaaraAgent/pkg/armoriq"
	"TaaraAgent/pkg/audit"
	"TaaraAgent/pkg/executor"
	"TaaraAgent/pkg/policy"
	"TaaraAgent/pkg/redis"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine        *fiber.App
	db            *sqlx.DB
	log           *logrus.Logger
	middleware    middleware.Middleware
	validator     *validator.Validate
	redisServer   redis.IRedis
	policies      policy.IPolicyEngine
	verifier      armoriq.IArmoriq
	calendarStore executor.CalendarStore
	auditSink     audit.Sink
	environment   string
	auditBlocked  bool
	port          string
	handlers      []handler
	closers       []io.Closer
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{
		port:         "3000",
		auditBlocked: true,
	}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log)
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.policies == nil {
		engine, err := policy.New(policy.Config{})
		if err != nil {
			return nil, err
		}
		server.policies = engine
	}
	if server.calendarStore == nil {
		server.calendarStore = executor.NewMemoryStore()
	}
	if server.auditSink == nil {
		return nil, fmt.Errorf("audit sink is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		s.closers = append(s.closers, db)
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		s.closers = append(s.closers, redisServer)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

// WithPolicyFile loads the ordered policy set. A missing file leaves the
// agent with no policies.
func WithPolicyFile(path string) ServerOption {
	return func(s *Server) error {
		cfg, err := policy.LoadFile(path)
		if err != nil {
			return err
		}
		if len(cfg.Policies) == 0 && s.log != nil {
			s.log.Warnf("No policies loaded from %s, every command is allowed", path)
		}
		return WithPolicies(cfg)(s)
	}
}

func WithPolicies(cfg policy.Config) ServerOption {
	return func(s *Server) error {
		engine, err := policy.New(cfg)
		if err != nil {
			return fmt.Errorf("invalid policy configuration: %w", err)
		}
		s.policies = engine
		return nil
	}
}

// WithVerifier installs the risk verifier. A disabled config leaves commands
// unverified.
func WithVerifier(cfg armoriq.Config) ServerOption {
	return func(s *Server) error {
		if !cfg.Enabled {
			s.verifier = nil
			return nil
		}
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before verifier")
		}
		s.verifier = armoriq.New(s.log, cfg)
		return nil
	}
}

func WithCalendarStore(store executor.CalendarStore) ServerOption {
	return func(s *Server) error {
		s.calendarStore = store
		return nil
	}
}

func WithAuditSink(sink audit.Sink) ServerOption {
	return func(s *Server) error {
		s.auditSink = sink
		if closer, ok := sink.(io.Closer); ok {
			s.closers = append(s.closers, closer)
		}
		return nil
	}
}

// WithStorage picks the calendar store and audit sink named by cfg. Database
// and redis options must be applied first when a driver needs them.
func WithStorage(cfg AppConfig) ServerOption {
	return func(s *Server) error {
		store, err := s.calendarStoreFor(cfg)
		if err != nil {
			return err
		}
		if err := WithCalendarStore(store)(s); err != nil {
			return err
		}

		sink, err := s.auditSinkFor(cfg)
		if err != nil {
			return err
		}
		return WithAuditSink(sink)(s)
	}
}

func (s *Server) calendarStoreFor(cfg AppConfig) (executor.CalendarStore, error) {
	switch cfg.StorageDriver {
	case DriverFile, "":
		return executor.NewFileStore(s.log, cfg.CalendarFile), nil
	case DriverRedis:
		if s.redisServer == nil {
			return nil, errors.New("redis storage requires a redis server")
		}
		return executor.NewRedisStore(s.log, s.redisServer, ""), nil
	case DriverPostgres:
		if s.db == nil {
			return nil, errors.New("postgres storage requires a database")
		}
		return agentRepository.NewCalendarStore(agentRepository.New(s.db, s.log)), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func (s *Server) auditSinkFor(cfg AppConfig) (audit.Sink, error) {
	switch cfg.AuditSink {
	case DriverFile, "":
		return audit.NewFileSink(cfg.AuditFile), nil
	case DriverRedis:
		if s.redisServer == nil {
			return nil, errors.New("redis audit sink requires a redis server")
		}
		return audit.NewRedisSink(s.redisServer, ""), nil
	case DriverPostgres:
		if s.db == nil {
			return nil, errors.New("postgres audit sink requires a database")
		}
		return agentRepository.NewAuditSink(agentRepository.New(s.db, s.log)), nil
	default:
		return nil, fmt.Errorf("unknown audit sink %q", cfg.AuditSink)
	}
}

func WithEnvironment(environment string) ServerOption {
	return func(s *Server) error {
		s.environment = environment
		return nil
	}
}

func WithAuditBlocked(enabled bool) ServerOption {
	return func(s *Server) error {
		s.auditBlocked = enabled
		return nil
	}
}

func WithPort(port string) ServerOption {
	return func(s *Server) error {
		if port != "" {
			s.port = port
		}
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Agent Domain
	agentServices := agentService.NewAgentService(s.log, agentService.Config{
		Verifier:     s.verifier,
		Policies:     s.policies,
		Calendar:     s.calendarStore,
		AuditLogger:  audit.New(s.log, s.auditSink, s.environment),
		AuditBlocked: s.auditBlocked,
	})
	agentHandlers := agentHandler.New(s.log, s.validator, s.middleware, agentServices)

	s.engine.Use(newCORS())
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	s.setupHealthCheck(agentServices.VerifierEnabled())
	s.handlers = append(s.handlers, agentHandlers)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	return s.engine.Listen(fmt.Sprintf(":%s", s.port))
}

// Shutdown stops accepting requests and releases storage connections.
func (s *Server) Shutdown(timeout time.Duration) error {
	err := s.engine.ShutdownWithTimeout(timeout)

	for i := len(s.closers) - 1; i >= 0; i-- {
		if cerr := s.closers[i].Close(); cerr != nil {
			s.log.Errorf("Failed to close resource: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck(verifierEnabled bool) {
	status := "disabled"
	if verifierEnabled {
		status = "enabled"
	}

	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(agent.HealthResponse{
			Status:  "ok",
			Message: "Taara API is running",
			Armoriq: status,
			Endpoints: map[string]string{
				"GET /":                      "Health check",
				"POST /api/v1/agent/process": "Process a command",
				"GET /api/v1/agent/calendar": "List calendar events",
				"GET /api/v1/agent/policies": "List loaded policies",
			},
		})
	})
}
