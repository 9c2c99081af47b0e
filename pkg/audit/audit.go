package audit

import (
	"context"
	"fmt"
	"time"

	"TaaraAgent/internal/entity"
	"TaaraAgent/pkg/canonical"
	contextPkg "TaaraAgent/pkg/context"

	"github.com/sirupsen/logrus"
)

const DefaultEnvironment = "development"

type IAuditLogger interface {
	// Record appends one entry and returns its hash.
	Record(ctx context.Context, action string, result interface{}, user string) (string, error)
}

// Sink receives fully formed entries. line is the canonical encoding of entry
// including its hash; each call must land as a single unit.
type Sink interface {
	Append(ctx context.Context, entry entity.AuditEntry, line []byte) error
}

type auditLogger struct {
	log         *logrus.Logger
	sink        Sink
	environment string
	now         func() time.Time
}

func New(log *logrus.Logger, sink Sink, environment string) IAuditLogger {
	if environment == "" {
		environment = DefaultEnvironment
	}
	return &auditLogger{
		log:         log,
		sink:        sink,
		environment: environment,
		now:         time.Now,
	}
}

func (a *auditLogger) Record(ctx context.Context, action string, result interface{}, user string) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)
	if user == "" {
		user = entity.AnonymousUser
	}

	entry := entity.AuditEntry{
		Timestamp:   a.now().UTC(),
		Action:      action,
		Result:      result,
		User:        user,
		Environment: a.environment,
	}

	hash, err := ComputeHash(entry)
	if err != nil {
		return "", err
	}
	entry.Hash = hash

	line, err := canonical.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("failed to encode audit entry: %w", err)
	}

	if err := a.sink.Append(ctx, entry, line); err != nil {
		a.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"action":     action,
			"error":      err.Error(),
		}).Error("Failed to append audit entry")
		return "", fmt.Errorf("failed to append audit entry: %w", err)
	}

	a.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"action":     action,
		"user":       user,
		"hash":       hash,
	}).Debug("Audit entry recorded")

	return hash, nil
}

type hashedFields struct {
	Timestamp   time.Time   `json:"timestamp"`
	Action      string      `json:"action"`
	Result      interface{} `json:"result"`
	User        string      `json:"user"`
	Environment string      `json:"environment"`
}

// ComputeHash digests every field of entry except Hash.
func ComputeHash(entry entity.AuditEntry) (string, error) {
	digest, err := canonical.Digest(hashedFields{
		Timestamp:   entry.Timestamp,
		Action:      entry.Action,
		Result:      entry.Result,
		User:        entry.User,
		Environment: entry.Environment,
	})
	if err != nil {
		return "", fmt.Errorf("failed to hash audit entry: %w", err)
	}
	return digest, nil
}

// VerifyEntry reports whether entry still matches its recorded hash. It
// checks a single entry; entries are not chained.
func VerifyEntry(entry entity.AuditEntry) bool {
	if entry.Hash == "" {
		return false
	}
	hash, err := ComputeHash(entry)
	return err == nil && hash == entry.Hash
}
