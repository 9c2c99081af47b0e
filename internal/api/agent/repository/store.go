package agentRepository

import (
	"context"
	"fmt"

	"TaaraAgent/internal/entity"
)

// CalendarStore backs the executor with the calendar_events table. Updates
// run in one transaction holding a table lock, so concurrent writers across
// processes are serialized.
type CalendarStore struct {
	repo Repository
}

func NewCalendarStore(repo Repository) *CalendarStore {
	return &CalendarStore{repo: repo}
}

func (s *CalendarStore) Load(ctx context.Context) (entity.Calendar, error) {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return entity.Calendar{}, fmt.Errorf("failed to create repository client: %w", err)
	}

	events, err := client.Calendar.ListEvents(ctx)
	if err != nil {
		return entity.Calendar{}, fmt.Errorf("failed to list events: %w", err)
	}
	return entity.Calendar{Events: events}, nil
}

func (s *CalendarStore) Update(ctx context.Context, fn func(cal *entity.Calendar) error) error {
	client, err := s.repo.NewClient(true)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer client.Rollback()

	if err := client.Calendar.LockEvents(ctx); err != nil {
		return fmt.Errorf("failed to lock calendar: %w", err)
	}

	events, err := client.Calendar.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	cal := entity.Calendar{Events: events}
	if err := fn(&cal); err != nil {
		return err
	}

	if err := client.Calendar.ReplaceEvents(ctx, cal.Events); err != nil {
		return fmt.Errorf("failed to save events: %w", err)
	}

	return client.Commit()
}

// AuditSink appends audit entries to the audit_entries table.
type AuditSink struct {
	repo Repository
}

func NewAuditSink(repo Repository) *AuditSink {
	return &AuditSink{repo: repo}
}

func (s *AuditSink) Append(ctx context.Context, entry entity.AuditEntry, line []byte) error {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return fmt.Errorf("failed to create repository client: %w", err)
	}
	return client.Audit.InsertEntry(ctx, entry, line)
}
