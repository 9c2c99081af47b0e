package executor

import (
	"context"
	"sync"

	"TaaraAgent/internal/entity"
)

// CalendarStore persists the calendar. Update is a serialized
// read-modify-write: fn sees the current calendar and whatever it leaves in
// place is written back, unless it returns an error.
type CalendarStore interface {
	Load(ctx context.Context) (entity.Calendar, error)
	Update(ctx context.Context, fn func(cal *entity.Calendar) error) error
}

type MemoryStore struct {
	mu  sync.Mutex
	cal entity.Calendar
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (entity.Calendar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyCalendar(m.cal), nil
}

func (m *MemoryStore) Update(ctx context.Context, fn func(cal *entity.Calendar) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := copyCalendar(m.cal)
	if err := fn(&working); err != nil {
		return err
	}
	m.cal = working
	return nil
}

func copyCalendar(cal entity.Calendar) entity.Calendar {
	events := make([]entity.CalendarEvent, len(cal.Events))
	copy(events, cal.Events)
	return entity.Calendar{Events: events}
}
