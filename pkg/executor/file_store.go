package executor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"TaaraAgent/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type FileStore struct {
	mu   sync.Mutex
	path string
	log  *logrus.Logger
}

func NewFileStore(log *logrus.Logger, path string) *FileStore {
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Load(ctx context.Context) (entity.Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

func (s *FileStore) Update(ctx context.Context, fn func(cal *entity.Calendar) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	cal := s.read()
	if err := fn(&cal); err != nil {
		return err
	}

	return s.write(cal)
}

// read never fails: a missing or unreadable calendar starts empty.
func (s *FileStore) read() entity.Calendar {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.WithFields(logrus.Fields{
				"path":  s.path,
				"error": err.Error(),
			}).Warn("Failed to read calendar, starting empty")
		}
		return entity.Calendar{Events: []entity.CalendarEvent{}}
	}

	var cal entity.Calendar
	if err := jsoniter.Unmarshal(data, &cal); err != nil {
		s.log.WithFields(logrus.Fields{
			"path":  s.path,
			"error": err.Error(),
		}).Warn("Calendar file is corrupt, starting empty")
		return entity.Calendar{Events: []entity.CalendarEvent{}}
	}
	if cal.Events == nil {
		cal.Events = []entity.CalendarEvent{}
	}

	return cal
}

func (s *FileStore) write(cal entity.Calendar) error {
	data, err := jsoniter.MarshalIndent(cal, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create calendar directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".calendar-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp calendar: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close calendar: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace calendar: %w", err)
	}

	return nil
}
