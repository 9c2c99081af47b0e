package executor

import (
	"context"
	"fmt"

	"TaaraAgent/internal/entity"
	"TaaraAgent/pkg/redis"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const DefaultCalendarKey = "taara:calendar"

// RedisStore keeps the calendar document under a single key and serializes
// writers with optimistic WATCH transactions, so several agent processes can
// share it.
type RedisStore struct {
	client redis.IRedis
	key    string
	log    *logrus.Logger
}

func NewRedisStore(log *logrus.Logger, client redis.IRedis, key string) *RedisStore {
	if key == "" {
		key = DefaultCalendarKey
	}
	return &RedisStore{client: client, key: key, log: log}
}

func (s *RedisStore) Load(ctx context.Context) (entity.Calendar, error) {
	data, err := s.client.Get(ctx, s.key)
	if err != nil {
		return entity.Calendar{}, fmt.Errorf("failed to load calendar: %w", err)
	}
	return s.decode(data), nil
}

func (s *RedisStore) Update(ctx context.Context, fn func(cal *entity.Calendar) error) error {
	return s.client.Update(ctx, s.key, func(current []byte) ([]byte, error) {
		cal := s.decode(current)
		if err := fn(&cal); err != nil {
			return nil, err
		}
		return jsoniter.Marshal(cal)
	})
}

func (s *RedisStore) decode(data []byte) entity.Calendar {
	cal := entity.Calendar{Events: []entity.CalendarEvent{}}
	if len(data) == 0 {
		return cal
	}
	if err := jsoniter.Unmarshal(data, &cal); err != nil {
		s.log.WithFields(logrus.Fields{
			"key":   s.key,
			"error": err.Error(),
		}).Warn("Calendar document is corrupt, starting empty")
		return entity.Calendar{Events: []entity.CalendarEvent{}}
	}
	if cal.Events == nil {
		cal.Events = []entity.CalendarEvent{}
	}
	return cal
}
