package executor

import (
	"context"
	"fmt"
	"time"

	"TaaraAgent/internal/entity"
	contextPkg "TaaraAgent/pkg/context"

	"github.com/sirupsen/logrus"
)

const (
	defaultTitle = "Meeting"
	defaultTime  = "12:00"
	dateLayout   = "2006-01-02"
)

type IExecutor interface {
	// Execute performs a permitted action. Domain failures come back as a
	// result with status error; the Go error is reserved for storage failures.
	Execute(ctx context.Context, action entity.Action, params entity.Parameters) (entity.ExecutionResult, error)
}

type executor struct {
	log   *logrus.Logger
	store CalendarStore
	now   func() time.Time
}

func New(log *logrus.Logger, store CalendarStore) IExecutor {
	return &executor{
		log:   log,
		store: store,
		now:   time.Now,
	}
}

func (e *executor) Execute(ctx context.Context, action entity.Action, params entity.Parameters) (entity.ExecutionResult, error) {
	switch action {
	case entity.ActionSchedule:
		return e.schedule(ctx, params)
	case entity.ActionRemind:
		return entity.ExecutionResult{
			Status:  entity.ExecutionSuccess,
			Message: fmt.Sprintf("Reminder set: %s", params.String(entity.ParamText, "")),
		}, nil
	case entity.ActionTask:
		return entity.ExecutionResult{
			Status:  entity.ExecutionSuccess,
			Message: fmt.Sprintf("Task created: %s", params.String(entity.ParamText, "")),
		}, nil
	case entity.ActionDeleteAll, entity.ActionUnknown:
		return unknownAction(action), nil
	default:
		return unknownAction(action), nil
	}
}

func (e *executor) schedule(ctx context.Context, params entity.Parameters) (entity.ExecutionResult, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := e.now()

	var event entity.CalendarEvent
	err := e.store.Update(ctx, func(cal *entity.Calendar) error {
		event = entity.CalendarEvent{
			ID:       cal.NextID(),
			Title:    params.String(entity.ParamTitle, defaultTitle),
			Time:     params.String(entity.ParamTime, defaultTime),
			Date:     params.String(entity.ParamDate, now.Format(dateLayout)),
			Created:  now,
			Verified: params.Bool(entity.ParamVerified),
		}
		cal.Events = append(cal.Events, event)
		return nil
	})
	if err != nil {
		e.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to persist calendar event")
		return entity.ExecutionResult{}, fmt.Errorf("failed to save calendar: %w", err)
	}

	e.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"event_id":   event.ID,
		"date":       event.Date,
		"time":       event.Time,
	}).Info("Calendar event scheduled")

	return entity.ExecutionResult{
		Status:  entity.ExecutionSuccess,
		Message: fmt.Sprintf("Scheduled: %s at %s on %s", event.Title, event.Time, event.Date),
		Event:   &event,
	}, nil
}

func unknownAction(action entity.Action) entity.ExecutionResult {
	return entity.ExecutionResult{
		Status:  entity.ExecutionError,
		Message: fmt.Sprintf("Unknown action: %s", action),
	}
}
