package agentRepository

import (
	"context"

	"TaaraAgent/internal/entity"
	contextPkg "TaaraAgent/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *calendarRepository) LockEvents(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx, queryLockEvents)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to lock calendar table")
		return err
	}
	return nil
}

func (r *calendarRepository) ListEvents(ctx context.Context) ([]entity.CalendarEvent, error) {
	events := []entity.CalendarEvent{}
	if err := sqlx.SelectContext(ctx, r.q, &events, queryListEvents); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to list calendar events")
		return nil, err
	}
	return events, nil
}

func (r *calendarRepository) ReplaceEvents(ctx context.Context, events []entity.CalendarEvent) error {
	requestID := contextPkg.GetRequestID(ctx)

	if _, err := r.q.ExecContext(ctx, queryDeleteEvents); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to clear calendar events")
		return err
	}

	for _, event := range events {
		query, args, err := sqlx.Named(queryInsertEvent, event)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to build SQL query for ReplaceEvents")
			return err
		}
		query = r.q.Rebind(query)

		if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"event_id":   event.ID,
				"error":      err.Error(),
			}).Error("Failed to insert calendar event")
			return err
		}
	}

	return nil
}
