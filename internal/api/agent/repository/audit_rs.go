package agentRepository

import (
	"context"

	"TaaraAgent/internal/entity"
	contextPkg "TaaraAgent/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *auditRepository) InsertEntry(ctx context.Context, entry entity.AuditEntry, line []byte) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"hash":        entry.Hash,
		"action":      entry.Action,
		"username":    entry.User,
		"environment": entry.Environment,
		"recorded_at": entry.Timestamp,
		"entry":       string(line),
	}

	query, args, err := sqlx.Named(queryInsertAuditEntry, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for InsertEntry")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to insert audit entry")
		return err
	}

	return nil
}
