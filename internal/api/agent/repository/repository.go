package agentRepository

import (
	"context"

	"TaaraAgent/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Calendar: &calendarRepository{q: db, log: r.log},
		Audit:    &auditRepository{q: db, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Calendar interface {
		LockEvents(ctx context.Context) error
		ListEvents(ctx context.Context) ([]entity.CalendarEvent, error)
		ReplaceEvents(ctx context.Context, events []entity.CalendarEvent) error
	}

	Audit interface {
		InsertEntry(ctx context.Context, entry entity.AuditEntry, line []byte) error
	}

	Commit   func() error
	Rollback func() error
}

type calendarRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type auditRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
