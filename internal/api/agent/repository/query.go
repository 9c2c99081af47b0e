package agentRepository

const (
	queryLockEvents = `
LOCK TABLE calendar_events IN SHARE ROW EXCLUSIVE MODE`

	queryListEvents = `
SELECT id, title, event_time, event_date, created_at, verified
FROM calendar_events
ORDER BY id`

	queryDeleteEvents = `
DELETE FROM calendar_events`

	queryInsertEvent = `
INSERT INTO calendar_events (id, title, event_time, event_date, created_at, verified)
VALUES (:id, :title, :event_time, :event_date, :created_at, :verified)`

	queryInsertAuditEntry = `
INSERT INTO audit_entries (hash, action, username, environment, recorded_at, entry)
VALUES (:hash, :action, :username, :environment, :recorded_at, :entry)`
)
