package entity

type ExecutionStatus string

const (
	ExecutionSuccess ExecutionStatus = "success"
	ExecutionError   ExecutionStatus = "error"
)

type ExecutionResult struct {
	Status  ExecutionStatus `json:"status"`
	Message string          `json:"message"`
	Event   *CalendarEvent  `json:"event,omitempty"`
}

func (r ExecutionResult) Succeeded() bool {
	return r.Status == ExecutionSuccess
}
