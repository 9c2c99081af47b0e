package agent

import "TaaraAgent/pkg/response"

var (
	ErrInvalidCommand      = response.NewError(400, "command text is required")
	ErrCommandFailed       = response.NewError(500, "failed to execute command")
	ErrCalendarUnavailable = response.NewError(503, "calendar store unavailable")
)
