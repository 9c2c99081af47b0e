package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	errBlocked := NewError(http.StatusForbidden, "blocked")

	assert.True(t, errors.Is(fmt.Errorf("process: %w", errBlocked), errBlocked))
	assert.True(t, errors.Is(NewError(http.StatusForbidden, "blocked"), errBlocked))
	assert.False(t, errors.Is(NewError(http.StatusBadRequest, "blocked"), errBlocked))
	assert.False(t, errors.Is(errors.New("blocked"), errBlocked))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, StatusCode(fmt.Errorf("x: %w", NewError(http.StatusTooManyRequests, "slow down")), 500))
	assert.Equal(t, 500, StatusCode(errors.New("plain"), 500))
	assert.Equal(t, "unknown error", (&Error{Code: 500}).Error())
}
