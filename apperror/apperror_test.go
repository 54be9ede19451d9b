package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(Validation("time is required")))
	assert.Equal(t, http.StatusBadRequest, Status(Precondition("bed is occupied")))
	assert.Equal(t, http.StatusNotFound, Status(NotFound("doctor")))
	assert.Equal(t, http.StatusConflict, Status(Conflict("slot taken")))
	assert.Equal(t, http.StatusUnauthorized, Status(Unauthorized("missing token")))
	assert.Equal(t, http.StatusForbidden, Status(Forbidden("no access")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("boom")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("booking: %w", Conflict("slot %s taken", "09:00"))
	assert.True(t, Is(err, KindConflict))
	assert.Equal(t, "slot 09:00 taken", Public(err, false))
}

func TestPublicMasksUnclassified(t *testing.T) {
	raw := errors.New("connection refused")
	assert.Equal(t, "internal server error", Public(raw, false))
	assert.Equal(t, "connection refused", Public(raw, true))
	assert.Equal(t, "internal server error", Public(Internal(raw), false))
	assert.Equal(t, "internal server error: connection refused", Public(Internal(raw), true))
}

func TestNotFoundMessage(t *testing.T) {
	assert.EqualError(t, NotFound("patient"), "patient not found")
	assert.False(t, Is(nil, KindNotFound))
}
