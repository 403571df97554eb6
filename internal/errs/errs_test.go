package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindCodes(t *testing.T) {
	tests := []struct {
		kind   Kind
		code   string
		status int
	}{
		{KindAuthentication, "AUTHENTICATION_ERROR", http.StatusUnauthorized},
		{KindAuthorization, "AUTHORIZATION_ERROR", http.StatusForbidden},
		{KindRateLimit, "RATE_LIMIT_ERROR", http.StatusTooManyRequests},
		{KindValidation, "VALIDATION_ERROR", http.StatusBadRequest},
		{KindNotFound, "RESOURCE_NOT_FOUND", http.StatusNotFound},
		{KindConflict, "CONFLICT_ERROR", http.StatusConflict},
		{KindBusiness, "BUSINESS_ERROR", http.StatusBadRequest},
		{KindExternalService, "EXTERNAL_SERVICE_ERROR", http.StatusBadGateway},
		{KindConfiguration, "CONFIGURATION_ERROR", http.StatusInternalServerError},
		{KindInternal, "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.kind.Code())
			assert.Equal(t, tt.status, tt.kind.Status())
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindAuthentication, KindOf(Authentication("")))
	assert.Equal(t, KindAuthorization, KindOf(Authorization("")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("handler: %w", NotFound("Order", "o1"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestAsError(t *testing.T) {
	err := RateLimit(60)
	tagged := AsError(fmt.Errorf("gate: %w", err))
	require.NotNil(t, tagged)
	assert.Equal(t, KindRateLimit, tagged.Kind)
	assert.Equal(t, 60, tagged.RetryAfter)

	internal := AsError(errors.New("boom"))
	assert.Equal(t, KindInternal, internal.Kind)
	// The client-facing message never leaks the cause.
	assert.NotContains(t, internal.Message, "boom")
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("auth: %w", ErrInvalidToken)
	assert.True(t, errors.Is(err, ErrInvalidToken))
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("pg down")
	err := Configuration("counter store unreachable", cause)
	assert.True(t, errors.Is(err, cause))
}
