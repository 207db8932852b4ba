package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promanage/promanage-api/internal/domain"
	"github.com/promanage/promanage-api/internal/service/auth"
	"github.com/promanage/promanage-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"duplicate email", store.ErrEmailExists, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"wrapped invalid entity", fmt.Errorf("%w: referenced user not found", store.ErrInvalidEntity), http.StatusBadRequest},
		{"domain validation", domain.ErrChecklistEmpty, http.StatusBadRequest},
		{"unknown error", assert.AnError, http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "User not found", GetSafeErrorMessage(store.ErrUserNotFound))
	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Email already in use", GetSafeErrorMessage(store.ErrEmailExists))
	assert.Equal(t, "Invalid or expired token", GetSafeErrorMessage(auth.ErrExpiredToken))

	// Domain validation messages pass through verbatim.
	assert.Equal(t, domain.ErrChecklistEmpty.Error(), GetSafeErrorMessage(domain.ErrChecklistEmpty))

	// Raw internal errors never reach the client.
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(assert.AnError))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
