package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotFoundMessage(t *testing.T) {
	err := NewNotFound("Ticket")
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Ticket not found", de.Message)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestNewValidationErrorCarriesDetails(t *testing.T) {
	err := NewValidationError([]string{"email: is required", "message: must be at least 10 characters"})
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Validation error", de.Message)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Len(t, de.Details, 2)
}

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewForbidden("Insufficient role")
	de := ToDomainError(original)
	assert.Equal(t, http.StatusForbidden, de.HTTPStatus)
	assert.Equal(t, "Insufficient role", de.Message)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	de := ToDomainError(fmt.Errorf("load ticket: %w", pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}

func TestToDomainErrorHidesUnknownErrors(t *testing.T) {
	de := ToDomainError(errors.New("pq: connection refused on 10.0.0.5"))
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.Equal(t, "Internal server error", de.Message)
	assert.NotContains(t, de.Message, "10.0.0.5")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError(cause)
	assert.True(t, errors.Is(err, cause))
}
