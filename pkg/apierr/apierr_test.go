package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{Op: "fetch routine", Err: errors.New("connection refused")}
	assert.Contains(t, err.Error(), NetworkUnreachableMsg)
	assert.True(t, IsTransport(err))
	assert.True(t, IsTransport(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsTransport(errors.New("plain")))
}

func TestStatusErrorPrefersBody(t *testing.T) {
	withBody := &StatusError{Op: "login", StatusCode: 401, Body: "Invalid employee ID or password"}
	assert.Equal(t, "Invalid employee ID or password", withBody.Error())

	bare := &StatusError{Op: "delete routine", StatusCode: 500}
	assert.Equal(t, "delete routine failed with status 500", bare.Error())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(&StatusError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsNotFound(&StatusError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, IsNotFound(&TransportError{Err: errors.New("refused")}))
	assert.False(t, IsNotFound(nil))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 404, StatusCode(&StatusError{StatusCode: 404}))
	assert.Equal(t, 404, StatusCode(fmt.Errorf("wrapped: %w", &StatusError{StatusCode: 404})))
	assert.Equal(t, 0, StatusCode(&AppError{Message: "nope"}))
	assert.Equal(t, 0, StatusCode(nil))
}

func TestAppErrorMessage(t *testing.T) {
	assert.Equal(t, "record is locked", (&AppError{Op: "delete routine", Message: "record is locked"}).Error())
	assert.Equal(t, "delete routine failed", (&AppError{Op: "delete routine"}).Error())
}
