package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTransportError(t *testing.T) {
	assert.Nil(t, ClassifyTransportError(nil))

	err := ClassifyTransportError(context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrTimeout)

	err = ClassifyTransportError(errors.New("dial tcp 127.0.0.1:11434: connect: connection refused"))
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(ErrUnreachable))
	assert.True(t, IsRetryable(ErrTimeout))
	assert.False(t, IsRetryable(ErrMalformedResponse))

	assert.True(t, IsRetryable(&BackendError{StatusCode: 500}))
	assert.True(t, IsRetryable(&BackendError{StatusCode: 429}))
	assert.False(t, IsRetryable(&BackendError{StatusCode: 404}))
	assert.False(t, IsRetryable(&BackendError{StatusCode: 400}))
}

func TestBackendErrorMessage(t *testing.T) {
	err := &BackendError{StatusCode: 500, Body: "internal failure"}
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "internal failure")
}
