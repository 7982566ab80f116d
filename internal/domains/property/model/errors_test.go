package model

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewPropertyNotFound(3)))
	assert.True(t, errors.Is(NewPropertyNotFound(3), ErrPropertyNotFound))
	assert.True(t, IsConflict(NewCodeAlreadyExists("X")))
	assert.False(t, IsConflict(errors.New("boom")))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))

	wrapped := fmt.Errorf("save: %w", NewConcurrencyConflict(errors.New("40001")))
	assert.True(t, IsConflict(wrapped))
	assert.True(t, IsRetryable(wrapped))
	assert.False(t, IsRetryable(ErrCodeAlreadyExists))
}

func TestNewStorageError_KeepsCancellation(t *testing.T) {
	err := NewStorageError("list properties", context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, CodeOperationCanceled, GetErrorCode(err))

	err = NewStorageError("list properties", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, IsRetryable(err))

	err = NewStorageError("list properties", errors.New("disk"))
	assert.Equal(t, CodeStorageFailure, GetErrorCode(err))
}

func TestMapErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{NewInvalidInput(CodeInvalidPrice, "bad"), http.StatusBadRequest},
		{ErrPropertyGone, http.StatusNotFound},
		{NewCodeAlreadyExists("A"), http.StatusConflict},
		{ErrReadOnlyEntity, http.StatusInternalServerError},
		{NewStorageError("x", context.Canceled), StatusClientClosedRequest},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("raw"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, _, _ := MapErrorToHTTP(tc.err)
		assert.Equal(t, tc.status, status, "%v", tc.err)
	}
}
