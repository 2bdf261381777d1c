package xrerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKind(t *testing.T) {
	err := New(PathUnsupported, "no such user path %q", "/user/foo")
	assert.True(t, IsKind(err, PathUnsupported))
	assert.False(t, IsKind(err, HandleInvalid))
}

func TestIsKindThroughWrap(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", New(RuntimeFailure, "sync failed"))
	assert.True(t, IsKind(wrapped, RuntimeFailure))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(RuntimeFailure, cause, "sync_actions")
	assert.ErrorIs(t, err, cause)
}

func TestIsKindFalseForPlainError(t *testing.T) {
	assert.False(t, IsKind(errors.New("plain"), HandleInvalid))
}
