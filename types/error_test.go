package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_ChainingAndHelpers(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	err := NewError(ErrTransformFailed, "blender exited").
		WithCause(root).
		WithRetryable(true).
		WithHost("blender")

	assert.Equal(t, ErrTransformFailed, GetErrorCode(err))
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, root)
	assert.Equal(t, "[TRANSFORM_FAILED] blender exited: root", err.Error())
}

func TestError_WithoutCause(t *testing.T) {
	t.Parallel()

	err := NewInvalidConfigError("data suffix is required")
	assert.Equal(t, "[INVALID_CONFIG] data suffix is required", err.Error())
	assert.False(t, IsRetryable(err))
}

func TestIsCode_WrappedChain(t *testing.T) {
	t.Parallel()

	inner := NewTransformError("blender", errors.New("exit status 1"))
	wrapped := fmt.Errorf("resolve job %q: %w", "rig", inner)

	assert.True(t, IsCode(wrapped, ErrTransformFailed))
	assert.False(t, IsCode(wrapped, ErrManifestWrite))
	assert.False(t, IsCode(nil, ErrTransformFailed))
	assert.Equal(t, "blender", inner.Host)
}

func TestGetErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
}
