package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap("store_error", "similarity search failed", cause)

	require.EqualError(t, err, "similarity search failed: connection refused")
	require.ErrorIs(t, err, cause)
}

func TestIsCode(t *testing.T) {
	err := Wrap("invalid_input", "top_k must be at least 1", nil)

	require.True(t, IsCode(err, "invalid_input"))
	require.False(t, IsCode(err, "store_error"))
	require.False(t, IsCode(errors.New("plain"), "invalid_input"))
	require.False(t, IsCode(nil, "invalid_input"))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Wrap("encoder_error", "embedding failed", nil))
	require.True(t, IsCode(err, "encoder_error"))
	require.Equal(t, "encoder_error", Code(err))
}

func TestCodeFallback(t *testing.T) {
	require.Equal(t, "internal_error", Code(errors.New("plain")))
	require.Equal(t, "internal_error", Code(nil))
}
