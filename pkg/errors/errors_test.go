package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndCode(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap("persistence_error", "store recommendation", cause)

	require.Equal(t, "store recommendation: dial tcp: refused", err.Error())
	require.True(t, IsCode(err, "persistence_error"))
	require.False(t, IsCode(err, "not_found"))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "store recommendation", MessageOf(err))

	outer := fmt.Errorf("handler: %w", err)
	require.Equal(t, "persistence_error", CodeOf(outer))
}

func TestCodeOfPlainError(t *testing.T) {
	err := errors.New("boom")
	require.Empty(t, CodeOf(err))
	require.False(t, IsCode(err, ""))
	require.Equal(t, "boom", MessageOf(err))
	require.Empty(t, MessageOf(nil))
}
