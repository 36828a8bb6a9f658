package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, KindUnavailable, "postgres unreachable")

	require.Error(t, err)
	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "postgres unreachable", Message(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, KindNotFound, "post missing"))
}

func TestKindMatching(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(KindConflict, "already published"))

	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
	assert.True(t, errors.Is(err, New(KindConflict, "")))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
