package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrInvalidModeParameter, "min %d > max %d", 4, 2)

	assert.True(t, Is(err, ErrInvalidModeParameter))
	assert.True(t, IsInvalidModeParameter(err))
	assert.False(t, IsIntegrityError(err))
	assert.Contains(t, err.Error(), "min 4 > max 2")
	assert.Contains(t, err.Error(), "invalid mode parameter")
}

func TestSentinelHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"integrity", Wrap(ErrIntegrity, "link a->zz"), IsIntegrityError},
		{"empty", Wrap(ErrEmptyResult, "degree filter"), IsEmptyResult},
		{"invalid", Wrap(ErrInvalidModeParameter, "depth 0"), IsInvalidModeParameter},
		{"not found", NewNotFoundError("node %q", "x"), IsNotFoundError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(nil))
			assert.False(t, tt.check(New("unrelated")))
		})
	}
}

func TestNewInvalidRequestError(t *testing.T) {
	err := NewInvalidRequestError("unknown mode %q", "sideways")
	require.Error(t, err)
	assert.True(t, Is(err, ErrInvalidRequest))
	assert.Contains(t, err.Error(), `unknown mode "sideways"`)
}

func TestWithHint(t *testing.T) {
	err := WithHint(Wrap(ErrInvalidModeParameter, "depth 0"), "depth must be at least 1")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "depth must be at least 1", hints[0])
	assert.True(t, IsInvalidModeParameter(err))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithHint(nil, "hint"))
}

func ExampleWrapf() {
	err := Wrapf(ErrInvalidModeParameter, "depth %d", 0)
	fmt.Println(err)
	// Output: depth 0: invalid mode parameter
}
