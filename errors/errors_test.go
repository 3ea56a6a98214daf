package errors

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf("error: %s %d", "test", 42)
	require.NotNil(t, err)
	assert.Equal(t, "error: test 42", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

func TestAs(t *testing.T) {
	original := &customError{msg: "custom"}
	wrapped := Wrap(original, "wrapped")

	var target *customError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "custom", target.msg)
}

func TestWithHint(t *testing.T) {
	err := New("error")
	withHint := WithHint(err, "try this fix")

	hints := GetAllHints(withHint)
	require.Len(t, hints, 1)
	assert.Equal(t, "try this fix", hints[0])
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

// =============================================================================
// Sentinel helpers
// =============================================================================

func TestWrapNotFound(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here.py")
	require.Error(t, statErr)

	err := WrapNotFound(statErr, "failed to load input")

	assert.True(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "here.py", "original cause must stay in the message")
	assert.Contains(t, err.Error(), "failed to load input")
	assert.False(t, IsParseError(err))
}

func TestNewInvalidConfigError(t *testing.T) {
	err := NewInvalidConfigError("driver.workers must be > 0, got %d", -1)

	assert.True(t, IsInvalidConfigError(err))
	assert.Contains(t, err.Error(), "driver.workers must be > 0, got -1")
}

func TestSentinelHelpersNil(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsInvalidConfigError(nil))
	assert.False(t, IsParseError(nil))
}

func TestAssertionFailure(t *testing.T) {
	err := AssertionFailedf("pop on empty scope stack")
	assert.True(t, HasAssertionFailure(err))
}

func ExampleWrap() {
	baseErr := New("unexpected indent")
	err := Wrap(baseErr, "failed to parse example.py")
	fmt.Println(err)
	// Output: failed to parse example.py: unexpected indent
}
