package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(InvalidConfiguration, "init_alpha must be greater than 0")

	var e *Error
	require.True(t, stderrors.As(err, &e))
	assert.Equal(t, InvalidConfiguration, e.Code())
	assert.Equal(t, "init_alpha must be greater than 0", err.Error())
}

func TestWrap(t *testing.T) {
	inner := fmt.Errorf("no such file")
	err := Wrap(inner, ConfigLoadFailed, "failed to read settings")

	assert.Equal(t, "failed to read settings: no such file", err.Error())
	assert.Equal(t, inner, stderrors.Unwrap(err))

	assert.Nil(t, Wrap(nil, ConfigLoadFailed, "ignored"))
}

func TestWithFields(t *testing.T) {
	err := WithFields(
		New(InvalidConfiguration, "tol_obj must be greater than 0"),
		Fields{"field": "tol_obj", "value": -1.0},
	)

	var e *Error
	require.True(t, stderrors.As(err, &e))
	fields := e.Fields()
	assert.Equal(t, "tol_obj", fields["field"])
	assert.Equal(t, -1.0, fields["value"])
	assert.Contains(t, err.Error(), "tol_obj must be greater than 0")

	// Fields on a foreign error wrap it with code Unknown.
	wrapped := WithFields(fmt.Errorf("plain"), Fields{"k": "v"})
	require.True(t, stderrors.As(wrapped, &e))
	assert.Equal(t, Unknown, e.Code())

	assert.Nil(t, WithFields(nil, Fields{"k": "v"}))
}

func TestWithFieldsMerges(t *testing.T) {
	err := WithFields(New(InvalidConfiguration, "bad"), Fields{"a": 1})
	err = WithFields(err, Fields{"b": 2})

	var e *Error
	require.True(t, stderrors.As(err, &e))
	fields := e.Fields()
	assert.Equal(t, 1, fields["a"])
	assert.Equal(t, 2, fields["b"])
}

func TestIsMatchesOnCode(t *testing.T) {
	err := WithFields(New(InvalidConfiguration, "bad algorithm"), Fields{"field": "algorithm"})

	assert.True(t, stderrors.Is(err, New(InvalidConfiguration, "anything")))
	assert.False(t, stderrors.Is(err, New(StorageFailed, "anything")))
}

func TestFieldsReturnsCopy(t *testing.T) {
	err := WithFields(New(InvalidInput, "bad"), Fields{"field": "iter"})

	var e *Error
	require.True(t, stderrors.As(err, &e))
	fields := e.Fields()
	fields["field"] = "mutated"

	assert.Equal(t, "iter", e.Fields()["field"])
}

func TestCode(t *testing.T) {
	assert.Equal(t, StorageFailed, Code(New(StorageFailed, "db gone")))
	assert.Equal(t, Unknown, Code(fmt.Errorf("plain")))
}

func TestCheckContext(t *testing.T) {
	assert.NoError(t, CheckContext(context.Background(), "compose"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CheckContext(ctx, "compose")
	require.Error(t, err)
	assert.Equal(t, Canceled, Code(err))
	assert.Contains(t, err.Error(), "compose canceled")
}
