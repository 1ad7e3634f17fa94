// Test Type: Unit Test
// Description: Tests for the errors package - structured error codes and wrapping

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waynelloyd/system-updater/pkg/errors"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrCommandFailed, "apt upgrade failed")
	assert.Equal(t, "[COMMAND_FAILED] apt upgrade failed", err.Error())
	assert.Equal(t, errors.ErrCommandFailed, err.Code)
}

func TestWrap(t *testing.T) {
	base := fmt.Errorf("exit status 3")
	err := errors.Wrap(base, errors.ErrCommandFailed, "upgrade failed")

	assert.Equal(t, "[COMMAND_FAILED] upgrade failed: exit status 3", err.Error())
	assert.Equal(t, base, stderrors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "should be nil"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "should be %s", "nil"))
}

func TestIsByCode(t *testing.T) {
	err := errors.Newf(errors.ErrConfigConflict, "both %q and %q set", "skip-pip", "skip_pip")
	target := errors.New(errors.ErrConfigConflict, "")

	assert.True(t, stderrors.Is(err, target))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrConfigLoad, "")))
}

func TestIsErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", errors.New(errors.ErrTargetInvalid, "bad path"))

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrTargetInvalid))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrDiscovery))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrTargetInvalid))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrConfigSave, errors.GetErrorCode(errors.New(errors.ErrConfigSave, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrCommandFailed, "pull failed").
		WithDetail("target", "/home/user/ganymede").
		WithDetail("exit_code", 18)

	assert.Equal(t, "/home/user/ganymede", err.Details["target"])
	assert.Equal(t, 18, err.Details["exit_code"])
}
