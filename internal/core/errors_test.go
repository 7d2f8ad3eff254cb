package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := Errorf(KindConfig, "validate account", "ops1", "missing password")

	assert.True(t, IsConfig(err))
	assert.False(t, IsTransport(err))
	assert.Contains(t, err.Error(), "validate account")
	assert.Contains(t, err.Error(), "ops1")
	assert.Contains(t, err.Error(), "missing password")
}

func TestWrapErrPreservesKind(t *testing.T) {
	inner := &Error{Kind: KindDuplicate, Op: "AddClusterAdmin", Err: errors.New("xDuplicateUsername")}

	wrapped := WrapErr("create cluster admin", "ops1", inner)

	assert.True(t, IsDuplicate(wrapped))
	assert.Contains(t, wrapped.Error(), "create cluster admin")
	assert.ErrorIs(t, wrapped, inner.Err)
}

func TestWrapErrDefaultsToTransport(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	wrapped := WrapErr("list cluster admins", "", cause)

	assert.True(t, IsTransport(wrapped))
	assert.ErrorIs(t, wrapped, cause)
}
