// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidCount(t *testing.T) {
	assert := assert.New(t)
	assert.Panics(func() { New(0) })
	assert.Panics(func() { New(-1) })
}

func TestTryAcquire(t *testing.T) {
	var (
		assert = assert.New(t)
		s      = New(2)
	)

	assert.True(s.TryAcquire())
	assert.True(s.TryAcquire())
	assert.False(s.TryAcquire())

	assert.NoError(s.Release())
	assert.True(s.TryAcquire())
}

func TestAcquireWaitTimeout(t *testing.T) {
	var (
		assert = assert.New(t)
		s      = Mutex()
	)

	assert.NoError(s.Acquire())

	timer := time.NewTimer(100 * time.Millisecond)
	defer timer.Stop()
	assert.Equal(ErrTimeout, s.AcquireWait(timer.C))
}

func TestAcquireCtx(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		s       = Mutex()
	)

	require.NoError(s.AcquireCtx(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(context.Canceled, s.AcquireCtx(ctx))

	assert.NoError(s.Release())
	assert.NoError(s.AcquireCtx(context.Background()))
}

func TestReleaseWithoutAcquire(t *testing.T) {
	assert := assert.New(t)
	assert.Error(Mutex().Release())
}
