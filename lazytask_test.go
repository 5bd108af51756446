package async_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coroutil/async"
)

func TestLazyTaskDoesNotStartUntilAwaited(t *testing.T) {
	started := false
	lazy := async.NewLazy(nil, func(co *async.Coroutine) (int, error) {
		started = true
		return 5, nil
	})

	require.False(t, started)
	require.False(t, lazy.Done())

	v, err := async.Get[int](lazy)
	require.NoError(t, err)
	require.True(t, started)
	require.Equal(t, 5, v)
}

func TestLazyTaskSecondAwaitDoesNotRestart(t *testing.T) {
	runs := 0
	lazy := async.NewLazy(nil, func(co *async.Coroutine) (int, error) {
		runs++
		return runs, nil
	})

	v1, err := async.Get[int](lazy)
	require.NoError(t, err)
	v2, err := async.Get[int](lazy)
	require.NoError(t, err)

	require.Equal(t, 1, v1)
	require.Equal(t, 1, v2)
	require.Equal(t, 1, runs)
}
