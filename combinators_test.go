package async_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coroutil/async"
)

func TestWhenAllCollectsInOrder(t *testing.T) {
	a := async.Start(nil, nil, func(co *async.Coroutine) (int, error) { return 1, nil })
	b := async.Start(nil, nil, func(co *async.Coroutine) (int, error) { return 2, nil })
	c := async.Start(nil, nil, func(co *async.Coroutine) (int, error) { return 3, nil })

	joined := async.Start(nil, nil, func(co *async.Coroutine) ([]int, error) {
		return async.WhenAll[int](nil, co, a, b, c)
	})

	vs, err := async.Get[[]int](joined)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, vs)
}

func TestWhenAllCombinesErrors(t *testing.T) {
	errA := errors.New("a failed")
	a := async.Start(nil, nil, func(co *async.Coroutine) (int, error) { return 0, errA })
	b := async.Start(nil, nil, func(co *async.Coroutine) (int, error) { return 2, nil })

	joined := async.Start(nil, nil, func(co *async.Coroutine) ([]int, error) {
		return async.WhenAll[int](nil, co, a, b)
	})

	_, err := async.Get[[]int](joined)
	require.ErrorIs(t, err, errA)
}

func TestWhenAllEmpty(t *testing.T) {
	joined := async.Start(nil, nil, func(co *async.Coroutine) ([]int, error) {
		return async.WhenAll[int, *async.Task[int]](nil, co)
	})
	vs, err := async.Get[[]int](joined)
	require.NoError(t, err)
	require.Empty(t, vs)
}

func TestWhenAnyEmpty(t *testing.T) {
	joined := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		idx, v, err := async.WhenAny[int, *async.Task[int]](nil, co)
		require.Equal(t, -1, idx)
		return v, err
	})
	v, err := async.Get[int](joined)
	require.NoError(t, err)
	require.Zero(t, v)
}

func TestWhenAnyFirstToSettle(t *testing.T) {
	ev := async.NewEvent(nil)
	slow := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		ev.Await(co)
		return 1, nil
	})
	fast := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		return 2, nil
	})

	joined := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		idx, v, err := async.WhenAny[int](nil, co, slow, fast)
		require.Equal(t, 1, idx)
		return v, err
	})

	v, err := async.Get[int](joined)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	ev.Set() // let slow settle too, so it doesn't leak
	_, _ = async.Get[int](slow)
}

func TestWhenReadyReturnsItems(t *testing.T) {
	a := async.Start(nil, nil, func(co *async.Coroutine) (int, error) { return 1, nil })
	b := async.Start(nil, nil, func(co *async.Coroutine) (int, error) { return 2, errors.New("nope") })

	joined := async.Start(nil, nil, func(co *async.Coroutine) ([]*async.Task[int], error) {
		return async.WhenReady[int](nil, co, a, b), nil
	})

	items, err := async.Get[[]*async.Task[int]](joined)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.True(t, items[0].Done())
	require.True(t, items[1].Done())
}
