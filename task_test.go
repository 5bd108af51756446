package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coroutil/async"
)

func TestTaskGetValue(t *testing.T) {
	task := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		return 42, nil
	})

	v, err := async.Get[int](task)
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestTaskGetError(t *testing.T) {
	wantErr := errors.New("boom")
	task := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		return 0, wantErr
	})

	_, err := async.Get[int](task)
	require.ErrorIs(t, err, wantErr)
}

func TestTaskAwaitChain(t *testing.T) {
	a := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		return 1, nil
	})
	b := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		v, err := a.Await(co)
		if err != nil {
			return 0, err
		}
		return v + 1, nil
	})

	v, err := async.Get[int](b)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestTaskDeepAwaitChain(t *testing.T) {
	const depth = 2000

	var tail *async.Task[int]
	tail = async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		return 0, nil
	})

	for i := 0; i < depth; i++ {
		prev := tail
		tail = async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
			v, err := prev.Await(co)
			if err != nil {
				return 0, err
			}
			return v + 1, nil
		})
	}

	v, err := async.Get[int](tail)
	require.NoError(t, err)
	require.Equal(t, depth, v)
}

func TestTaskPanicCapturedOnce(t *testing.T) {
	task := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		panic("kaboom")
	})

	_, err := async.Get[int](task)
	require.Error(t, err)
	require.Contains(t, err.Error(), "kaboom")

	_, err2 := async.Get[int](task)
	require.Equal(t, err, err2)
}

func TestTaskCancelBeforeAwait(t *testing.T) {
	started := make(chan struct{})
	unblock := make(chan struct{})

	task := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		close(started)
		ev := async.NewEvent(nil)
		go func() {
			<-unblock
			ev.Set()
		}()
		ev.Await(co)
		return 1, nil
	})

	<-started
	task.Cancel()
	close(unblock)

	_, err := async.Get[int](task)
	require.ErrorIs(t, err, async.ErrCanceled)
}

func TestTaskCancelViaContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})

	task := async.Start(nil, ctx, func(co *async.Coroutine) (int, error) {
		close(started)
		ev := async.NewEvent(nil)
		ev.Await(co)
		return 1, nil
	})

	<-started
	cancel()

	_, err := async.Get[int](task)
	require.ErrorIs(t, err, async.ErrCanceled)
}

func TestTaskWaitFor(t *testing.T) {
	ev := async.NewEvent(nil)
	task := async.Start(nil, nil, func(co *async.Coroutine) (int, error) {
		ev.Await(co)
		return 9, nil
	})

	_, _, timedOut := async.WaitFor[int](task, 20*time.Millisecond)
	require.True(t, timedOut)

	ev.Set()

	v, err, timedOut := async.WaitFor[int](task, time.Second)
	require.False(t, timedOut)
	require.NoError(t, err)
	require.Equal(t, 9, v)
}
