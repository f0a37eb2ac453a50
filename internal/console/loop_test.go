package console

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoopRunsActionsInOrderOnOneGoroutine(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = loop.Run(ctx) }()

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		loop.Post(func() { got = append(got, i) })
	}
	loop.Close()

	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after Close")
	}
	require.Len(t, got, 100)
	for i, v := range got {
		require.Equal(t, i, v)
	}
}

func TestLoopPostIsAsynchronous(t *testing.T) {
	loop := NewLoop()
	ran := false
	loop.Post(func() { ran = true })
	require.False(t, ran)

	loop.Close()
	require.NoError(t, loop.Run(context.Background()))
	require.True(t, ran)
}

func TestLoopDropsPostsAfterClose(t *testing.T) {
	loop := NewLoop()
	loop.Close()
	loop.Post(func() { t.Error("action ran after close") })
	require.NoError(t, loop.Run(context.Background()))
}

func TestLoopStopsOnContext(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, loop.Run(ctx), context.Canceled)
}
