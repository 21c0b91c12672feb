package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastsToStreamOnly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub()
	go h.Run(ctx)

	a := &Client{ID: "a", Stream: "default", Send: make(chan []byte, 1)}
	b := &Client{ID: "b", Stream: "other", Send: make(chan []byte, 1)}
	h.Register <- a
	h.Register <- b
	require.Eventually(t, func() bool { return h.Viewers("default") == 1 }, time.Second, time.Millisecond)

	h.Broadcast <- Frame{Stream: "default", Data: []byte("jpeg")}
	select {
	case got := <-a.Send:
		assert.Equal(t, []byte("jpeg"), got)
	case <-time.After(time.Second):
		t.Fatal("frame not delivered")
	}
	assert.Empty(t, b.Send)

	h.Unregister <- a
	require.Eventually(t, func() bool { return h.Viewers("default") == 0 }, time.Second, time.Millisecond)
	_, open := <-a.Send
	assert.False(t, open)
}

func TestHubDropsSlowViewer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub()
	go h.Run(ctx)

	slow := &Client{ID: "slow", Stream: "default", Send: make(chan []byte)}
	h.Register <- slow
	h.Broadcast <- Frame{Stream: "default", Data: []byte("x")}
	require.Eventually(t, func() bool { return h.Viewers("default") == 0 }, time.Second, time.Millisecond)
}

func TestJoinAndLeaveAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub()
	go h.Run(ctx)

	c := &Client{ID: "c", Stream: "default", Send: make(chan []byte, 1)}
	require.True(t, h.Join(c))
	cancel()

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	left := make(chan struct{})
	go func() {
		h.Leave(c)
		assert.False(t, h.Join(&Client{ID: "late", Stream: "default", Send: make(chan []byte, 1)}))
		close(left)
	}()
	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatal("Join/Leave blocked on a stopped hub")
	}
}
