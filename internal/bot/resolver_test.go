package bot

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverKeepsLaneOrder(t *testing.T) {
	r := NewResolver()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 100; i++ {
		i := i
		r.Do("lane", func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	r.Close()

	require.Len(t, order, 100)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestResolverLanesRunConcurrently(t *testing.T) {
	r := NewResolver()
	defer r.Close()

	// A blocked lane must not stall another lane.
	release := make(chan struct{})
	r.Do("slow", func() { <-release })

	done := make(chan struct{})
	r.Do("fast", func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("fast lane was stalled by the slow lane")
	}
	close(release)
}

func TestResolverDoNeverBlocksOnBusyLane(t *testing.T) {
	r := NewResolver()
	r.idle = time.Nanosecond

	// Stall the lane's worker, then pile up a backlog far beyond any
	// in-flight capacity. Every Do must return immediately.
	release := make(chan struct{})
	r.Do("lane", func() { <-release })

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 64; i++ {
			i := i
			r.Do("lane", func() {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
			})
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Do blocked on a busy lane")
	}

	close(release)
	r.Close()

	require.Len(t, order, 64)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestResolverCloseDrains(t *testing.T) {
	r := NewResolver()

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 10; i++ {
		r.Do("lane", func() {
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}
	r.Close()
	assert.Equal(t, 10, ran)
}

func TestResolverDropsWorkAfterClose(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	r := NewResolver()
	r.Close()

	r.Do("react:board", func() {
		t.Error("action ran after close")
	})
	r.Close()

	// The drop is logged so a finalize lost during shutdown shows up.
	assert.Contains(t, buf.String(), "react:board")
	assert.Contains(t, buf.String(), "action dropped")
}

func TestResolverReapsIdleLanes(t *testing.T) {
	r := NewResolver()
	r.idle = 10 * time.Millisecond
	defer r.Close()

	done := make(chan struct{})
	r.Do("lane", func() { close(done) })
	<-done

	assert.Eventually(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return len(r.lanes) == 0
	}, 5*time.Second, 10*time.Millisecond)

	// A reaped lane comes back on the next action.
	again := make(chan struct{})
	r.Do("lane", func() { close(again) })
	select {
	case <-again:
	case <-time.After(5 * time.Second):
		t.Fatal("lane did not restart after being reaped")
	}
}
