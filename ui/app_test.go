package ui

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yllada/save-state/state"
	"go.uber.org/goleak"
)

func TestQuitOnCancel_ParentCancelled(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	var shuttingDown atomic.Bool
	quit := make(chan struct{})

	go quitOnCancel(ctx, &shuttingDown, func() { close(quit) })
	cancel()

	select {
	case <-quit:
	case <-time.After(time.Second):
		t.Fatal("quit was not called after the context was cancelled")
	}
}

func TestQuitOnCancel_AfterShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	var shuttingDown atomic.Bool
	var called atomic.Bool
	done := make(chan struct{})

	go func() {
		defer close(done)
		quitOnCancel(ctx, &shuttingDown, func() { called.Store(true) })
	}()

	shuttingDown.Store(true)
	cancel()
	<-done

	assert.False(t, called.Load())
}

func TestStatusSummary(t *testing.T) {
	assert.Equal(t, "Save State is Running", statusSummary(state.Running))
	assert.Equal(t, "Save State is Idle", statusSummary(state.Idle))
}
