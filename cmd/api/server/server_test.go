package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithSignal_ParentCancel(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, stop := WithSignal(parent)
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context canceled before parent")
	default:
	}

	cancelParent()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled after parent cancel")
	}
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestWithSignal_StopReleasesSignalHandler(t *testing.T) {
	ctx, stop := WithSignal(context.Background())

	// Stop must be safe to call while the context is still live.
	stop()

	select {
	case <-ctx.Done():
		t.Fatal("stop must not cancel the context")
	default:
	}
}
