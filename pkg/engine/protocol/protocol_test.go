package protocol

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryoiwata/reversi/pkg/engine"
)

func TestDriverOpensThenMovesAsDark(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := engine.New(ctx, "test-engine", "tester")
	in := make(chan string, 10)

	_, out := NewDriver(ctx, e, "client-1", in)

	open := mustReceive(t, out, 2*time.Second)
	assert.Equal(t, "OPEN client-1", open)

	in <- "START BLACK opponent-1 60000"

	move := mustReceive(t, out, 30*time.Second)
	assert.True(t, strings.HasPrefix(move, "MOVE "))
}

func TestDriverRelaysOpponentMoveBeforeReplying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := engine.New(ctx, "test-engine", "tester")
	in := make(chan string, 10)

	_, out := NewDriver(ctx, e, "client-1", in)
	mustReceive(t, out, 2*time.Second) // OPEN

	in <- "START WHITE opponent-1 60000"
	in <- "MOVE D3"

	move := mustReceive(t, out, 30*time.Second)
	assert.True(t, strings.HasPrefix(move, "MOVE "))
}

func mustReceive(t *testing.T, out <-chan string, timeout time.Duration) string {
	t.Helper()
	select {
	case line, ok := <-out:
		require.True(t, ok, "channel closed unexpectedly")
		return line
	case <-time.After(timeout):
		t.Fatal("timed out waiting for driver output")
		return ""
	}
}
