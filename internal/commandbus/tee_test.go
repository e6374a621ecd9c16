package commandbus

import (
	"context"
	"testing"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

func TestTeeFansOutToEveryConsumer(t *testing.T) {
	in := make(chan events.LedCommand, 1)
	out1 := make(chan events.LedCommand, 1)
	out2 := make(chan events.LedCommand, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Tee(ctx, in, out1, out2)

	cmd := events.LedCommand{Kind: events.CmdTurnOn}
	in <- cmd

	for i, ch := range []chan events.LedCommand{out1, out2} {
		select {
		case got := <-ch:
			if got != cmd {
				t.Fatalf("consumer %d: got %+v, want %+v", i, got, cmd)
			}
		case <-time.After(time.Second):
			t.Fatalf("consumer %d: timed out waiting for the fanned-out command", i)
		}
	}
}

func TestTeeBlocksOnSlowConsumer(t *testing.T) {
	in := make(chan events.LedCommand, 2)
	fast := make(chan events.LedCommand, 2)
	slow := make(chan events.LedCommand) // unbuffered, never read in this test

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Tee(ctx, in, fast, slow)

	in <- events.LedCommand{Kind: events.CmdTurnOn}
	in <- events.LedCommand{Kind: events.CmdTurnOff}

	select {
	case <-fast:
	case <-time.After(time.Second):
		t.Fatal("expected the first command to reach the fast consumer")
	}

	// The tee should now be stuck forwarding the same command to slow,
	// so a second command must not have reached fast yet.
	select {
	case got := <-fast:
		t.Fatalf("fast consumer should not get command 2 while slow is stuck, got %+v", got)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestTeeStopsOnContextCancel(t *testing.T) {
	in := make(chan events.LedCommand)
	out := make(chan events.LedCommand)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Tee(ctx, in, out) }()

	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected Tee to return ctx.Err() after cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("Tee did not return after context cancellation")
	}
}
