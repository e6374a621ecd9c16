package peer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

type fakeTransmitter struct {
	mu   sync.Mutex
	sent [][]byte
}

func (f *fakeTransmitter) Send(payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, append([]byte(nil), payload...))
	return nil
}

func (f *fakeTransmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestMasterTransmitsWhenEgressEnabled(t *testing.T) {
	tx := &fakeTransmitter{}
	m := &Master{Transmitter: tx, EgressEnabled: func() bool { return true }}

	in := make(chan events.LedCommand, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx, in)

	in <- events.LedCommand{Kind: events.CmdTurnOn}

	deadline := time.After(time.Second)
	for tx.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected a transmitted payload")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestMasterDropsWhenEgressDisabled(t *testing.T) {
	tx := &fakeTransmitter{}
	m := &Master{Transmitter: tx, EgressEnabled: func() bool { return false }}

	in := make(chan events.LedCommand, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx, in)

	in <- events.LedCommand{Kind: events.CmdTurnOn}
	time.Sleep(30 * time.Millisecond)

	if got := tx.count(); got != 0 {
		t.Fatalf("expected no transmission while egress disabled, got %d", got)
	}
}

func TestMasterNilEgressFuncAlwaysTransmits(t *testing.T) {
	tx := &fakeTransmitter{}
	m := &Master{Transmitter: tx}

	in := make(chan events.LedCommand, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Run(ctx, in)

	in <- events.LedCommand{Kind: events.CmdTurnOff}

	deadline := time.After(time.Second)
	for tx.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected a transmitted payload with a nil EgressEnabled func")
		case <-time.After(time.Millisecond):
		}
	}
}
