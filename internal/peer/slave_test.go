package peer

import (
	"testing"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

func TestHandlePayloadDecodesAndDeliversEvent(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	now := func() time.Time { return fixed }

	cmd := events.LedCommand{Kind: events.CmdSetBrightness, Value: 100}
	out := make(chan events.PeerEvent, 1)

	if err := HandlePayload(Marshal(cmd), now, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case ev := <-out:
		if ev.Command != cmd {
			t.Fatalf("got %+v, want %+v", ev.Command, cmd)
		}
		if ev.Timestamp != fixed.UnixMilli() {
			t.Fatalf("got timestamp %d, want %d", ev.Timestamp, fixed.UnixMilli())
		}
	default:
		t.Fatal("expected a delivered PeerEvent")
	}
}

func TestHandlePayloadRejectsInvalidLength(t *testing.T) {
	out := make(chan events.PeerEvent, 1)
	err := HandlePayload([]byte{1, 2, 3}, time.Now, out)
	if err == nil {
		t.Fatal("expected an error for a malformed payload")
	}
	select {
	case ev := <-out:
		t.Fatalf("expected no delivered event, got %+v", ev)
	default:
	}
}

func TestHandlePayloadTimesOutOnFullChannel(t *testing.T) {
	out := make(chan events.PeerEvent) // unbuffered, nobody reading
	cmd := events.LedCommand{Kind: events.CmdTurnOn}

	start := time.Now()
	err := HandlePayload(Marshal(cmd), time.Now, out)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected a timeout error when the ingress channel is never drained")
	}
	if elapsed < IngressTimeout {
		t.Fatalf("returned too early: %v before IngressTimeout %v", elapsed, IngressTimeout)
	}
}
