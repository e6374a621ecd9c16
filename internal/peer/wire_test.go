package peer

import (
	"testing"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	cmd := events.LedCommand{
		Kind:       events.CmdSetEffectParam,
		Timestamp:  1_700_000_123_456,
		Value:      -1234,
		ParamIndex: 7,
	}
	wire := Marshal(cmd)
	if len(wire) != WireSize {
		t.Fatalf("got %d bytes, want %d", len(wire), WireSize)
	}
	got, err := Unmarshal(wire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != cmd {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, cmd)
	}
}

func TestUnmarshalRejectsWrongLength(t *testing.T) {
	_, err := Unmarshal(make([]byte, WireSize-1))
	if err == nil {
		t.Fatal("expected an error for a short payload")
	}
	_, err = Unmarshal(make([]byte, WireSize+1))
	if err == nil {
		t.Fatal("expected an error for an oversized payload")
	}
}

func TestMarshalTagByteMatchesKind(t *testing.T) {
	wire := Marshal(events.LedCommand{Kind: events.CmdFeedbackLimit})
	if wire[0] != byte(events.CmdFeedbackLimit) {
		t.Fatalf("got tag byte %d, want %d", wire[0], byte(events.CmdFeedbackLimit))
	}
}
