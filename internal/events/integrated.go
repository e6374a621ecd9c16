package events

import "fmt"

// Source identifies which input decoder produced an IntegratedEvent.
type Source uint8

const (
	SourceButton Source = iota
	SourceEncoder
	SourceTouch
	SourceSwitch
	SourcePeer
)

func (s Source) String() string {
	switch s {
	case SourceButton:
		return "Button"
	case SourceEncoder:
		return "Encoder"
	case SourceTouch:
		return "Touch"
	case SourceSwitch:
		return "Switch"
	case SourcePeer:
		return "Peer"
	default:
		return fmt.Sprintf("Source(%d)", s)
	}
}

// PeerEvent wraps a command received from the peer link (C9, slave side)
// before it is folded into the event stream.
type PeerEvent struct {
	Command   LedCommand
	Timestamp int64 // ms, local receipt time
}

// IntegratedEvent is the multiplexer's (C5) single output type: one of
// Button/Encoder/Touch/Switch/Peer, stamped with the receive timestamp.
// Only the field named by Source is meaningful; the others are zero.
type IntegratedEvent struct {
	Source    Source
	Timestamp int64 // ms, multiplexer receive time

	Button  ButtonEvent
	Encoder EncoderEvent
	Touch   TouchEvent
	Switch  SwitchEvent
	Peer    PeerEvent
}
