package events

import "fmt"

// TouchEventKind enumerates the outcomes the touch decoder (C3) can emit.
type TouchEventKind uint8

const (
	TouchPress TouchEventKind = iota
	TouchHold
)

func (k TouchEventKind) String() string {
	switch k {
	case TouchPress:
		return "Press"
	case TouchHold:
		return "Hold"
	default:
		return fmt.Sprintf("TouchEventKind(%d)", k)
	}
}

// TouchEvent is emitted by the touch decoder onto its output channel.
type TouchEvent struct {
	Kind      TouchEventKind
	Timestamp int64 // ms
}
