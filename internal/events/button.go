package events

import "fmt"

// ButtonEventKind enumerates the outcomes the button decoder (C1) can emit.
type ButtonEventKind uint8

const (
	ButtonSingle ButtonEventKind = iota
	ButtonDouble
	ButtonLong
	ButtonVeryLong
	ButtonTimeout
	ButtonError
)

const buttonEventKindName = "SingleDoubleLongVeryLongTimeoutError"

var buttonEventKindIndex = [...]uint8{0, 6, 12, 16, 24, 31, 36}

func (k ButtonEventKind) String() string {
	if k >= ButtonEventKind(len(buttonEventKindIndex)-1) {
		return fmt.Sprintf("ButtonEventKind(%d)", k)
	}
	return buttonEventKindName[buttonEventKindIndex[k]:buttonEventKindIndex[k+1]]
}

// ButtonEvent is emitted by the button decoder onto its output channel.
type ButtonEvent struct {
	Kind      ButtonEventKind
	Timestamp int64 // ms
}
