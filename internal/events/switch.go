package events

// SwitchEvent is emitted by the switch decoder (C4) on every debounced
// transition, and once at startup with the line's initial stable level.
type SwitchEvent struct {
	IsClosed  bool
	Timestamp int64 // ms
}
