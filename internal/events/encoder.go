package events

// EncoderEvent is emitted by the encoder decoder (C2) each time it resolves
// one or more quadrature steps. Steps is signed: positive is clockwise,
// negative counter-clockwise, and its magnitude already reflects any
// acceleration multiplier applied at emission time.
type EncoderEvent struct {
	Steps     int32
	Timestamp int64 // ms
}
