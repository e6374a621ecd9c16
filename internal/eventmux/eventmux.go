// Package eventmux implements the event multiplexer (C5): a single
// consumer that fans in the four input decoders plus the peer receiver
// onto one ordered, timestamped IntegratedEvent stream.
//
// There is no coalescing and no drop policy beyond backpressure: a full
// output channel simply blocks the select, in source order, exactly as
// spec §4.5 and §5 require.
package eventmux

import (
	"context"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

// Inputs bundles the five channels the multiplexer selects over. A nil
// channel is valid and is simply never selected (useful on a master, which
// receives no peer events, or in tests exercising a subset of sources).
type Inputs struct {
	Button  <-chan events.ButtonEvent
	Encoder <-chan events.EncoderEvent
	Touch   <-chan events.TouchEvent
	Switch  <-chan events.SwitchEvent
	Peer    <-chan events.PeerEvent
}

// Now is overridable for tests.
var Now = time.Now

// Run selects over in's five channels until ctx is cancelled, stamping
// each received event with the current time and forwarding it to out.
// The send to out blocks if out is full, propagating backpressure to
// whichever source produced the event.
func Run(ctx context.Context, in Inputs, out chan<- events.IntegratedEvent) error {
	for {
		var ev events.IntegratedEvent
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-in.Button:
			if !ok {
				in.Button = nil
				continue
			}
			ev = events.IntegratedEvent{Source: events.SourceButton, Button: b}
		case e, ok := <-in.Encoder:
			if !ok {
				in.Encoder = nil
				continue
			}
			ev = events.IntegratedEvent{Source: events.SourceEncoder, Encoder: e}
		case t, ok := <-in.Touch:
			if !ok {
				in.Touch = nil
				continue
			}
			ev = events.IntegratedEvent{Source: events.SourceTouch, Touch: t}
		case s, ok := <-in.Switch:
			if !ok {
				in.Switch = nil
				continue
			}
			ev = events.IntegratedEvent{Source: events.SourceSwitch, Switch: s}
		case p, ok := <-in.Peer:
			if !ok {
				in.Peer = nil
				continue
			}
			ev = events.IntegratedEvent{Source: events.SourcePeer, Peer: p}
		}
		ev.Timestamp = Now().UnixMilli()
		select {
		case out <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
