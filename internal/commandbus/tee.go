// Package commandbus fans the interaction FSM's single LedCommand output
// channel out to every local consumer. A Go channel has exactly one
// consumer by construction, but the LED controller (C8) and, on a master,
// the peer replicator (C9) both need every command — so mirroring needs
// an explicit tee.
package commandbus

import (
	"context"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

// Tee reads every command from in and forwards a copy to each of outs, in
// order, blocking on each send in turn. A slow or stuck consumer
// propagates backpressure back through in to the FSM, consistent with the
// rest of the pipeline's no-drop, backpressure-only discipline (spec
// §4.5).
func Tee(ctx context.Context, in <-chan events.LedCommand, outs ...chan<- events.LedCommand) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-in:
			if !ok {
				return nil
			}
			for _, out := range outs {
				select {
				case out <- cmd:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}
