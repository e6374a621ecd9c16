package peer

import (
	"context"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

// Transmitter is the single-address broadcast radio the master sends
// over; it is an external collaborator per spec §1.
type Transmitter interface {
	Send(payload []byte) error
}

// Master is the master-side half of C9: it reads every locally-produced
// LedCommand (via a tee of the command channel; see internal/commandbus)
// and transmits it while egress is enabled. Delivery is best-effort —
// failed sends are dropped, not retried, per spec §4.9.
type Master struct {
	Transmitter Transmitter
	// EgressEnabled reports the current egress-gate state, toggled by the
	// interaction FSM's switch handling. A nil func means always enabled.
	EgressEnabled func() bool
}

// Run transmits every command received on in until ctx is cancelled or in
// is closed.
func (m *Master) Run(ctx context.Context, in <-chan events.LedCommand) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd, ok := <-in:
			if !ok {
				return nil
			}
			if m.EgressEnabled != nil && !m.EgressEnabled() {
				continue
			}
			_ = m.Transmitter.Send(Marshal(cmd))
		}
	}
}
