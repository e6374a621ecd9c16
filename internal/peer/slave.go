package peer

import (
	"fmt"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

// IngressTimeout bounds how long HandlePayload blocks trying to push onto
// a full event-multiplexer channel, matching spec §5's "bounded channel
// send with short timeout" for the radio-driven ingress path.
const IngressTimeout = 20 * time.Millisecond

// HandlePayload is the slave's receive callback: it validates payload
// length, decodes it, and pushes a PeerEvent to the event multiplexer.
// It is invoked directly from the radio driver's callback context (an
// external collaborator per spec §1), so it never blocks indefinitely.
func HandlePayload(payload []byte, now func() time.Time, out chan<- events.PeerEvent) error {
	cmd, err := Unmarshal(payload)
	if err != nil {
		return fmt.Errorf("peer: rejected payload: %w", err)
	}
	ev := events.PeerEvent{Command: cmd, Timestamp: now().UnixMilli()}
	timer := time.NewTimer(IngressTimeout)
	defer timer.Stop()
	select {
	case out <- ev:
		return nil
	case <-timer.C:
		return fmt.Errorf("peer: ingress channel full, dropped event")
	}
}
