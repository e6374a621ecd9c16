package ledcontroller

import (
	"sync"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/color"
)

// Mailbox is the single-slot overwrite handoff from the renderer to the
// downstream LED wire driver (spec §5, §6): "latest wins", never a FIFO,
// never a mixed frame.
type Mailbox struct {
	mu   sync.Mutex
	buf  *color.Buffer
	has  bool
}

// Publish overwrites the mailbox's contents with buf. buf must not be
// mutated by the caller afterwards; Renderer always publishes a Clone.
func (m *Mailbox) Publish(buf *color.Buffer) {
	m.mu.Lock()
	m.buf = buf
	m.has = true
	m.mu.Unlock()
}

// Take returns the most recently published buffer and whether one was
// ever published. It does not clear the slot: repeated calls with no
// intervening Publish return the same frame, matching "latest wins"
// rather than a consume-once queue.
func (m *Mailbox) Take() (*color.Buffer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf, m.has
}
