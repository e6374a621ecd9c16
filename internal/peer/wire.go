// Package peer implements the peer replicator (C9): master-side egress
// gating plus wire serialization, and slave-side ingress validation.
package peer

import (
	"encoding/binary"
	"fmt"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

// WireSize is sizeof(LedCommand) on the wire: the fixed 16-byte layout
// from spec §6 (tag byte, alignment padding, 8-byte timestamp, 2-byte
// value, 1-byte param index, trailing padding).
const WireSize = 16

// Marshal encodes cmd into the fixed wire layout.
func Marshal(cmd events.LedCommand) []byte {
	buf := make([]byte, WireSize)
	buf[0] = byte(cmd.Kind)
	binary.LittleEndian.PutUint64(buf[4:12], uint64(cmd.Timestamp))
	binary.LittleEndian.PutUint16(buf[12:14], uint16(cmd.Value))
	buf[14] = cmd.ParamIndex
	return buf
}

// Unmarshal decodes a wire payload into a LedCommand. Any length other
// than WireSize is rejected, per spec §6 and the "Invalid peer payload"
// row of §7's error taxonomy.
func Unmarshal(payload []byte) (events.LedCommand, error) {
	if len(payload) != WireSize {
		return events.LedCommand{}, fmt.Errorf("peer: invalid payload length %d, want %d", len(payload), WireSize)
	}
	return events.LedCommand{
		Kind:       events.CommandKind(payload[0]),
		Timestamp:  int64(binary.LittleEndian.Uint64(payload[4:12])),
		Value:      int16(binary.LittleEndian.Uint16(payload[12:14])),
		ParamIndex: payload[14],
	}, nil
}
