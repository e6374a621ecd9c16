// Package halbus defines the minimal register-oriented bus interface the
// touch decoder uses to talk to its capacitance front-end.
//
// The concrete bus (I²C, SPI, or a bit-banged equivalent) is an external
// collaborator: this package only pins down the shape the core expects of
// it, the same way periph.io pins down conn.Conn for its device drivers.
package halbus

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Bus is a register-addressable bus connection to a single device.
//
// Tx writes w, then reads len(r) bytes into r, as one atomic transaction.
type Bus interface {
	fmt.Stringer
	Tx(w, r []byte) error
}

// RegDev is a device exposing 8-bit registers on a Bus.
//
// It mirrors periph.io's mmr.Dev8 adapter: callers address registers by
// number instead of hand-rolling the read/write framing each time.
type RegDev struct {
	Bus   Bus
	Order binary.ByteOrder
}

// ReadUint8 reads an 8-bit register.
func (d *RegDev) ReadUint8(reg uint8) (uint8, error) {
	var v [1]byte
	err := d.Bus.Tx([]byte{reg}, v[:])
	return v[0], err
}

// ReadUint16 reads a 16-bit register using d.Order.
func (d *RegDev) ReadUint16(reg uint8) (uint16, error) {
	if d.Order == nil {
		return 0, errors.New("halbus: byte order not set")
	}
	var v [2]byte
	if err := d.Bus.Tx([]byte{reg}, v[:]); err != nil {
		return 0, err
	}
	return d.Order.Uint16(v[:]), nil
}

// WriteUint8 writes an 8-bit register.
func (d *RegDev) WriteUint8(reg, v uint8) error {
	return d.Bus.Tx([]byte{reg, v}, nil)
}
