// Package halgpio defines the digital input pin contract the four input
// decoders (button, encoder, touch enable line, switch) are built against.
//
// The concrete pin — bcm283x register banging, a gpiocdev line, a test
// double — is an external collaborator; this package only pins down the
// logical functionality the core demands of it, mirroring the split
// periph.io draws between conn/gpio and host/*.
package halgpio

import (
	"fmt"
	"time"
)

// Level is the level of a pin: Low or High.
type Level bool

const (
	// Low represents 0v.
	Low Level = false
	// High represents Vin.
	High Level = true
)

func (l Level) String() string {
	if l == Low {
		return "Low"
	}
	return "High"
}

// Pull specifies the internal pull-up or pull-down for a pin set as input.
type Pull uint8

// Acceptable pull values.
const (
	Float        Pull = 0
	Down         Pull = 1
	Up           Pull = 2
	PullNoChange Pull = 3
)

const pullName = "FloatDownUpPullNoChange"

var pullIndex = [...]uint8{0, 5, 9, 11, 23}

func (i Pull) String() string {
	if i >= Pull(len(pullIndex)-1) {
		return fmt.Sprintf("Pull(%d)", i)
	}
	return pullName[pullIndex[i]:pullIndex[i+1]]
}

// Edge specifies if and how a pin reports transitions to WaitForEdge.
type Edge uint8

// Acceptable edge detection values.
const (
	NoEdge  Edge = 0
	Rising  Edge = 1
	Falling Edge = 2
	Both    Edge = 3
)

const edgeName = "NoEdgeRisingFallingBoth"

var edgeIndex = [...]uint8{0, 6, 12, 19, 23}

func (i Edge) String() string {
	if i >= Edge(len(edgeIndex)-1) {
		return fmt.Sprintf("Edge(%d)", i)
	}
	return edgeName[edgeIndex[i]:edgeIndex[i+1]]
}

// PinIn is a digital input pin.
//
// Decoders call In() once when their Run starts, then Read() and
// WaitForEdge() repeatedly. The encoder decoder Reads its pins from one
// goroutine while a helper goroutine blocks in WaitForEdge on the same
// pins, so pins handed to it must allow that.
type PinIn interface {
	fmt.Stringer
	// In configures the pin as an input with the given pull resistor and
	// edge-detection mode.
	In(pull Pull, edge Edge) error
	// Read returns the current pin level.
	Read() Level
	// WaitForEdge blocks until an edge matching the mode passed to In()
	// occurs, or timeout elapses. A negative timeout waits forever. It
	// returns true if an edge was observed, false on timeout.
	WaitForEdge(timeout time.Duration) bool
}

// Invalid is a PinIn that is never ready and never edges, used as a safe
// zero value when a decoder is constructed without a real line wired up.
var Invalid PinIn = invalidPin{}

type invalidPin struct{}

func (invalidPin) String() string                        { return "INVALID" }
func (invalidPin) In(Pull, Edge) error                    { return fmt.Errorf("halgpio: no pin wired") }
func (invalidPin) Read() Level                            { return Low }
func (invalidPin) WaitForEdge(timeout time.Duration) bool { return false }
