// Package encoderdecoder implements the quadrature rotary encoder decoder
// (C2): a table-driven micro-FSM with optional full/half-step resolution
// and time-gap based acceleration.
//
// The state tables are the standard two-bit-per-transition quadrature
// decode tables long used in embedded rotary encoder libraries; the upper
// bits of each table entry double as the direction-emission flag, exactly
// as spec §4.2 describes.
package encoderdecoder

import (
	"context"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/halgpio"
)

// Resolution selects which state table drives the decoder.
type Resolution uint8

const (
	FullStep Resolution = iota
	HalfStep
)

const (
	dirCW   = 0x10
	dirCCW  = 0x20
	dirMask = 0x30
)

// fullStepTable is the classic 7-state full-step quadrature table.
var fullStepTable = [7][4]uint8{
	{0x0, 0x2, 0x4, 0x0},
	{0x3, 0x0, 0x1, 0x0 | dirCW},
	{0x3, 0x2, 0x0, 0x0},
	{0x3, 0x2, 0x1, 0x0},
	{0x6, 0x0, 0x4, 0x0},
	{0x6, 0x5, 0x0, 0x0 | dirCCW},
	{0x6, 0x5, 0x4, 0x0},
}

// halfStepTable is the 6-state half-step quadrature table, which emits a
// step on every detent instead of every full cycle.
var halfStepTable = [6][4]uint8{
	{0x3, 0x2, 0x1, 0x0},
	{0x3 | dirCCW, 0x0, 0x1, 0x0},
	{0x3 | dirCW, 0x2, 0x0, 0x0},
	{0x3, 0x5, 0x4, 0x0},
	{0x3, 0x3, 0x4, 0x0 | dirCW},
	{0x3, 0x5, 0x3, 0x0 | dirCCW},
}

// Config holds acceleration tuning and table selection.
type Config struct {
	Resolution          Resolution
	AccelEnabled        bool
	AccelGapMs          int64
	AccelMaxMultiplier  int
	FlipDirection       bool
}

// DefaultConfig returns the acceleration constants from spec §6.
func DefaultConfig() Config {
	return Config{
		Resolution:         FullStep,
		AccelEnabled:       true,
		AccelGapMs:         50,
		AccelMaxMultiplier: 5,
	}
}

// Decoder drives one encoder's two quadrature lines to completion, emitting
// EncoderEvents to out.
type Decoder struct {
	Config
	PinA, PinB halgpio.PinIn

	Now func() time.Time

	state       uint8
	lastStepMs  int64
	haveLastStep bool
}

// NewDecoder returns a Decoder over pinA/pinB using cfg, wired to the real
// clock.
func NewDecoder(pinA, pinB halgpio.PinIn, cfg Config) *Decoder {
	return &Decoder{Config: cfg, PinA: pinA, PinB: pinB, Now: time.Now}
}

func (d *Decoder) pinState() uint8 {
	var v uint8
	if d.PinB.Read() == halgpio.High {
		v |= 0x2
	}
	if d.PinA.Read() == halgpio.High {
		v |= 0x1
	}
	return v
}

func (d *Decoder) millis() int64 {
	return d.Now().UnixMilli()
}

// step advances the FSM by one pin-state observation and returns a signed
// step count, or 0 if no direction was resolved yet.
func (d *Decoder) step() int32 {
	ps := d.pinState()
	var next uint8
	if d.Resolution == HalfStep {
		next = halfStepTable[d.state&0xf][ps]
	} else {
		next = fullStepTable[d.state&0xf][ps]
	}
	d.state = next
	dir := next & dirMask
	if dir == 0 {
		return 0
	}
	sign := int32(1)
	if dir == dirCCW {
		sign = -1
	}
	if d.FlipDirection {
		sign = -sign
	}
	return sign * int32(d.multiplier())
}

// multiplier computes the acceleration multiplier for a step emitted now,
// per spec §4.2's linear gap mapping.
func (d *Decoder) multiplier() int {
	now := d.millis()
	defer func() {
		d.lastStepMs = now
		d.haveLastStep = true
	}()
	if !d.AccelEnabled || !d.haveLastStep {
		return 1
	}
	gap := now - d.lastStepMs
	if gap >= d.AccelGapMs || gap < 0 {
		return 1
	}
	if gap < 1 {
		gap = 1
	}
	// Linearly map [1, accelGapMs] -> [1, accelMaxMultiplier+1], clamped.
	span := d.AccelGapMs - 1
	if span <= 0 {
		return 1
	}
	m := 1 + ((d.AccelGapMs-gap)*int64(d.AccelMaxMultiplier))/span
	if m < 1 {
		m = 1
	}
	if m > int64(d.AccelMaxMultiplier) {
		m = int64(d.AccelMaxMultiplier)
	}
	return int(m)
}

func (d *Decoder) emit(ctx context.Context, out chan<- events.EncoderEvent, steps int32) {
	ev := events.EncoderEvent{Steps: steps, Timestamp: d.millis()}
	select {
	case out <- ev:
	case <-ctx.Done():
	default:
	}
}

// Run drives the decoder until ctx is cancelled. It configures both lines
// as edge-triggered inputs; callers must not also call In() themselves.
func (d *Decoder) Run(ctx context.Context, out chan<- events.EncoderEvent) error {
	if d.Now == nil {
		d.Now = time.Now
	}
	if err := d.PinA.In(halgpio.Up, halgpio.Both); err != nil {
		return err
	}
	if err := d.PinB.In(halgpio.Up, halgpio.Both); err != nil {
		return err
	}

	wake := make(chan struct{}, 2)
	go pumpEdges(ctx, d.PinA, wake)
	go pumpEdges(ctx, d.PinB, wake)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
			if steps := d.step(); steps != 0 {
				d.emit(ctx, out, steps)
			}
		}
	}
}

// pumpEdges forwards every edge on pin onto wake until ctx is cancelled.
func pumpEdges(ctx context.Context, pin halgpio.PinIn, wake chan<- struct{}) {
	for ctx.Err() == nil {
		if pin.WaitForEdge(-1) {
			select {
			case wake <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}
}
