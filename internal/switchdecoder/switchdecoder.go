// Package switchdecoder implements the mechanical mode switch decoder (C4):
// on any edge, debounce once and report the settled open/closed state.
package switchdecoder

import (
	"context"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/halgpio"
)

// Config holds the switch's debounce duration and polarity.
type Config struct {
	Debounce  time.Duration
	ActiveLow bool // IsClosed == (level == Low) when true
}

// DefaultConfig returns the shared debounce constant from spec §6.
func DefaultConfig() Config {
	return Config{Debounce: 30 * time.Millisecond, ActiveLow: false}
}

// Decoder drives one switch line, emitting a SwitchEvent at startup with
// the line's initial stable level and one more on every debounced edge.
type Decoder struct {
	Config
	Pin halgpio.PinIn

	Now func() time.Time
}

// NewDecoder returns a Decoder over pin using cfg, wired to the real clock.
func NewDecoder(pin halgpio.PinIn, cfg Config) *Decoder {
	return &Decoder{Config: cfg, Pin: pin, Now: time.Now}
}

func (d *Decoder) isClosed() bool {
	l := d.Pin.Read()
	if d.ActiveLow {
		return l == halgpio.Low
	}
	return l == halgpio.High
}

func (d *Decoder) emit(ctx context.Context, out chan<- events.SwitchEvent) {
	ev := events.SwitchEvent{IsClosed: d.isClosed(), Timestamp: d.Now().UnixMilli()}
	select {
	case out <- ev:
	case <-ctx.Done():
	default:
	}
}

// Run drives the decoder until ctx is cancelled, publishing the initial
// level before blocking for edges.
func (d *Decoder) Run(ctx context.Context, out chan<- events.SwitchEvent) error {
	if d.Now == nil {
		d.Now = time.Now
	}
	if err := d.Pin.In(halgpio.Up, halgpio.Both); err != nil {
		return err
	}
	d.emit(ctx, out)

	for {
		if !d.Pin.WaitForEdge(-1) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		time.Sleep(d.Debounce)
		d.emit(ctx, out)
	}
}
