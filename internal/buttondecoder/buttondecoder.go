// Package buttondecoder implements the debounced multi-click push button
// state machine (C1): single/double/long/very-long/timeout/error.
//
// It follows the same interrupt-then-poll discipline periph.io's device
// drivers use against a gpio.PinIn: block on WaitForEdge while idle, then
// poll the line at a short fixed interval while a gesture is in progress.
package buttondecoder

import (
	"context"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/halgpio"
)

// Config holds the decoder's debounce and gesture-timing thresholds.
//
// Zero value is not usable; use DefaultConfig.
type Config struct {
	DebouncePress   time.Duration
	DebounceRelease time.Duration
	DoubleClick     time.Duration
	Long            time.Duration
	VeryLong        time.Duration
	Timeout         time.Duration // if zero, computed as 2 * VeryLong
	PollInterval    time.Duration // if zero, defaults to 10ms
	ActiveHigh      bool          // pin reads High when pressed
}

// DefaultConfig returns the timing constants from spec §6.
func DefaultConfig() Config {
	veryLong := 3000 * time.Millisecond
	return Config{
		DebouncePress:   50 * time.Millisecond,
		DebounceRelease: 30 * time.Millisecond,
		DoubleClick:     180 * time.Millisecond,
		Long:            1000 * time.Millisecond,
		VeryLong:        veryLong,
		Timeout:         2 * veryLong,
		PollInterval:    10 * time.Millisecond,
		ActiveHigh:      true,
	}
}

type state uint8

const (
	stateWaitPress state = iota
	stateDebouncePress
	stateWaitRelease
	stateDebounceRelease
	stateWaitForDouble
	stateTimeoutWaitRelease
)

// Decoder drives one button line's state machine to completion, emitting
// ButtonEvents to out. It owns no channel; the caller provides one sized to
// its desired backpressure tolerance.
type Decoder struct {
	Config
	Pin halgpio.PinIn

	// Now and Sleep are overridable for tests; both default to the real
	// wall clock when left nil by NewDecoder.
	Now   func() time.Time
	Sleep func(time.Duration)
}

// NewDecoder returns a Decoder over pin using cfg, wired to the real clock.
func NewDecoder(pin halgpio.PinIn, cfg Config) *Decoder {
	return &Decoder{
		Config: cfg,
		Pin:    pin,
		Now:    time.Now,
		Sleep:  time.Sleep,
	}
}

func (d *Decoder) pressed() bool {
	l := d.Pin.Read()
	if d.ActiveHigh {
		return l == halgpio.High
	}
	return l == halgpio.Low
}

func (d *Decoder) millis(t time.Time) int64 {
	return t.UnixMilli()
}

func (d *Decoder) emit(ctx context.Context, out chan<- events.ButtonEvent, kind events.ButtonEventKind) {
	ev := events.ButtonEvent{Kind: kind, Timestamp: d.millis(d.Now())}
	select {
	case out <- ev:
	case <-ctx.Done():
	default:
		// Bounded channel full: drop and move on, per §4.1 and §7.
	}
}

// Run drives the decoder until ctx is cancelled.
//
// On entry it configures the pin for edge-triggered input; callers must not
// also call Pin.In() themselves.
func (d *Decoder) Run(ctx context.Context, out chan<- events.ButtonEvent) error {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Sleep == nil {
		d.Sleep = time.Sleep
	}
	poll := d.PollInterval
	if poll <= 0 {
		poll = 10 * time.Millisecond
	}
	if d.Timeout <= 0 {
		d.Timeout = 2 * d.VeryLong
	}
	if err := d.Pin.In(halgpio.Up, halgpio.Both); err != nil {
		return err
	}

	st := stateWaitPress
	var t0 time.Time
	firstClick := false

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		switch st {
		case stateWaitPress:
			if !d.Pin.WaitForEdge(-1) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !d.pressed() {
				continue
			}
			t0 = d.Now()
			st = stateDebouncePress

		case stateDebouncePress:
			d.Sleep(poll)
			if d.Now().Sub(t0) >= d.DebouncePress {
				st = stateWaitRelease
			}

		case stateWaitRelease:
			d.Sleep(poll)
			if !d.pressed() {
				age := d.Now().Sub(t0)
				switch {
				case age > d.VeryLong:
					d.emit(ctx, out, events.ButtonVeryLong)
					st = stateWaitPress
				case age > d.Long:
					d.emit(ctx, out, events.ButtonLong)
					st = stateWaitPress
				default:
					st = stateDebounceRelease
				}
			} else if d.Now().Sub(t0) > d.Timeout {
				st = stateTimeoutWaitRelease
			}

		case stateDebounceRelease:
			d.Sleep(d.DebounceRelease)
			st = stateWaitForDouble
			t0 = d.Now()

		case stateWaitForDouble:
			d.Sleep(poll)
			if d.pressed() {
				firstClick = true
				t0 = d.Now()
				st = stateDebouncePress
				continue
			}
			if d.Now().Sub(t0) >= d.DoubleClick {
				if firstClick {
					d.emit(ctx, out, events.ButtonDouble)
				} else {
					d.emit(ctx, out, events.ButtonSingle)
				}
				firstClick = false
				st = stateWaitPress
			}

		case stateTimeoutWaitRelease:
			d.Sleep(poll)
			if !d.pressed() {
				d.Sleep(d.DebounceRelease)
				d.emit(ctx, out, events.ButtonTimeout)
				st = stateWaitPress
			} else if d.Now().Sub(t0) > 2*d.Timeout {
				d.emit(ctx, out, events.ButtonError)
				st = stateWaitPress
			}
		}
	}
}
