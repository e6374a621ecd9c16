// Package touchdecoder implements the capacitive touch pad decoder (C3): a
// software baseline/threshold detector over a raw capacitance reading, a
// press/hold state machine, and periodic baseline recalibration.
//
// The decoder's register-polling cadence and its defensive wrapf-style
// error wrapping mirror periph.io's devices/cap1xxx driver, the closest
// analogue in the example pack to a capacitive touch front-end, even
// though cap1xxx's threshold logic runs on-chip and this one runs the
// threshold math in software against a raw reading.
package touchdecoder

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

// Sensor is the capacitance front-end the decoder polls. A real
// implementation sits on halbus.Bus or a dedicated ADC line; it is an
// external collaborator per spec §1.
type Sensor interface {
	Read() (uint16, error)
}

// Config holds debounce, hold and recalibration tuning.
type Config struct {
	DebouncePress     time.Duration
	DebounceRelease   time.Duration
	HoldTime          time.Duration
	EnableHoldRepeat  bool
	HoldRepeat        time.Duration
	ThresholdPercent  int           // B - B*ThresholdPercent/100 == T
	BaselineSamples   int
	RecalInterval     time.Duration
	PollInterval      time.Duration
}

// DefaultConfig returns reasonable defaults; spec §6 does not pin these
// down numerically beyond the shared debounce constants.
func DefaultConfig() Config {
	return Config{
		DebouncePress:    50 * time.Millisecond,
		DebounceRelease:  30 * time.Millisecond,
		HoldTime:         600 * time.Millisecond,
		EnableHoldRepeat: true,
		HoldRepeat:       300 * time.Millisecond,
		ThresholdPercent: 10,
		BaselineSamples:  16,
		RecalInterval:    30 * time.Second,
		PollInterval:     10 * time.Millisecond,
	}
}

type state uint8

const (
	stateWaitPress state = iota
	stateDebouncePress
	stateWaitReleaseOrHold
	stateDebounceRelease
)

// Decoder drives the touch sensor's press/hold FSM and its own baseline
// recalibration, emitting TouchEvents to out.
type Decoder struct {
	Config
	Sensor Sensor

	Now   func() time.Time
	Sleep func(time.Duration)

	mu       sync.Mutex // serializes sensor reads against recalibration
	baseline uint16

	// gestureActive is set by Run whenever the press/hold FSM is outside
	// stateWaitPress and cleared on return to it. calibrate consults it
	// so a periodic recalibration tick never resamples the baseline
	// mid-gesture (spec §8: "Touch recalibration during an active press
	// does not alter the pressed state mid-press"), which a bare
	// TryLock on the per-read mutex cannot guarantee — that only
	// prevents overlapping a single Sensor.Read call, not the whole
	// multi-poll span of a press.
	gestureActive atomic.Bool
}

// NewDecoder returns a Decoder over sensor using cfg, wired to the real
// clock.
func NewDecoder(sensor Sensor, cfg Config) *Decoder {
	return &Decoder{Config: cfg, Sensor: sensor, Now: time.Now, Sleep: time.Sleep}
}

func wrapf(format string, a ...interface{}) error {
	return fmt.Errorf("touchdecoder: "+format, a...)
}

func (d *Decoder) millis() int64 {
	return d.Now().UnixMilli()
}

// calibrate (re)establishes the baseline from an average of BaselineSamples
// readings. Skips the cycle, rather than blocking or running, if a
// press/hold gesture is currently active or a read is already in flight,
// per spec §4.3 and §7, and keeps the old baseline if the new samples
// themselves cross the threshold against it.
func (d *Decoder) calibrate() error {
	if d.gestureActive.Load() {
		return nil // active gesture: skip this cycle
	}
	if !d.mu.TryLock() {
		return nil // recalibration race: skip this cycle
	}
	defer d.mu.Unlock()
	n := d.BaselineSamples
	if n <= 0 {
		n = 1
	}
	var sum uint32
	for i := 0; i < n; i++ {
		v, err := d.Sensor.Read()
		if err != nil {
			return wrapf("baseline read failed: %v", err)
		}
		sum += uint32(v)
	}
	d.baseline = uint16(sum / uint32(n))
	return nil
}

func (d *Decoder) threshold() uint16 {
	return d.baseline - uint16(uint32(d.baseline)*uint32(d.ThresholdPercent)/100)
}

// pressed reads the sensor once and reports whether it crosses threshold.
func (d *Decoder) pressed() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	x, err := d.Sensor.Read()
	if err != nil {
		return false, wrapf("read failed: %v", err)
	}
	t := d.threshold()
	return d.baseline > x && d.baseline-x > t, nil
}

func (d *Decoder) emit(ctx context.Context, out chan<- events.TouchEvent, kind events.TouchEventKind) {
	ev := events.TouchEvent{Kind: kind, Timestamp: d.millis()}
	select {
	case out <- ev:
	case <-ctx.Done():
	default:
	}
}

// Run drives the decoder until ctx is cancelled. It establishes the
// initial baseline synchronously before entering the poll loop, then
// starts the periodic recalibration task.
func (d *Decoder) Run(ctx context.Context, out chan<- events.TouchEvent) error {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Sleep == nil {
		d.Sleep = time.Sleep
	}
	if err := d.calibrate(); err != nil {
		return err
	}

	go d.recalibrateLoop(ctx)

	poll := d.PollInterval
	if poll <= 0 {
		poll = 10 * time.Millisecond
	}

	st := stateWaitPress
	var t0 time.Time
	holdEmitted := false
	var lastHold time.Time

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		d.Sleep(poll)
		isPressed, err := d.pressed()
		if err != nil {
			continue // transient I/O: log at call site, keep polling
		}

		switch st {
		case stateWaitPress:
			if isPressed {
				t0 = d.Now()
				st = stateDebouncePress
			}

		case stateDebouncePress:
			if d.Now().Sub(t0) > d.DebouncePress {
				if isPressed {
					st = stateWaitReleaseOrHold
					holdEmitted = false
				} else {
					st = stateWaitPress
				}
			}

		case stateWaitReleaseOrHold:
			duration := d.Now().Sub(t0)
			if !isPressed && duration < d.HoldTime {
				d.emit(ctx, out, events.TouchPress)
				t0 = d.Now()
				st = stateDebounceRelease
			} else if isPressed && duration >= d.HoldTime && !holdEmitted {
				d.emit(ctx, out, events.TouchHold)
				holdEmitted = true
				lastHold = d.Now()
			} else if isPressed && d.EnableHoldRepeat && holdEmitted && d.Now().Sub(lastHold) >= d.HoldRepeat {
				d.emit(ctx, out, events.TouchHold)
				lastHold = d.Now()
			} else if !isPressed && duration >= d.HoldTime {
				// Released after a hold: treat as a plain release, no extra event.
				t0 = d.Now()
				st = stateDebounceRelease
			}

		case stateDebounceRelease:
			if d.Now().Sub(t0) > d.DebounceRelease {
				st = stateWaitPress
			}
		}

		d.gestureActive.Store(st != stateWaitPress)
	}
}

// recalibrateLoop resamples the baseline at RecalInterval until ctx is
// cancelled.
func (d *Decoder) recalibrateLoop(ctx context.Context) {
	interval := d.RecalInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = d.calibrate()
		}
	}
}
