package interaction

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/ledcontroller"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/persistence"
)

// Config holds the per-mode idle timeouts and the FSM's own scheduling
// knobs, per spec §6's timing constants.
type Config struct {
	TSelect              time.Duration
	TSetup               time.Duration
	TSystem              time.Duration
	PollInterval         time.Duration
	VolatileSaveInterval time.Duration
}

// DefaultConfig returns the timing constants spec §6 pins down.
func DefaultConfig() Config {
	return Config{
		TSelect:              10 * time.Second,
		TSetup:               15 * time.Second,
		TSystem:              30 * time.Second,
		PollInterval:         100 * time.Millisecond,
		VolatileSaveInterval: 5 * time.Second,
	}
}

// FSM is C6. One instance drives one lamp unit, master or slave.
type FSM struct {
	Config
	Controller *ledcontroller.Controller
	Persist    *persistence.Persistence
	IsMaster   bool

	// Now is overridable for tests.
	Now func() time.Time

	mode          Mode
	lastEventAt   time.Time
	egressEnabled atomic.Bool
}

// EgressEnabled reports whether the master's egress gate is currently
// open. Safe to call from another goroutine, e.g. peer.Master checking it
// before every transmit.
func (f *FSM) EgressEnabled() bool {
	return f.egressEnabled.Load()
}

// New returns an FSM starting in ModeOff.
func New(ctl *ledcontroller.Controller, isMaster bool, cfg Config) *FSM {
	return &FSM{Config: cfg, Controller: ctl, IsMaster: isMaster, Now: time.Now, mode: ModeOff}
}

// Mode reports the FSM's current InteractionMode. Safe to call only from
// the goroutine running Run, or after Run has returned.
func (f *FSM) Mode() Mode {
	return f.mode
}

// Run consumes IntegratedEvents from in, driving mode transitions and
// emitting LedCommands to out, until ctx is cancelled. It blocks on in
// with a short timeout so idle-mode timeouts are serviced even when no
// event arrives, per spec §5.
func (f *FSM) Run(ctx context.Context, in <-chan events.IntegratedEvent, out chan<- events.LedCommand) error {
	if f.Now == nil {
		f.Now = time.Now
	}
	f.lastEventAt = f.Now()

	if f.VolatileSaveInterval > 0 && f.Persist != nil {
		go f.periodicVolatileSave(ctx)
	}

	poll := f.PollInterval
	if poll <= 0 {
		poll = 100 * time.Millisecond
	}
	timer := time.NewTimer(poll)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-in:
			f.handleEvent(ctx, ev, out)
			f.lastEventAt = f.Now()
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(poll)
		case <-timer.C:
			f.checkIdle(ctx, out)
			timer.Reset(poll)
		}
	}
}

func (f *FSM) periodicVolatileSave(ctx context.Context) {
	t := time.NewTicker(f.VolatileSaveInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f.saveVolatile()
		}
	}
}

func (f *FSM) emit(ctx context.Context, out chan<- events.LedCommand, kind events.CommandKind, value int16, paramIndex uint8) {
	cmd := events.LedCommand{Kind: kind, Timestamp: f.Now().UnixMilli(), Value: value, ParamIndex: paramIndex}
	select {
	case out <- cmd:
	case <-ctx.Done():
	}
}

func (f *FSM) saveVolatile() {
	if f.Persist == nil {
		return
	}
	_ = f.Persist.SaveVolatile(f.Controller.ExportVolatile())
}

func (f *FSM) saveStatic() {
	if f.Persist == nil {
		return
	}
	_ = f.Persist.SaveStatic(f.Controller.ExportStatic())
}

// checkIdle implements the three setup modes' auto-save-and-return
// timeouts. Off and Display have none.
func (f *FSM) checkIdle(ctx context.Context, out chan<- events.LedCommand) {
	elapsed := f.Now().Sub(f.lastEventAt)
	switch f.mode {
	case ModeEffectSelect:
		if elapsed <= f.TSelect {
			return
		}
		f.emit(ctx, out, events.CmdSaveConfig, 0, 0)
		f.mode = ModeDisplay
		f.saveVolatile()
	case ModeEffectSetup:
		if elapsed <= f.TSetup {
			return
		}
		f.emit(ctx, out, events.CmdSaveConfig, 0, 0)
		f.emit(ctx, out, events.CmdFeedbackGreen, 0, 0)
		f.mode = ModeDisplay
		f.saveStatic()
		f.saveVolatile()
	case ModeSystemSetup:
		if elapsed <= f.TSystem {
			return
		}
		f.Controller.SaveSystemConfig()
		f.emit(ctx, out, events.CmdFeedbackGreen, 0, 0)
		f.mode = ModeDisplay
		f.saveStatic()
		f.saveVolatile()
	default:
		return
	}
	f.lastEventAt = f.Now()
}
