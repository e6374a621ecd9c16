package interaction

import (
	"context"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/ledcontroller"
)

// handleEvent dispatches one IntegratedEvent per spec §4.6's transition
// table. Switch and Peer are handled regardless of unit role; a slave has
// no local interactive UI wired in practice, so Button/Encoder/Touch are
// ignored there — all of a slave's state changes come from received peer
// events (spec §4.9).
func (f *FSM) handleEvent(ctx context.Context, ev events.IntegratedEvent, out chan<- events.LedCommand) {
	switch ev.Source {
	case events.SourceSwitch:
		f.handleSwitch(ctx, ev.Switch, out)
		return
	case events.SourcePeer:
		f.handlePeer(ctx, ev.Peer, out)
		return
	}
	if !f.IsMaster {
		return
	}
	switch ev.Source {
	case events.SourceButton:
		f.handleButton(ctx, ev.Button, out)
	case events.SourceEncoder:
		f.handleEncoder(ctx, ev.Encoder, out)
	case events.SourceTouch:
		f.handleTouch(ctx, ev.Touch, out)
	}
}

func (f *FSM) handleButton(ctx context.Context, ev events.ButtonEvent, out chan<- events.LedCommand) {
	switch f.mode {
	case ModeOff:
		switch ev.Kind {
		case events.ButtonSingle, events.ButtonLong, events.ButtonDouble:
			f.mode = ModeDisplay
			f.emit(ctx, out, events.CmdTurnOn, 0, 0)
		}

	case ModeDisplay:
		switch ev.Kind {
		case events.ButtonSingle:
			f.mode = ModeOff
			f.emit(ctx, out, events.CmdTurnOff, 0, 0)
			f.saveVolatile()
		case events.ButtonDouble:
			f.mode = ModeEffectSelect
			f.emit(ctx, out, events.CmdEnterEffectSelect, 0, 0)
			f.emit(ctx, out, events.CmdFeedbackEffectColor, 0, 0)
		case events.ButtonLong:
			f.mode = ModeEffectSetup
			f.emit(ctx, out, events.CmdEnterEffectSetup, 0, 0)
			f.emit(ctx, out, events.CmdFeedbackBlue, 0, 0)
		case events.ButtonVeryLong:
			f.mode = ModeSystemSetup
			f.Controller.EnterSystemSetup()
			f.emit(ctx, out, events.CmdFeedbackBlue, 0, 0)
		}

	case ModeEffectSelect:
		switch ev.Kind {
		case events.ButtonSingle:
			idx := f.Controller.CurrentEffectIndex()
			f.emit(ctx, out, events.CmdSetEffect, int16(idx), 0)
			f.emit(ctx, out, events.CmdSaveConfig, 0, 0)
			f.emit(ctx, out, events.CmdFeedbackGreen, 0, 0)
			f.mode = ModeDisplay
			f.saveVolatile()
		case events.ButtonDouble:
			f.emit(ctx, out, events.CmdCancelConfig, 0, 0)
			f.emit(ctx, out, events.CmdFeedbackRed, 0, 0)
			f.mode = ModeDisplay
			f.saveVolatile()
		}

	case ModeEffectSetup:
		switch ev.Kind {
		case events.ButtonSingle:
			f.emit(ctx, out, events.CmdNextEffectParam, 0, 0)
			f.emit(ctx, out, events.CmdFeedbackEffectColor, 0, 0)
		case events.ButtonLong:
			f.emit(ctx, out, events.CmdSaveConfig, 0, 0)
			f.emit(ctx, out, events.CmdFeedbackGreen, 0, 0)
			f.mode = ModeDisplay
			f.saveStatic()
			f.saveVolatile()
		case events.ButtonDouble:
			f.emit(ctx, out, events.CmdCancelConfig, 0, 0)
			f.emit(ctx, out, events.CmdFeedbackRed, 0, 0)
			f.mode = ModeDisplay
			f.saveVolatile()
		case events.ButtonVeryLong:
			f.Controller.RestoreEffectDefaults()
			f.emit(ctx, out, events.CmdFeedbackGreen, 0, 0)
		}

	case ModeSystemSetup:
		switch ev.Kind {
		case events.ButtonSingle:
			f.emit(ctx, out, events.CmdNextSystemParam, 0, 0)
			f.emit(ctx, out, events.CmdFeedbackBlue, 0, 0)
		case events.ButtonLong:
			f.Controller.SaveSystemConfig()
			f.emit(ctx, out, events.CmdFeedbackGreen, 0, 0)
			f.mode = ModeDisplay
			f.saveStatic()
			f.saveVolatile()
		case events.ButtonDouble:
			f.Controller.CancelSystemConfig()
			f.emit(ctx, out, events.CmdFeedbackRed, 0, 0)
			f.mode = ModeDisplay
			f.saveVolatile()
		case events.ButtonVeryLong:
			f.Controller.FactoryReset(ledcontroller.FactoryResetBoth)
			f.emit(ctx, out, events.CmdFeedbackGreen, 0, 0)
			f.saveStatic()
		}
	}
}

func (f *FSM) handleEncoder(ctx context.Context, ev events.EncoderEvent, out chan<- events.LedCommand) {
	switch f.mode {
	case ModeDisplay:
		newVal, limitHit := f.Controller.PeekBrightness(ev.Steps)
		f.emit(ctx, out, events.CmdSetBrightness, int16(newVal), 0)
		if limitHit {
			f.emit(ctx, out, events.CmdFeedbackLimit, 0, 0)
		}

	case ModeEffectSelect:
		idx := f.Controller.PeekEffectPreview(ev.Steps)
		f.emit(ctx, out, events.CmdSetEffect, int16(idx), 0)

	case ModeEffectSetup:
		idx, val, limitHit := f.Controller.PeekEffectParam(ev.Steps)
		f.emit(ctx, out, events.CmdSetEffectParam, val, uint8(idx))
		if limitHit {
			f.emit(ctx, out, events.CmdFeedbackLimit, 0, 0)
		}

	case ModeSystemSetup:
		_, limitHit := f.Controller.PeekSystemParam(ev.Steps)
		f.emit(ctx, out, events.CmdIncSystemParam, int16(ev.Steps), 0)
		if limitHit {
			f.emit(ctx, out, events.CmdFeedbackLimit, 0, 0)
		}
	}
}

func (f *FSM) handleTouch(ctx context.Context, ev events.TouchEvent, out chan<- events.LedCommand) {
	if f.mode != ModeDisplay || ev.Kind != events.TouchPress {
		return
	}
	idx := f.Controller.PeekEffectPreview(1)
	f.emit(ctx, out, events.CmdSetEffect, int16(idx), 0)
}

// handleSwitch implements the master egress gate and the slave
// strip-mode forward, per spec §4.6 and §4.9.
func (f *FSM) handleSwitch(ctx context.Context, ev events.SwitchEvent, out chan<- events.LedCommand) {
	if f.IsMaster {
		wasEnabled := f.egressEnabled.Swap(ev.IsClosed)
		if ev.IsClosed && !wasEnabled {
			f.emitStateSyncBurst(ctx, out)
		}
		return
	}
	var v int16
	if ev.IsClosed {
		v = 1
	}
	f.emit(ctx, out, events.CmdSetStripMode, v, 0)
}

// emitStateSyncBurst is the ordered, uninterleaved run of commands a
// master emits when egress is newly enabled, bringing slaves into
// alignment (spec §4.6: "TurnOn/TurnOff, SetEffect, SetBrightness, then
// one SetEffectParam per parameter of the current effect"). Run's single
// goroutine processes one event at a time, so nothing else can interleave
// between these emits.
func (f *FSM) emitStateSyncBurst(ctx context.Context, out chan<- events.LedCommand) {
	if f.Controller.IsOn() {
		f.emit(ctx, out, events.CmdTurnOn, 0, 0)
	} else {
		f.emit(ctx, out, events.CmdTurnOff, 0, 0)
	}
	f.emit(ctx, out, events.CmdSetEffect, int16(f.Controller.CurrentEffectIndex()), 0)
	f.emit(ctx, out, events.CmdSetBrightness, int16(f.Controller.CurrentBrightness()), 0)
	for i, v := range f.Controller.CurrentEffectParamValues() {
		f.emit(ctx, out, events.CmdSetEffectParam, v, uint8(i))
	}
}

// handlePeer applies a received peer command, snapping a slave caught in
// a setup mode back to Display first (spec §4.9, scenario 6). Masters
// never receive peer events in practice (they only transmit), but if one
// arrives it is ignored: masters originate, they don't apply.
func (f *FSM) handlePeer(ctx context.Context, ev events.PeerEvent, out chan<- events.LedCommand) {
	if f.IsMaster {
		return
	}
	if f.mode != ModeDisplay && f.mode != ModeOff {
		f.mode = ModeDisplay
	}
	select {
	case out <- ev.Command:
	case <-ctx.Done():
	}
}
