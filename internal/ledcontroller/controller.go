// Package ledcontroller implements the LED controller (C8): pixel buffer
// ownership, the command handler, the fixed-cadence renderer, feedback
// overlay preemption, and the startup fade.
package ledcontroller

import (
	"sync"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/effects"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/persistence"
)

// RenderTick is the renderer's fixed cadence (spec §6).
const RenderTick = 33 * time.Millisecond

// FadeDurationMs is the startup fade's duration (spec §6, implementation
// defined).
const FadeDurationMs = 1000

// restoreTarget tags which snapshot CancelConfig should restore, since the
// generic CancelConfig command carries no mode context of its own — the
// interaction FSM can issue it from EffectSelect or EffectSetup and the
// controller must remember which.
type restoreTarget uint8

const (
	restoreNone restoreTarget = iota
	restoreEffectIndex
	restoreEffectParams
)

// Controller is C8. State is guarded by mu: HandleCommand and the
// system-setup entry points in systemsetup.go are the writers; the Peek*
// helpers in helpers.go only read; Run (the renderer) reads, and also
// clears needsRender, an expired feedback overlay and a finished fade.
type Controller struct {
	mu sync.Mutex

	engine *effects.Engine
	n      int

	isOn             bool
	masterBrightness uint8
	minBrightness    uint8
	effectIndex      int
	paramIndex       int

	needsRender bool

	fading    bool
	fadeStart int64
	fadeTo    uint8

	feedback feedbackState

	restoreTo   restoreTarget
	savedEffect int
	savedParams []int16

	sys          systemParams
	sysSavedVals []int16

	wake chan struct{}

	// Mailbox is the single-slot overwrite handoff to the downstream LED
	// wire driver.
	Mailbox *Mailbox
}

// NewController builds a controller for n pixels rendered through engine.
// minBrightness seeds the initial calibration floor; ApplyConfig should be
// called afterwards once persistence has loaded the real configs.
func NewController(engine *effects.Engine, n int, minBrightness uint8) *Controller {
	c := &Controller{
		engine:           engine,
		n:                n,
		minBrightness:    minBrightness,
		masterBrightness: 255,
		needsRender:      true,
		wake:             make(chan struct{}, 1),
		sys:              newSystemParams(minBrightness, 0, 0, 255, 255, 255),
		Mailbox:          &Mailbox{},
	}
	engine.ReallocateAll(n)
	return c
}

func (c *Controller) notifyRenderer() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// HandleCommand applies one LedCommand to controller state. It is the
// sole mutator for everything the generic LedCommand set addresses; the
// system-setup entry points mutate the rest directly, since those
// operations (enter/save/cancel/factory-reset/restore-defaults) have no
// LedCommand tag of their own (spec §4.8).
func (c *Controller) HandleCommand(cmd events.LedCommand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.notifyRenderer()

	if cmd.Kind.IsFeedback() {
		c.armFeedbackLocked(cmd.Kind, cmd.Timestamp)
		return
	}

	switch cmd.Kind {
	case events.CmdTurnOff:
		c.isOn = false
		c.fading = false
		c.needsRender = true

	case events.CmdTurnOn:
		c.isOn = true
		c.fading = false
		c.needsRender = true

	case events.CmdTurnOnFade:
		// Restarting the fade from 0 against the existing target is the
		// chosen reading when TurnOnFade arrives mid-fade; see DESIGN.md.
		c.isOn = true
		c.fading = true
		c.fadeStart = cmd.Timestamp
		c.fadeTo = c.masterBrightness
		c.needsRender = true

	case events.CmdSetEffect:
		idx := int(cmd.Value)
		if idx < 0 {
			idx = 0
		}
		if n := c.engine.NumEffects(); n > 0 && idx >= n {
			idx = n - 1
		}
		c.effectIndex = idx
		c.paramIndex = 0
		c.needsRender = true

	case events.CmdSetBrightness:
		c.masterBrightness = clampU8(cmd.Value, c.minBrightness, 255)
		c.needsRender = true

	case events.CmdSetEffectParam:
		params := c.engine.Params(c.effectIndex)
		if int(cmd.ParamIndex) < len(params) {
			params[cmd.ParamIndex].Set(cmd.Value)
		}
		c.needsRender = true

	case events.CmdNextEffectParam:
		if n := len(c.engine.Params(c.effectIndex)); n > 0 {
			c.paramIndex = (c.paramIndex + 1) % n
		}

	case events.CmdIncSystemParam:
		c.sys.inc(int32(cmd.Value))
		c.applySystemParamsLocked()
		c.needsRender = true

	case events.CmdNextSystemParam:
		c.sys.next()

	case events.CmdEnterEffectSelect:
		c.restoreTo = restoreEffectIndex
		c.savedEffect = c.effectIndex

	case events.CmdEnterEffectSetup:
		c.restoreTo = restoreEffectParams
		c.paramIndex = 0
		c.savedParams = snapshotParams(c.engine.Params(c.effectIndex))

	case events.CmdSaveConfig:
		c.restoreTo = restoreNone

	case events.CmdCancelConfig:
		switch c.restoreTo {
		case restoreEffectIndex:
			c.effectIndex = c.savedEffect
		case restoreEffectParams:
			restoreParams(c.engine.Params(c.effectIndex), c.savedParams)
		}
		c.restoreTo = restoreNone
		c.needsRender = true

	case events.CmdSetStripMode:
		// Consumed by the downstream driver's strip selection; nothing
		// for the controller to apply locally.

	case events.CmdButtonError:
		// No rendering effect; surfaced for logging by the caller.
	}
}

func (c *Controller) armFeedbackLocked(kind events.CommandKind, tsMs int64) {
	var fk FeedbackKind
	switch kind {
	case events.CmdFeedbackGreen:
		fk = FeedbackGreen
	case events.CmdFeedbackRed:
		fk = FeedbackRed
	case events.CmdFeedbackBlue:
		fk = FeedbackBlue
	case events.CmdFeedbackEffectColor:
		fk = FeedbackEffectColor
	case events.CmdFeedbackLimit:
		fk = FeedbackLimit
	default:
		return
	}
	c.feedback = feedbackState{kind: fk, startMs: tsMs, blinkCount: DefaultBlinkCount}
	c.needsRender = true
}

func clampU8(v int16, lo, hi uint8) uint8 {
	if v < int16(lo) {
		return lo
	}
	if v > int16(hi) {
		return hi
	}
	return uint8(v)
}

func snapshotParams(params []*effects.Param) []int16 {
	out := make([]int16, len(params))
	for i, p := range params {
		out[i] = p.Value
	}
	return out
}

func restoreParams(params []*effects.Param, saved []int16) {
	for i, p := range params {
		if i < len(saved) {
			p.Value = saved[i]
		}
	}
}

// IsOn reports the current power state.
func (c *Controller) IsOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOn
}

// NumEffects passes through the effect registry's size.
func (c *Controller) NumEffects() int { return c.engine.NumEffects() }

// CurrentEffectParamValues returns the current effect's parameter values,
// in registry order, for the master state-sync burst.
func (c *Controller) CurrentEffectParamValues() []int16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	params := c.engine.Params(c.effectIndex)
	vals := make([]int16, len(params))
	for i, p := range params {
		vals[i] = p.Value
	}
	return vals
}

// ApplyConfig installs a fully loaded VolatileConfig/StaticConfig into
// runtime state, per spec §4.10's single controller-side Apply entry.
func (c *Controller) ApplyConfig(v persistence.VolatileConfig, s persistence.StaticConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isOn = v.IsOn
	c.masterBrightness = v.Brightness
	c.effectIndex = v.EffectIndex
	if n := c.engine.NumEffects(); n > 0 && (c.effectIndex < 0 || c.effectIndex >= n) {
		c.effectIndex = 0
	}

	c.sys.params[sysMinBrightness].Value = int16(s.MinBrightness)
	c.sys.params[sysLedOffsetBegin].Value = int16(s.LedOffsetBegin)
	c.sys.params[sysLedOffsetEnd].Value = int16(s.LedOffsetEnd)
	c.sys.params[sysColorCorrectionR].Value = int16(s.ColorCorrectionR)
	c.sys.params[sysColorCorrectionG].Value = int16(s.ColorCorrectionG)
	c.sys.params[sysColorCorrectionB].Value = int16(s.ColorCorrectionB)
	c.applySystemParamsLocked()

	for ei := 0; ei < c.engine.NumEffects() && ei < len(s.EffectParams); ei++ {
		params := c.engine.Params(ei)
		saved := s.EffectParams[ei]
		for pi := range params {
			if pi < len(saved) {
				params[pi].Value = saved[pi]
			}
		}
	}

	c.needsRender = true
}

// ExportVolatile snapshots the subset of runtime state persisted
// frequently.
func (c *Controller) ExportVolatile() persistence.VolatileConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return persistence.VolatileConfig{IsOn: c.isOn, Brightness: c.masterBrightness, EffectIndex: c.effectIndex}
}

// ExportStatic snapshots the subset of runtime state persisted on
// explicit user save.
func (c *Controller) ExportStatic() persistence.StaticConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := persistence.StaticConfig{
		MinBrightness:    uint8(c.sys.params[sysMinBrightness].Value),
		LedOffsetBegin:   uint16(c.sys.params[sysLedOffsetBegin].Value),
		LedOffsetEnd:     uint16(c.sys.params[sysLedOffsetEnd].Value),
		ColorCorrectionR: uint8(c.sys.params[sysColorCorrectionR].Value),
		ColorCorrectionG: uint8(c.sys.params[sysColorCorrectionG].Value),
		ColorCorrectionB: uint8(c.sys.params[sysColorCorrectionB].Value),
		EffectParams:     make([][]int16, c.engine.NumEffects()),
	}
	for ei := 0; ei < c.engine.NumEffects(); ei++ {
		params := c.engine.Params(ei)
		vals := make([]int16, len(params))
		for pi, p := range params {
			vals[pi] = p.Value
		}
		s.EffectParams[ei] = vals
	}
	return s
}

// DefaultStaticConfig builds the compile-time-default StaticConfig from
// the engine's declared per-effect parameter defaults, for persistence to
// install on a first-run or layout-mismatch miss.
func DefaultStaticConfig(engine *effects.Engine, minBrightness uint8) persistence.StaticConfig {
	s := persistence.StaticConfig{
		MinBrightness:    minBrightness,
		ColorCorrectionR: 255,
		ColorCorrectionG: 255,
		ColorCorrectionB: 255,
		EffectParams:     make([][]int16, engine.NumEffects()),
	}
	for ei := 0; ei < engine.NumEffects(); ei++ {
		params := engine.Params(ei)
		vals := make([]int16, len(params))
		for pi, p := range params {
			vals[pi] = p.Default
		}
		s.EffectParams[ei] = vals
	}
	return s
}

func (c *Controller) applySystemParamsLocked() {
	c.minBrightness = uint8(c.sys.params[sysMinBrightness].Value)
	if c.masterBrightness < c.minBrightness {
		c.masterBrightness = c.minBrightness
	}
}

// LedOffsets returns the calibrated begin/end trim for the downstream
// driver.
func (c *Controller) LedOffsets() (begin, end uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return uint16(c.sys.params[sysLedOffsetBegin].Value), uint16(c.sys.params[sysLedOffsetEnd].Value)
}

// ColorCorrection returns the per-channel scale triple for the downstream
// driver (spec §6: "scale = 1/256").
func (c *Controller) ColorCorrection() (r, g, b uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return uint8(c.sys.params[sysColorCorrectionR].Value),
		uint8(c.sys.params[sysColorCorrectionG].Value),
		uint8(c.sys.params[sysColorCorrectionB].Value)
}
