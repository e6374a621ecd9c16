// Package effects implements the effects engine (C7): a library of effect
// functions, each with its own parameter schema and privately owned
// scratch state, evaluated against the current parameters and master
// brightness into a per-pixel color buffer.
package effects

import "github.com/aluiziotomazelli/led-lamp-sub000/internal/color"

// Effect is one animation generator. Implementations own their parameter
// slots and any scratch state, and reallocate the scratch whenever the
// pixel count changes (Reallocate).
//
// Render must not retain buf beyond the call; the caller (the LED
// controller) owns it.
type Effect interface {
	Name() string
	Params() []*Param
	// IsDynamic reports whether the effect must be re-evaluated every
	// frame (true) or only when something about it changed (false).
	IsDynamic() bool
	Representation() color.Representation
	// Reallocate (re)sizes any per-pixel scratch state for n LEDs. It is
	// called whenever the LED count changes, and once before first use.
	Reallocate(n int)
	// Render evaluates the effect at time tMs into buf, which already has
	// the right length and representation set by the caller.
	Render(buf *color.Buffer, tMs int64)
}

// Engine is the effect registry: an ordered, immutable table of Effects
// constructed at init and handed as a borrowed reference to the
// interaction FSM (for names/counts) and the LED controller (for
// rendering).
type Engine struct {
	effects []Effect
}

// NewEngine returns an Engine over effects, in display order. The slice is
// retained, not copied; callers must not mutate it afterwards.
func NewEngine(effects []Effect) *Engine {
	return &Engine{effects: effects}
}

// NumEffects returns the number of registered effects.
func (e *Engine) NumEffects() int {
	return len(e.effects)
}

// Name returns the name of the effect at i.
func (e *Engine) Name(i int) string {
	return e.effects[i].Name()
}

// Params returns the effect at i's parameter slots, borrowed and mutable.
func (e *Engine) Params(i int) []*Param {
	return e.effects[i].Params()
}

// IsDynamic reports whether the effect at i must be re-evaluated every
// frame.
func (e *Engine) IsDynamic(i int) bool {
	return e.effects[i].IsDynamic()
}

// Representation reports the color representation the effect at i emits.
func (e *Engine) Representation(i int) color.Representation {
	return e.effects[i].Representation()
}

// Reallocate resizes effect i's scratch state for n LEDs.
func (e *Engine) Reallocate(i, n int) {
	e.effects[i].Reallocate(n)
}

// ReallocateAll resizes every effect's scratch state for n LEDs, used when
// the strip length changes.
func (e *Engine) ReallocateAll(n int) {
	for _, ef := range e.effects {
		ef.Reallocate(n)
	}
}

// Render evaluates effect i at time tMs into buf.
func (e *Engine) Render(i int, buf *color.Buffer, tMs int64) {
	ef := e.effects[i]
	buf.Representation = ef.Representation()
	ef.Render(buf, tMs)
}
