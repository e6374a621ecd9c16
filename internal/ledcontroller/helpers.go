package ledcontroller

// Peek* helpers let the interaction FSM compute a prospective value
// before emitting the corresponding LedCommand, so it knows whether to
// also emit FeedbackLimit. They read a consistent snapshot under lock but
// never mutate controller state.

// CurrentBrightness returns the live master brightness.
func (c *Controller) CurrentBrightness() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.masterBrightness
}

// PeekBrightness reports what SetBrightness would install for a
// steps-sized encoder delta, and whether it would saturate against
// min_brightness or 255.
func (c *Controller) PeekBrightness(steps int32) (newValue uint8, limitHit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := int32(c.masterBrightness) + steps
	lo, hi := int32(c.minBrightness), int32(255)
	if v > hi {
		return uint8(hi), true
	}
	if v < lo {
		return uint8(lo), true
	}
	return uint8(v), false
}

// CurrentEffectIndex returns the live effect index.
func (c *Controller) CurrentEffectIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effectIndex
}

// PeekEffectPreview returns the wrapped effect index steps away from the
// current one, for EffectSelect's live preview.
func (c *Controller) PeekEffectPreview(steps int32) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := int32(c.engine.NumEffects())
	if n == 0 {
		return 0
	}
	v := (int32(c.effectIndex) + steps) % n
	if v < 0 {
		v += n
	}
	return int(v)
}

// CurrentParamIndex returns the effect-parameter edit cursor.
func (c *Controller) CurrentParamIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paramIndex
}

// PeekEffectParam reports the parameter index being edited and what
// SetEffectParam would install for a steps-sized delta.
func (c *Controller) PeekEffectParam(steps int32) (paramIndex int, newValue int16, limitHit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	params := c.engine.Params(c.effectIndex)
	idx := c.paramIndex
	if idx >= len(params) {
		return idx, 0, false
	}
	p := *params[idx]
	limitHit = p.Inc(steps)
	return idx, p.Value, limitHit
}

// PeekSystemParam reports what IncSystemParam would install for a
// steps-sized delta, without mutating state.
func (c *Controller) PeekSystemParam(steps int32) (newValue int16, limitHit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sys.peekInc(steps)
}

// CurrentSystemParamName returns the name of the system parameter
// currently selected for editing.
func (c *Controller) CurrentSystemParamName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sys.current().Name
}
