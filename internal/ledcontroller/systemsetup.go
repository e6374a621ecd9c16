package ledcontroller

// System-setup direct entry points (spec §4.8): enter/save/cancel/
// factory-reset/restore-defaults. These have no LedCommand tag of their
// own — the interaction FSM calls them directly rather than emitting a
// command, because min_brightness, the LED offsets, and the
// color-correction triple are structural, not addressed by the generic
// LedCommand set. Advancing and incrementing the selected parameter do
// have tags (CmdNextSystemParam, CmdIncSystemParam) and arrive through
// HandleCommand; NextSystemParam below is the same step for direct
// callers.

// EnterSystemSetup snapshots the system parameters so CancelSystemConfig
// can restore them exactly, and resets the edit cursor to the first
// parameter.
func (c *Controller) EnterSystemSetup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sys.index = 0
	c.sysSavedVals = make([]int16, len(c.sys.params))
	for i, p := range c.sys.params {
		c.sysSavedVals[i] = p.Value
	}
}

// NextSystemParam advances the edit cursor and returns the newly selected
// parameter's name.
func (c *Controller) NextSystemParam() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sys.next()
	return c.sys.current().Name
}

// SaveSystemConfig commits the in-progress edits as the new baseline. The
// caller is responsible for persisting StaticConfig afterwards via
// ExportStatic.
func (c *Controller) SaveSystemConfig() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sysSavedVals = nil
}

// CancelSystemConfig restores every system parameter to its value at the
// matching EnterSystemSetup.
func (c *Controller) CancelSystemConfig() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sysSavedVals != nil {
		for i, v := range c.sysSavedVals {
			c.sys.params[i].Value = v
		}
	}
	c.applySystemParamsLocked()
	c.sysSavedVals = nil
	c.needsRender = true
	c.notifyRenderer()
}

// FactoryResetScope selects what FactoryReset wipes, resolving the spec's
// open question on factory-reset scope. See DESIGN.md.
type FactoryResetScope uint8

const (
	// FactoryResetBoth resets system calibration and every effect's
	// parameters. The chosen reading of Button.VeryLong in SystemSetup:
	// a full reset is the least surprising behavior for the deepest
	// setup mode's most drastic gesture.
	FactoryResetBoth FactoryResetScope = iota
	FactoryResetSystemOnly
	FactoryResetEffectsOnly
)

// FactoryReset restores scope to compile-time defaults.
func (c *Controller) FactoryReset(scope FactoryResetScope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if scope == FactoryResetBoth || scope == FactoryResetSystemOnly {
		c.sys.reset()
		c.applySystemParamsLocked()
	}
	if scope == FactoryResetBoth || scope == FactoryResetEffectsOnly {
		for i := 0; i < c.engine.NumEffects(); i++ {
			for _, p := range c.engine.Params(i) {
				p.Reset()
			}
		}
	}
	c.needsRender = true
	c.notifyRenderer()
}

// RestoreEffectDefaults resets only the current effect's parameters,
// for Button.VeryLong in EffectSetup.
func (c *Controller) RestoreEffectDefaults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.engine.Params(c.effectIndex) {
		p.Reset()
	}
	c.needsRender = true
	c.notifyRenderer()
}
