package effects

// NewDefaultEngine returns the standard effect table in display order.
// Index order is significant: it is what SetEffect(index) addresses and
// what gets persisted in StaticConfig.EffectParams.
func NewDefaultEngine() *Engine {
	return NewEngine([]Effect{
		NewSolid(),
		NewRainbow(),
		NewChase(),
		NewTwinkle(),
		NewCandle(),
		NewChristmasTree(),
	})
}
