package persistence

// VolatileConfig is the hot, frequently-written blob from spec §3: power
// state, brightness, and the selected effect.
type VolatileConfig struct {
	IsOn        bool
	Brightness  uint8
	EffectIndex int
}

// StaticConfig is the cold, user-edited blob from spec §3: calibration
// plus every effect's persisted parameter values. EffectParams is indexed
// [effect][param], one slice per registered effect in registry order.
type StaticConfig struct {
	MinBrightness    uint8
	LedOffsetBegin   uint16
	LedOffsetEnd     uint16
	ColorCorrectionR uint8
	ColorCorrectionG uint8
	ColorCorrectionB uint8
	EffectParams     [][]int16
}
