package ledcontroller

import "github.com/aluiziotomazelli/led-lamp-sub000/internal/effects"

// systemParams is the structural, per-unit calibration slot list edited in
// SystemSetup: min_brightness and the LED-offset/color-correction fields
// of StaticConfig. These are not per-effect EffectParams, so they get
// their own small ordered list rather than living in the effect registry.
type systemParams struct {
	params [6]effects.Param
	index  int
}

const (
	sysMinBrightness = iota
	sysLedOffsetBegin
	sysLedOffsetEnd
	sysColorCorrectionR
	sysColorCorrectionG
	sysColorCorrectionB
)

func newSystemParams(minBrightness uint8, offBegin, offEnd uint16, rCorr, gCorr, bCorr uint8) systemParams {
	return systemParams{params: [6]effects.Param{
		sysMinBrightness:    {Name: "MinBrightness", Value: int16(minBrightness), Min: 0, Max: 255, Step: 5, Default: 0},
		sysLedOffsetBegin:   {Name: "LedOffsetBegin", Value: int16(offBegin), Min: 0, Max: 512, Step: 1, Default: 0},
		sysLedOffsetEnd:     {Name: "LedOffsetEnd", Value: int16(offEnd), Min: 0, Max: 512, Step: 1, Default: 0},
		sysColorCorrectionR: {Name: "ColorCorrectionR", Value: int16(rCorr), Min: 0, Max: 255, Step: 4, Default: 255},
		sysColorCorrectionG: {Name: "ColorCorrectionG", Value: int16(gCorr), Min: 0, Max: 255, Step: 4, Default: 255},
		sysColorCorrectionB: {Name: "ColorCorrectionB", Value: int16(bCorr), Min: 0, Max: 255, Step: 4, Default: 255},
	}}
}

func (s *systemParams) next() {
	s.index = (s.index + 1) % len(s.params)
}

func (s *systemParams) current() *effects.Param {
	return &s.params[s.index]
}

// inc mutates the currently selected parameter and reports saturation.
func (s *systemParams) inc(steps int32) (limitHit bool) {
	return s.current().Inc(steps)
}

// peekInc computes what inc would do without mutating state.
func (s *systemParams) peekInc(steps int32) (value int16, limitHit bool) {
	p := *s.current()
	limitHit = p.Inc(steps)
	return p.Value, limitHit
}

func (s *systemParams) reset() {
	for i := range s.params {
		s.params[i].Reset()
	}
	s.index = 0
}
