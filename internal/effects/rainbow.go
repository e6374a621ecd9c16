package effects

import "github.com/aluiziotomazelli/led-lamp-sub000/internal/color"

// Rainbow sweeps a hue gradient down the strip and rotates it over time;
// it is dynamic since every frame depends on tMs.
type Rainbow struct {
	speed      Param
	saturation Param
}

// NewRainbow returns a Rainbow effect with a moderate default speed.
func NewRainbow() *Rainbow {
	return &Rainbow{
		speed:      Param{Name: "Speed", Kind: ParamSpeed, Value: 20, Min: 1, Max: 100, Step: 5, Wrap: false, Default: 20},
		saturation: Param{Name: "Saturation", Kind: ParamSaturation, Value: 255, Min: 0, Max: 255, Step: 8, Wrap: false, Default: 255},
	}
}

func (e *Rainbow) Name() string                        { return "Rainbow" }
func (e *Rainbow) Params() []*Param                     { return []*Param{&e.speed, &e.saturation} }
func (e *Rainbow) IsDynamic() bool                      { return true }
func (e *Rainbow) Representation() color.Representation { return color.RepresentationHSV }
func (e *Rainbow) Reallocate(n int)                     {}

func (e *Rainbow) Render(buf *color.Buffer, tMs int64) {
	n := len(buf.HSV)
	if n == 0 {
		return
	}
	rotation := int64(e.speed.Value) * tMs / 50 // degrees, scaled by speed
	for i := range buf.HSV {
		hue := (int64(i)*360/int64(n) + rotation) % 360
		if hue < 0 {
			hue += 360
		}
		buf.HSV[i] = color.HSV{H: uint16(hue), S: uint8(e.saturation.Value), V: 255}
	}
}
