package effects

import "github.com/aluiziotomazelli/led-lamp-sub000/internal/color"

// Solid is a static effect: every pixel takes the same hue/saturation,
// full value (brightness is applied later by the LED controller). Since
// it never changes on its own, IsDynamic is false — the controller only
// re-renders it when something about its parameters changed.
type Solid struct {
	hue        Param
	saturation Param
}

// NewSolid returns a Solid effect with a default warm-white-ish hue.
func NewSolid() *Solid {
	return &Solid{
		hue:        Param{Name: "Hue", Kind: ParamHue, Value: 30, Min: 0, Max: 359, Step: 5, Wrap: true, Default: 30},
		saturation: Param{Name: "Saturation", Kind: ParamSaturation, Value: 200, Min: 0, Max: 255, Step: 8, Wrap: false, Default: 200},
	}
}

func (e *Solid) Name() string                          { return "Solid" }
func (e *Solid) Params() []*Param                       { return []*Param{&e.hue, &e.saturation} }
func (e *Solid) IsDynamic() bool                        { return false }
func (e *Solid) Representation() color.Representation   { return color.RepresentationHSV }
func (e *Solid) Reallocate(n int)                       {}

func (e *Solid) Render(buf *color.Buffer, tMs int64) {
	c := color.HSV{H: uint16(e.hue.Value), S: uint8(e.saturation.Value), V: 255}
	for i := range buf.HSV {
		buf.HSV[i] = c
	}
}
