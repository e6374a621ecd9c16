package effects

import "github.com/aluiziotomazelli/led-lamp-sub000/internal/color"

// Chase lights every third pixel and advances the lit set over time, the
// classic "theater chase" pattern.
type Chase struct {
	hue   Param
	speed Param
}

// NewChase returns a Chase effect with a default warm-white hue.
func NewChase() *Chase {
	return &Chase{
		hue:   Param{Name: "Hue", Kind: ParamHue, Value: 45, Min: 0, Max: 359, Step: 5, Wrap: true, Default: 45},
		speed: Param{Name: "Speed", Kind: ParamSpeed, Value: 25, Min: 1, Max: 100, Step: 5, Wrap: false, Default: 25},
	}
}

func (e *Chase) Name() string                        { return "Chase" }
func (e *Chase) Params() []*Param                     { return []*Param{&e.hue, &e.speed} }
func (e *Chase) IsDynamic() bool                      { return true }
func (e *Chase) Representation() color.Representation { return color.RepresentationHSV }
func (e *Chase) Reallocate(n int)                     {}

func (e *Chase) Render(buf *color.Buffer, tMs int64) {
	n := len(buf.HSV)
	if n == 0 {
		return
	}
	offset := int((tMs * int64(e.speed.Value) / 200) % 3)
	for i := range buf.HSV {
		if (i+offset)%3 == 0 {
			buf.HSV[i] = color.HSV{H: uint16(e.hue.Value), S: 255, V: 255}
		} else {
			buf.HSV[i] = color.HSV{H: uint16(e.hue.Value), S: 255, V: 0}
		}
	}
}
