package effects

import "fmt"

// ParamKind tags what an EffectParam's integer value means, per spec §3.
type ParamKind uint8

const (
	ParamValue ParamKind = iota
	ParamHue
	ParamSaturation
	ParamBrightness
	ParamSpeed
	ParamBoolean
)

func (k ParamKind) String() string {
	switch k {
	case ParamValue:
		return "Value"
	case ParamHue:
		return "Hue"
	case ParamSaturation:
		return "Saturation"
	case ParamBrightness:
		return "Brightness"
	case ParamSpeed:
		return "Speed"
	case ParamBoolean:
		return "Boolean"
	default:
		return fmt.Sprintf("ParamKind(%d)", k)
	}
}

// Param is a named, typed parameter slot owned by an Effect. Editing it
// through Inc/Set keeps it within [Min, Max] per spec's invariants.
type Param struct {
	Name    string
	Kind    ParamKind
	Value   int16
	Min     int16
	Max     int16
	Step    int16
	Wrap    bool
	Default int16
}

// Inc applies steps*Step to Value, wrapping or clamping per Wrap, and
// reports whether the new value saturated against a clamp (never true for
// a wrapping param).
func (p *Param) Inc(steps int32) (limitHit bool) {
	if p.Step == 0 {
		return false
	}
	span := int32(p.Max) - int32(p.Min) + 1
	delta := steps * int32(p.Step)
	v := int32(p.Value) + delta
	if p.Wrap {
		if span <= 0 {
			p.Value = p.Min
			return false
		}
		v = ((v-int32(p.Min))%span + span) % span + int32(p.Min)
		p.Value = int16(v)
		return false
	}
	if v > int32(p.Max) {
		p.Value = p.Max
		return v > int32(p.Max)
	}
	if v < int32(p.Min) {
		p.Value = p.Min
		return v < int32(p.Min)
	}
	p.Value = int16(v)
	return false
}

// Set clamps v into [Min, Max] and installs it, reporting whether
// clamping was necessary.
func (p *Param) Set(v int16) (limitHit bool) {
	if v > p.Max {
		p.Value = p.Max
		return true
	}
	if v < p.Min {
		p.Value = p.Min
		return true
	}
	p.Value = v
	return false
}

// Reset restores Value to Default.
func (p *Param) Reset() {
	p.Value = p.Default
}
