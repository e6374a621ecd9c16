package effects

import (
	"math/rand"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/color"
)

type twinklePixel struct {
	active     bool
	fadingUp   bool
	brightness uint8
}

// Twinkle lights random pixels and fades them in then out against a dark
// background; each pixel's fade state is scratch private to this effect,
// reallocated whenever the strip length changes, and persisted between
// Render calls so the animation is continuous rather than re-randomized
// every frame.
type Twinkle struct {
	hue     Param
	density Param
	speed   Param

	rng     *rand.Rand
	pixels  []twinklePixel
	lastT   int64
	haveT   bool
}

// NewTwinkle returns a Twinkle effect seeded from the wall clock at
// construction time, matching the "randomized effects seed from a
// pseudo-random source" requirement of spec §4.7.
func NewTwinkle() *Twinkle {
	return &Twinkle{
		hue:     Param{Name: "Hue", Kind: ParamHue, Value: 0, Min: 0, Max: 359, Step: 10, Wrap: true, Default: 0},
		density: Param{Name: "Density", Kind: ParamValue, Value: 8, Min: 1, Max: 64, Step: 1, Wrap: false, Default: 8},
		speed:   Param{Name: "Speed", Kind: ParamSpeed, Value: 12, Min: 1, Max: 64, Step: 2, Wrap: false, Default: 12},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e *Twinkle) Name() string                        { return "Twinkle" }
func (e *Twinkle) Params() []*Param                     { return []*Param{&e.hue, &e.density, &e.speed} }
func (e *Twinkle) IsDynamic() bool                      { return true }
func (e *Twinkle) Representation() color.Representation { return color.RepresentationHSV }

func (e *Twinkle) Reallocate(n int) {
	e.pixels = make([]twinklePixel, n)
	e.haveT = false
}

func (e *Twinkle) Render(buf *color.Buffer, tMs int64) {
	n := len(buf.HSV)
	if n == 0 || len(e.pixels) != n {
		e.Reallocate(n)
	}
	var dt int64
	if e.haveT {
		dt = tMs - e.lastT
		if dt < 0 {
			dt = 0
		}
	}
	e.lastT = tMs
	e.haveT = true

	step := uint8(1)
	if e.speed.Value > 0 {
		step = uint8(1 + dt*int64(e.speed.Value)/200)
	}

	// Odds any given idle pixel lights this frame, scaled by Density.
	spawnChance := int(e.density.Value)
	if spawnChance < 1 {
		spawnChance = 1
	}

	for i := range e.pixels {
		p := &e.pixels[i]
		if !p.active {
			if e.rng.Intn(1000) < spawnChance {
				p.active = true
				p.fadingUp = true
				p.brightness = 0
			}
			buf.HSV[i] = color.HSV{H: uint16(e.hue.Value), S: 255, V: 0}
			continue
		}
		if p.fadingUp {
			if int(p.brightness)+int(step) >= 255 {
				p.brightness = 255
				p.fadingUp = false
			} else {
				p.brightness += step
			}
		} else {
			if int(p.brightness) <= int(step) {
				p.brightness = 0
				p.active = false
			} else {
				p.brightness -= step
			}
		}
		buf.HSV[i] = color.HSV{H: uint16(e.hue.Value), S: 255, V: p.brightness}
	}
}
