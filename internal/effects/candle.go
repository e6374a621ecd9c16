package effects

import (
	"math/rand"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/color"
)

// Candle simulates a flame: the strip is divided into Zones independently
// flickering segments, each doing a clamped random walk in brightness.
// Zones is a structural parameter — changing it reallocates the
// per-zone scratch array, same as a LED-count change would.
type Candle struct {
	zones   Param
	flicker Param
	speed   Param

	rng          *rand.Rand
	zoneBright   []uint8
	lastZones    int16
	n            int
	lastT        int64
	haveT        bool
}

// NewCandle returns a Candle effect with three independently flickering
// zones by default.
func NewCandle() *Candle {
	return &Candle{
		zones:   Param{Name: "Zones", Kind: ParamValue, Value: 3, Min: 1, Max: 16, Step: 1, Wrap: false, Default: 3},
		flicker: Param{Name: "Flicker", Kind: ParamValue, Value: 40, Min: 1, Max: 100, Step: 5, Wrap: false, Default: 40},
		speed:   Param{Name: "Speed", Kind: ParamSpeed, Value: 20, Min: 1, Max: 100, Step: 5, Wrap: false, Default: 20},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e *Candle) Name() string                        { return "Candle" }
func (e *Candle) Params() []*Param                     { return []*Param{&e.zones, &e.flicker, &e.speed} }
func (e *Candle) IsDynamic() bool                      { return true }
func (e *Candle) Representation() color.Representation { return color.RepresentationHSV }

func (e *Candle) Reallocate(n int) {
	e.n = n
	e.lastZones = e.zones.Value
	zones := int(e.zones.Value)
	if zones < 1 {
		zones = 1
	}
	e.zoneBright = make([]uint8, zones)
	for i := range e.zoneBright {
		e.zoneBright[i] = 180
	}
	e.haveT = false
}

func (e *Candle) Render(buf *color.Buffer, tMs int64) {
	n := len(buf.HSV)
	if n != e.n || e.zones.Value != e.lastZones || e.zoneBright == nil {
		e.Reallocate(n)
	}
	if n == 0 {
		return
	}

	var dt int64
	if e.haveT {
		dt = tMs - e.lastT
	}
	e.lastT = tMs
	e.haveT = true

	// A clamped random walk, re-rolled roughly every Speed-scaled interval.
	ticks := dt * int64(e.speed.Value) / 500
	for t := int64(0); t < ticks; t++ {
		for i := range e.zoneBright {
			delta := e.rng.Intn(2*int(e.flicker.Value)+1) - int(e.flicker.Value)
			v := int(e.zoneBright[i]) + delta
			if v < 60 {
				v = 60
			}
			if v > 255 {
				v = 255
			}
			e.zoneBright[i] = uint8(v)
		}
	}

	zones := len(e.zoneBright)
	for i := range buf.HSV {
		zone := i * zones / n
		if zone >= zones {
			zone = zones - 1
		}
		buf.HSV[i] = color.HSV{H: 28, S: 230, V: e.zoneBright[zone]}
	}
}
