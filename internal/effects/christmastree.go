package effects

import (
	"math/rand"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/color"
)

type twinkleSlot struct {
	pixel  int
	age    uint8 // 0 = just lit, counts up to fade out
	active bool
}

// ChristmasTree renders a fixed red/green background pattern with a pool
// of white twinkles sparkling over it. PoolSize is a structural parameter:
// changing it reallocates the twinkle pool, same as the background
// reallocates when the LED count changes.
type ChristmasTree struct {
	poolSize Param
	speed    Param

	rng          *rand.Rand
	background   []color.HSV
	pool         []twinkleSlot
	lastPoolSize int16
	n            int
	lastT        int64
	haveT        bool
}

// NewChristmasTree returns a ChristmasTree effect with a four-slot twinkle
// pool by default.
func NewChristmasTree() *ChristmasTree {
	return &ChristmasTree{
		poolSize: Param{Name: "PoolSize", Kind: ParamValue, Value: 4, Min: 0, Max: 32, Step: 1, Wrap: false, Default: 4},
		speed:    Param{Name: "Speed", Kind: ParamSpeed, Value: 16, Min: 1, Max: 64, Step: 2, Wrap: false, Default: 16},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e *ChristmasTree) Name() string                        { return "ChristmasTree" }
func (e *ChristmasTree) Params() []*Param                     { return []*Param{&e.poolSize, &e.speed} }
func (e *ChristmasTree) IsDynamic() bool                      { return true }
func (e *ChristmasTree) Representation() color.Representation { return color.RepresentationHSV }

func (e *ChristmasTree) Reallocate(n int) {
	e.n = n
	e.background = make([]color.HSV, n)
	for i := range e.background {
		if i%2 == 0 {
			e.background[i] = color.HSV{H: 0, S: 255, V: 200} // red
		} else {
			e.background[i] = color.HSV{H: 120, S: 255, V: 200} // green
		}
	}
	e.lastPoolSize = e.poolSize.Value
	e.pool = make([]twinkleSlot, e.poolSize.Value)
	e.haveT = false
}

func (e *ChristmasTree) Render(buf *color.Buffer, tMs int64) {
	n := len(buf.HSV)
	if n != e.n || e.poolSize.Value != e.lastPoolSize || e.background == nil {
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

	copy(buf.HSV, e.background)

	ticks := dt * int64(e.speed.Value) / 300
	for t := int64(0); t < ticks; t++ {
		for i := range e.pool {
			s := &e.pool[i]
			if !s.active {
				if e.rng.Intn(20) == 0 {
					s.active = true
					s.pixel = e.rng.Intn(n)
					s.age = 0
				}
				continue
			}
			s.age++
			if s.age > 40 {
				s.active = false
			}
		}
	}

	for _, s := range e.pool {
		if !s.active || s.pixel >= n {
			continue
		}
		fade := 255 - int(s.age)*6
		if fade < 0 {
			fade = 0
		}
		buf.HSV[s.pixel] = color.HSV{H: 0, S: 0, V: uint8(fade)} // white sparkle
	}
}
