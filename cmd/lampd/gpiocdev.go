package main

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/halgpio"
)

// gpiocdevPin adapts a gpiocdev line to halgpio.PinIn. Pull and edge
// configuration are collapsed into the single request made at
// newGPIOCDevPin time, since gpiocdev (unlike periph's bcm283x lines)
// configures both at line-request time rather than via a separate In()
// call; In() here is a no-op that trusts the caller requested compatible
// settings.
type gpiocdevPin struct {
	name   string
	line   *gpiocdev.Line
	edgeCh chan struct{}
}

// newGPIOCDevPin requests offset on chip as an input with both-edge
// detection and a pull-up, matching every decoder's expected wiring
// (active-high push buttons and switches, pulled-up quadrature lines).
func newGPIOCDevPin(chip string, offset int) (*gpiocdevPin, error) {
	p := &gpiocdevPin{name: fmt.Sprintf("%s:%d", chip, offset), edgeCh: make(chan struct{}, 4)}
	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) {
			select {
			case p.edgeCh <- struct{}{}:
			default:
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("gpiocdev: request %s: %w", p.name, err)
	}
	p.line = line
	return p, nil
}

func (p *gpiocdevPin) String() string { return p.name }

// In is a no-op: pull and edge mode are fixed at request time, since
// gpiocdev has no separate reconfigure-after-request call the way
// periph.io's gpio.PinIn does.
func (p *gpiocdevPin) In(halgpio.Pull, halgpio.Edge) error { return nil }

func (p *gpiocdevPin) Read() halgpio.Level {
	v, err := p.line.Value()
	if err != nil {
		return halgpio.Low
	}
	if v != 0 {
		return halgpio.High
	}
	return halgpio.Low
}

func (p *gpiocdevPin) WaitForEdge(timeout time.Duration) bool {
	if timeout < 0 {
		<-p.edgeCh
		return true
	}
	select {
	case <-p.edgeCh:
		return true
	case <-time.After(timeout):
		return false
	}
}
