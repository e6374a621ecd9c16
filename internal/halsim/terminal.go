// Package halsim implements a software stand-in for the downstream LED
// wire driver: it renders frames pulled from a ledcontroller.Mailbox to
// the terminal using the xterm 256-color palette, for the cmd/lampsim
// development entrypoint. Per spec §1, the physical wire protocol
// encoder is an external collaborator; this fills that role during
// development the way periph's devices/screen stands in for a real
// display.
package halsim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/color"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/ledcontroller"
)

// TerminalDriver redraws one line of colored blocks on every new frame
// pulled from Mailbox, applying the calibrated offsets and per-channel
// color correction the same way the real wire driver would (spec §6).
type TerminalDriver struct {
	Out     io.Writer
	Mailbox *ledcontroller.Mailbox

	LedOffsetBegin, LedOffsetEnd uint16
	ColorCorrectionR             uint8
	ColorCorrectionG             uint8
	ColorCorrectionB             uint8
}

// Run polls the mailbox at tick and redraws the terminal line whenever a
// new frame has been published.
func (t *TerminalDriver) Run(ctx context.Context, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	var last *color.Buffer
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			buf, ok := t.Mailbox.Take()
			if !ok || buf == last {
				continue
			}
			last = buf
			t.render(buf)
		}
	}
}

func (t *TerminalDriver) render(buf *color.Buffer) {
	n := buf.Len()
	fmt.Fprint(t.Out, "\r")
	for i := 0; i < n; i++ {
		if i < int(t.LedOffsetBegin) || i >= n-int(t.LedOffsetEnd) {
			continue
		}
		var c color.RGB
		if buf.Representation == color.RepresentationHSV {
			c = buf.HSV[i].ToRGB()
		} else {
			c = buf.RGB[i]
		}
		c = color.RGB{
			R: scale256(c.R, t.ColorCorrectionR),
			G: scale256(c.G, t.ColorCorrectionG),
			B: scale256(c.B, t.ColorCorrectionB),
		}
		fmt.Fprintf(t.Out, "\x1b[48;5;%dm  ", nearestXterm256(c))
	}
	fmt.Fprint(t.Out, "\x1b[0m")
}

// scale256 applies a /256 multiplicative channel scale, matching the
// real driver's color-correction step (spec §6: "scale = 1/256").
func scale256(v, corr uint8) uint8 {
	return uint8(uint32(v) * uint32(corr) / 256)
}

// nearestXterm256 maps an RGB triple to the closest index in the
// standard 6x6x6 color cube of the xterm 256-color palette (indices
// 16-231); the grayscale ramp (232-255) is not used.
func nearestXterm256(c color.RGB) uint8 {
	quant := func(v uint8) int {
		if v < 48 {
			return 0
		}
		if v < 115 {
			return 1
		}
		return (int(v) - 35) / 40
	}
	r, g, b := quant(c.R), quant(c.G), quant(c.B)
	return uint8(16 + 36*r + 6*g + b)
}
