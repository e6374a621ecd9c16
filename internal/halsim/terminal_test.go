package halsim

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/color"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/ledcontroller"
)

func TestScale256FullCorrectionRoughlyPreservesValue(t *testing.T) {
	if got := scale256(200, 255); got < 195 || got > 200 {
		t.Fatalf("full correction should roughly preserve the value, got %d", got)
	}
}

func TestScale256ZeroCorrectionBlanksChannel(t *testing.T) {
	if got := scale256(200, 0); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}

func TestNearestXterm256BlackAndWhiteAtCubeCorners(t *testing.T) {
	black := nearestXterm256(color.RGB{R: 0, G: 0, B: 0})
	white := nearestXterm256(color.RGB{R: 255, G: 255, B: 255})
	if black == white {
		t.Fatal("black and white must not map to the same index")
	}
	if white < 16 || white > 231 {
		t.Fatalf("white should fall in the 6x6x6 cube range, got %d", white)
	}
}

func TestTerminalDriverRendersPublishedFrame(t *testing.T) {
	mb := &ledcontroller.Mailbox{}
	buf := color.NewBuffer(4, color.RepresentationRGB)
	buf.Fill(color.RGB{R: 255, G: 0, B: 0})
	mb.Publish(buf)

	var out bytes.Buffer
	d := &TerminalDriver{Out: &out, Mailbox: mb, ColorCorrectionR: 255, ColorCorrectionG: 255, ColorCorrectionB: 255}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_ = d.Run(ctx, time.Millisecond)

	s := out.String()
	if !strings.Contains(s, "\x1b[48;5;") {
		t.Fatalf("expected at least one color escape sequence, got %q", s)
	}
}

func TestTerminalDriverHonorsLedOffsets(t *testing.T) {
	mb := &ledcontroller.Mailbox{}
	buf := color.NewBuffer(10, color.RepresentationRGB)
	buf.Fill(color.RGB{R: 10, G: 20, B: 30})
	mb.Publish(buf)

	var out bytes.Buffer
	d := &TerminalDriver{
		Out: &out, Mailbox: mb,
		LedOffsetBegin: 2, LedOffsetEnd: 3,
		ColorCorrectionR: 255, ColorCorrectionG: 255, ColorCorrectionB: 255,
	}
	d.render(buf)

	n := strings.Count(out.String(), "\x1b[48;5;")
	if want := 10 - 2 - 3; n != want {
		t.Fatalf("got %d rendered cells, want %d (offsets trimmed)", n, want)
	}
}
