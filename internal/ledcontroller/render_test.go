package ledcontroller

import (
	"testing"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/color"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/effects"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
)

func newRenderController() *Controller {
	engine := effects.NewDefaultEngine()
	return NewController(engine, 4, 0)
}

// pixelRGB reads pixel i regardless of which representation the buffer
// currently holds (an effect frame stays in its own representation; only
// Fill forces RGB).
func pixelRGB(buf *color.Buffer, i int) color.RGB {
	if buf.Representation == color.RepresentationHSV {
		return buf.HSV[i].ToRGB()
	}
	return buf.RGB[i]
}

func TestRenderOnceOffProducesBlack(t *testing.T) {
	c := newRenderController()
	buf := color.NewBuffer(c.n, color.RepresentationRGB)
	c.renderOnce(buf, time.UnixMilli(0))

	got, ok := c.Mailbox.Take()
	if !ok {
		t.Fatal("expected a published frame")
	}
	for i, px := range got.RGB {
		if px != (color.RGB{}) {
			t.Fatalf("pixel %d: want black while off, got %+v", i, px)
		}
	}
}

func TestRenderOnceOnRendersEffect(t *testing.T) {
	c := newRenderController()
	c.HandleCommand(events.LedCommand{Kind: events.CmdTurnOn})
	c.HandleCommand(events.LedCommand{Kind: events.CmdSetBrightness, Value: 255})

	buf := color.NewBuffer(c.n, color.RepresentationRGB)
	c.renderOnce(buf, time.UnixMilli(0))

	got, ok := c.Mailbox.Take()
	if !ok {
		t.Fatal("expected a published frame")
	}
	allBlack := true
	for i := range got.HSV {
		if pixelRGB(got, i) != (color.RGB{}) {
			allBlack = false
		}
	}
	if allBlack {
		t.Fatal("expected a non-black frame from the Solid effect at full brightness")
	}
}

func TestRenderOnceFeedbackOverlaysEffect(t *testing.T) {
	c := newRenderController()
	c.HandleCommand(events.LedCommand{Kind: events.CmdTurnOn})
	c.HandleCommand(events.LedCommand{Kind: events.CmdSetBrightness, Value: 255})
	c.HandleCommand(events.LedCommand{Kind: events.CmdFeedbackGreen, Timestamp: 0})

	buf := color.NewBuffer(c.n, color.RepresentationRGB)
	c.renderOnce(buf, time.UnixMilli(0)) // inside the first ON half-period

	got, ok := c.Mailbox.Take()
	if !ok {
		t.Fatal("expected a published frame")
	}
	for i, px := range got.RGB {
		if px != (color.RGB{G: 255}) {
			t.Fatalf("pixel %d: want green feedback overlay, got %+v", i, px)
		}
	}
}

func TestRenderOnceFeedbackExpiresBackToEffect(t *testing.T) {
	c := newRenderController()
	c.HandleCommand(events.LedCommand{Kind: events.CmdTurnOn})
	c.HandleCommand(events.LedCommand{Kind: events.CmdSetBrightness, Value: 255})
	c.HandleCommand(events.LedCommand{Kind: events.CmdFeedbackGreen, Timestamp: 0})

	buf := color.NewBuffer(c.n, color.RepresentationRGB)
	past := int64(DefaultBlinkCount)*2*feedbackHalfPeriodMs + 10
	c.renderOnce(buf, time.UnixMilli(past))

	got, ok := c.Mailbox.Take()
	if !ok {
		t.Fatal("expected a published frame")
	}
	if got.Representation != color.RepresentationHSV {
		t.Fatalf("expired feedback should hand back to the effect's own representation, got %v", got.Representation)
	}
	for i := range got.HSV {
		if pixelRGB(got, i) == (color.RGB{G: 255}) {
			t.Fatal("feedback overlay should have expired by now")
		}
	}
}

func TestRenderOnceFadeRampsFromZero(t *testing.T) {
	c := newRenderController()
	c.HandleCommand(events.LedCommand{Kind: events.CmdSetBrightness, Value: 255})
	c.HandleCommand(events.LedCommand{Kind: events.CmdTurnOnFade, Timestamp: 0})

	buf := color.NewBuffer(c.n, color.RepresentationRGB)
	c.renderOnce(buf, time.UnixMilli(0))
	atStart, _ := c.Mailbox.Take()

	buf2 := color.NewBuffer(c.n, color.RepresentationRGB)
	c.renderOnce(buf2, time.UnixMilli(FadeDurationMs))
	atEnd, _ := c.Mailbox.Take()

	if got := pixelRGB(atStart, 0); got != (color.RGB{}) {
		t.Fatalf("fade should start at black, got %+v", got)
	}
	if got := pixelRGB(atEnd, 0); got == (color.RGB{}) {
		t.Fatal("fade should have ramped up to the target brightness by FadeDurationMs")
	}
}
