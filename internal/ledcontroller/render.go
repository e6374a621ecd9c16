package ledcontroller

import (
	"context"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/color"
)

// Run drives the render loop: it wakes on every command (via the internal
// notification channel) or every RenderTick, whichever comes first, and
// always produces and publishes exactly one frame per wake. now is
// injectable so tests can drive deterministic timestamps.
func (c *Controller) Run(ctx context.Context, now func() time.Time) error {
	buf := color.NewBuffer(c.n, color.RepresentationRGB)
	ticker := time.NewTicker(RenderTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
		case <-ticker.C:
		}
		c.renderOnce(buf, now())
	}
}

// renderOnce implements the five-step priority order from spec §4.8:
// feedback overlay, then off, then fade, then effect, always ending in a
// mailbox publish.
func (c *Controller) renderOnce(buf *color.Buffer, t time.Time) {
	tMs := t.UnixMilli()

	c.mu.Lock()

	if on, active := c.feedback.active(tMs); active {
		c.mu.Unlock()
		buf.Resize(c.n)
		if on {
			buf.Fill(c.feedback.kind.color())
		} else {
			buf.Fill(color.RGB{})
		}
		c.Mailbox.Publish(buf.Clone())
		return
	}
	if c.feedback.kind != FeedbackNone {
		// The overlay just expired: drop it and force one more render so
		// the effect or off/fade state underneath reappears promptly.
		c.feedback = feedbackState{}
		c.needsRender = true
	}

	if !c.isOn {
		c.mu.Unlock()
		buf.Resize(c.n)
		buf.Fill(color.RGB{})
		c.Mailbox.Publish(buf.Clone())
		return
	}

	brightness := c.masterBrightness
	if c.fading {
		elapsed := tMs - c.fadeStart
		if elapsed >= FadeDurationMs {
			brightness = c.fadeTo
			c.fading = false
		} else if elapsed <= 0 {
			brightness = 0
		} else {
			brightness = uint8(int64(c.fadeTo) * elapsed / FadeDurationMs)
		}
		c.needsRender = true
	}

	effectIndex := c.effectIndex
	dynamic := c.engine.IsDynamic(effectIndex)
	needsRender := c.needsRender
	c.needsRender = false
	c.mu.Unlock()

	if needsRender || dynamic {
		buf.Resize(c.n)
		c.engine.Render(effectIndex, buf, tMs)
		buf.ScaleBrightness(brightness)
	}
	c.Mailbox.Publish(buf.Clone())
}
