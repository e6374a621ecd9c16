package ledcontroller

import "github.com/aluiziotomazelli/led-lamp-sub000/internal/color"

// FeedbackKind is the closed set of overlay colors from spec §3.
type FeedbackKind uint8

const (
	FeedbackNone FeedbackKind = iota
	FeedbackGreen
	FeedbackRed
	FeedbackBlue
	FeedbackEffectColor
	FeedbackLimit
)

func (k FeedbackKind) color() color.RGB {
	switch k {
	case FeedbackGreen:
		return color.RGB{G: 255}
	case FeedbackRed:
		return color.RGB{R: 255}
	case FeedbackBlue:
		return color.RGB{B: 255}
	case FeedbackEffectColor:
		return color.RGB{R: 255, G: 140}
	case FeedbackLimit:
		return color.RGB{R: 255, G: 40, B: 180}
	default:
		return color.RGB{}
	}
}

// feedbackHalfPeriodMs is the ON/OFF half-period for a blink, per spec §6.
const feedbackHalfPeriodMs = 200

// DefaultBlinkCount is how many on/off cycles a feedback overlay runs
// before yielding the buffer back to the effect or fade in progress.
const DefaultBlinkCount = 2

// feedbackState is the zero-value-safe overlay descriptor. Its zero value
// (kind == FeedbackNone) is "no feedback in progress".
type feedbackState struct {
	kind       FeedbackKind
	startMs    int64
	blinkCount int
}

// active reports whether the overlay still covers the frame at tMs, and
// if so whether this tick falls in the ON half of the blink.
func (f feedbackState) active(tMs int64) (on bool, stillActive bool) {
	if f.kind == FeedbackNone {
		return false, false
	}
	elapsed := tMs - f.startMs
	total := int64(f.blinkCount) * 2 * feedbackHalfPeriodMs
	if elapsed < 0 || elapsed >= total {
		return false, false
	}
	phase := (elapsed / feedbackHalfPeriodMs) % 2
	return phase == 0, true
}
