// Package config loads the bootstrap system-topology configuration: pin
// mapping, peer addressing, strip length, and timing overrides layered
// over each component's compile-time defaults. This is the one piece of
// the core that is meant to be hand-edited per physical unit.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// PinMap names the GPIO lines the input decoders bind to at boot. The
// strings are resolved against the concrete GPIO chip by the caller (see
// cmd/lampd), not by this package.
type PinMap struct {
	ButtonPin   string `toml:"button_pin"`
	EncoderAPin string `toml:"encoder_a_pin"`
	EncoderBPin string `toml:"encoder_b_pin"`
	SwitchPin   string `toml:"switch_pin"`
	TouchIRQPin string `toml:"touch_irq_pin"`
}

// Boot is the system topology config read once at startup.
type Boot struct {
	NLeds    int      `toml:"n_leds"`
	IsMaster bool     `toml:"is_master"`
	PeerMACs []string `toml:"peer_macs"`
	Pins     PinMap   `toml:"pins"`

	MinBrightness uint8 `toml:"min_brightness"`

	ButtonDebouncePressMs   int64 `toml:"button_debounce_press_ms"`
	ButtonDebounceReleaseMs int64 `toml:"button_debounce_release_ms"`
	ButtonDoubleClickMs     int64 `toml:"button_double_click_ms"`
	ButtonLongMs            int64 `toml:"button_long_ms"`
	ButtonVeryLongMs        int64 `toml:"button_very_long_ms"`

	EncoderAccelGapMs         int64 `toml:"encoder_accel_gap_ms"`
	EncoderAccelMaxMultiplier int32 `toml:"encoder_accel_max_multiplier"`
	EncoderFlipDirection      bool  `toml:"encoder_flip_direction"`
	EncoderHalfStep           bool  `toml:"encoder_half_step"`
}

// Load reads and parses a TOML boot config from path, filling any timing
// field the file leaves at zero with spec §6's default.
func Load(path string) (Boot, error) {
	var b Boot
	if _, err := toml.DecodeFile(path, &b); err != nil {
		return Boot{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if b.NLeds <= 0 {
		return Boot{}, fmt.Errorf("config: n_leds must be positive, got %d", b.NLeds)
	}
	b.applyTimingDefaults()
	return b, nil
}

// Default returns a minimal single-unit, master, 60-LED configuration with
// spec §6's timing defaults, for the simulator entrypoint and as lampd's
// fallback when no boot file is supplied or it fails to load.
func Default() Boot {
	b := Boot{
		NLeds:         60,
		IsMaster:      true,
		MinBrightness: 10,
	}
	b.applyTimingDefaults()
	return b
}

// applyTimingDefaults fills every still-zero timing/acceleration field with
// spec §6's default, so a boot file that only overrides pins and LED count
// (or omits timing fields entirely) still drives real debounce/acceleration
// behavior instead of zero-duration decoders.
func (b *Boot) applyTimingDefaults() {
	if b.ButtonDebouncePressMs == 0 {
		b.ButtonDebouncePressMs = 50
	}
	if b.ButtonDebounceReleaseMs == 0 {
		b.ButtonDebounceReleaseMs = 30
	}
	if b.ButtonDoubleClickMs == 0 {
		b.ButtonDoubleClickMs = 180
	}
	if b.ButtonLongMs == 0 {
		b.ButtonLongMs = 1000
	}
	if b.ButtonVeryLongMs == 0 {
		b.ButtonVeryLongMs = 3000
	}
	if b.EncoderAccelGapMs == 0 {
		b.EncoderAccelGapMs = 50
	}
	if b.EncoderAccelMaxMultiplier == 0 {
		b.EncoderAccelMaxMultiplier = 5
	}
}
