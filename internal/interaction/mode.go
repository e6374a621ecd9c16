// Package interaction implements the interaction FSM (C6): the five-state
// machine (Off, Display, EffectSelect, EffectSetup, SystemSetup) that
// turns input events into LedCommands, with per-mode idle timeouts and
// transient feedback-overlay dispatch.
package interaction

import "fmt"

// Mode is the closed InteractionMode set from spec §3.
type Mode uint8

const (
	ModeOff Mode = iota
	ModeDisplay
	ModeEffectSelect
	ModeEffectSetup
	ModeSystemSetup
)

func (m Mode) String() string {
	switch m {
	case ModeOff:
		return "Off"
	case ModeDisplay:
		return "Display"
	case ModeEffectSelect:
		return "EffectSelect"
	case ModeEffectSetup:
		return "EffectSetup"
	case ModeSystemSetup:
		return "SystemSetup"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}
