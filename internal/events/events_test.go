package events

import "testing"

func TestCommandKindString(t *testing.T) {
	if got := CmdSetBrightness.String(); got != "SetBrightness" {
		t.Fatalf("got %q", got)
	}
	if got := CommandKind(numCommandKinds + 5).String(); got == "" {
		t.Fatal("out-of-range CommandKind should still stringify")
	}
}

func TestCommandKindIsFeedback(t *testing.T) {
	feedback := []CommandKind{CmdFeedbackGreen, CmdFeedbackRed, CmdFeedbackBlue, CmdFeedbackEffectColor, CmdFeedbackLimit}
	for _, k := range feedback {
		if !k.IsFeedback() {
			t.Fatalf("%v should be a feedback command", k)
		}
	}
	nonFeedback := []CommandKind{CmdTurnOn, CmdSetEffect, CmdSaveConfig, CmdButtonError}
	for _, k := range nonFeedback {
		if k.IsFeedback() {
			t.Fatalf("%v should not be a feedback command", k)
		}
	}
}

func TestCommandKindOrdinalsAreStableForWireEncoding(t *testing.T) {
	// The ordinal is the wire tag byte (peer.Marshal); any reordering here
	// would silently break replication between mismatched builds.
	if CmdTurnOff != 0 || CmdTurnOn != 1 || CmdButtonError != numCommandKinds-1 {
		t.Fatal("CommandKind ordinals must not be reordered")
	}
}

func TestButtonEventKindString(t *testing.T) {
	cases := map[ButtonEventKind]string{
		ButtonSingle:   "Single",
		ButtonDouble:   "Double",
		ButtonLong:     "Long",
		ButtonVeryLong: "VeryLong",
		ButtonTimeout:  "Timeout",
		ButtonError:    "Error",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("ButtonEventKind(%d): got %q, want %q", k, got, want)
		}
	}
	if got := ButtonEventKind(250).String(); got != "ButtonEventKind(250)" {
		t.Fatalf("got %q", got)
	}
}

func TestSourceString(t *testing.T) {
	cases := map[Source]string{
		SourceButton:  "Button",
		SourceEncoder: "Encoder",
		SourceTouch:   "Touch",
		SourceSwitch:  "Switch",
		SourcePeer:    "Peer",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("Source(%d): got %q, want %q", s, got, want)
		}
	}
	if got := Source(250).String(); got != "Source(250)" {
		t.Fatalf("got %q", got)
	}
}

func TestTouchEventKindString(t *testing.T) {
	if TouchPress.String() != "Press" || TouchHold.String() != "Hold" {
		t.Fatalf("got %q / %q", TouchPress.String(), TouchHold.String())
	}
	if got := TouchEventKind(250).String(); got != "TouchEventKind(250)" {
		t.Fatalf("got %q", got)
	}
}
