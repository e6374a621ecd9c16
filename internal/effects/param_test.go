package effects

import "testing"

func TestParamIncClampsAtMax(t *testing.T) {
	p := Param{Value: 250, Min: 0, Max: 255, Step: 10, Wrap: false}
	hit := p.Inc(1)
	if p.Value != 255 {
		t.Fatalf("got %d, want clamped to 255", p.Value)
	}
	if !hit {
		t.Fatal("expected limitHit on clamp")
	}
}

func TestParamIncClampsAtMin(t *testing.T) {
	p := Param{Value: 5, Min: 0, Max: 255, Step: 10, Wrap: false}
	hit := p.Inc(-1)
	if p.Value != 0 {
		t.Fatalf("got %d, want clamped to 0", p.Value)
	}
	if !hit {
		t.Fatal("expected limitHit on clamp")
	}
}

func TestParamIncWrapsAboveMax(t *testing.T) {
	p := Param{Value: 357, Min: 0, Max: 359, Step: 5, Wrap: true}
	hit := p.Inc(1)
	if hit {
		t.Fatal("wrapping params never report limitHit")
	}
	if p.Value != 2 {
		t.Fatalf("got %d, want wrapped to 2 (357+5-360)", p.Value)
	}
}

func TestParamIncWrapsBelowMin(t *testing.T) {
	p := Param{Value: 2, Min: 0, Max: 359, Step: 5, Wrap: true}
	hit := p.Inc(-1)
	if hit {
		t.Fatal("wrapping params never report limitHit")
	}
	if p.Value != 357 {
		t.Fatalf("got %d, want wrapped to 357", p.Value)
	}
}

func TestParamSetClamps(t *testing.T) {
	p := Param{Min: 0, Max: 100}
	if hit := p.Set(500); !hit {
		t.Fatal("expected limitHit")
	}
	if p.Value != 100 {
		t.Fatalf("got %d, want 100", p.Value)
	}
}

func TestParamResetRestoresDefault(t *testing.T) {
	p := Param{Value: 99, Default: 30}
	p.Reset()
	if p.Value != 30 {
		t.Fatalf("got %d, want 30", p.Value)
	}
}

func TestParamIncZeroStepIsNoOp(t *testing.T) {
	p := Param{Value: 10, Min: 0, Max: 100, Step: 0}
	if hit := p.Inc(5); hit {
		t.Fatal("zero-step param must never report limitHit")
	}
	if p.Value != 10 {
		t.Fatalf("got %d, want unchanged 10", p.Value)
	}
}
