package halgpio

import "testing"

func TestLevelString(t *testing.T) {
	if Low.String() != "Low" {
		t.Fatalf("got %q", Low.String())
	}
	if High.String() != "High" {
		t.Fatalf("got %q", High.String())
	}
}

func TestPullString(t *testing.T) {
	cases := map[Pull]string{
		Float:        "Float",
		Down:         "Down",
		Up:           "Up",
		PullNoChange: "PullNoChange",
	}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Fatalf("Pull(%d): got %q, want %q", p, got, want)
		}
	}
	if got := Pull(99).String(); got != "Pull(99)" {
		t.Fatalf("out-of-range Pull: got %q", got)
	}
}

func TestEdgeString(t *testing.T) {
	cases := map[Edge]string{
		NoEdge:  "NoEdge",
		Rising:  "Rising",
		Falling: "Falling",
		Both:    "Both",
	}
	for e, want := range cases {
		if got := e.String(); got != want {
			t.Fatalf("Edge(%d): got %q, want %q", e, got, want)
		}
	}
	if got := Edge(99).String(); got != "Edge(99)" {
		t.Fatalf("out-of-range Edge: got %q", got)
	}
}

func TestInvalidPinNeverReadyOrEdging(t *testing.T) {
	if Invalid.Read() != Low {
		t.Fatal("Invalid pin should always read Low")
	}
	if Invalid.WaitForEdge(0) {
		t.Fatal("Invalid pin should never report an edge")
	}
	if err := Invalid.In(Float, NoEdge); err == nil {
		t.Fatal("Invalid pin should refuse to be configured")
	}
}
