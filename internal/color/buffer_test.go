package color

import "testing"

func TestNewBufferLen(t *testing.T) {
	b := NewBuffer(10, RepresentationRGB)
	if b.Len() != 10 {
		t.Fatalf("got len %d, want 10", b.Len())
	}
}

func TestBufferLenFollowsRepresentation(t *testing.T) {
	b := NewBuffer(5, RepresentationHSV)
	if b.Len() != 5 {
		t.Fatalf("HSV buffer: got len %d, want 5", b.Len())
	}
}

func TestResizeReallocatesBothSlices(t *testing.T) {
	b := NewBuffer(4, RepresentationRGB)
	b.Resize(8)
	if len(b.RGB) != 8 || len(b.HSV) != 8 {
		t.Fatalf("resize should grow both slices, got rgb=%d hsv=%d", len(b.RGB), len(b.HSV))
	}
}

func TestResizeNoOpWhenLengthUnchanged(t *testing.T) {
	b := NewBuffer(4, RepresentationRGB)
	b.RGB[0] = RGB{1, 2, 3}
	b.Resize(4)
	if b.RGB[0] != (RGB{1, 2, 3}) {
		t.Fatalf("resize to the same length must not reallocate and lose data")
	}
}

func TestFillSwitchesToRGB(t *testing.T) {
	b := NewBuffer(3, RepresentationHSV)
	b.Fill(RGB{10, 20, 30})
	if b.Representation != RepresentationRGB {
		t.Fatalf("Fill must switch representation to RGB")
	}
	for i, c := range b.RGB {
		if c != (RGB{10, 20, 30}) {
			t.Fatalf("pixel %d: got %+v", i, c)
		}
	}
}

func TestScaleBrightnessRGB(t *testing.T) {
	b := NewBuffer(2, RepresentationRGB)
	b.Fill(RGB{255, 255, 255})
	b.ScaleBrightness(0)
	for i, c := range b.RGB {
		if c != (RGB{}) {
			t.Fatalf("pixel %d should be blanked at zero brightness, got %+v", i, c)
		}
	}
}

func TestScaleBrightnessHSV(t *testing.T) {
	b := NewBuffer(2, RepresentationHSV)
	for i := range b.HSV {
		b.HSV[i] = HSV{H: 100, S: 200, V: 255}
	}
	b.ScaleBrightness(0)
	for i, c := range b.HSV {
		if c.V != 0 {
			t.Fatalf("pixel %d: value should be zeroed, got %d", i, c.V)
		}
		if c.H != 100 || c.S != 200 {
			t.Fatalf("pixel %d: hue/sat must be untouched, got %+v", i, c)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBuffer(3, RepresentationRGB)
	b.Fill(RGB{1, 2, 3})
	clone := b.Clone()
	clone.RGB[0] = RGB{9, 9, 9}
	if b.RGB[0] == clone.RGB[0] {
		t.Fatalf("clone must not alias the original buffer's backing array")
	}
}
