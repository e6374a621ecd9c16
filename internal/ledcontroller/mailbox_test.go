package ledcontroller

import (
	"testing"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/color"
)

func TestMailboxTakeBeforePublish(t *testing.T) {
	m := &Mailbox{}
	if _, ok := m.Take(); ok {
		t.Fatal("expected no frame before the first Publish")
	}
}

func TestMailboxLatestWins(t *testing.T) {
	m := &Mailbox{}
	first := color.NewBuffer(3, color.RepresentationRGB)
	first.Fill(color.RGB{R: 1})
	second := color.NewBuffer(3, color.RepresentationRGB)
	second.Fill(color.RGB{R: 2})

	m.Publish(first)
	m.Publish(second)

	got, ok := m.Take()
	if !ok {
		t.Fatal("expected a published frame")
	}
	if got.RGB[0] != (color.RGB{R: 2}) {
		t.Fatalf("expected the latest published frame, got %+v", got.RGB[0])
	}
}

func TestMailboxTakeDoesNotClearSlot(t *testing.T) {
	m := &Mailbox{}
	buf := color.NewBuffer(1, color.RepresentationRGB)
	m.Publish(buf)

	m.Take()
	_, ok := m.Take()
	if !ok {
		t.Fatal("repeated Take calls without an intervening Publish should still report a frame")
	}
}
