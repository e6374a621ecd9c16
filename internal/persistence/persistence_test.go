package persistence

import (
	"errors"
	"testing"
)

// failingStore is a Store double whose Get always fails, simulating a
// backing-medium I/O error (e.g. flash read failure) rather than a miss.
type failingStore struct{}

func (failingStore) Get(namespace, key string) ([]byte, bool, error) {
	return nil, false, errors.New("simulated read failure")
}

func (failingStore) Set(namespace, key string, value []byte) error {
	return nil
}

func defaultStatic() StaticConfig {
	return StaticConfig{
		MinBrightness:    10,
		ColorCorrectionR: 255,
		ColorCorrectionG: 255,
		ColorCorrectionB: 255,
		EffectParams:     [][]int16{{1, 2}, {3}},
	}
}

func TestLoadDefaultsOnFirstRun(t *testing.T) {
	p := New(NewMemStore(), 2, defaultStatic)
	res, err := p.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.VolatileDefaulted || !res.StaticDefaulted {
		t.Fatalf("expected both blobs defaulted on a first run, got %+v", res)
	}
	if res.Volatile.Brightness != 255 {
		t.Fatalf("got default brightness %d, want 255", res.Volatile.Brightness)
	}
	if res.Static.MinBrightness != 10 {
		t.Fatalf("got default MinBrightness %d, want 10", res.Static.MinBrightness)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	store := NewMemStore()
	p := New(store, 2, defaultStatic)

	v := VolatileConfig{IsOn: true, Brightness: 77, EffectIndex: 1}
	s := StaticConfig{
		MinBrightness:    5,
		LedOffsetBegin:   2,
		LedOffsetEnd:     3,
		ColorCorrectionR: 200,
		ColorCorrectionG: 210,
		ColorCorrectionB: 220,
		EffectParams:     [][]int16{{10, 20}, {30}},
	}
	if err := p.SaveVolatile(v); err != nil {
		t.Fatalf("SaveVolatile: %v", err)
	}
	if err := p.SaveStatic(s); err != nil {
		t.Fatalf("SaveStatic: %v", err)
	}

	res, err := p.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.VolatileDefaulted || res.StaticDefaulted {
		t.Fatalf("expected neither blob defaulted after a save, got %+v", res)
	}
	if res.Volatile != v {
		t.Fatalf("got %+v, want %+v", res.Volatile, v)
	}
	if res.Static.MinBrightness != s.MinBrightness || len(res.Static.EffectParams) != 2 {
		t.Fatalf("got %+v, want %+v", res.Static, s)
	}
}

func TestLoadFallsBackOnLayoutMismatch(t *testing.T) {
	store := NewMemStore()
	p := New(store, 2, defaultStatic)

	stale := StaticConfig{MinBrightness: 99, EffectParams: [][]int16{{1}}} // only 1 effect's worth
	if err := p.SaveStatic(stale); err != nil {
		t.Fatalf("SaveStatic: %v", err)
	}

	res, err := p.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !res.StaticDefaulted {
		t.Fatal("a param-count mismatch against the current registry should fall back to defaults")
	}
	if res.Static.MinBrightness != 10 {
		t.Fatalf("got %d, want the compiled-in default 10, not the stale 99", res.Static.MinBrightness)
	}
}

func TestLoadDefaultsOnStoreReadFailure(t *testing.T) {
	p := New(failingStore{}, 2, defaultStatic)

	res, err := p.Load()
	if err == nil {
		t.Fatal("expected Load to surface the store's read error to the caller")
	}
	if !res.VolatileDefaulted || !res.StaticDefaulted {
		t.Fatalf("a Store.Get failure must still install defaults for both blobs, got %+v", res)
	}
	if res.Volatile.Brightness != 255 {
		t.Fatalf("got default brightness %d, want 255", res.Volatile.Brightness)
	}
	if res.Static.MinBrightness != 10 {
		t.Fatalf("got default MinBrightness %d, want the compiled-in default 10", res.Static.MinBrightness)
	}
}

func TestLoadFallsBackOnCorruptBlob(t *testing.T) {
	store := NewMemStore()
	if err := store.Set(Namespace, KeyStatic, []byte("not valid toml {{{")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	p := New(store, 2, defaultStatic)

	res, err := p.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !res.StaticDefaulted {
		t.Fatal("a corrupt blob should fall back to defaults rather than failing the boot")
	}
}
