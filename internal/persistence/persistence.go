package persistence

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Namespace and blob keys per spec §6. A third key, "ota", is written by
// the OTA collaborator and is out of scope here.
const (
	Namespace   = "led_config"
	KeyVolatile = "volatile"
	KeyStatic   = "static"
)

// DefaultStaticFunc builds the compile-time-default StaticConfig,
// typically sourced from the effect registry's declared param defaults.
type DefaultStaticFunc func() StaticConfig

// Persistence loads and saves VolatileConfig/StaticConfig through an
// opaque Store, installing defaults on a miss or layout mismatch per spec
// §4.10 and the error-handling taxonomy in §7.
type Persistence struct {
	store         Store
	numEffects    int
	defaultStatic DefaultStaticFunc
}

// New returns a Persistence backed by store. numEffects is the current
// effect count, used to detect a stale StaticConfig.EffectParams layout
// after a firmware update adds or removes effects.
func New(store Store, numEffects int, defaultStatic DefaultStaticFunc) *Persistence {
	return &Persistence{store: store, numEffects: numEffects, defaultStatic: defaultStatic}
}

// LoadResult carries the loaded configs plus whether either was
// substituted with defaults, so the caller can treat the boot as
// first-run.
type LoadResult struct {
	Volatile          VolatileConfig
	Static            StaticConfig
	VolatileDefaulted bool
	StaticDefaulted   bool
}

// Load reads both blobs. A missing blob, a decode failure, a param-count
// mismatch against the current effect registry (for StaticConfig), or a
// Store.Get failure all fall back to defaults rather than failing the
// boot (spec §4.10, §7: "defaults are installed on read failures"). A
// volatile-read failure does not abort the static-read attempt; both are
// always attempted and both fall back independently.
func (p *Persistence) Load() (LoadResult, error) {
	var res LoadResult
	var firstErr error

	raw, ok, err := p.store.Get(Namespace, KeyVolatile)
	switch {
	case err != nil:
		firstErr = fmt.Errorf("persistence: read volatile: %w", err)
		res.Volatile = VolatileConfig{Brightness: 255}
		res.VolatileDefaulted = true
	case !ok:
		res.Volatile = VolatileConfig{Brightness: 255}
		res.VolatileDefaulted = true
	default:
		if uerr := toml.Unmarshal(raw, &res.Volatile); uerr != nil {
			res.Volatile = VolatileConfig{Brightness: 255}
			res.VolatileDefaulted = true
		}
	}

	raw, ok, err = p.store.Get(Namespace, KeyStatic)
	switch {
	case err != nil:
		if firstErr == nil {
			firstErr = fmt.Errorf("persistence: read static: %w", err)
		}
		res.Static = p.defaultStatic()
		res.StaticDefaulted = true
	case !ok:
		res.Static = p.defaultStatic()
		res.StaticDefaulted = true
	default:
		if uerr := toml.Unmarshal(raw, &res.Static); uerr != nil || len(res.Static.EffectParams) != p.numEffects {
			res.Static = p.defaultStatic()
			res.StaticDefaulted = true
		}
	}

	return res, firstErr
}

// SaveVolatile atomically commits v. Spec §4.10: issued periodically and
// on mode-returning transitions by the interaction FSM.
func (p *Persistence) SaveVolatile(v VolatileConfig) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return fmt.Errorf("persistence: encode volatile: %w", err)
	}
	if err := p.store.Set(Namespace, KeyVolatile, buf.Bytes()); err != nil {
		return fmt.Errorf("persistence: write volatile: %w", err)
	}
	return nil
}

// SaveStatic atomically commits s. Spec §4.10: issued on explicit user
// save of EffectSetup or SystemSetup.
func (p *Persistence) SaveStatic(s StaticConfig) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("persistence: encode static: %w", err)
	}
	if err := p.store.Set(Namespace, KeyStatic, buf.Bytes()); err != nil {
		return fmt.Errorf("persistence: write static: %w", err)
	}
	return nil
}
