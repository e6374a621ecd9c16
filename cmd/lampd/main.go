// Command lampd is the firmware entrypoint: it reads the boot config,
// binds the button, encoder and switch decoders to real GPIO lines (the
// touch decoder runs against a stub sensor), and runs the full
// pipeline from raw pin edges through to the LED mailbox. The downstream
// wire driver that actually paints the strip from the mailbox is an
// external collaborator (spec §1); this binary stops at publishing frames.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/buttondecoder"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/commandbus"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/config"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/effects"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/encoderdecoder"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/eventmux"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/halgpio"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/interaction"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/ledcontroller"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/peer"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/persistence"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/switchdecoder"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/touchdecoder"
)

// gpiocdevChip is the Linux gpiochip device lampd requests all its lines
// from. Multi-chip boards would need this per-pin; this unit wires every
// line off the SoC's primary controller.
const gpiocdevChip = "gpiochip0"

func main() {
	bootID := uuid.New()
	log.SetPrefix(fmt.Sprintf("lampd[%s] ", bootID.String()[:8]))

	cfgPath := "lampd.toml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	boot, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("config: %v, falling back to defaults", err)
		boot = config.Default()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine := effects.NewDefaultEngine()
	ctl := ledcontroller.NewController(engine, boot.NLeds, boot.MinBrightness)

	store, err := newStore(boot)
	if err != nil {
		log.Fatalf("persistence store: %v", err)
	}
	pstore := persistence.New(store, engine.NumEffects(), func() persistence.StaticConfig {
		return ledcontroller.DefaultStaticConfig(engine, boot.MinBrightness)
	})
	loaded, err := pstore.Load()
	if err != nil {
		// A read failure still comes back with defaults installed (spec
		// §4.10, §7): log it and keep booting rather than crash the unit.
		log.Printf("persistence load: %v", err)
	}
	if loaded.VolatileDefaulted || loaded.StaticDefaulted {
		log.Printf("persistence: booting with defaults (volatile=%v static=%v)",
			loaded.VolatileDefaulted, loaded.StaticDefaulted)
	}
	ctl.ApplyConfig(loaded.Volatile, loaded.Static)

	buttonCh := make(chan events.ButtonEvent, 4)
	encoderCh := make(chan events.EncoderEvent, 4)
	touchCh := make(chan events.TouchEvent, 4)
	switchCh := make(chan events.SwitchEvent, 4)
	peerCh := make(chan events.PeerEvent, 4)
	integrated := make(chan events.IntegratedEvent, 8)
	fsmOut := make(chan events.LedCommand, 8)
	ctlIn := make(chan events.LedCommand, 8)

	runDecoders(ctx, boot, buttonCh, encoderCh, touchCh, switchCh)

	go func() {
		inputs := eventmux.Inputs{Button: buttonCh, Encoder: encoderCh, Touch: touchCh, Switch: switchCh}
		if !boot.IsMaster {
			inputs.Peer = peerCh
		}
		if err := eventmux.Run(ctx, inputs, integrated); err != nil && ctx.Err() == nil {
			log.Printf("eventmux: %v", err)
		}
	}()

	fsm := interaction.New(ctl, boot.IsMaster, interaction.DefaultConfig())
	fsm.Persist = pstore
	go func() {
		if err := fsm.Run(ctx, integrated, fsmOut); err != nil && ctx.Err() == nil {
			log.Printf("interaction: %v", err)
		}
	}()

	if boot.IsMaster {
		peerOut := make(chan events.LedCommand, 8)
		go func() {
			if err := commandbus.Tee(ctx, fsmOut, ctlIn, peerOut); err != nil && ctx.Err() == nil {
				log.Printf("commandbus: %v", err)
			}
		}()
		master := &peer.Master{Transmitter: newTransmitter(boot), EgressEnabled: fsm.EgressEnabled}
		go func() {
			if err := master.Run(ctx, peerOut); err != nil && ctx.Err() == nil {
				log.Printf("peer master: %v", err)
			}
		}()
	} else {
		go func() {
			if err := commandbus.Tee(ctx, fsmOut, ctlIn); err != nil && ctx.Err() == nil {
				log.Printf("commandbus: %v", err)
			}
		}()
		go runPeerReceiver(ctx, peerCh)
	}

	go func() {
		for cmd := range ctlIn {
			ctl.HandleCommand(cmd)
		}
	}()

	go func() {
		if err := ctl.Run(ctx, time.Now); err != nil && ctx.Err() == nil {
			log.Printf("renderer: %v", err)
		}
	}()

	log.Printf("lampd running: n_leds=%d is_master=%v", boot.NLeds, boot.IsMaster)
	<-ctx.Done()
	log.Printf("shutting down")
}

// runDecoders binds the configured GPIO lines and starts the four input
// decoder tasks. A decoder whose pins are unconfigured gets
// halgpio.Invalid, whose In() fails, so that decoder's Run returns the
// error at once, it is logged, and that input stays inert.
func runDecoders(ctx context.Context, boot config.Boot,
	buttonCh chan<- events.ButtonEvent, encoderCh chan<- events.EncoderEvent,
	touchCh chan<- events.TouchEvent, switchCh chan<- events.SwitchEvent) {

	buttonPin := openLine(boot.Pins.ButtonPin)
	bd := buttondecoder.NewDecoder(buttonPin, buttondecoder.Config{
		DebouncePress:   time.Duration(boot.ButtonDebouncePressMs) * time.Millisecond,
		DebounceRelease: time.Duration(boot.ButtonDebounceReleaseMs) * time.Millisecond,
		DoubleClick:     time.Duration(boot.ButtonDoubleClickMs) * time.Millisecond,
		Long:            time.Duration(boot.ButtonLongMs) * time.Millisecond,
		VeryLong:        time.Duration(boot.ButtonVeryLongMs) * time.Millisecond,
		PollInterval:    10 * time.Millisecond,
		ActiveHigh:      true,
	})
	go func() {
		if err := bd.Run(ctx, buttonCh); err != nil && ctx.Err() == nil {
			log.Printf("buttondecoder: %v", err)
		}
	}()

	encA, encB := openLine(boot.Pins.EncoderAPin), openLine(boot.Pins.EncoderBPin)
	ed := encoderdecoder.NewDecoder(encA, encB, encoderdecoder.Config{
		Resolution:         encoderdecoder.FullStep,
		AccelEnabled:       true,
		AccelGapMs:         boot.EncoderAccelGapMs,
		AccelMaxMultiplier: int(boot.EncoderAccelMaxMultiplier),
		FlipDirection:      boot.EncoderFlipDirection,
	})
	if boot.EncoderHalfStep {
		ed.Resolution = encoderdecoder.HalfStep
	}
	go func() {
		if err := ed.Run(ctx, encoderCh); err != nil && ctx.Err() == nil {
			log.Printf("encoderdecoder: %v", err)
		}
	}()

	switchPin := openLine(boot.Pins.SwitchPin)
	sd := switchdecoder.NewDecoder(switchPin, switchdecoder.DefaultConfig())
	go func() {
		if err := sd.Run(ctx, switchCh); err != nil && ctx.Err() == nil {
			log.Printf("switchdecoder: %v", err)
		}
	}()

	// The capacitive touch pad's front end sits on an I2C-style register
	// bus, a collaborator this unit does not have wired yet; it runs
	// against a sensor stub that never reports a press.
	td := touchdecoder.NewDecoder(noopSensor{}, touchdecoder.DefaultConfig())
	go func() {
		if err := td.Run(ctx, touchCh); err != nil && ctx.Err() == nil {
			log.Printf("touchdecoder: %v", err)
		}
	}()
}

type noopSensor struct{}

func (noopSensor) Read() (uint16, error) { return 0, nil }

// openLine requests the pin config names as a gpiocdev line offset on
// gpiocdevChip. Pins are configured as line offsets (e.g. "17"), not
// kernel line names, to keep the boot config free of a name-to-offset
// lookup. An empty string (unwired pin) or a request failure both fall
// back to halgpio.Invalid, on which the decoder's Run stops with a
// pin-configuration error.
func openLine(offsetStr string) halgpio.PinIn {
	if offsetStr == "" {
		return halgpio.Invalid
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		log.Printf("gpio: pin %q is not a line offset: %v", offsetStr, err)
		return halgpio.Invalid
	}
	pin, err := newGPIOCDevPin(gpiocdevChip, offset)
	if err != nil {
		log.Printf("gpio: requesting line %d: %v", offset, err)
		return halgpio.Invalid
	}
	return pin
}

func newStore(boot config.Boot) (persistence.Store, error) {
	return persistence.NewMemStore(), nil
}

func newTransmitter(boot config.Boot) peer.Transmitter {
	return loggingTransmitter{}
}

// loggingTransmitter stands in for the real peer link (ESP-NOW or similar
// radio broadcast) until that hardware binding is wired; it only logs
// each outgoing frame, matching spec §5's "best-effort, no retry" contract.
type loggingTransmitter struct{}

func (loggingTransmitter) Send(payload []byte) error {
	log.Printf("peer tx: % x", payload)
	return nil
}

// runPeerReceiver would decode inbound frames from the radio link and feed
// peer.HandlePayload; no receive-side hardware binding exists yet, so this
// just blocks until shutdown.
func runPeerReceiver(ctx context.Context, out chan<- events.PeerEvent) {
	<-ctx.Done()
}
