// Command lampsim runs the full interactive control and rendering
// pipeline against simulated inputs typed at a terminal, rendering frames
// as xterm 256-color blocks instead of driving real LED hardware. It is a
// development and demo entrypoint; cmd/lampd is the firmware build.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aluiziotomazelli/led-lamp-sub000/internal/commandbus"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/config"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/effects"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/events"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/eventmux"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/halsim"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/interaction"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/ledcontroller"
	"github.com/aluiziotomazelli/led-lamp-sub000/internal/persistence"
)

func main() {
	cfg := config.Default()
	if len(os.Args) > 1 {
		loaded, err := config.Load(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "lampsim: config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	engine := effects.NewDefaultEngine()
	ctl := ledcontroller.NewController(engine, cfg.NLeds, cfg.MinBrightness)

	store := persistence.NewMemStore()
	pstore := persistence.New(store, engine.NumEffects(), func() persistence.StaticConfig {
		return ledcontroller.DefaultStaticConfig(engine, cfg.MinBrightness)
	})
	loaded, err := pstore.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lampsim: persistence load:", err)
	}
	ctl.ApplyConfig(loaded.Volatile, loaded.Static)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	buttonCh := make(chan events.ButtonEvent, 4)
	encoderCh := make(chan events.EncoderEvent, 4)
	touchCh := make(chan events.TouchEvent, 4)
	switchCh := make(chan events.SwitchEvent, 4)
	integrated := make(chan events.IntegratedEvent, 8)
	fsmOut := make(chan events.LedCommand, 8)
	ctlIn := make(chan events.LedCommand, 8)

	go func() {
		err := eventmux.Run(ctx, eventmux.Inputs{
			Button:  buttonCh,
			Encoder: encoderCh,
			Touch:   touchCh,
			Switch:  switchCh,
		}, integrated)
		if err != nil && ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "lampsim: eventmux:", err)
		}
	}()

	fsm := interaction.New(ctl, cfg.IsMaster, interaction.DefaultConfig())
	fsm.Persist = pstore
	go func() {
		if err := fsm.Run(ctx, integrated, fsmOut); err != nil && ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "lampsim: fsm:", err)
		}
	}()

	go func() {
		if err := commandbus.Tee(ctx, fsmOut, ctlIn); err != nil && ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "lampsim: commandbus:", err)
		}
	}()
	go func() {
		for cmd := range ctlIn {
			ctl.HandleCommand(cmd)
		}
	}()

	go func() {
		if err := ctl.Run(ctx, time.Now); err != nil && ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "lampsim: renderer:", err)
		}
	}()

	r, g, b := ctl.ColorCorrection()
	driver := &halsim.TerminalDriver{
		Out: os.Stdout, Mailbox: ctl.Mailbox,
		ColorCorrectionR: r, ColorCorrectionG: g, ColorCorrectionB: b,
	}
	go func() {
		if err := driver.Run(ctx, ledcontroller.RenderTick); err != nil && ctx.Err() == nil {
			fmt.Fprintln(os.Stderr, "lampsim: display:", err)
		}
	}()

	fmt.Println("lampsim: o=click d=double l=long v=verylong +/-=encoder t=touch s=switch q=quit, Enter to apply")
	reader := bufio.NewReader(os.Stdin)
	switchClosed := false
	for {
		line, rerr := reader.ReadString('\n')
		for _, r := range strings.TrimSpace(line) {
			now := time.Now().UnixMilli()
			switch r {
			case 'o':
				buttonCh <- events.ButtonEvent{Kind: events.ButtonSingle, Timestamp: now}
			case 'd':
				buttonCh <- events.ButtonEvent{Kind: events.ButtonDouble, Timestamp: now}
			case 'l':
				buttonCh <- events.ButtonEvent{Kind: events.ButtonLong, Timestamp: now}
			case 'v':
				buttonCh <- events.ButtonEvent{Kind: events.ButtonVeryLong, Timestamp: now}
			case '+':
				encoderCh <- events.EncoderEvent{Steps: 1, Timestamp: now}
			case '-':
				encoderCh <- events.EncoderEvent{Steps: -1, Timestamp: now}
			case 't':
				touchCh <- events.TouchEvent{Kind: events.TouchPress, Timestamp: now}
			case 's':
				switchClosed = !switchClosed
				switchCh <- events.SwitchEvent{IsClosed: switchClosed, Timestamp: now}
			case 'q':
				cancel()
				return
			}
		}
		if rerr != nil {
			cancel()
			return
		}
	}
}
