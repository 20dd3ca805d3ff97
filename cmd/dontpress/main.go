package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/dontpress/actuator"
	"github.com/lixenwraith/dontpress/audio"
	"github.com/lixenwraith/dontpress/config"
	"github.com/lixenwraith/dontpress/core"
	"github.com/lixenwraith/dontpress/engine"
	"github.com/lixenwraith/dontpress/event"
	"github.com/lixenwraith/dontpress/input"
	"github.com/lixenwraith/dontpress/parameter"
	"github.com/lixenwraith/dontpress/service"
	"github.com/lixenwraith/dontpress/session"
	"github.com/lixenwraith/dontpress/status"
	"github.com/lixenwraith/dontpress/terminal"
	"github.com/lixenwraith/dontpress/wincond"
)

var (
	configFlag   = flag.String("config", "", "TOML config file")
	debugFlag    = flag.Bool("debug", false, "Write logs to "+parameter.LogDir+"/"+parameter.LogFileName)
	headlessFlag = flag.Bool("headless", false, "Simulate a session without a terminal")
	pressesFlag  = flag.String("presses", "", "Headless press script, e.g. 1s,2.5s+300ms")
	durationFlag = flag.Duration("duration", 40*time.Second, "Headless game time limit")
	muteFlag     = flag.Bool("mute", false, "Start with audio muted")
	seedFlag     = flag.Int64("seed", 0, "Random seed, 0 uses config or the clock")
	fpsFlag      = flag.Int("fps", 0, "Frame rate, 0 for the default")
)

func main() {
	// Panic Recovery: ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dontpress: %v\n", err)
		os.Exit(2)
	}

	if *headlessFlag {
		edges, err := parsePresses(*pressesFlag, parameter.HeadlessStep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dontpress: -presses: %v\n", err)
			os.Exit(2)
		}
		res, err := runHeadless(cfg, edges, *durationFlag, parameter.HeadlessStep, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dontpress: %v\n", err)
			os.Exit(1)
		}
		printSummary(os.Stdout, res)
		if res.Outcome != wincond.Won {
			os.Exit(3)
		}
		return
	}

	if err := runInteractive(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "dontpress: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig layers file, environment and flags, then validates
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if *muteFlag {
		cfg.Audio.Mute = true
	}
	if *seedFlag != 0 {
		cfg.Game.Seed = *seedFlag
	}
	return cfg, cfg.Validate()
}

// frameInterval converts the -fps flag, clamped to the supported range
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		return parameter.FrameUpdateInterval
	}
	fps = max(parameter.MinFPS, min(fps, parameter.MaxFPS))
	return time.Second / time.Duration(fps)
}

func runInteractive(cfg *config.Config) error {
	keys := input.DefaultKeyTable()
	if err := keys.Apply(cfg.Keys); err != nil {
		return errors.Wrap(config.ErrInvalidConfig, err.Error())
	}

	term := terminal.NewService()
	sound := audio.NewService(cfg.Audio)

	hub := service.NewHub()
	for _, svc := range []service.Service{term, sound} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}
	if err := hub.InitAll(); err != nil {
		return err
	}
	core.SetCrashCleanup(term.Restore)
	defer core.SetCrashCleanup(nil)
	defer hub.StopAll()

	if err := hub.StartAll(); err != nil {
		return err
	}

	stage := terminal.NewStage(session.NewRand(cfg.Game.Seed))
	latch := input.NewLatch(stage.HitTest)
	router := terminal.NewRouter(latch, keys)
	player := sound.Player()

	diag := event.LogHook()
	ports := actuator.NewPorts(diag, stage, player)
	reg := status.NewRegistry()

	sess, err := session.New(cfg, ports, latch, session.WithStatus(reg), session.WithDiagnostics(diag))
	if err != nil {
		return err
	}
	tagSession(sess.ID)
	sess.OnPress(func(click int) {
		log.Printf("press %d accepted", click)
	})
	log.Printf("session start: threshold=%v clicks=%d audio=%t", cfg.WinThreshold(), len(cfg.Clicks), !sound.Disabled())

	clock := engine.NewPausableClock(nil)
	loop, err := engine.NewFrameLoop(clock, frameInterval(*fpsFlag))
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	screen := term.Screen()
	canvas := terminal.NewCanvas(screen.Size())
	showDebug := false
	ended := false

	step := func(dt time.Duration) bool {
	drain:
		for {
			select {
			case ev := <-term.Events():
				if _, ok := ev.(*tcell.EventResize); ok {
					screen.Sync()
				}
				switch router.Handle(ev) {
				case input.IntentQuit:
					return false
				case input.IntentPause:
					clock.Toggle()
				case input.IntentToggleDebug:
					showDebug = !showDebug
				case input.IntentToggleMute:
					player.ToggleMute()
				}
			default:
				break drain
			}
		}

		// Ticks continue after game over so running sequences settle
		if !sess.Tick(dt) && !ended {
			ended = true
			log.Printf("session over: %s after %d clicks", sess.Outcome(), sess.ClickIndex())
		}

		canvas.Resize(screen.Size())
		ov := terminal.Overlay{Paused: clock.IsPaused(), Muted: player.Muted()}
		if showDebug {
			ov.Debug = reg.Lines()
		}
		stage.Render(canvas, ov)
		canvas.Flush(screen)
		return true
	}

	err = loop.Run(ctx, step)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
