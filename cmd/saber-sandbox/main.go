// saber-sandbox is a terminal drill: the drone fires from up-screen and the blade is steered by keyboard
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/saber-drill/audio"
	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/engine"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/logging"
	"github.com/lixenwraith/saber-drill/parameter"
)

var (
	configFlag = flag.String("config", "", "Simulation config file (.toml, .yaml)")
	seedFlag   = flag.Uint64("seed", 0, "Fixed seed, 0 keeps the config value")
	debugFlag  = flag.Bool("debug", false, "Log to logs/saber-drill.log")
	soundFlag  = flag.Bool("sound", false, "Play impact cues")
	autoFlag   = flag.Bool("auto", false, "Start with the blade on autopilot")
)

func main() {
	flag.Parse()

	if f := logging.Setup(*debugFlag); f != nil {
		defer f.Close()
	}

	cfg, err := config.LoadOrDefault(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Sim.Seed = *seedFlag
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing so the trace stays readable
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSABER-SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	screen.HideCursor()

	v := newView(screen, parameter.SandboxCellsPerUnit)
	opts := []engine.Option{
		engine.WithScene(v),
		engine.WithObserver(v, event.EventPlayerHit, event.EventBoltDeflected),
	}
	if *debugFlag {
		opts = append(opts, engine.WithObserver(event.NewLogObserver(log.Default())))
	}

	var cues *audio.CuePlayer
	if *soundFlag {
		cues = startCues()
		if cues != nil {
			defer cues.Close()
			opts = append(opts, engine.WithObserver(cues))
		}
	}

	sim, err := engine.New(cfg, opts...)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to create simulation: %v\n", err)
		os.Exit(1)
	}

	sb := newSandbox(screen, sim, v, cues, cfg.Blade.HalfLength())
	sb.auto = *autoFlag
	sb.run()

	screen.Fini()
	st := sim.Stats()
	fmt.Printf("%.1fs drilled: %d fired, %d deflected, %d taken\n", st.Elapsed, st.Spawned, st.Deflections, st.Hits)
}

// startCues returns nil when audio cannot start; the drill runs silent
func startCues() *audio.CuePlayer {
	cueCfg := audio.LoadCueConfig()
	cueCfg.Enabled = true
	cues, err := audio.NewCuePlayer(cueCfg)
	if err != nil {
		log.Printf("Audio disabled: %v", err)
		return nil
	}
	if err := cues.Start(); err != nil {
		// Non-fatal, drill can run without sound
		log.Printf("Audio initialization failed: %v", err)
		return nil
	}
	return cues
}

// run owns the screen until the user quits
func (s *sandbox) run() {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / parameter.SandboxTickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !s.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.tick(dt)
			s.screen.Show()
		}
	}
}
