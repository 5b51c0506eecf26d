// saber-drill runs a headless scripted drill and prints the score
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ttacon/chalk"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/engine"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/logging"
)

var (
	configFlag   = flag.String("config", "", "Simulation config file (.toml, .yaml)")
	seedFlag     = flag.Uint64("seed", 0, "Fixed seed, 0 keeps the config value")
	durationFlag = flag.Float64("duration", 60, "Simulated seconds")
	dtFlag       = flag.Float64("dt", 1.0/90, "Step size in seconds")
	modeFlag     = flag.String("mode", modeGuard, "Blade script: guard, sweep, rest, none")
	eventsFlag   = flag.Bool("events", false, "Print hits, deflections and drone states as they happen")
	jsonFlag     = flag.Bool("json", false, "Print the report as JSON")
	debugFlag    = flag.Bool("debug", false, "Log to logs/saber-drill.log")
)

func main() {
	flag.Parse()

	if f := logging.Setup(*debugFlag); f != nil {
		defer f.Close()
	}

	cfg, err := config.LoadOrDefault(*configFlag)
	if err != nil {
		fatal("Failed to load config: %v", err)
	}
	if *seedFlag != 0 {
		cfg.Sim.Seed = *seedFlag
	}

	var opts []engine.Option
	if *eventsFlag {
		opts = append(opts, engine.WithObserver(event.NewLogObserver(log.New(os.Stdout, "", 0)),
			event.EventPlayerHit, event.EventBoltDeflected, event.EventDroneStateChange))
	}

	d, err := newDrill(cfg, *modeFlag, opts...)
	if err != nil {
		fatal("%v", err)
	}
	rep, err := d.run(*durationFlag, *dtFlag)
	if err != nil {
		fatal("%v", err)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			fatal("Encode report: %v", err)
		}
		return
	}
	printReport(rep)
}

func fatal(format string, args ...any) {
	fmt.Fprintln(os.Stderr, chalk.Red.Color(fmt.Sprintf(format, args...)))
	os.Exit(1)
}

func printReport(r report) {
	fmt.Println(chalk.Bold.TextStyle(fmt.Sprintf("%s drill: %.1fs over %d frames", r.Mode, r.Stats.Elapsed, r.Stats.Frames)))
	fmt.Printf("  fired      %d\n", r.Stats.Spawned)
	fmt.Printf("  deflected  %s\n", chalk.Green.Color(fmt.Sprint(r.Score.HitsDeflected)))
	fmt.Printf("  taken      %s\n", chalk.Red.Color(fmt.Sprint(r.Score.HitsTaken)))
	fmt.Printf("  escaped    %d\n", r.Stats.Escaped)
	fmt.Printf("  in flight  %d\n", r.Stats.Live)
	fmt.Printf("  dashes     %s\n", chalk.Magenta.Color(fmt.Sprint(r.Dashes)))
	fmt.Printf("  block rate %s\n", chalk.Cyan.Color(fmt.Sprintf("%.0f%%", r.BlockRate*100)))
}
