// saber-server hosts one drill simulation per WebSocket session
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"

	"github.com/lixenwraith/saber-drill/config"
	"github.com/lixenwraith/saber-drill/engine"
	"github.com/lixenwraith/saber-drill/event"
	"github.com/lixenwraith/saber-drill/logging"
	"github.com/lixenwraith/saber-drill/network"
	"github.com/lixenwraith/saber-drill/parameter"
)

var (
	addrFlag   = flag.String("addr", parameter.ServerAddress, "Listen address")
	configFlag = flag.String("config", "", "Simulation config file (.toml, .yaml)")
	seedFlag   = flag.Uint64("seed", 0, "Fixed seed for every session, 0 keeps the config value")
	debugFlag  = flag.Bool("debug", false, "Log to logs/saber-drill.log, including per-event lines")
	accessFlag = flag.Bool("access-log", true, "Write combined access log to stdout")
)

func main() {
	flag.Parse()

	if f := logging.Setup(*debugFlag); f != nil {
		defer f.Close()
	} else {
		// Headless host, stderr is free
		log.SetOutput(os.Stderr)
	}

	cfg, err := config.LoadOrDefault(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Sim.Seed = *seedFlag
	}

	factory := func() (*engine.Simulation, error) {
		var opts []engine.Option
		if *debugFlag {
			opts = append(opts, engine.WithObserver(event.NewLogObserver(log.Default()),
				event.EventPlayerHit, event.EventBoltDeflected, event.EventDroneStateChange))
		}
		return engine.New(cfg, opts...)
	}

	h := network.NewHandler(factory, network.DefaultHandlerConfig())
	router := network.NewRouter(h, cfg)

	var access io.Writer = io.Discard
	if *accessFlag {
		access = os.Stdout
	}
	srv := &http.Server{
		Addr:    *addrFlag,
		Handler: handlers.CombinedLoggingHandler(access, router),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s", *addrFlag)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received %s, shutting down", sig)
	case err, ok := <-errCh:
		if ok {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), parameter.ShutdownTimeout)
	defer cancel()

	// Shutdown does not track hijacked connections; sessions close separately
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
	h.Close()
	log.Printf("Stopped")
}
