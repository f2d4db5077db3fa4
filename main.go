package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custicle/custicle/engine"
)

func main() {
	configPath := flag.String("config", "custicle.toml", "path to the application config file")
	flag.Parse()

	config, err := engine.LoadApplicationConfig(*configPath)
	if err != nil {
		abort(err)
	}

	eng, err := engine.New(config)
	if err != nil {
		abort(err)
	}

	if err := eng.Initialize(); err != nil {
		abort(err)
	}

	// capture sigterm and other system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	go func() {
		<-sigCh
		_ = eng.Shutdown()
	}()

	if err := eng.Run(); err != nil {
		abort(err)
	}

	if err := eng.Shutdown(); err != nil {
		abort(err)
	}
}

func abort(err error) {
	fmt.Fprintf(os.Stderr, "custicle: %v\n", err)
	os.Exit(1)
}
