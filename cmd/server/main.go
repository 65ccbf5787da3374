package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/sweeper/internal/app"
	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/mines"
)

var (
	configPath string
	addr       string
)

func init() {
	const (
		defaultConfigPath = ""
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
	flag.StringVar(&addr, "addr", "", "listen address, overrides the config")
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		if err := config.ReadConfig(configPath, cfg); err != nil {
			mines.Log.Fatalf("unable to read config %s: %s", configPath, err)
		}
	}
	if addr != "" {
		cfg.Addr = addr
	}

	log, err := config.NewLogger(*cfg, os.Stderr)
	if err != nil {
		mines.Log.Fatal(err)
	}
	mines.Log = log

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	a := app.New(log, cfg, cfg.Rand())
	if err := a.Start(mainCtx); err != nil {
		log.Printf("exit reason: %s\n", err)
		os.Exit(1)
	}
}
