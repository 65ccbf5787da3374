package main

import (
	"flag"
	"os"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/game"
	"github.com/vancomm/sweeper/internal/mines"
)

var (
	configPath string
	board      string
	width      int
	height     int
	density    float64
	seed       uint64
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.StringVar(&board, "board", "", `board as "width:height:density", e.g. 7:7:0.1`)
	flag.IntVar(&width, "width", mines.DefaultWidth, "board width")
	flag.IntVar(&height, "height", mines.DefaultHeight, "board height")
	flag.Float64Var(&density, "density", mines.DefaultDensity, "chance of a mine per cell")
	flag.Uint64Var(&seed, "seed", 0, "seed for a reproducible board")
}

// overrides copies every flag set on the command line into c. Flags are
// visited in name order, so -width, -height and -density refine -board.
func overrides(c *config.Config) (err error) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "board":
			var p *mines.GameParams
			if p, err = mines.ParseSeed(board); err == nil {
				c.Board = *p
			}
		case "width":
			c.Board.Width = width
		case "height":
			c.Board.Height = height
		case "density":
			c.Board.Density = density
		case "seed":
			c.Seed = &seed
		}
	})
	if err != nil {
		return err
	}
	return c.Validate()
}

func main() {
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		if err := config.ReadConfig(configPath, cfg); err != nil {
			mines.Log.Fatalf("unable to read config %s: %s", configPath, err)
		}
	}
	if err := overrides(cfg); err != nil {
		mines.Log.Fatal("invalid flags: ", err)
	}

	log, err := config.NewLogger(*cfg, os.Stderr)
	if err != nil {
		mines.Log.Fatal(err)
	}
	mines.Log = log
	log.WithFields(cfg.Fields()).Debug("config")

	board, err := mines.NewBoard(cfg.Board, cfg.Rand())
	if err != nil {
		log.Fatal("unable to create board: ", err)
	}

	session := game.NewSession(board, log)
	if err := game.NewConsole(os.Stdin, os.Stdout).Play(session); err != nil {
		log.Fatal(err)
	}
	log.WithField("outcome", session.Outcome()).Debug("game finished")
}
