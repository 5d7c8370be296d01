package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/heavy-boxes/audio"
	"github.com/lixenwraith/heavy-boxes/clock"
	"github.com/lixenwraith/heavy-boxes/config"
	"github.com/lixenwraith/heavy-boxes/core"
	"github.com/lixenwraith/heavy-boxes/terminal"
)

var (
	configFlag = flag.String("config", "", "Path to TOML config file")
	engineFlag = flag.String("engine", "", "Physics engine override: box2d, chipmunk")
	feedFlag   = flag.String("feed", "", "YAML feed file to drop as boxes")
	audioFlag  = flag.Bool("audio", false, "Enable sound effects")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/heavy-boxes.log")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "heavy-boxes: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "heavy-boxes: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("exit", zap.Error(err))
		fmt.Fprintf(os.Stderr, "heavy-boxes: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file when given and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *engineFlag != "" {
		cfg.World.Engine = *engineFlag
	}
	if *feedFlag != "" {
		cfg.Feed.File = *feedFlag
	}
	if *audioFlag {
		cfg.Audio.Enabled = true
	}
	if *debugFlag {
		cfg.Logging.Level = "debug"
		if cfg.Logging.File == "" {
			cfg.Logging.File = "logs/heavy-boxes.log"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run owns the terminal until the user quits
func run(cfg *config.Config, log *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Goroutine crashes restore the terminal before reporting
	core.SetCrashHandler(func(r any) {
		screen.Fini()
		terminal.EmergencyReset(os.Stdout)
		log.Error("crash", zap.Any("panic", r))
		_ = log.Sync()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31mHEAVY-BOXES CRASHED: %v\x1b[0m\r\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	})
	defer core.SetCrashHandler(nil)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	sounds := audio.NewSoundManager()
	if cfg.Audio.Enabled {
		if err := sounds.Initialize(cfg.Audio.Volume); err != nil {
			log.Warn("audio unavailable, continuing without sound", zap.Error(err))
		} else {
			defer sounds.Cleanup()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := clock.NewLoop(log.Named("loop"))
	d, err := newDemo(cfg, log, screen, loop, sounds, cancel)
	if err != nil {
		return err
	}
	d.start()
	defer func() {
		d.stop()
		if d.emitter != nil {
			d.emitter.Wait()
		}
	}()

	// Input is read off-loop and handed over as posted work
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			loop.Post(func() { d.handleEvent(ev) })
		}
	})

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
