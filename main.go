// main.go - Main entry point for the Intuition Noise player
/*
██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	UI_TERMINAL = "terminal"
	UI_WINDOW   = "window"
	UI_NONE     = "none"

	STATUS_REFRESH  = 200 * time.Millisecond
	SHUTDOWN_SLACK  = time.Second // Added to the drain budget when exiting
	DEFAULT_LOG_LVL = "warn"
	NOISE_DEBUG_ENV = "NOISE_DEBUG"
	USAGE_LINE      = "Usage: ./intuition_noise [-noise white|pink|brown] [-ui terminal|window|none] [-timer 30m] [-script file.lua]"
)

var ErrWindowUnavailable = errors.New("window UI not compiled into this build")

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nWhite, pink and brown noise for focus and sleep.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

type cliOptions struct {
	engine   EngineConfig
	noise    NoiseType
	backend  string
	ui       string
	script   string
	timer    time.Duration
	autoplay bool
	logLevel string
	version  bool
	noBanner bool
}

func parseFlags(args []string) (cliOptions, error) {
	opts := cliOptions{engine: DefaultEngineConfig()}

	var noiseName, switchMode string
	flagSet := flag.NewFlagSet("intuition_noise", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&noiseName, "noise", NoiseWhite.String(), "Initial noise colour: white, pink or brown")
	flagSet.IntVar(&opts.engine.SampleRate, "rate", NOISE_SAMPLE_RATE, "Output sample rate in Hz")
	flagSet.IntVar(&opts.engine.BufferFrames, "buffer", NOISE_BUFFER_FRAMES, "Frames per buffer")
	flagSet.DurationVar(&opts.engine.FadeDuration, "fade", FADE_DURATION, "Fade-in/fade-out length")
	flagSet.StringVar(&switchMode, "switch", SwitchRestart.String(), "Colour change while playing: restart (fade) or seamless")
	flagSet.StringVar(&opts.backend, "backend", AUDIO_BACKEND_AUTO, "Audio backend: auto, oto, ebiten or null")
	flagSet.StringVar(&opts.ui, "ui", UI_TERMINAL, "Control surface: terminal, window or none")
	flagSet.StringVar(&opts.script, "script", "", "Run a Lua control script and exit")
	flagSet.DurationVar(&opts.timer, "timer", 0, "Pause playback after this long (e.g. 30m)")
	flagSet.BoolVar(&opts.autoplay, "autoplay", false, "Start playing immediately")
	flagSet.StringVar(&opts.logLevel, "log-level", DEFAULT_LOG_LVL, "Log level: debug, info, warn or error")
	flagSet.BoolVar(&opts.version, "version", false, "Print version and compiled features")
	flagSet.BoolVar(&opts.noBanner, "quiet", false, "Skip the startup banner")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println(USAGE_LINE)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if flagSet.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}

	var err error
	if opts.noise, err = ParseNoiseType(noiseName); err != nil {
		return opts, err
	}
	if opts.engine.SwitchMode, err = ParseSwitchMode(switchMode); err != nil {
		return opts, err
	}
	switch opts.ui {
	case UI_TERMINAL, UI_WINDOW, UI_NONE:
	default:
		return opts, fmt.Errorf("invalid -ui %q (want terminal, window or none)", opts.ui)
	}
	if opts.timer < 0 {
		return opts, fmt.Errorf("invalid -timer %v", opts.timer)
	}
	if err := opts.engine.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// resolveBackend picks the device backend. The window UI runs ebiten, which
// owns the process's only oto context, so audio must go through it too.
func resolveBackend(backend, ui string) string {
	if backend != AUDIO_BACKEND_AUTO && backend != "" {
		return backend
	}
	if ui == UI_WINDOW {
		return AUDIO_BACKEND_EBITEN
	}
	return AUDIO_BACKEND_OTO
}

func noiseDebugEnabled() bool {
	value := strings.ToLower(os.Getenv(NOISE_DEBUG_ENV))
	return value == "1" || value == "true" || value == "yes"
}

func configureLogging(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	if noiseDebugEnabled() {
		lvl = logrus.DebugLevel
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if opts.version {
		printFeatures()
		return
	}
	if err := configureLogging(opts.logLevel); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if !opts.noBanner && opts.ui != UI_NONE {
		boilerPlate()
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts cliOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := NewAudioSink(resolveBackend(opts.backend, opts.ui))
	if err != nil {
		return fmt.Errorf("audio backend: %w", err)
	}
	ctrl, err := NewPlaybackController(ControllerOptions{
		Config:      opts.engine,
		Sink:        sink,
		InitialType: opts.noise,
		Status:      runtimeStatus,
	})
	if err != nil {
		return err
	}
	defer shutdown(ctrl)

	timer := NewSleepTimer(func() {
		logrus.WithField("component", "timer").Info("Sleep timer elapsed, pausing")
		ctrl.Pause()
	})
	defer timer.Cancel()
	if opts.timer > 0 {
		ctrl.OnPlayingChanged(func(playing bool) {
			if playing {
				timer.Start(opts.timer)
			} else {
				timer.Cancel()
			}
		})
	}

	if opts.autoplay {
		if err := ctrl.Play(); err != nil {
			return err
		}
	}

	if opts.script != "" {
		return NewScriptRunner(ctrl).RunFile(ctx, opts.script)
	}

	switch opts.ui {
	case UI_WINDOW:
		return RunNoiseWindow(ctx, ctrl, timer)
	case UI_TERMINAL:
		runTerminal(ctx, ctrl, timer)
	default:
		<-ctx.Done()
	}
	return nil
}

// runTerminal drives the controller from raw-mode key presses and redraws a
// single status line until quit or interrupt.
func runTerminal(ctx context.Context, ctrl *PlaybackController, timer *SleepTimer) {
	quit := make(chan struct{})
	var quitOnce sync.Once

	host := NewTerminalHost(func(a KeyAction) {
		if a == KeyQuit {
			quitOnce.Do(func() { close(quit) })
			return
		}
		if err := applyKeyAction(ctrl, a); err != nil {
			logrus.WithField("component", "terminal").WithError(err).Warn("Command failed")
		}
	})
	if !host.Start() {
		logrus.Warn("stdin is not a terminal, running until interrupted")
		<-ctx.Done()
		return
	}
	defer host.Stop()

	fmt.Printf("\r\n%s\r\n", terminalHelp)
	ticker := time.NewTicker(STATUS_REFRESH)
	defer ticker.Stop()
	for {
		fmt.Printf("\r\033[K%s", formatStatusLine(runtimeStatus.snapshot(), timer.Remaining()))
		select {
		case <-ctx.Done():
			fmt.Print("\r\n")
			return
		case <-quit:
			fmt.Print("\r\n")
			return
		case <-ticker.C:
		}
	}
}

// shutdown releases the controller and waits for the last fade-out to drain.
func shutdown(ctrl *PlaybackController) {
	ctrl.Release()
	cfg := ctrl.Config()
	budget := cfg.FadeDuration + cfg.DrainTimeout() + 2*cfg.BufferDuration() + SHUTDOWN_SLACK
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	if err := ctrl.Wait(ctx); err != nil {
		logrus.WithError(err).Warn("Audio did not drain before exit")
	}
}
