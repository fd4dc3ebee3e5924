// Package main is the entry point for MuginCAD.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Hakkology/MuginCAD-sub001/internal/app"
	"github.com/Hakkology/MuginCAD-sub001/internal/config"
	"github.com/Hakkology/MuginCAD-sub001/internal/config/notify"
	"github.com/Hakkology/MuginCAD-sub001/internal/export"
	"github.com/Hakkology/MuginCAD-sub001/internal/input"
	"github.com/Hakkology/MuginCAD-sub001/internal/plugin/lua"
	"github.com/Hakkology/MuginCAD-sub001/internal/renderer"
	"github.com/Hakkology/MuginCAD-sub001/internal/renderer/backend"
	"github.com/Hakkology/MuginCAD-sub001/internal/replay"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	LogLevel   string
	Replay     string
	Script     string
	Record     string
	ExportJSON string
	ExportPNG  string
	Headless   bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	mgr, err := config.NewManager(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}
	defer mgr.Close()
	cfg := mgr.Current()

	logger, closeLog, err := newLogger(cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	app.SetLogger(logger)

	ctrl, err := app.New(app.WithConfig(cfg), app.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	logger.Info("session %s started (config %q)", ctrl.Session(), cfg.Path)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var host replay.Host = ctrl
	var recorder *replay.Recorder
	if opts.Record != "" {
		recorder = replay.NewRecorder(ctrl)
		host = recorder
	}

	code := 0
	if opts.Replay != "" {
		if err := runReplay(ctx, opts.Replay, host, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
		}
	}
	if opts.Script != "" && code == 0 {
		status, err := lua.RunFile(ctx, opts.Script, scriptHost{Controller: ctrl, input: host}, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
		} else if opts.Headless {
			fmt.Println(status)
		}
	}

	if !opts.Headless && code == 0 {
		if err := runTerminal(ctx, mgr, ctrl, host, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
		}
	}

	if recorder != nil {
		name := strings.TrimSuffix(filepath.Base(opts.Record), filepath.Ext(opts.Record))
		if err := recorder.Script(name).Save(opts.Record); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			code = 1
		} else {
			logger.Info("recorded %d steps to %s", recorder.Len(), opts.Record)
		}
	}

	if err := runExports(ctrl, mgr.Current(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code = 1
	}
	return code
}

// runReplay plays a replay file. Step failures are reported but only stop
// the run when the file asks for it.
func runReplay(ctx context.Context, path string, host replay.Host, logger *app.Logger) error {
	player := replay.NewPlayer(host, replay.WithLogger(logger))
	results, err := player.PlayFile(ctx, path)

	var steps *app.ErrorList
	if errors.As(err, &steps) {
		for _, e := range steps.Errors() {
			fmt.Fprintf(os.Stderr, "replay: %v\n", e)
		}
		logger.Warn("replay %s: %d of %d steps failed", path, steps.Len(), len(results))
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("replay %s: %d steps", path, len(results))
	return nil
}

// runTerminal shows the drawing until the user quits. Configuration file
// changes are applied while it runs.
func runTerminal(ctx context.Context, mgr *config.Manager, ctrl *app.Controller, host renderer.Host, logger *app.Logger) error {
	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := term.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer term.Shutdown()

	r := renderer.New(term, renderer.OptionsFromConfig(mgr.Current()))
	loop := renderer.NewLoop(term, r, host, ctrl, logger)

	if mgr.Path() != "" {
		sub := mgr.Subscribe(func(change notify.Change) {
			switch change.Type {
			case notify.ChangeReload:
				cfg := mgr.Current()
				if err := ctrl.ApplyConfig(cfg); err != nil {
					logger.Error("applying %s: %v", change.Source, err)
					return
				}
				r.SetOptions(renderer.OptionsFromConfig(cfg))
				logger.Info("reloaded %s", change.Source)
				loop.Refresh()
			case notify.ChangeError:
				logger.Warn("reload of %s failed: %v", change.Source, change.Err)
			}
		})
		defer sub.Unsubscribe()
		if err := mgr.Watch(); err != nil {
			logger.Warn("not watching %s: %v", mgr.Path(), err)
		}
	}

	return loop.Run(ctx)
}

func runExports(ctrl *app.Controller, cfg *config.Config, opts options) error {
	if opts.ExportJSON == "" && opts.ExportPNG == "" {
		return nil
	}
	snap := ctrl.Snapshot()
	doc := export.NewDocument(ctrl.Session(), snap.Entities, snap.Bounds)

	if opts.ExportJSON != "" {
		if err := export.WriteJSON(opts.ExportJSON, doc); err != nil {
			return app.WrapError(err, "export json")
		}
		written, err := export.ReadJSON(opts.ExportJSON)
		if err != nil {
			return app.WrapError(err, "verify json export")
		}
		if len(written.Polylines) != len(doc.Polylines) {
			return fmt.Errorf("verify json export %s: %d of %d entities readable",
				opts.ExportJSON, len(written.Polylines), len(doc.Polylines))
		}
	}
	if opts.ExportPNG != "" {
		if err := export.WritePNG(opts.ExportPNG, doc, export.PNGOptionsFromConfig(cfg)); err != nil {
			return app.WrapError(err, "export png")
		}
	}
	return nil
}

// scriptHost lets a macro's input pass through the replay recorder while
// the controller answers its queries and groups its undo.
type scriptHost struct {
	*app.Controller
	input replay.Host
}

func (h scriptHost) ProcessInput(ev input.Event) string {
	return h.input.ProcessInput(ev)
}

func (h scriptHost) Do(action string) (string, error) {
	return h.input.Do(action)
}

// newLogger builds the application logger. The terminal view owns the
// screen, so an interactive session without a log file logs nothing.
func newLogger(cfg *config.Config, opts options) (*app.Logger, func(), error) {
	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}

	lc := app.DefaultLoggerConfig()
	lc.Level = app.ParseLogLevel(level)

	if cfg.Logging.File == "" {
		logger := app.NewLogger(lc)
		if !opts.Headless {
			logger.Disable()
		}
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	lc.Output = f
	return app.NewLogger(lc), func() { _ = f.Close() }, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.StringVar(&opts.Replay, "replay", "", "Play a YAML replay file before starting")
	flag.StringVar(&opts.Script, "script", "", "Run a Lua macro before starting")
	flag.StringVar(&opts.Record, "record", "", "Record input to a YAML replay file")
	flag.StringVar(&opts.ExportJSON, "export-json", "", "Write the drawing as JSON polylines on exit")
	flag.StringVar(&opts.ExportPNG, "export-png", "", "Write the drawing as a PNG image on exit")
	flag.BoolVar(&opts.Headless, "headless", false, "Do not open the terminal view")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "MuginCAD - 2D drafting in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mugincad [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mugincad                                   Draw interactively\n")
		fmt.Fprintf(os.Stderr, "  mugincad -record session.yaml              Draw and keep a replay\n")
		fmt.Fprintf(os.Stderr, "  mugincad -headless -replay session.yaml -export-png out.png\n")
		fmt.Fprintf(os.Stderr, "  mugincad -headless -script house.lua -export-json out.json\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("MuginCAD %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %s\n", strings.Join(flag.Args(), " "))
		os.Exit(1)
	}
	return opts
}
