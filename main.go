package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/navmenu/internal/app"
	"github.com/atomicstack/navmenu/internal/config"
	"github.com/atomicstack/navmenu/internal/logging"
	"github.com/atomicstack/navmenu/internal/logging/events"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("navmenu needs a terminal on stdin, stdout or stderr")

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	tty := collectTTYDetails(standardProbes())
	events.App.Start(startupTracePayload(runtimeCfg, tty))

	if err := tty.requireTerminal(); err != nil {
		fail(err)
	}
	if err := app.Run(runtimeCfg.App); err != nil {
		fail(err)
	}
}

func fail(err error) {
	logging.Error(err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// startupTracePayload bundles the resolved configuration and process context
// for the app.start trace event.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":       cfg.Args,
		"flags":      flags,
		"config":     cfg,
		"configFile": cfg.File,
		"root":       cfg.App.Root,
		"launcher":   cfg.App.Launcher,
		"tty":        tty,
	}
	if cfg.App.Launch != "" {
		payload["launch"] = cfg.App.Launch
	}
	addProcessContext(payload, "executable", os.Executable)
	addProcessContext(payload, "cwd", os.Getwd)
	return payload
}

func addProcessContext(payload map[string]interface{}, key string, lookup func() (string, error)) {
	if value, err := lookup(); err == nil {
		payload[key] = value
	} else {
		payload[key+"Error"] = err.Error()
	}
}

type ttyProbe struct {
	name string
	fd   int
}

func standardProbes() []ttyProbe {
	return []ttyProbe{
		{"stdin", int(os.Stdin.Fd())},
		{"stdout", int(os.Stdout.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails records which descriptors are terminals. The first one
// that reports a size becomes Detected.
func collectTTYDetails(probes []ttyProbe) ttyDetails {
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(probes))}
	for _, probe := range probes {
		result := ttyProbeResult{Name: probe.name}
		if probe.fd < 0 || !term.IsTerminal(probe.fd) {
			details.Probes = append(details.Probes, result)
			continue
		}
		result.IsTerminal = true
		width, height, err := term.GetSize(probe.fd)
		switch {
		case err != nil:
			result.Error = err.Error()
		case details.Detected == nil:
			details.Detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
			fallthrough
		default:
			result.Width, result.Height = width, height
		}
		details.Probes = append(details.Probes, result)
	}
	return details
}

func (d ttyDetails) requireTerminal() error {
	for _, probe := range d.Probes {
		if probe.IsTerminal {
			return nil
		}
	}
	return errNoTerminal
}
