package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/atomicstack/navmenu/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfigFile    = "NAVMENU_CONFIG"
	envRoot          = "NAVMENU_ROOT"
	envExtensions    = "NAVMENU_EXTENSIONS"
	envShowHidden    = "NAVMENU_SHOW_HIDDEN"
	envWraparound    = "NAVMENU_WRAPAROUND"
	envLauncher      = "NAVMENU_LAUNCHER"
	envLaunchCommand = "NAVMENU_LAUNCH_COMMAND"
	envSocketPath    = "NAVMENU_SOCKET"
	envWidth         = "NAVMENU_WIDTH"
	envHeight        = "NAVMENU_HEIGHT"
	envShowFooter    = "NAVMENU_FOOTER"
	envShowDetails   = "NAVMENU_DETAILS"
	envVerbose       = "NAVMENU_VERBOSE"
	envTrace         = "NAVMENU_TRACE"
	envLogFile       = "NAVMENU_LOG_FILE"
)

const (
	LauncherExec = "exec"
	LauncherTmux = "tmux"
)

var ErrUnknownLauncher = errors.New("unknown launcher")

// fileSettings mirrors config.toml. Pointer fields distinguish "unset" from
// an explicit zero so the file only overrides what it names.
type fileSettings struct {
	Root          string   `koanf:"root"`
	Extensions    []string `koanf:"extensions"`
	ShowHidden    *bool    `koanf:"show_hidden"`
	Wraparound    *bool    `koanf:"wraparound"`
	Launcher      string   `koanf:"launcher"`
	LaunchCommand string   `koanf:"launch_command"`
	Socket        string   `koanf:"socket"`
	Width         *int     `koanf:"width"`
	Height        *int     `koanf:"height"`
	Footer        *bool    `koanf:"footer"`
	Details       *bool    `koanf:"details"`
	Trace         *bool    `koanf:"trace"`
	Verbose       *bool    `koanf:"verbose"`
	LogFile       string   `koanf:"log_file"`
}

// Load parses configuration from the config file, CLI arguments and
// environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	explicit := configFlagValue(args)
	if explicit == "" {
		explicit = envOrDefault(env, envConfigFile, "")
	}
	path, required := explicit, explicit != ""
	if path == "" {
		path = DefaultFilePath()
	}
	settings, loaded, err := loadFile(path, required)
	if err != nil {
		return Config{}, err
	}
	if !loaded {
		path = ""
	}

	fs := flag.NewFlagSet("navmenu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", path, "path to a TOML config file")
	root := fs.String("root", envOrDefault(env, envRoot, orString(settings.Root, ".")), "content directory shown by the menu")
	extensions := fs.String("extensions", envOrDefault(env, envExtensions, strings.Join(settings.Extensions, ",")), "comma separated list of launchable file extensions (empty allows all)")
	showHidden := fs.Bool("show-hidden", envOrBool(env, envShowHidden, orBool(settings.ShowHidden, false)), "list dot files")
	wraparound := fs.Bool("wraparound", envOrBool(env, envWraparound, orBool(settings.Wraparound, true)), "wrap the cursor around list edges")
	launcher := fs.String("launcher", envOrDefault(env, envLauncher, orString(settings.Launcher, LauncherExec)), "launcher used for selected files (exec or tmux)")
	launchCommand := fs.String("launch-command", envOrDefault(env, envLaunchCommand, settings.LaunchCommand), "command template for the exec launcher; {path} is replaced by the selection")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, settings.Socket), "path to the tmux socket used by the tmux launcher")
	width := fs.Int("width", envOrInt(env, envWidth, orInt(settings.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, orInt(settings.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, orBool(settings.Footer, false)), "enable footer key help")
	details := fs.Bool("details", envOrBool(env, envShowDetails, orBool(settings.Details, true)), "show the details panel when the terminal is wide enough")
	trace := fs.Bool("trace", envOrBool(env, envTrace, orBool(settings.Trace, false)), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, orBool(settings.Verbose, false)), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, settings.LogFile), "path to the log file")
	launch := fs.String("launch", "", "launch this file at startup, then show the menu (also accepted as a positional argument)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	launchPath := *launch
	switch {
	case fs.NArg() > 1:
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args()[1:], " "))
	case fs.NArg() == 1 && launchPath != "":
		return Config{}, errors.New("--launch and a positional content path are mutually exclusive")
	case fs.NArg() == 1:
		launchPath = fs.Arg(0)
	}

	cfg := Config{
		App: app.Config{
			Root:          expandPath(*root),
			Extensions:    splitList(*extensions),
			ShowHidden:    *showHidden,
			Wraparound:    *wraparound,
			Launcher:      strings.ToLower(strings.TrimSpace(*launcher)),
			LaunchCommand: *launchCommand,
			SocketPath:    expandPath(*socket),
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			ShowDetails:   *details,
			Verbose:       *verbose,
			Launch:        expandPath(launchPath),
		},
		Logging: Logging{
			FilePath: expandPath(*logFile),
			Trace:    *trace,
		},
		File: path,
		Flags: map[string]string{
			"config":        path,
			"root":          *root,
			"extensions":    *extensions,
			"showHidden":    strconv.FormatBool(*showHidden),
			"wraparound":    strconv.FormatBool(*wraparound),
			"launcher":      *launcher,
			"launchCommand": *launchCommand,
			"socket":        *socket,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"details":       strconv.FormatBool(*details),
			"trace":         strconv.FormatBool(*trace),
			"verbose":       strconv.FormatBool(*verbose),
			"logFile":       *logFile,
			"launch":        launchPath,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// DefaultFilePath returns $XDG_CONFIG_HOME/navmenu/config.toml.
func DefaultFilePath() string {
	return filepath.Join(xdg.ConfigHome, "navmenu", "config.toml")
}

func loadFile(path string, required bool) (fileSettings, bool, error) {
	var settings fileSettings
	if _, err := os.Stat(path); err != nil {
		if required {
			return settings, false, fmt.Errorf("config file %s: %w", path, err)
		}
		return settings, false, nil
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return settings, false, fmt.Errorf("load config file %s: %w", path, err)
	}
	if err := k.Unmarshal("", &settings); err != nil {
		return settings, false, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return settings, true, nil
}

// configFlagValue finds --config ahead of flag parsing, since the file layer
// supplies the flag defaults.
func configFlagValue(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func orString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func orBool(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func orInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, strings.ToLower(strings.TrimPrefix(part, ".")))
	}
	return out
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks numeric ranges and launcher settings.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if strings.TrimSpace(cfg.App.Root) == "" {
		return errors.New("root must not be empty")
	}
	switch cfg.App.Launcher {
	case LauncherExec:
		if strings.TrimSpace(cfg.App.LaunchCommand) == "" {
			return errors.New("exec launcher requires --launch-command")
		}
	case LauncherTmux:
	default:
		return fmt.Errorf("%w %q (want %s or %s)", ErrUnknownLauncher, cfg.App.Launcher, LauncherExec, LauncherTmux)
	}
	return nil
}
