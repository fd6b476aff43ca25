package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "IPSETCTL_LOG_LEVEL"
	EnvLogTimestamp = "IPSETCTL_LOG_TIMESTAMP"
	EnvLogNoColor   = "IPSETCTL_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

type config struct {
	level     zerolog.Level
	timestamp bool
	noColor   bool
}

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure applies the profile defaults plus env overrides to the global
// zerolog level. First call wins.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)
		zerolog.SetGlobalLevel(cfg.level)
	})
}

// SetLevel overrides the global level with a named level, ignoring
// unknown names.
func SetLevel(name string) {
	if lvl, ok := parseLevel(name); ok {
		zerolog.SetGlobalLevel(lvl)
	}
}

// New returns a console logger tagged with the app name, honoring the
// configured env overrides for output shape.
func New(app string) zerolog.Logger {
	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.noColor,
	}
	ctx := zerolog.New(output).Level(cfg.level).With().Str("app", app)
	if cfg.timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

func defaultConfig(profile Profile) config {
	switch profile {
	case ProfileTest:
		return config{level: zerolog.DebugLevel, timestamp: false}
	default:
		return config{level: zerolog.InfoLevel, timestamp: true}
	}
}

func applyEnvOverrides(cfg *config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.noColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
