// Package config loads ShapeBoard settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// Config holds runtime configuration. Zero values are replaced by
// defaults in Load.
type Config struct {
	ServerAddr      string        `toml:"server"`
	Token           string        `toml:"token"`
	DiscoverTimeout time.Duration `toml:"discover_timeout"`
	RequestTimeout  time.Duration `toml:"request_timeout"`
	CanvasWidth     int           `toml:"canvas_width"`
	CanvasHeight    int           `toml:"canvas_height"`
	LogLevel        string        `toml:"log_level"`

	ListenAddr    string `toml:"listen"`
	WebsocketAddr string `toml:"ws_listen"`
	DBPath        string `toml:"db"`
	Advertise     bool   `toml:"advertise"`
}

const (
	defaultDiscoverTimeout = 3 * time.Second
	defaultRequestTimeout  = 10 * time.Second
	defaultCanvasWidth     = 800
	defaultCanvasHeight    = 600
	defaultLogLevel        = "info"
	defaultListenAddr      = ":4444"
	defaultWebsocketAddr   = ":4445"

	fileName = ".shapeboard.toml"
)

// Default returns the built-in configuration. It has no login token;
// Load supplies one.
func Default() Config {
	return Config{
		DiscoverTimeout: defaultDiscoverTimeout,
		RequestTimeout:  defaultRequestTimeout,
		CanvasWidth:     defaultCanvasWidth,
		CanvasHeight:    defaultCanvasHeight,
		LogLevel:        defaultLogLevel,
		ListenAddr:      defaultListenAddr,
		WebsocketAddr:   defaultWebsocketAddr,
	}
}

// Path returns the config file location: $SHAPEBOARD_CONFIG if set,
// otherwise ~/.shapeboard.toml. It returns "" when neither is known.
func Path() string {
	if p := os.Getenv("SHAPEBOARD_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fileName)
}

// Load reads the file at path (Path() when empty) over the defaults and
// then applies environment overrides. A missing file is not an error.
//
// The server marks drawings as owned by comparing login tokens, so the
// token has to survive restarts. When neither the file nor the
// environment sets one, a new token is generated and appended to the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	var tokenInFile bool
	if path != "" {
		var err error
		if tokenInFile, err = cfg.readFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	if strings.TrimSpace(cfg.Token) == "" {
		cfg.Token = uuid.NewString()
		if path != "" && !tokenInFile {
			if err := saveToken(path, cfg.Token); err != nil {
				slog.Warn("could not save login token", slog.String("file", path), slog.String("error", err.Error()))
			}
		}
	}
	cfg.fillDefaults()
	return cfg, nil
}

// readFile decodes path into c and reports whether it set a token.
func (c *Config) readFile(path string) (tokenSet bool, err error) {
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("unknown config key", slog.String("file", path), slog.String("key", key.String()))
	}
	return md.IsDefined("token"), nil
}

// saveToken appends a token key to the config file, creating it if needed.
func saveToken(path, token string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.WriteString("\n"); err != nil {
		return err
	}
	return toml.NewEncoder(f).Encode(map[string]string{"token": token})
}

func (c *Config) applyEnv() {
	c.ServerAddr = getEnv("SHAPEBOARD_SERVER", c.ServerAddr)
	c.Token = getEnv("SHAPEBOARD_TOKEN", c.Token)
	c.LogLevel = getEnv("SHAPEBOARD_LOG_LEVEL", c.LogLevel)
	c.ListenAddr = getEnv("SHAPEBOARD_LISTEN", c.ListenAddr)
	c.WebsocketAddr = getEnv("SHAPEBOARD_WS_LISTEN", c.WebsocketAddr)
	c.DBPath = getEnv("SHAPEBOARD_DB", c.DBPath)

	if raw := os.Getenv("SHAPEBOARD_ADVERTISE"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			c.Advertise = v
		}
	}
}

// fillDefaults repairs values a file or environment set to something
// unusable.
func (c *Config) fillDefaults() {
	if c.DiscoverTimeout <= 0 {
		c.DiscoverTimeout = defaultDiscoverTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.CanvasWidth <= 0 {
		c.CanvasWidth = defaultCanvasWidth
	}
	if c.CanvasHeight <= 0 {
		c.CanvasHeight = defaultCanvasHeight
	}
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
