// Configuration file for the skeleton tool
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"skeleton-effect/internal/effect"
)

// DefaultPath is read when --config is not given
const DefaultPath = "skeleton.toml"

type Config struct {
	Log    LogConfig    `toml:"log"`
	Build  BuildConfig  `toml:"build"`
	Render RenderConfig `toml:"render"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

type BuildConfig struct {
	OutputFolder string   `toml:"output_folder"`
	SrcFolder    string   `toml:"src_folder"`
	Command      []string `toml:"command"`
}

type RenderConfig struct {
	Effect string `toml:"effect"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Build: BuildConfig{
			OutputFolder: "build",
		},
		Render: RenderConfig{
			Effect: effect.GaussianBlurName,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error
// unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}
	if _, ok := effect.Get(c.Render.Effect); !ok {
		return fmt.Errorf("unknown effect %q", c.Render.Effect)
	}
	return nil
}

// NewLogger builds the logger described by the config; debug forces
// colored text output at debug level
func (c Config) NewLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	if debug || c.Log.Format == "text" {
		if debug {
			level = logrus.DebugLevel
		}
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   debug,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	logger.SetLevel(level)

	return logger
}
