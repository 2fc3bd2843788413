// Package config loads desktop-vision settings from an optional YAML file
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/mj1618/desktop-vision/internal/capture"
	"gopkg.in/yaml.v3"
)

const appName = "desktop-vision"

// Config is the full set of settings. Zero values mean "use the default".
type Config struct {
	OutputDir string       `yaml:"output_dir" env:"DESKTOP_VISION_OUTPUT_DIR"`
	Filter    FilterConfig `yaml:"filter"`
	Server    ServerConfig `yaml:"server"`
	Log       LogConfig    `yaml:"log"`
}

// FilterConfig mirrors capture.Filter.
type FilterConfig struct {
	ExcludeOwners          []string `yaml:"exclude_owners"           env:"DESKTOP_VISION_EXCLUDE_OWNERS"`
	ExcludeTitleSubstrings []string `yaml:"exclude_title_substrings" env:"DESKTOP_VISION_EXCLUDE_TITLES"`
	MinWidth               int      `yaml:"min_width"                env:"DESKTOP_VISION_MIN_WIDTH"`
	MinHeight              int      `yaml:"min_height"               env:"DESKTOP_VISION_MIN_HEIGHT"`
}

type ServerConfig struct {
	Transport string `yaml:"transport" env:"DESKTOP_VISION_TRANSPORT"`
	Port      int    `yaml:"port"      env:"DESKTOP_VISION_PORT"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"DESKTOP_VISION_LOG_LEVEL"`
	Format string `yaml:"format" env:"DESKTOP_VISION_LOG_FORMAT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		OutputDir: os.TempDir(),
		Filter:    FilterConfig(capture.DefaultFilter()),
		Server:    ServerConfig{Transport: "stdio", Port: 8080},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/desktop-vision/config.yaml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// Load returns the defaults overlaid with the YAML file at path and then with
// environment overrides. An empty path means DefaultPath, which may be absent;
// an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
				return cfg, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	switch c.Server.Transport {
	case "stdio", "streamable-http":
	default:
		return fmt.Errorf("invalid server.transport %q (use stdio or streamable-http)", c.Server.Transport)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Filter.MinWidth < 0 || c.Filter.MinHeight < 0 {
		return fmt.Errorf("filter.min_width and filter.min_height must not be negative")
	}
	return nil
}

// CaptureFilter returns the window filter these settings describe.
func (c Config) CaptureFilter() capture.Filter {
	return capture.Filter(c.Filter)
}

// applyEnvOverrides sets struct fields from the environment variable named by
// their `env` tag. Slices are comma separated.
func applyEnvOverrides(v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	t := val.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := val.Field(i)

		if fieldVal.Kind() == reflect.Struct {
			if err := applyEnvOverrides(fieldVal.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}
		envVal, ok := os.LookupEnv(envTag)
		if !ok || !fieldVal.CanSet() {
			continue
		}

		switch fieldVal.Kind() {
		case reflect.String:
			fieldVal.SetString(envVal)
		case reflect.Int:
			n, err := strconv.Atoi(strings.TrimSpace(envVal))
			if err != nil {
				return fmt.Errorf("%s: %q is not an integer", envTag, envVal)
			}
			fieldVal.SetInt(int64(n))
		case reflect.Slice:
			if fieldVal.Type().Elem().Kind() == reflect.String {
				fieldVal.Set(reflect.ValueOf(splitList(envVal)))
			}
		}
	}
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
