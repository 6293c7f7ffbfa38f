package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Palette overrides the default series colors.
	Palette    []string `mapstructure:"palette" yaml:"palette"`
	MaxRows    int      `mapstructure:"max_rows" yaml:"max_rows"`
	SampleRows int      `mapstructure:"sample_rows" yaml:"sample_rows"`
	// Delimiter is empty to sniff, a single character, or "tab".
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`

	ChartWidth  int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int `mapstructure:"chart_height" yaml:"chart_height"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"palette", "max_rows", "sample_rows", "delimiter",
	"output_dir", "log_level", "chart_width", "chart_height",
}

// DefaultPath returns ~/.vizloom/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".vizloom", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.vizloom/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A missing file is not an error.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("VIZLOOM")
	v.AutomaticEnv()

	v.SetDefault("palette", []string{})
	v.SetDefault("max_rows", 0)
	v.SetDefault("sample_rows", 5)
	v.SetDefault("delimiter", "")
	v.SetDefault("output_dir", ".")
	v.SetDefault("log_level", "warn")
	v.SetDefault("chart_width", 900)
	v.SetDefault("chart_height", 500)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".vizloom"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set parses val for key and stores it on c.
func (c *Global) Set(key, val string) error {
	switch key {
	case "palette":
		var colors []string
		for _, p := range strings.Split(val, ",") {
			if p = strings.TrimSpace(p); p != "" {
				colors = append(colors, p)
			}
		}
		c.Palette = colors
	case "max_rows", "sample_rows", "chart_width", "chart_height":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid non-negative int for %s: %v", key, val)
		}
		switch key {
		case "max_rows":
			c.MaxRows = i
		case "sample_rows":
			c.SampleRows = i
		case "chart_width":
			c.ChartWidth = i
		default:
			c.ChartHeight = i
		}
	case "delimiter":
		if _, err := ParseDelimiter(val); err != nil {
			return err
		}
		c.Delimiter = val
	case "output_dir":
		c.OutputDir = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the display form of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "palette":
		return strings.Join(c.Palette, ","), nil
	case "max_rows":
		return strconv.Itoa(c.MaxRows), nil
	case "sample_rows":
		return strconv.Itoa(c.SampleRows), nil
	case "delimiter":
		return c.Delimiter, nil
	case "output_dir":
		return c.OutputDir, nil
	case "log_level":
		return c.LogLevel, nil
	case "chart_width":
		return strconv.Itoa(c.ChartWidth), nil
	case "chart_height":
		return strconv.Itoa(c.ChartHeight), nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}

// ParseDelimiter maps a configured delimiter to a rune. Empty means sniff
// and yields 0.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("invalid delimiter: %q (use one character or tab)", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
