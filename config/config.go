package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/xiaobogaga/minic/compiler"
)

// Config holds the minic settings. A file only needs the keys it changes.
type Config struct {
	Parser   ParserConfig   `toml:"parser" yaml:"parser"`
	Semantic SemanticConfig `toml:"semantic" yaml:"semantic"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// ParserConfig holds parser settings
type ParserConfig struct {
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`
}

// SemanticConfig holds analyzer settings
type SemanticConfig struct {
	CheckExpressionStatements bool `toml:"check_expression_statements" yaml:"check_expression_statements"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Format is the syntax of a config file.
type Format int

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Parser:   ParserConfig{MaxDepth: compiler.DefaultMaxDepth},
		Semantic: SemanticConfig{CheckExpressionStatements: true},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the config file at path. .yaml and .yml files are YAML, anything else TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromString parses content in the given format. FormatAuto means TOML.
func LoadFromString(content string, format Format) (*Config, error) {
	cfg, err := parse([]byte(content), format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// parse decodes data over the defaults, then validates the result. Unknown keys are errors.
func parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the compiler can't use.
func (c *Config) Validate() error {
	if c.Parser.MaxDepth < 0 {
		return fmt.Errorf("parser.max_depth must not be negative, got %d", c.Parser.MaxDepth)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// CompilerOptions maps the config onto compiler options. max_depth = 0 keeps the
// compiler default.
func (c *Config) CompilerOptions(logger *log.Logger) *compiler.Options {
	return &compiler.Options{
		MaxDepth:      c.Parser.MaxDepth,
		SkipExprStmts: !c.Semantic.CheckExpressionStatements,
		Logger:        logger,
	}
}
