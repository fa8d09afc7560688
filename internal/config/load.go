package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/templates"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax, filesystem, or other loading errors).
var ErrConfigValidation = errors.New("config validation failed")

// Load reads and validates the config at path. A missing file yields the
// embedded defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return LoadTemplateConfig()
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}
	return ParseConfig(data, path)
}

// LoadTemplateConfig returns the embedded default config template as a validated Config.
func LoadTemplateConfig() (*Config, error) {
	data, err := templateData()
	if err != nil {
		return nil, err
	}
	cfg, err := parse(&Config{}, data, "template config.toml")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate("template config.toml"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}
	return cfg, nil
}

// ParseConfig parses and validates config TOML data from a source identifier.
// Keys missing from data keep their default values; unknown keys are rejected.
func ParseConfig(data []byte, source string) (*Config, error) {
	cfg, err := parseOverDefaults(data, source)
	if err != nil {
		return nil, err
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt+" "+messages.ConfigValidationGuidance, ErrConfigValidation, source, err)
	}
	if err := cfg.Validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w "+messages.ConfigValidationGuidance, ErrConfigValidation, err)
	}
	return cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// ParseConfigLenient parses config TOML data without validation.
// Returns an error only on TOML syntax errors, making this suitable for
// repair tools (wizard, doctor) that need to read partially valid configs.
func ParseConfigLenient(data []byte, source string) (*Config, error) {
	return parseOverDefaults(data, source)
}

// LoadConfigLenient reads the config at path without validation.
// A missing file yields the defaults.
func LoadConfigLenient(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return parseOverDefaults(nil, path)
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigReadFileFmt, path, err)
	}
	return ParseConfigLenient(data, path)
}

func parseOverDefaults(data []byte, source string) (*Config, error) {
	defaults, err := templateData()
	if err != nil {
		return nil, err
	}
	cfg, err := parse(&Config{}, defaults, "template config.toml")
	if err != nil {
		return nil, err
	}
	return parse(cfg, data, source)
}

func parse(cfg *Config, data []byte, source string) (*Config, error) {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err)
	}
	return cfg, nil
}

func templateData() ([]byte, error) {
	data, err := templates.Read("config.toml")
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigFailedReadTemplateFmt, err)
	}
	return data, nil
}

// DefaultTemplate returns the embedded config template text.
func DefaultTemplate() ([]byte, error) {
	return templateData()
}
