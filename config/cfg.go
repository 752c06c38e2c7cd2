package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"lexhtml/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	RenderConfig struct {
		UnknownNodes common.UnknownNodes `yaml:"unknown_nodes" validate:"gte=0,lte=1"`
		InputExt     string              `yaml:"input_ext" validate:"required,startswith=."`
		OutputExt    string              `yaml:"output_ext" validate:"required,startswith=.,nefield=InputExt"`

		FileNameTransliterate bool `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Render    RenderConfig   `yaml:"render"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed, so no yaml.Unmarshal here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !process {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, err
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfiguration expands embedded configuration template to get defaults,
// then superimposes values from the file at path (if any) and validates the
// result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = unmarshalConfig(data, cfg, true); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
