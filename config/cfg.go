package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"tgrab/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	GrabConfig struct {
		MarkerAttribute  string           `yaml:"marker_attribute" validate:"required"`
		CancelKey        string           `yaml:"cancel_key" validate:"required"`
		StylePath        string           `yaml:"style_path" validate:"omitempty,file"`
		BasenameTemplate string           `yaml:"basename_template" validate:"required"`
		DefaultFormat    common.ExportFmt `yaml:"default_format" validate:"gte=0"`
	}

	PreferencesConfig struct {
		Path string `yaml:"path" validate:"omitempty,filepath"`
	}

	DownloadConfig struct {
		Destination  string        `yaml:"destination" validate:"omitempty,dirpath"`
		Overwrite    bool          `yaml:"overwrite"`
		ReleaseDelay time.Duration `yaml:"release_delay" validate:"gte=0"`
	}

	Config struct {
		Version     int               `yaml:"version" validate:"eq=1"`
		Grab        GrabConfig        `yaml:"grab"`
		Preferences PreferencesConfig `yaml:"preferences"`
		Download    DownloadConfig    `yaml:"download"`
		Logging     LoggingConfig     `yaml:"logging"`
		Reporting   ReporterConfig    `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, expanded later by the driver
	// when host name is known
	BasenameTemplateFieldName TemplateFieldName = "basename_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(BasenameTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
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

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
