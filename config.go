package jsgen

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/tdewolff/jsgen/ir"
)

// Config are the options of Compile.
type Config struct {
	Minify             bool   `yaml:"minify"`
	Iterator           bool   `yaml:"iterator"`
	Fallthrough        bool   `yaml:"fallthrough"`
	AllowIntermediates bool   `yaml:"allow_intermediates"`
	Indent             string `yaml:"indent"`
	SourceMap          bool   `yaml:"source_map"`
	NamePrefix         string `yaml:"name_prefix"` // prefix of generated names, required when no name factory is given
}

// DefaultConfig returns the configuration used for missing keys.
func DefaultConfig() Config {
	return Config{
		Indent:     "\t",
		NamePrefix: "$",
	}
}

// LoadConfig reads a YAML configuration, keys that are absent keep their default value and unknown keys are an error.
func LoadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// validatePrefix returns an error if the generated names would not be identifiers
func (c Config) validatePrefix() error {
	if !ir.AsIdentifier(c.NamePrefix + "0") {
		return fmt.Errorf("config: name prefix %q does not form identifiers", c.NamePrefix)
	}
	return nil
}

// Validate returns all problems of the configuration combined.
func (c Config) Validate() error {
	var err error
	if strings.Trim(c.Indent, " \t") != "" {
		err = multierr.Append(err, fmt.Errorf("config: indent %q must consist of spaces and tabs", c.Indent))
	}
	if c.Minify && c.Indent != "" && c.Indent != DefaultConfig().Indent {
		err = multierr.Append(err, fmt.Errorf("config: indent has no effect when minifying"))
	}
	if c.NamePrefix != "" {
		err = multierr.Append(err, c.validatePrefix())
	}
	if c.Iterator && c.AllowIntermediates {
		err = multierr.Append(err, fmt.Errorf("config: iterator lowering removes all intermediates, allow_intermediates must be off"))
	}
	return err
}
