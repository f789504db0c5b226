// Package config defines the calculation file read by the command-line runner
// and the functions for loading and checking it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finance-tools/internal/calculator"
	"github.com/iwvelando/finance-tools/internal/usage"
	"github.com/iwvelando/finance-tools/pkg/constants"
	"github.com/iwvelando/finance-tools/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for a finance-tools run.
type Configuration struct {
	Logging      LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output       OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Usage        usage.Config  `yaml:"usage,omitempty" mapstructure:"usage"`
	Calculations []Calculation `yaml:"calculations" mapstructure:"calculations"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json, yaml
}

// Calculation is one calculator run. Inputs are kept as text, exactly as a
// user would type them into a form.
type Calculation struct {
	Name       string            `yaml:"name" mapstructure:"name"`
	Calculator string            `yaml:"calculator" mapstructure:"calculator"`
	Inputs     map[string]string `yaml:"inputs" mapstructure:"inputs"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if strings.TrimSpace(c.Output.Format) == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
	for i := range c.Calculations {
		c.Calculations[i].Calculator = strings.ToLower(strings.TrimSpace(c.Calculations[i].Calculator))
		if c.Calculations[i].Inputs == nil {
			c.Calculations[i].Inputs = map[string]string{}
		}
	}
}

// Validate returns an error for settings that make the run impossible.
func (c *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		return err
	}
	if err := c.Usage.Validate(); err != nil {
		return fmt.Errorf("invalid usage settings: %w", err)
	}
	if len(c.Calculations) == 0 {
		return fmt.Errorf("no calculations configured")
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	calcs := make([]validation.CalculationConfig, 0, len(c.Calculations))
	for _, calc := range c.Calculations {
		calcs = append(calcs, validation.CalculationConfig{
			Name:       calc.Name,
			Calculator: calc.Calculator,
			Inputs:     calc.Inputs,
		})
	}
	return validation.ValidateCalculations(calcs, calculator.Catalog{})
}

// DisplayName returns the configured name of a calculation, falling back to
// its calculator.
func (calc Calculation) DisplayName() string {
	if name := strings.TrimSpace(calc.Name); name != "" {
		return name
	}
	return calc.Calculator
}
