package mailquery

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/mailquery/mailquery/parser"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// Config carries the operator policy and custom operator table, usually
// loaded from a YAML file. The environment variables MAILQUERY_ALLOWED and
// MAILQUERY_DISALLOWED (comma-separated operator names) override the
// corresponding file entries.
type Config struct {
	Operators  []OperatorConfig `yaml:"operators"`
	Allowed    []string         `yaml:"allowed"`
	Disallowed []string         `yaml:"disallowed"`
}

// OperatorConfig describes one custom operator in the config file.
// A name equal to a built-in operator's replaces that built-in.
type OperatorConfig struct {
	Name          string   `yaml:"name"`
	Aliases       []string `yaml:"aliases"`
	Value         string   `yaml:"value"` // string (default), date, size
	AllowNegation bool     `yaml:"allow_negation"`
}

// LoadConfig reads a YAML configuration file. With an empty path the
// default mailquery.yaml is used if present, otherwise the zero config.
// A .env file in the working directory is loaded first so the MAILQUERY_*
// overrides work without exported variables.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	if configPath == "" {
		configPath = "mailquery.yaml"

		if _, err := os.Stat(configPath); err != nil {
			config := &Config{}
			config.applyEnv()

			return config, nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MAILQUERY_ALLOWED"); v != "" {
		c.Allowed = splitNameList(v)
	}

	if v := os.Getenv("MAILQUERY_DISALLOWED"); v != "" {
		c.Disallowed = splitNameList(v)
	}
}

func splitNameList(v string) []string {
	var names []string

	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}

	return names
}

// Validate checks the custom operator definitions
func (c *Config) Validate() error {
	var problems []string

	seen := make(map[string]bool)

	for i, op := range c.Operators {
		if op.Name == "" {
			problems = append(problems, fmt.Sprintf("operators[%d]: name is required", i))
			continue
		}

		name := strings.ToLower(op.Name)
		if seen[name] {
			problems = append(problems, fmt.Sprintf("operators[%d]: duplicate name %q", i, op.Name))
		}

		seen[name] = true

		switch strings.ToLower(op.Value) {
		case "", "string", "date", "size":
		default:
			problems = append(problems, fmt.Sprintf("operators[%d]: unknown value kind %q", i, op.Value))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigValidation, strings.Join(problems, "; "))
	}

	return nil
}

// ParserOptions converts the config into options for Parse
func (c *Config) ParserOptions() *Options {
	opts := &Options{Allowed: c.Allowed, Disallowed: c.Disallowed}

	for _, op := range c.Operators {
		value := parser.StringValue

		switch strings.ToLower(op.Value) {
		case "date":
			value = parser.DateValue
		case "size":
			value = parser.SizeValue
		}

		opts.Operators = append(opts.Operators, parser.OperatorDefinition{
			Name:          op.Name,
			Aliases:       op.Aliases,
			Kind:          parser.TermKind(strings.ToLower(op.Name)),
			Value:         value,
			AllowNegation: op.AllowNegation,
		})
	}

	return opts
}
