// Package config loads and hot-reloads the desktop shell's configuration.
// Values come from a YAML file, environment variables override it, and
// everything is validated before it reaches a consumer: an invalid file
// never displaces a previously applied configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nexusdesk/ignition"
)

// validate is the shared validator instance.
var validate = validator.New()

// Duration is a time.Duration that unmarshals from strings like "3s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.parse(s)
}

// UnmarshalText implements encoding.TextUnmarshaler for env overrides.
func (d *Duration) UnmarshalText(text []byte) error {
	return d.parse(string(text))
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Remote configures SSH execution of the nexus CLI on another host.
type Remote struct {
	Host       string `yaml:"host" env:"IGNITION_SSH_HOST" validate:"required"`
	Port       int    `yaml:"port" env:"IGNITION_SSH_PORT" validate:"min=1,max=65535"`
	User       string `yaml:"user" env:"IGNITION_SSH_USER" validate:"required"`
	Password   string `yaml:"password" env:"IGNITION_SSH_PASSWORD"`
	PrivateKey string `yaml:"private_key" env:"IGNITION_SSH_KEY"`
}

// Config is the shell configuration. The status timeout must be strictly
// shorter than the deadline so the normal initialization path can settle
// before the backstop fires.
type Config struct {
	Deadline      Duration `yaml:"deadline" env:"IGNITION_DEADLINE" validate:"gt=0"`
	StatusTimeout Duration `yaml:"status_timeout" env:"IGNITION_STATUS_TIMEOUT" validate:"gt=0,ltfield=Deadline"`
	PollInterval  Duration `yaml:"poll_interval" env:"IGNITION_POLL_INTERVAL" validate:"gt=0"`
	Binary        string   `yaml:"binary" env:"IGNITION_BINARY" validate:"required"`
	Remote        *Remote  `yaml:"remote,omitempty"`
}

// Default returns the configuration used when no file overrides it.
func Default() Config {
	return Config{
		Deadline:      Duration(ignition.DefaultDeadline),
		StatusTimeout: Duration(ignition.DefaultStatusTimeout),
		PollInterval:  Duration(ignition.DefaultPollInterval),
		Binary:        "nexus",
	}
}

// Load reads the file at path, applies environment overrides, and validates
// the result. Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// ControllerOptions translates the timing fields into controller options.
func (c Config) ControllerOptions() []ignition.Option {
	return []ignition.Option{
		ignition.WithDeadline(c.Deadline.Std()),
		ignition.WithStatusTimeout(c.StatusTimeout.Std()),
		ignition.WithPollInterval(c.PollInterval.Std()),
	}
}
