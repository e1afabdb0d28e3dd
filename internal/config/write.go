package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"gopkg.in/yaml.v3"
)

// starterFile is the on-disk shape written by WriteStarter. Durations are
// kept as strings so the file reads "5s" rather than nanoseconds.
type starterFile struct {
	Version               int              `yaml:"version"`
	APIURL                string           `yaml:"api_url"`
	PollInterval          string           `yaml:"poll_interval"`
	RequestTimeout        string           `yaml:"request_timeout,omitempty"`
	ConfirmKill           bool             `yaml:"confirm_kill"`
	FetchProcessesOnStart bool             `yaml:"fetch_processes_on_start"`
	SSH                   *starterSSH      `yaml:"ssh,omitempty"`
	Thresholds            ThresholdsConfig `yaml:"thresholds"`
}

type starterSSH struct {
	Host                  string `yaml:"host"`
	Timeout               string `yaml:"timeout"`
	StrictHostKeyChecking bool   `yaml:"strict_host_key_checking"`
}

// MarshalStarter renders cfg as a config file body.
func MarshalStarter(cfg *Config) ([]byte, error) {
	out := starterFile{
		Version:               cfg.Version,
		APIURL:                cfg.APIURL,
		PollInterval:          cfg.PollInterval.String(),
		ConfirmKill:           cfg.ConfirmKill,
		FetchProcessesOnStart: cfg.FetchProcessesOnStart,
		Thresholds:            cfg.Thresholds,
	}
	if cfg.RequestTimeout > 0 {
		out.RequestTimeout = cfg.RequestTimeout.String()
	}
	if cfg.SSH.Enabled() {
		out.SSH = &starterSSH{
			Host:                  cfg.SSH.Host,
			Timeout:               cfg.SSH.Timeout.String(),
			StrictHostKeyChecking: cfg.SSH.StrictHostKeyChecking,
		}
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	header := "# sysdash configuration\n# Environment variables (SYSDASH_API_URL, SYSDASH_POLL_INTERVAL, ...) override these values.\n"
	return append([]byte(header), data...), nil
}

// WriteStarter writes cfg to path. An existing file is only replaced when force is set.
func WriteStarter(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			"Config already exists at "+path,
			"Use --force to overwrite it.")
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := MarshalStarter(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Couldn't render config", "")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't create "+filepath.Dir(path),
			"Check directory permissions")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path,
			"Check directory permissions")
	}
	return nil
}
