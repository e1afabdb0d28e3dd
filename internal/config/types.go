package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults for the dashboard. The backend address and poll period match what
// the backend ships with out of the box.
const (
	DefaultAPIURL       = "http://localhost:8000/api"
	DefaultPollInterval = 5 * time.Second
	DefaultSSHTimeout   = 10 * time.Second

	// MinPollInterval keeps the poller from hammering the backend.
	MinPollInterval = 500 * time.Millisecond
)

// Config represents the complete .sysdash.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// APIURL is the backend base URL; endpoint paths are appended to it.
	APIURL string `yaml:"api_url" mapstructure:"api_url"`

	// PollInterval is how often system info is refreshed.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// RequestTimeout bounds each backend request. Zero means the transport default.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`

	// ConfirmKill asks before sending a kill from the dashboard.
	ConfirmKill bool `yaml:"confirm_kill" mapstructure:"confirm_kill"`

	// FetchProcessesOnStart loads the process list on mount instead of waiting for a refresh.
	FetchProcessesOnStart bool `yaml:"fetch_processes_on_start" mapstructure:"fetch_processes_on_start"`

	SSH        SSHConfig        `yaml:"ssh" mapstructure:"ssh"`
	Thresholds ThresholdsConfig `yaml:"thresholds" mapstructure:"thresholds"`
}

// SSHConfig routes backend traffic through an SSH connection to a single host.
type SSHConfig struct {
	// Host is an SSH config alias, hostname, user@host or host:port. Empty disables the tunnel.
	Host string `yaml:"host" mapstructure:"host"`

	// Timeout bounds the SSH dial and handshake.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// StrictHostKeyChecking verifies the server key against ~/.ssh/known_hosts.
	StrictHostKeyChecking bool `yaml:"strict_host_key_checking" mapstructure:"strict_host_key_checking"`
}

// Enabled reports whether the SSH transport should be used.
func (s SSHConfig) Enabled() bool {
	return s.Host != ""
}

// ThresholdsConfig controls when gauges turn warning/critical colors.
type ThresholdsConfig struct {
	CPU    ThresholdValues `yaml:"cpu" mapstructure:"cpu"`
	Memory ThresholdValues `yaml:"memory" mapstructure:"memory"`
	Disk   ThresholdValues `yaml:"disk" mapstructure:"disk"`
}

// ThresholdValues is a warning/critical percentage pair.
type ThresholdValues struct {
	Warning  int `yaml:"warning" mapstructure:"warning"`
	Critical int `yaml:"critical" mapstructure:"critical"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:      CurrentConfigVersion,
		APIURL:       DefaultAPIURL,
		PollInterval: DefaultPollInterval,
		ConfirmKill:  true,
		SSH: SSHConfig{
			Timeout:               DefaultSSHTimeout,
			StrictHostKeyChecking: true,
		},
		Thresholds: ThresholdsConfig{
			CPU:    ThresholdValues{Warning: 70, Critical: 90},
			Memory: ThresholdValues{Warning: 70, Critical: 90},
			Disk:   ThresholdValues{Warning: 80, Critical: 95},
		},
	}
}
