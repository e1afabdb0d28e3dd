package config

import (
	"fmt"
	"net/url"

	"github.com/rileyhilliard/sysdash/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sysdash only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest sysdash release.")
	}

	if err := validateAPIURL(cfg.APIURL); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Set api_url to the backend base, like http://localhost:8000/api")
	}

	if err := validateIntervals(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Use a duration like 2s, 5s, or 1m.")
	}

	if cfg.SSH.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			"ssh.timeout can't be negative",
			"Remove it to use the 10s default.")
	}

	for name, thresh := range map[string]ThresholdValues{
		"cpu":    cfg.Thresholds.CPU,
		"memory": cfg.Thresholds.Memory,
		"disk":   cfg.Thresholds.Disk,
	} {
		if err := validateThresholds(name, thresh); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
				"Check the 'thresholds' section in your .sysdash.yaml.")
		}
	}

	return nil
}

// validateAPIURL checks that the backend URL is absolute http(s).
func validateAPIURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("api_url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("api_url '%s' doesn't parse as a URL", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url '%s' needs an http:// or https:// scheme", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url '%s' is missing a host", raw)
	}
	return nil
}

// validateIntervals checks poll and request timing.
func validateIntervals(cfg *Config) error {
	if cfg.PollInterval < MinPollInterval {
		return fmt.Errorf("poll_interval %v is too short - minimum is %v", cfg.PollInterval, MinPollInterval)
	}
	if cfg.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout can't be negative")
	}
	return nil
}

// validateThresholds checks a threshold configuration for a single metric type.
func validateThresholds(name string, thresh ThresholdValues) error {
	if thresh.Warning < 0 || thresh.Warning > 100 {
		return fmt.Errorf("thresholds.%s.warning needs to be 0-100 (got %d)", name, thresh.Warning)
	}
	if thresh.Critical < 0 || thresh.Critical > 100 {
		return fmt.Errorf("thresholds.%s.critical needs to be 0-100 (got %d)", name, thresh.Critical)
	}
	if thresh.Warning > 0 && thresh.Critical > 0 && thresh.Warning >= thresh.Critical {
		return fmt.Errorf("thresholds.%s.warning (%d%%) is higher than critical (%d%%) - should be the other way around", name, thresh.Warning, thresh.Critical)
	}
	return nil
}
