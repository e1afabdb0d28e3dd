package cli

import (
	"github.com/rileyhilliard/sysdash/internal/api"
	"github.com/rileyhilliard/sysdash/internal/config"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"github.com/rileyhilliard/sysdash/internal/tunnel"
)

// session is a loaded config plus a client ready to talk to the backend.
type session struct {
	cfg     *config.Config
	cfgPath string
	client  *api.Client
	tun     *tunnel.Tunnel
}

// Close releases the SSH connection, if any.
func (s *session) Close() {
	if s == nil {
		return
	}
	_ = s.tun.Close()
}

// source describes where backend data comes from.
func (s *session) source() string {
	if s.tun != nil {
		return s.client.BaseURL() + " via " + s.tun.Host
	}
	return s.client.BaseURL()
}

// loadConfig finds and loads the config, applies flag overrides and validates.
func loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return nil, "", err
	}
	applyFlagOverrides(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// applyFlagOverrides copies explicitly set persistent flags onto cfg.
func applyFlagOverrides(cfg *config.Config) {
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}
	if intervalFlag > 0 {
		cfg.PollInterval = intervalFlag
	}
	if sshFlag != "" {
		cfg.SSH.Host = sshFlag
	}
}

// openSession loads config and connects, going through SSH when configured.
func openSession() (*session, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return connect(cfg, path)
}

func connect(cfg *config.Config, path string) (*session, error) {
	s := &session{cfg: cfg, cfgPath: path}

	opts := []api.Option{
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger.For("api")),
	}

	if cfg.SSH.Enabled() {
		tun, err := tunnel.Dial(cfg.SSH.Host, tunnel.Options{
			Timeout:               cfg.SSH.Timeout,
			InsecureIgnoreHostKey: !cfg.SSH.StrictHostKeyChecking,
			Logger:                logger.For("ssh"),
		})
		if err != nil {
			return nil, err
		}
		s.tun = tun
		opts = append(opts, api.WithTransport(tun.Transport()))
	}

	client, err := api.NewClient(cfg.APIURL, opts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.client = client
	return s, nil
}
