// Package tunnel carries backend HTTP traffic over an SSH connection.
//
// When the metrics backend only listens on a remote machine's loopback
// interface, the dashboard dials it through SSH instead of over the network:
//
//	t, err := tunnel.Dial("mini", tunnel.Options{Timeout: 10 * time.Second})
//	client, err := api.NewClient("http://127.0.0.1:8000/api", api.WithTransport(t.Transport()))
//
// Host aliases, users, ports and identity files are resolved from
// ~/.ssh/config. Authentication tries the SSH agent first, then key files.
package tunnel

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rileyhilliard/sysdash/internal/errors"
	"github.com/rileyhilliard/sysdash/internal/logger"
	"golang.org/x/crypto/ssh"
)

// DefaultTimeout bounds the TCP dial and SSH handshake when Options.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Options controls how the SSH connection is established.
type Options struct {
	Timeout time.Duration

	// InsecureIgnoreHostKey skips known_hosts verification.
	InsecureIgnoreHostKey bool

	Logger logger.Logger
}

// Tunnel is an open SSH connection used as a dialer for backend requests.
type Tunnel struct {
	client  *ssh.Client
	Host    string // The original host/alias used to connect
	Address string // The resolved address (host:port)
}

// Dial establishes an SSH connection to the specified host.
// The host can be:
//   - An SSH config alias (e.g., "myserver")
//   - A hostname (e.g., "192.168.1.100")
//   - A user@hostname (e.g., "user@192.168.1.100")
//   - A hostname:port (e.g., "192.168.1.100:2222")
func Dial(host string, opts Options) (*Tunnel, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	settings := resolveSettings(host, opts.Logger)

	clientConfig, err := buildClientConfig(settings, opts)
	if err != nil {
		var sdErr *errors.Error
		if stderrors.As(err, &sdErr) {
			return nil, err
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Couldn't set up SSH for '%s'", host),
			"Check your keys are loaded: ssh-add -l")
	}

	address := settings.address()
	conn, err := net.DialTimeout("tcp", address, opts.Timeout)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Can't reach '%s' at %s", host, address),
			suggestionForDialError(err))
	}

	_ = conn.SetDeadline(time.Now().Add(opts.Timeout))
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, clientConfig)
	if err != nil {
		conn.Close()

		var hostKeyErr *HostKeyMismatchError
		if stderrors.As(err, &hostKeyErr) {
			return nil, errors.New(errors.ErrSSH, hostKeyErr.Error(), hostKeyErr.Suggestion())
		}

		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", host),
			suggestionForHandshakeError(err, settings.encryptedKeys))
	}
	_ = conn.SetDeadline(time.Time{})

	opts.Logger.Debug("ssh tunnel to %s (%s) established", host, address)
	return &Tunnel{
		client:  ssh.NewClient(sshConn, chans, reqs),
		Host:    host,
		Address: address,
	}, nil
}

// DialContext opens a connection to addr from the remote side of the tunnel.
func (t *Tunnel) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return t.client.DialContext(ctx, network, addr)
}

// Transport returns an HTTP transport whose connections go through the tunnel.
func (t *Tunnel) Transport() *http.Transport {
	return &http.Transport{
		DialContext:         t.DialContext,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
}

// Close closes the SSH connection.
func (t *Tunnel) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}
