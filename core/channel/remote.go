package channel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
)

// Remote executes backend commands inside an SSH session. Remote sessions are
// subject to idle limits and mid-stream disconnection, so every failure here
// is soft: the caller gets whatever output arrived plus ok=false.
type Remote struct {
	cfg    Config
	client *ssh.Client
	logger *zap.Logger

	mu       sync.Mutex
	degraded bool
}

// NewRemote dials the remote host and returns a channel bound to the
// connection. Connection setup is bounded by the configured connect timeout.
func NewRemote(cfg Config, l *zap.Logger) (*Remote, error) {
	connectTimeout := cfg.ConnectTimeoutSeconds
	if connectTimeout <= 0 {
		connectTimeout = 10
	}

	auth, err := authMethods(cfg)
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User: cfg.User,
		Auth: auth,
		// Export targets are operator-configured hosts, not arbitrary peers.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         time.Duration(connectTimeout) * time.Second,
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	return &Remote{cfg: cfg, client: client, logger: l}, nil
}

func authMethods(cfg Config) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	if cfg.KeyFile != "" {
		key, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read key file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("remote channel requires a key file or password")
	}

	return methods, nil
}

// Run executes one backend command in a fresh session on the shared
// connection. Keepalive probes are sent while the command runs; a dropped
// session or timeout marks the channel degraded and returns partial output.
func (c *Remote) Run(ctx context.Context, args ...string) ([]byte, bool) {
	session, err := c.client.NewSession()
	if err != nil {
		c.markDegraded("session open failed", args, err)
		return nil, false
	}
	defer session.Close()

	var stdout bytes.Buffer
	session.Stdout = &stdout

	if err := session.Start(remoteCommand(c.cfg, args)); err != nil {
		c.markDegraded("command start failed", args, err)
		return nil, false
	}

	done := make(chan error, 1)
	go func() {
		done <- session.Wait()
	}()

	keepalive := c.cfg.KeepaliveSeconds
	if keepalive <= 0 {
		keepalive = 15
	}
	ticker := time.NewTicker(time.Duration(keepalive) * time.Second)
	defer ticker.Stop()

	timeout := c.cfg.CommandTimeoutSeconds
	if timeout <= 0 {
		timeout = 120
	}
	timer := time.NewTimer(time.Duration(timeout) * time.Second)
	defer timer.Stop()

	for {
		select {
		case err := <-done:
			if err != nil {
				c.markDegraded("remote command failed", args, err)
				return stdout.Bytes(), false
			}
			return stdout.Bytes(), true

		case <-ticker.C:
			// Probe the connection so idle limits don't kill long commands.
			if _, _, err := c.client.SendRequest("keepalive@openssh.com", true, nil); err != nil {
				return c.abort(session, done, &stdout, "keepalive failed", args, err)
			}

		case <-timer.C:
			return c.abort(session, done, &stdout, "remote command timed out", args, nil)

		case <-ctx.Done():
			return c.abort(session, done, &stdout, "run cancelled", args, ctx.Err())
		}
	}
}

// abort tears down the session after a transport-level failure and returns
// whatever output had arrived. The SSH library copies remote stdout into the
// buffer from its own goroutine until Wait returns, so the buffer must not be
// read until that copier has stopped: close the session to unblock it, then
// drain done with a short grace period.
func (c *Remote) abort(session io.Closer, done <-chan error, stdout *bytes.Buffer, msg string, args []string, err error) ([]byte, bool) {
	c.markDegraded(msg, args, err)

	_ = session.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}

	return stdout.Bytes(), false
}

// remoteCommand renders the full remote command line: the backend binary, the
// optional installation path flag, then the query arguments, shell-quoted.
func remoteCommand(cfg Config, args []string) string {
	return shellJoin(append([]string{cfg.Binary}, withSitePath(cfg.SitePath, args)...))
}

// Mode returns "remote".
func (c *Remote) Mode() string {
	return ModeRemote
}

// SupportsIterativeQueries reports false once any session on this connection
// has failed. Issuing dozens of per-author queries over a flaky session would
// produce a half-populated result, which is worse than none.
func (c *Remote) SupportsIterativeQueries() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.degraded
}

// Close tears down the SSH connection.
func (c *Remote) Close() error {
	return c.client.Close()
}

func (c *Remote) markDegraded(msg string, args []string, err error) {
	c.mu.Lock()
	c.degraded = true
	c.mu.Unlock()

	fields := []zap.Field{zap.String("command", strings.Join(args, " "))}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	c.logger.Warn(msg, fields...)
}
