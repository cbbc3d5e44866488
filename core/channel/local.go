package channel

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Local executes backend commands by spawning the CLI binary directly.
type Local struct {
	binary   string
	sitePath string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewLocal creates a local execution channel from the configuration.
func NewLocal(cfg Config, l *zap.Logger) *Local {
	timeout := cfg.CommandTimeoutSeconds
	if timeout <= 0 {
		timeout = 120
	}

	return &Local{
		binary:   cfg.Binary,
		sitePath: cfg.SitePath,
		timeout:  time.Duration(timeout) * time.Second,
		logger:   l,
	}
}

// Run executes the backend binary with the given arguments. A non-zero exit
// or a timeout is a soft failure: partial stdout is returned with ok=false.
func (c *Local) Run(ctx context.Context, args ...string) ([]byte, bool) {
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.binary, withSitePath(c.sitePath, args)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		c.logger.Warn("local command failed",
			zap.String("command", strings.Join(args, " ")),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
			zap.Error(err),
		)
		return stdout.Bytes(), false
	}

	return stdout.Bytes(), true
}

// Mode returns "local".
func (c *Local) Mode() string {
	return ModeLocal
}

// SupportsIterativeQueries always reports true: spawning one process per query
// is cheap and has no session budget.
func (c *Local) SupportsIterativeQueries() bool {
	return true
}
