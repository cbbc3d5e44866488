package channel

import (
	"context"
	"strings"
)

// Channel defines the interface for executing one backend command.
// Implementations hide whether the command runs in a local process or inside
// a remote session.
type Channel interface {
	// Run executes a single backend command and returns its raw output.
	// ok is false on any transport-level failure (timeout, non-zero status,
	// dropped session); output may still contain partial bytes in that case.
	// Callers must tolerate empty or truncated output and carry on.
	Run(ctx context.Context, args ...string) (output []byte, ok bool)

	// Mode returns the configured channel mode (local or remote).
	Mode() string

	// SupportsIterativeQueries reports whether issuing many small queries in a
	// row (for example one count query per author) is safe on this channel.
	// A degraded remote session answers false.
	SupportsIterativeQueries() bool
}

// sessionMarkers are substrings a dying remote session leaks into command
// output. Output containing one of these is unusable even when the transport
// reported success.
var sessionMarkers = []string{
	"Connection closed",
	"closed by remote host",
	"Broken pipe",
	"packet_write_wait",
}

// SessionTerminated reports whether raw command output contains a
// session-termination marker.
func SessionTerminated(output []byte) bool {
	s := string(output)
	for _, marker := range sessionMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// withSitePath prepends the backend installation path flag when one is
// configured. Every channel mode applies it, so a command behaves the same
// whether the CLI runs inside the installation directory or not.
func withSitePath(sitePath string, args []string) []string {
	if sitePath == "" {
		return args
	}
	return append([]string{"--path=" + sitePath}, args...)
}

// shellJoin renders an argv as a single shell command line, single-quoting
// arguments so embedded spaces and metacharacters survive the remote shell.
func shellJoin(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\n'\"\\$&|;<>()*?[]#~") {
			quoted = append(quoted, "'"+strings.ReplaceAll(arg, "'", `'\''`)+"'")
			continue
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}
