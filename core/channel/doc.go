// Package channel abstracts command execution against the content backend.
//
// The exporter runs identical backend CLI queries whether the site lives on
// the same machine or behind an SSH hop. This package isolates that difference
// behind the Channel interface so business logic never checks a mode flag.
//
// # Implementations
//
//   - Local: spawns the backend CLI binary directly with a bounded per-call
//     timeout.
//   - Remote: runs each command in a fresh SSH session over one shared
//     connection, with a bounded connection-setup timeout and periodic
//     keepalive probes during long commands.
//
// # Failure Model
//
// Every transport failure is soft. Run returns ok=false together with any
// partial output that arrived; it never panics or aborts the run. A remote
// connection that has dropped a session is marked degraded, which callers can
// observe through SupportsIterativeQueries before starting query-per-item
// work such as per-author counting.
//
// # Usage
//
//	ch := channel.NewLocal(cfg.Channel, log)
//	out, ok := ch.Run(ctx, "post-type", "list", "--field=name")
//	if !ok || channel.SessionTerminated(out) {
//	    // fall back to the next strategy
//	}
package channel
