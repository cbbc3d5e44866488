package channel

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRemoteCommand(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		args []string
		want string
	}{
		{
			name: "NoSitePath",
			cfg:  Config{Binary: "wp"},
			args: []string{"post", "list", "--format=csv"},
			want: "wp post list --format=csv",
		},
		{
			name: "SitePathInjected",
			cfg:  Config{Binary: "wp", SitePath: "/var/www/site"},
			args: []string{"post", "list"},
			want: "wp --path=/var/www/site post list",
		},
		{
			name: "SitePathBeforeEveryQuery",
			cfg:  Config{Binary: "wp", SitePath: "/var/www/site"},
			args: []string{"post-type", "list", "--field=name"},
			want: "wp --path=/var/www/site post-type list --field=name",
		},
		{
			name: "QuotedExpression",
			cfg:  Config{Binary: "wp"},
			args: []string{"eval", "echo get_post_types();"},
			want: "wp eval 'echo get_post_types();'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remoteCommand(tt.cfg, tt.args))
		})
	}
}

func TestWithSitePath(t *testing.T) {
	assert.Equal(t, []string{"post", "list"}, withSitePath("", []string{"post", "list"}))
	assert.Equal(t,
		[]string{"--path=/var/www", "post", "list"},
		withSitePath("/var/www", []string{"post", "list"}))
}

func TestAuthMethods(t *testing.T) {
	t.Run("PasswordOnly", func(t *testing.T) {
		methods, err := authMethods(Config{Password: "secret"})
		require.NoError(t, err)
		assert.Len(t, methods, 1)
	})

	t.Run("NeitherConfigured", func(t *testing.T) {
		_, err := authMethods(Config{})
		assert.Error(t, err)
	})

	t.Run("MissingKeyFile", func(t *testing.T) {
		_, err := authMethods(Config{KeyFile: "/nonexistent/key"})
		assert.Error(t, err)
	})
}

func TestRemote_DegradationFlag(t *testing.T) {
	r := &Remote{cfg: Config{}, logger: zap.NewNop()}
	assert.True(t, r.SupportsIterativeQueries())

	r.markDegraded("session open failed", []string{"post", "list"}, nil)
	assert.False(t, r.SupportsIterativeQueries())
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRemote_AbortDrainsOutputCopier(t *testing.T) {
	// The output copier keeps writing until the session is closed; abort must
	// not read the buffer before the copier has finished.
	r := &Remote{cfg: Config{}, logger: zap.NewNop()}

	var stdout bytes.Buffer
	done := make(chan error, 1)
	closed := make(chan struct{})

	go func() {
		<-closed
		stdout.WriteString("post\npage\n")
		done <- fmt.Errorf("session closed")
	}()

	out, ok := r.abort(closerFunc(func() error { close(closed); return nil }), done, &stdout,
		"remote command timed out", []string{"post", "list"}, nil)

	assert.False(t, ok)
	assert.Equal(t, "post\npage\n", string(out))
	assert.False(t, r.SupportsIterativeQueries())
}
