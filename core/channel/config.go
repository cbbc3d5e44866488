package channel

// Config holds configuration for the backend execution channel.
type Config struct {
	// Mode selects how backend commands are executed (local, remote, database).
	Mode string `mapstructure:"mode" default:"local"`
	// Binary is the backend CLI binary to invoke.
	Binary string `mapstructure:"binary" default:"wp"`
	// SitePath is the backend installation path passed to every command.
	// Empty means the CLI resolves the site from the working directory.
	SitePath string `mapstructure:"site_path" default:""`
	// Host is the remote host for SSH mode.
	Host string `mapstructure:"host" default:""`
	// Port is the remote SSH port.
	Port int `mapstructure:"port" default:"22"`
	// User is the remote SSH user.
	User string `mapstructure:"user" default:""`
	// KeyFile is the path to the SSH private key.
	KeyFile string `mapstructure:"key_file" default:""`
	// Password is the SSH password, used when no key file is configured.
	Password string `mapstructure:"password" default:""`
	// ConnectTimeoutSeconds bounds SSH connection setup.
	ConnectTimeoutSeconds int `mapstructure:"connect_timeout_seconds" default:"10"`
	// CommandTimeoutSeconds bounds a single command invocation.
	CommandTimeoutSeconds int `mapstructure:"command_timeout_seconds" default:"120"`
	// KeepaliveSeconds is the keepalive probe interval during long remote commands.
	KeepaliveSeconds int `mapstructure:"keepalive_seconds" default:"15"`
}

const (
	ModeLocal    = "local"
	ModeRemote   = "remote"
	ModeDatabase = "database"
)

// IsValidMode checks if the configured mode is valid.
func (c Config) IsValidMode() bool {
	switch c.Mode {
	case ModeLocal, ModeRemote, ModeDatabase:
		return true
	default:
		return false
	}
}
