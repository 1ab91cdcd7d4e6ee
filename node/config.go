package node

import (
	"net"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/tos-network/gescrow/params"
)

const (
	DefaultHTTPHost = "localhost" // Default host interface for the HTTP RPC server
	DefaultHTTPPort = 8645        // Default TCP port for the HTTP RPC server
)

// Config represents a small collection of configuration values to fine tune
// the ledger node. These values can be further extended by all registered
// services.
type Config struct {
	// DataDir is the file system folder the node should use for the ledger
	// database. An empty DataDir keeps the ledger in memory.
	DataDir string

	// HTTPHost is the host interface on which to start the HTTP RPC server. If
	// this field is empty, no HTTP API endpoint will be started.
	HTTPHost string

	// HTTPPort is the TCP port number on which to start the HTTP RPC server.
	HTTPPort int `toml:",omitempty"`

	// HTTPCors is the Cross-Origin Resource Sharing header to send to requesting
	// clients.
	HTTPCors []string `toml:",omitempty"`

	// BlockPeriodMs is the interval at which the dev ledger produces blocks
	// while serving. Zero disables automatic block production.
	BlockPeriodMs uint64

	// Dev exposes the dev_* RPC namespace, which submits calls on behalf of
	// arbitrary accounts and produces blocks on demand.
	Dev bool `toml:",omitempty"`

	Metrics MetricsConfig
}

// MetricsConfig contains the configuration for the metric collection.
type MetricsConfig struct {
	Enabled bool   `toml:",omitempty"`
	HTTP    string `toml:",omitempty"`
	Port    int    `toml:",omitempty"`
}

// DefaultConfig contains reasonable default settings.
var DefaultConfig = Config{
	DataDir:       DefaultDataDir(),
	HTTPHost:      DefaultHTTPHost,
	HTTPPort:      DefaultHTTPPort,
	BlockPeriodMs: params.DevBlockPeriodMs,
	Metrics: MetricsConfig{
		HTTP: "127.0.0.1",
		Port: 6060,
	},
}

// DefaultDataDir is the default data directory to use for the databases and
// other persistence requirements.
func DefaultDataDir() string {
	home := homeDir()
	if home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Gescrow")
	case "windows":
		if appdata := os.Getenv("LOCALAPPDATA"); appdata != "" {
			return filepath.Join(appdata, "Gescrow")
		}
		return filepath.Join(home, "AppData", "Local", "Gescrow")
	default:
		return filepath.Join(home, ".gescrow")
	}
}

// LedgerDir returns the directory holding the ledger database, "" for an
// in-memory ledger.
func (c *Config) LedgerDir() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "ledger")
}

// HTTPEndpoint resolves the HTTP endpoint based on the configured host
// interface and port parameters.
func (c *Config) HTTPEndpoint() string {
	if c.HTTPHost == "" {
		return ""
	}
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(c.HTTPPort))
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
