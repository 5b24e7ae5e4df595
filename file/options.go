package file

import (
	"io/fs"
	"log/slog"

	"github.com/jmgilman/go/file/fs/billy"
	"github.com/jmgilman/go/file/fs/core"
)

const (
	// DefaultFilePermissions is applied to files created without WithPermissions.
	DefaultFilePermissions fs.FileMode = 0o644

	// DefaultDirPermissions is applied to directories created without WithDirPermissions.
	DefaultDirPermissions fs.FileMode = 0o755
)

// Option configures Open and NewSystem.
type Option func(*config)

type config struct {
	fs     core.FS
	logger *slog.Logger
	perm   fs.FileMode
}

func newConfig(opts []Option) *config {
	cfg := &config{perm: DefaultFilePermissions}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.fs == nil {
		cfg.fs = billy.NewLocal()
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// WithFS selects the backend. The default is the local disk.
func WithFS(filesystem core.FS) Option {
	return func(c *config) {
		c.fs = filesystem
	}
}

// WithLogger sets the logger used for debug records. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPermissions sets the permission bits for files created by Open.
// It has no effect on modes that do not create.
func WithPermissions(perm fs.FileMode) Option {
	return func(c *config) {
		c.perm = perm
	}
}

// DirOption configures CreateDirectory.
type DirOption func(*dirConfig)

type dirConfig struct {
	recursive bool
	perm      fs.FileMode
}

// WithIntermediateDirectories makes CreateDirectory create missing parent
// segments and accept an existing directory at the full path.
func WithIntermediateDirectories() DirOption {
	return func(c *dirConfig) {
		c.recursive = true
	}
}

// WithDirPermissions sets the permission bits for created directories.
func WithDirPermissions(perm fs.FileMode) DirOption {
	return func(c *dirConfig) {
		c.perm = perm
	}
}
