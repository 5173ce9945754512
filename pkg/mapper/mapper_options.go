package mapper

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/omicsdesk/genomaps/pkg/kgml"
)

// Option configures a Mapper at construction
type Option func(*Mapper)

// WithFS overrides the filesystem the mapper writes output to
func WithFS(fs afero.Fs) Option {
	return func(m *Mapper) {
		m.fs = fs
	}
}

// WithLogger sets the logger, e.g. when the consumer wants logging
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mapper) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDrawer overrides the map renderer
func WithDrawer(drawer *kgml.Drawer) Option {
	return func(m *Mapper) {
		m.drawer = drawer
	}
}

// WithOverwrite allows pre-existing output files to be replaced
func WithOverwrite(overwrite bool) Option {
	return func(m *Mapper) {
		m.overwriteOutput = overwrite
	}
}
