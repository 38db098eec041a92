package store

import (
	"go.uber.org/fx"

	"logpane/internal/config"
	"logpane/internal/config/logger"
)

// Factory opens the configured store on demand, so only commands that need it touch the database
type Factory func() (Store, error)

// NewFactory returns a Factory over the server settings
func NewFactory(cfg *config.Config, log logger.Logger) Factory {
	return func() (Store, error) {
		return NewStore(cfg, log)
	}
}

var Module = fx.Options(
	fx.Provide(NewFactory),
)
