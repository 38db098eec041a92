package app

import (
	"go.uber.org/fx"

	"logpane/internal/app/cli"
	"logpane/internal/app/monitor"
	"logpane/internal/app/source/transformation"
	"logpane/internal/app/store"
)

var Module = fx.Options(
	cli.Module,
	monitor.Module,
	store.Module,
	transformation.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
