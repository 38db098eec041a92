package monitor

import "go.uber.org/fx"

// Module provides the process monitor
var Module = fx.Options(
	fx.Provide(NewMonitor),
)
