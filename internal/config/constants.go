package config

import "time"

// app constants
const (
	AppName        = "logpane"
	AppDescription = "terminal log viewer with paging, level filtering and range deletion"
	ConfigFile     = "logpane.yaml"
	EnvFile        = ".env"
	EnvPrefix      = "LOGPANE"

	LogLevel  = "info"
	LogFormat = "console"

	Version = "0.3.0"
)

// viewer constants
const (
	DefaultPageSize   = 20
	DefaultMinLevel   = "trace"
	DefaultTimeFormat = "2006-01-02 15:04:05"
)

// client constants
const (
	DefaultClientURL     = "http://127.0.0.1:8090"
	DefaultClientTimeout = 10 * time.Second
)

// server constants
const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"

	DefaultServerAddr   = "127.0.0.1:8090"
	DefaultDriver       = DriverSQLite
	DefaultDSN          = "logpane.db"
	DefaultQueryTimeout = 5 * time.Second

	ShutdownTimeout = 5 * time.Second
)

// report constants
const (
	DefaultReportDebounce = 300 * time.Millisecond
)
