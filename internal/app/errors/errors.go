package errors

import (
	"errors"
)

var (
	ErrFailedToReadConfig  = errors.New("failed to read config file")
	ErrFailedToParseConfig = errors.New("failed to parse config file")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrConfigExists        = errors.New("config file already exists")

	ErrInvalidPageSize     = errors.New("viewer page size must be greater than 0")
	ErrInvalidLevel        = errors.New("invalid log level")
	ErrClientURLRequired   = errors.New("client url is required")
	ErrInvalidTimeout      = errors.New("timeout must not be negative")
	ErrInvalidDriver       = errors.New("invalid store driver")
	ErrServerAddrRequired  = errors.New("server addr is required")
	ErrInvalidDebounce     = errors.New("report debounce must not be negative")
	ErrInvalidTestID       = errors.New("invalid test id")
	ErrInvalidRunID        = errors.New("invalid run id")
	ErrReportPatternNeeded = errors.New("report pattern is required")
	ErrNoReportFiles       = errors.New("no report files match pattern")
	ErrUnknownCommand      = errors.New("unknown command")

	ErrDeleteUnsupported = errors.New("log source does not support deletion")
	ErrEngineBusy        = errors.New("log viewer is busy")
	ErrFailedToLoad      = errors.New("failed to load logs")
	ErrFailedToDelete    = errors.New("failed to delete logs")

	ErrUnexpectedStatus      = errors.New("unexpected response status")
	ErrInvalidResponse       = errors.New("invalid response body")
	ErrFailedToCreateRequest = errors.New("failed to create request")

	ErrInvalidReportFile = errors.New("invalid report file")
	ErrStoreClosed       = errors.New("store is closed")
)

var (
	As  = errors.As
	Is  = errors.Is
	New = errors.New
)
