package logview

import (
	"fmt"

	"logpane/internal/app/errors"
)

// CountFetchError wraps a failed Count call
type CountFetchError struct {
	Err error
}

func (e *CountFetchError) Error() string {
	return fmt.Sprintf("%s: count: %v", errors.ErrFailedToLoad, e.Err)
}

func (e *CountFetchError) Unwrap() []error {
	return []error{errors.ErrFailedToLoad, e.Err}
}

// RowsFetchError wraps a failed FetchPage call
type RowsFetchError struct {
	Err error
}

func (e *RowsFetchError) Error() string {
	return fmt.Sprintf("%s: rows: %v", errors.ErrFailedToLoad, e.Err)
}

func (e *RowsFetchError) Unwrap() []error {
	return []error{errors.ErrFailedToLoad, e.Err}
}

// DeleteError wraps a failed DeleteRange call
type DeleteError struct {
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("%s: %v", errors.ErrFailedToDelete, e.Err)
}

func (e *DeleteError) Unwrap() []error {
	return []error{errors.ErrFailedToDelete, e.Err}
}
