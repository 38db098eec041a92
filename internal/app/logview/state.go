package logview

import (
	"context"

	"github.com/looplab/fsm"

	"logpane/internal/config/logger"
)

// FSM states
const (
	Idle         = "idle"
	LoadingCount = "loading_count"
	LoadingRows  = "loading_rows"
	Ready        = "ready"
	Failed       = "error"
	Deleting     = "deleting"
)

// FSM events
const (
	Load     = "load"
	Counted  = "counted"
	Paginate = "paginate"
	Loaded   = "loaded"
	Fail     = "fail"
	Delete   = "delete"
	Deleted  = "deleted"
)

// newEngineFSM creates the state machine driving one viewer session
func newEngineFSM(log logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		Idle,
		fsm.Events{
			{Name: Load, Src: []string{Idle, Ready, Failed, LoadingCount, LoadingRows}, Dst: LoadingCount},
			{Name: Counted, Src: []string{LoadingCount}, Dst: LoadingRows},
			{Name: Paginate, Src: []string{Ready, Failed, LoadingRows}, Dst: LoadingRows},
			{Name: Loaded, Src: []string{LoadingRows}, Dst: Ready},
			{Name: Fail, Src: []string{LoadingCount, LoadingRows, Deleting}, Dst: Failed},
			{Name: Delete, Src: []string{Ready, Failed}, Dst: Deleting},
			{Name: Deleted, Src: []string{Deleting}, Dst: LoadingCount},
		},
		fsm.Callbacks{
			"after_event": func(ctx context.Context, e *fsm.Event) {
				log.Debug().Msgf("STATE %s → %s (trigger: %s)", e.Src, e.Dst, e.Event)
			},
		},
	)
}
