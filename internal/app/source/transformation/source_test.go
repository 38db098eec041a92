package transformation

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"logpane/internal/app/errors"
	"logpane/internal/app/logview"
	"logpane/internal/app/server"
	"logpane/internal/app/store"
	"logpane/internal/config"
	"logpane/internal/config/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestLogger(ctrl *gomock.Controller) *logger.MockLogger {
	mockLog := logger.NewMockLogger(ctrl)
	noopLogger := zerolog.New(io.Discard)
	noopEvent := noopLogger.Debug()
	mockLog.EXPECT().Debug().Return(noopEvent).AnyTimes()
	mockLog.EXPECT().Info().Return(noopEvent).AnyTimes()
	mockLog.EXPECT().Warn().Return(noopEvent).AnyTimes()
	mockLog.EXPECT().Error().Return(noopEvent).AnyTimes()
	mockLog.EXPECT().WithComponent(gomock.Any()).Return(mockLog).AnyTimes()

	return mockLog
}

// newLogService starts the real log service on a temporary sqlite store
func newLogService(t *testing.T, log logger.Logger) (*Client, store.Store) {
	t.Helper()

	st, err := store.Open(config.DriverSQLite, filepath.Join(t.TempDir(), "logs.db"), time.Second, log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ts := httptest.NewServer(server.NewServer(config.DefaultConfig(), st, log).Handler())
	t.Cleanup(ts.Close)

	return NewClientWithHTTP(ts.URL, ts.Client(), log), st
}

func seed(t *testing.T, st store.Store, testID int64, n int, level func(i int) int) {
	t.Helper()

	records := make([]store.Record, n)
	for i := range records {
		records[i] = store.Record{
			TestID:    testID,
			RunID:     int64(100 + i%2),
			Level:     level(i),
			Timestamp: int64(1_700_000_000_000 + i*1000),
			Message:   "<b>step</b> done",
		}
	}

	require.NoError(t, st.Insert(context.Background(), records))
}

func Test_Source_CountAndPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client, st := newLogService(t, newTestLogger(ctrl))
	seed(t, st, 5, 12, func(i int) int { return i % 5 })

	src := client.Stream(5, 0)
	ctx := context.Background()

	count, err := src.Count(ctx, logview.Trace)
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	count, err = src.Count(ctx, logview.Warn)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	page, err := src.FetchPage(ctx, logview.Trace, 1, 5)
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, time.UnixMilli(1_700_000_005_000), page[0].Timestamp)
	assert.Equal(t, logview.Level(0), page[0].Level)
	assert.Equal(t, int64(101), page[0].SourceID)
	assert.Equal(t, "<b>step</b> done", page[0].Message)

	run := client.Stream(5, 100)
	count, err = run.Count(ctx, logview.Trace)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
	assert.Equal(t, int64(5), run.TestID())
	assert.Equal(t, int64(100), run.RunID())
}

func Test_Source_DeleteRange(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name      string
		rng       logview.Range
		remaining int
	}{
		{name: "everything", rng: logview.All(), remaining: 0},
		{name: "inclusive window", rng: logview.Between(base.Add(2*time.Second), base.Add(4*time.Second)), remaining: 7},
		{name: "up to timestamp", rng: logview.Until(base.Add(5 * time.Second)), remaining: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client, st := newLogService(t, newTestLogger(ctrl))
			seed(t, st, 5, 10, func(int) int { return 2 })

			src := client.Stream(5, 0)
			require.NoError(t, src.DeleteRange(context.Background(), tt.rng))

			count, err := src.Count(context.Background(), logview.Trace)
			require.NoError(t, err)
			assert.Equal(t, tt.remaining, count)
		})
	}
}

func Test_Source_Engine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	log := newTestLogger(ctrl)
	client, st := newLogService(t, log)
	seed(t, st, 9, 57, func(i int) int { return 3 + i%2 })
	seed(t, st, 9, 43, func(int) int { return 2 })

	e := logview.NewEngine(client.Stream(9, 0), logview.Options{PageSize: 10, Columns: Columns()}, log)
	ctx := context.Background()

	require.NoError(t, e.Drive(ctx, e.Open()))
	require.NoError(t, e.Drive(ctx, e.SetPage(7)))
	require.NoError(t, e.Drive(ctx, e.SetLevel(logview.Warn)))

	assert.True(t, e.CanDelete())
	assert.Equal(t, 5, e.Page())
	assert.Len(t, e.Rows(), 7)
	assert.Len(t, e.Columns(), 4)
}

func Test_Source_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		error   error
	}{
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			error:   errors.ErrUnexpectedStatus,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("{not json")) },
			error:   errors.ErrInvalidResponse,
		},
		{
			name:    "wrong shape",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"count":1}`)) },
			error:   errors.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			src := NewClientWithHTTP(ts.URL, ts.Client(), newTestLogger(ctrl)).Stream(1, 0)

			_, err := src.Count(context.Background(), logview.Trace)
			assert.ErrorIs(t, err, tt.error)

			_, err = src.FetchPage(context.Background(), logview.Trace, 0, 10)
			assert.ErrorIs(t, err, tt.error)
		})
	}
}

func Test_Source_RequestParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var got *http.Request

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	src := NewClientWithHTTP(ts.URL, ts.Client(), newTestLogger(ctrl)).Stream(3, 8)
	to := time.UnixMilli(5000)

	require.NoError(t, src.DeleteRange(context.Background(), logview.Until(to)))
	require.NotNil(t, got)
	assert.Equal(t, http.MethodDelete, got.Method)
	assert.Equal(t, "/api/log/transformation/3", got.URL.Path)
	assert.Equal(t, "5000", got.URL.Query().Get("to"))
	assert.Equal(t, "8", got.URL.Query().Get("runId"))
	assert.False(t, got.URL.Query().Has("from"))
}
