package logview

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"logpane/internal/app/errors"
	"logpane/internal/config/logger"
)

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

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// memorySource is an ordered in-memory stream that supports deletion
type memorySource struct {
	mu      sync.Mutex
	entries []Entry
}

func newMemorySource(levels ...Level) *memorySource {
	s := &memorySource{}
	for i, level := range levels {
		s.entries = append(s.entries, Entry{
			Level:     level,
			Timestamp: baseTime.Add(time.Duration(i) * time.Second),
			Message:   "entry",
		})
	}

	return s
}

func repeatLevel(level Level, n int) []Level {
	levels := make([]Level, n)
	for i := range levels {
		levels[i] = level
	}

	return levels
}

func (s *memorySource) filtered(minLevel Level) []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Level >= minLevel {
			out = append(out, e)
		}
	}

	return out
}

func (s *memorySource) Count(_ context.Context, minLevel Level) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.filtered(minLevel)), nil
}

func (s *memorySource) FetchPage(_ context.Context, minLevel Level, page, size int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.filtered(minLevel)
	start := min(page*size, len(all))
	end := min(start+size, len(all))

	return append([]Entry(nil), all[start:end]...), nil
}

func (s *memorySource) DeleteRange(_ context.Context, r Range) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if !r.Contains(e.Timestamp) {
			kept = append(kept, e)
		}
	}

	s.entries = kept

	return nil
}

// readOnlySource hides the Deleter capability of the wrapped source
type readOnlySource struct {
	inner *memorySource
}

func (s readOnlySource) Count(ctx context.Context, minLevel Level) (int, error) {
	return s.inner.Count(ctx, minLevel)
}

func (s readOnlySource) FetchPage(ctx context.Context, minLevel Level, page, size int) ([]Entry, error) {
	return s.inner.FetchPage(ctx, minLevel, page, size)
}

func Test_Open(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(Info, Warn, Error)
	e := NewEngine(src, Options{PageSize: 10}, newTestLogger(ctrl))

	assert.Equal(t, Idle, e.State())

	req := e.Open()
	require.NotNil(t, req)
	assert.Equal(t, KindCount, req.Kind())
	assert.Equal(t, LoadingCount, e.State())
	assert.True(t, e.Loading())

	next := e.Resolve(req.Do(context.Background()))
	require.NotNil(t, next)
	assert.Equal(t, KindRows, next.Kind())
	assert.Equal(t, LoadingRows, e.State())

	count, known := e.Count()
	assert.True(t, known)
	assert.Equal(t, 3, count)

	assert.Nil(t, e.Resolve(next.Do(context.Background())))
	assert.Equal(t, Ready, e.State())
	assert.Len(t, e.Rows(), 3)
	assert.False(t, e.Loading())
}

func Test_Drive_WarnFilterClampsPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	levels := append(repeatLevel(Info, 43), repeatLevel(Warn, 57)...)
	src := newMemorySource(levels...)
	e := NewEngine(src, Options{PageSize: 10}, newTestLogger(ctrl))

	require.NoError(t, e.Drive(context.Background(), e.Open()))
	require.NoError(t, e.Drive(context.Background(), e.SetPage(7)))
	assert.Equal(t, 7, e.Page())

	req := e.SetLevel(Warn)
	require.NotNil(t, req)
	assert.Empty(t, e.Rows())

	require.NoError(t, e.Drive(context.Background(), req))

	count, _ := e.Count()
	assert.Equal(t, 57, count)
	assert.Equal(t, 6, e.PageCount())
	assert.Equal(t, 5, e.Page())
	assert.Len(t, e.Rows(), 7)

	for _, row := range e.Rows() {
		assert.GreaterOrEqual(t, row.Level, Warn)
	}
}

func Test_Resolve_StaleResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	levels := append(repeatLevel(Debug, 10), repeatLevel(Error, 5)...)
	src := newMemorySource(levels...)
	e := NewEngine(src, Options{PageSize: 20}, newTestLogger(ctrl))

	require.NoError(t, e.Drive(context.Background(), e.Open()))

	ctx := context.Background()

	debugCount := e.SetLevel(Debug)
	require.NotNil(t, debugCount)

	errorCount := e.SetLevel(Error)
	require.NotNil(t, errorCount)

	debugRes := debugCount.Do(ctx)
	errorRes := errorCount.Do(ctx)

	// newer filter answers first
	errorRows := e.Resolve(errorRes)
	require.NotNil(t, errorRows)

	// older filter answers late and is ignored
	assert.Nil(t, e.Resolve(debugRes))

	assert.Nil(t, e.Resolve(errorRows.Do(ctx)))
	assert.Equal(t, Ready, e.State())
	assert.Equal(t, Error, e.Level())

	count, _ := e.Count()
	assert.Equal(t, 5, count)
	assert.Len(t, e.Rows(), 5)

	for _, row := range e.Rows() {
		assert.Equal(t, Error, row.Level)
	}
}

func Test_Resolve_StaleRowsAfterPageChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(repeatLevel(Info, 30)...)
	e := NewEngine(src, Options{PageSize: 10}, newTestLogger(ctrl))
	ctx := context.Background()

	require.NoError(t, e.Drive(ctx, e.Open()))

	first := e.SetPage(1)
	second := e.SetPage(2)
	require.NotNil(t, first)
	require.NotNil(t, second)

	secondRes := second.Do(ctx)
	firstRes := first.Do(ctx)

	assert.Nil(t, e.Resolve(secondRes))
	assert.Nil(t, e.Resolve(firstRes))

	assert.Equal(t, 2, e.Page())
	require.Len(t, e.Rows(), 10)
	assert.Equal(t, baseTime.Add(20*time.Second), e.Rows()[0].Timestamp)
}

func Test_Resolve_ForeignEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(Info)
	log := newTestLogger(ctrl)

	closed := NewEngine(src, Options{}, log)
	reopened := NewEngine(src, Options{}, log)

	late := closed.Open()
	current := reopened.Open()

	// both engines hand out the same first generation
	assert.Equal(t, late.Generation(), current.Generation())
	assert.Nil(t, reopened.Resolve(late.Do(context.Background())))
	assert.Equal(t, LoadingCount, reopened.State())
}

func Test_SetLevel_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(Info, Warn)
	e := NewEngine(src, Options{Level: Info}, newTestLogger(ctrl))

	require.NoError(t, e.Drive(context.Background(), e.Open()))

	assert.Nil(t, e.SetLevel(Info))
	assert.Equal(t, Ready, e.State())
	assert.Len(t, e.Rows(), 2)

	assert.NotNil(t, e.SetLevel(Warn))
	assert.Nil(t, e.SetLevel(Warn))
}

func Test_SetPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		expected int
		request  bool
	}{
		{name: "next page", page: 1, expected: 1, request: true},
		{name: "last page", page: 2, expected: 2, request: true},
		{name: "past the end clamps", page: 9, expected: 2, request: true},
		{name: "negative clamps to first", page: -3, expected: 0, request: false},
		{name: "same page", page: 0, expected: 0, request: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			src := newMemorySource(repeatLevel(Info, 25)...)
			e := NewEngine(src, Options{PageSize: 10}, newTestLogger(ctrl))
			require.NoError(t, e.Drive(context.Background(), e.Open()))

			req := e.SetPage(tt.page)
			assert.Equal(t, tt.request, req != nil)
			assert.Equal(t, tt.expected, e.Page())

			require.NoError(t, e.Drive(context.Background(), req))
			assert.Equal(t, Ready, e.State())
			assert.LessOrEqual(t, len(e.Rows()), e.PageSize())
		})
	}
}

func Test_SetPage_WhileCounting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(repeatLevel(Info, 25)...)
	e := NewEngine(src, Options{PageSize: 10}, newTestLogger(ctrl))

	count := e.Open()
	assert.Nil(t, e.SetPage(4))

	rows := e.Resolve(count.Do(context.Background()))
	require.NotNil(t, rows)
	assert.Equal(t, 2, rows.Page())
	assert.Equal(t, 2, e.Page())
}

func Test_EmptyStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource()
	e := NewEngine(src, Options{PageSize: 10}, newTestLogger(ctrl))

	count := e.Open()
	rows := e.Resolve(count.Do(context.Background()))
	require.NotNil(t, rows, "rows are still fetched for an empty count")

	assert.Nil(t, e.Resolve(rows.Do(context.Background())))
	assert.Equal(t, Ready, e.State())
	assert.Empty(t, e.Rows())
	assert.Equal(t, 0, e.Page())
	assert.Equal(t, 1, e.PageCount())
}

func Test_FetchErrors(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name   string
		before func(m *MockSource)
		check  func(t *testing.T, err error)
	}{
		{
			name: "count fails",
			before: func(m *MockSource) {
				m.EXPECT().Count(gomock.Any(), Info).Return(0, boom)
			},
			check: func(t *testing.T, err error) {
				var target *CountFetchError
				assert.True(t, errors.As(err, &target))
			},
		},
		{
			name: "rows fail",
			before: func(m *MockSource) {
				m.EXPECT().Count(gomock.Any(), Info).Return(12, nil)
				m.EXPECT().FetchPage(gomock.Any(), Info, 0, 10).Return(nil, boom)
			},
			check: func(t *testing.T, err error) {
				var target *RowsFetchError
				assert.True(t, errors.As(err, &target))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			src := NewMockSource(ctrl)
			tt.before(src)

			e := NewEngine(src, Options{PageSize: 10, Level: Info}, newTestLogger(ctrl))

			err := e.Drive(context.Background(), e.Open())
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.ErrorIs(t, err, errors.ErrFailedToLoad)
			tt.check(t, err)

			assert.Equal(t, Failed, e.State())
			assert.Empty(t, e.Rows())
		})
	}
}

func Test_FetchError_Recovers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	gomock.InOrder(
		src.EXPECT().Count(gomock.Any(), Trace).Return(0, errors.New("timeout")),
		src.EXPECT().Count(gomock.Any(), Trace).Return(3, nil),
		src.EXPECT().FetchPage(gomock.Any(), Trace, 0, 10).Return([]Entry{{Level: Info}, {Level: Warn}, {Level: Error}}, nil),
	)

	e := NewEngine(src, Options{PageSize: 10}, newTestLogger(ctrl))

	require.Error(t, e.Drive(context.Background(), e.Open()))
	assert.Equal(t, Failed, e.State())

	// no count is known, so a page change recounts
	req := e.SetPage(0)
	require.NotNil(t, req)
	assert.Equal(t, KindCount, req.Kind())

	require.NoError(t, e.Drive(context.Background(), req))
	assert.Equal(t, Ready, e.State())
	assert.Nil(t, e.Err())
	assert.Len(t, e.Rows(), 3)
}

func Test_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(repeatLevel(Info, 60)...)
	e := NewEngine(src, Options{PageSize: 10}, newTestLogger(ctrl))
	ctx := context.Background()

	require.NoError(t, e.Drive(ctx, e.Open()))
	require.NoError(t, e.Drive(ctx, e.SetPage(5)))

	// remove everything but the last 15 entries
	req, err := e.Delete(Until(baseTime.Add(44 * time.Second)))
	require.NoError(t, err)
	assert.Equal(t, Deleting, e.State())

	require.NoError(t, e.Drive(ctx, req))

	count, _ := e.Count()
	assert.Equal(t, 15, count)
	assert.Equal(t, 1, e.Page())
	assert.Len(t, e.Rows(), 5)
	assert.Equal(t, Ready, e.State())
}

func Test_Delete_Between(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(repeatLevel(Info, 10)...)
	e := NewEngine(src, Options{PageSize: 10}, newTestLogger(ctrl))
	ctx := context.Background()

	require.NoError(t, e.Drive(ctx, e.Open()))

	req, err := e.Delete(Between(baseTime.Add(5*time.Second), baseTime.Add(2*time.Second)))
	require.NoError(t, err)
	require.NoError(t, e.Drive(ctx, req))

	count, _ := e.Count()
	assert.Equal(t, 6, count)
}

func Test_Delete_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("unsupported", func(t *testing.T) {
		e := NewEngine(readOnlySource{inner: newMemorySource(Info)}, Options{}, newTestLogger(ctrl))
		require.NoError(t, e.Drive(context.Background(), e.Open()))

		assert.False(t, e.CanDelete())

		req, err := e.Delete(All())
		assert.Nil(t, req)
		assert.ErrorIs(t, err, errors.ErrDeleteUnsupported)
		assert.Equal(t, Ready, e.State())
	})

	t.Run("busy while loading", func(t *testing.T) {
		e := NewEngine(newMemorySource(Info), Options{}, newTestLogger(ctrl))
		e.Open()

		assert.True(t, e.CanDelete())

		req, err := e.Delete(All())
		assert.Nil(t, req)
		assert.ErrorIs(t, err, errors.ErrEngineBusy)
		assert.Equal(t, LoadingCount, e.State())
	})
}

func Test_Delete_Fails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := NewMockSource(ctrl)
	src.EXPECT().Count(gomock.Any(), Trace).Return(1, nil)
	src.EXPECT().FetchPage(gomock.Any(), Trace, 0, 20).Return([]Entry{{Level: Info}}, nil)

	deleter := NewMockDeleter(ctrl)
	deleter.EXPECT().DeleteRange(gomock.Any(), All()).Return(errors.New("forbidden"))

	source := struct {
		*MockSource
		*MockDeleter
	}{src, deleter}

	e := NewEngine(source, Options{}, newTestLogger(ctrl))
	require.NoError(t, e.Drive(context.Background(), e.Open()))

	req, err := e.Delete(All())
	require.NoError(t, err)

	err = e.Drive(context.Background(), req)

	var target *DeleteError
	require.True(t, errors.As(err, &target))
	assert.ErrorIs(t, err, errors.ErrFailedToDelete)
	assert.Equal(t, Failed, e.State())
	assert.Len(t, e.Rows(), 1)
}

func Test_SetLevel_WhileDeleting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(Info, Info, Warn, Error)
	e := NewEngine(src, Options{}, newTestLogger(ctrl))
	ctx := context.Background()

	require.NoError(t, e.Drive(ctx, e.Open()))

	req, err := e.Delete(Until(baseTime))
	require.NoError(t, err)

	assert.Nil(t, e.SetLevel(Warn))
	assert.Empty(t, e.Rows())
	assert.Equal(t, Deleting, e.State())

	require.NoError(t, e.Drive(ctx, req))

	count, _ := e.Count()
	assert.Equal(t, 2, count)
	assert.Equal(t, Warn, e.Level())
}

func Test_Reload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(Info)
	e := NewEngine(src, Options{}, newTestLogger(ctrl))
	ctx := context.Background()

	require.NoError(t, e.Drive(ctx, e.Open()))

	src.mu.Lock()
	src.entries = append(src.entries, Entry{Level: Error, Timestamp: baseTime.Add(time.Minute)})
	src.mu.Unlock()

	require.NoError(t, e.Drive(ctx, e.Reload()))
	assert.Len(t, e.Rows(), 2)
}

func Test_Table(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src := newMemorySource(Warn, Error)
	e := NewEngine(src, Options{Columns: NewColumns("Level", "Message")}, newTestLogger(ctrl))
	require.NoError(t, e.Drive(context.Background(), e.Open()))

	table := e.Table(func(entry Entry) []string {
		return []string{entry.Level.String(), entry.Message, "extra"}
	})

	assert.Equal(t, [][]string{{"WARN", "entry"}, {"ERROR", "entry"}}, table)

	short := e.Table(func(entry Entry) []string {
		return []string{entry.Level.Glyph()}
	})

	assert.Equal(t, [][]string{{"▲", ""}, {"✖", ""}}, short)
}
