package server

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/valyala/fastjson"

	"logpane/internal/app/store"
)

const (
	defaultLimit = 20
	maxLimit     = 1000
	maxLevel     = 4
)

// logRecord is the wire form of a transformation log entry
type logRecord struct {
	ID        string `json:"id"`
	Level     int    `json:"level"`
	Timestamp int64  `json:"timestamp"`
	TestID    int64  `json:"testId"`
	RunID     int64  `json:"runId,omitempty"`
	Message   string `json:"message"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleCount(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	count, err := s.store.Count(c.Request.Context(), q)
	if err != nil {
		s.internalError(c, "count logs", err)
		return
	}

	c.JSON(http.StatusOK, count)
}

func (s *Server) handlePage(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	page, ok := intParam(c, "page", 0, 0, -1)
	if !ok {
		return
	}

	limit, ok := intParam(c, "limit", defaultLimit, 1, maxLimit)
	if !ok {
		return
	}

	records, err := s.store.Page(c.Request.Context(), q, page, limit)
	if err != nil {
		s.internalError(c, "fetch logs", err)
		return
	}

	out := make([]logRecord, len(records))
	for i, r := range records {
		out[i] = logRecord{ID: r.ID, Level: r.Level, Timestamp: r.Timestamp, TestID: r.TestID, RunID: r.RunID, Message: r.Message}
	}

	c.JSON(http.StatusOK, out)
}

func (s *Server) handleDelete(c *gin.Context) {
	q, ok := bindQuery(c)
	if !ok {
		return
	}

	var w store.Window

	from, ok := optionalInt64(c, "from")
	if !ok {
		return
	}

	to, ok := optionalInt64(c, "to")
	if !ok {
		return
	}

	w.From, w.To = from, to

	n, err := s.store.Delete(c.Request.Context(), q, w)
	if err != nil {
		s.internalError(c, "delete logs", err)
		return
	}

	s.log.Info().Msgf("Deleted %d logs of test %d", n, q.TestID)
	c.Status(http.StatusNoContent)
}

// handleIngest accepts one JSON log object or an array of them
func (s *Server) handleIngest(c *gin.Context) {
	testID, ok := pathTestID(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	p := s.parser.Get()
	defer s.parser.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	values := []*fastjson.Value{v}
	if v.Type() == fastjson.TypeArray {
		values, _ = v.Array()
	}

	now := time.Now().UnixMilli()
	records := make([]store.Record, 0, len(values))

	for _, val := range values {
		level := val.GetInt("level")
		if level < 0 || level > maxLevel {
			c.JSON(http.StatusBadRequest, gin.H{"error": "level must be between 0 and 4"})
			return
		}

		ts := val.GetInt64("timestamp")
		if ts == 0 {
			ts = now
		}

		records = append(records, store.Record{
			TestID:    testID,
			RunID:     val.GetInt64("runId"),
			Level:     level,
			Timestamp: ts,
			Message:   string(val.GetStringBytes("message")),
		})
	}

	if err := s.store.Insert(c.Request.Context(), records); err != nil {
		s.internalError(c, "store logs", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"inserted": len(records)})
}

func bindQuery(c *gin.Context) (store.Query, bool) {
	testID, ok := pathTestID(c)
	if !ok {
		return store.Query{}, false
	}

	level, ok := intParam(c, "level", 0, 0, maxLevel)
	if !ok {
		return store.Query{}, false
	}

	runID, ok := optionalInt64(c, "runId")
	if !ok {
		return store.Query{}, false
	}

	q := store.Query{TestID: testID, MinLevel: level}
	if runID != nil {
		q.RunID = *runID
	}

	return q, true
}

func pathTestID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("testId"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid test id"})
		return 0, false
	}

	return id, true
}

// intParam parses an optional integer query parameter within [lo, hi]; hi < 0 means unbounded
func intParam(c *gin.Context, name string, def, lo, hi int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || (hi >= 0 && v > hi) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}

	return v, true
}

func optionalInt64(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}

	return &v, true
}
