package transformation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/valyala/fastjson"

	"logpane/internal/app/errors"
	"logpane/internal/config"
	"logpane/internal/config/logger"
)

// Client talks to the transformation log endpoints of the log service
type Client struct {
	baseURL string
	http    *http.Client
	parser  fastjson.ParserPool
	log     logger.Logger
}

// NewClient creates a client for client.url with client.timeout
func NewClient(cfg *config.Config, log logger.Logger) *Client {
	return NewClientWithHTTP(cfg.Client.URL, &http.Client{Timeout: cfg.Client.Timeout}, log)
}

// NewClientWithHTTP creates a client using a caller-provided http.Client
func NewClientWithHTTP(baseURL string, hc *http.Client, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    hc,
		log:     log.WithComponent("CLIENT"),
	}
}

// Stream returns the log source of one test, narrowed to a run when runID is non-zero
func (c *Client) Stream(testID, runID int64) *Source {
	return &Source{client: c, testID: testID, runID: runID}
}

func (c *Client) endpoint(testID int64, suffix string, params url.Values) string {
	u := fmt.Sprintf("%s/api/log/transformation/%d%s", c.baseURL, testID, suffix)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	return u
}

// do performs the request and hands a successful body to decode
func (c *Client) do(ctx context.Context, method, target string, decode func(v *fastjson.Value) error) error {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToCreateRequest, err)
	}

	req.Header.Set("Accept", "application/json")

	c.log.Debug().Msgf("%s %s", method, target)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %s %s returned %d", errors.ErrUnexpectedStatus, method, target, resp.StatusCode)
	}

	if decode == nil {
		return nil
	}

	p := c.parser.Get()
	defer c.parser.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidResponse, err)
	}

	return decode(v)
}

func setRun(params url.Values, runID int64) {
	if runID != 0 {
		params.Set("runId", strconv.FormatInt(runID, 10))
	}
}
