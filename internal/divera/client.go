// Package divera talks to the Divera 24/7 HTTP API: one authenticated pull
// of the full state document and one status write. Retry policy lives with
// the caller, never here.
package divera

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"

	"github.com/alarmbridge/alarmbridge/internal/logger"
)

const (
	// DefaultBaseURL is the hosted service endpoint.
	DefaultBaseURL = "https://app.divera247.com"

	apiPullPath   = "/api/v2/pull/all"
	apiStatusPath = "/api/v2/statusgeber/set-status"

	// The service authenticates via a query parameter, not a header.
	// Wire-compatibility requirement of the remote API.
	paramAccessKey = "accesskey"
	paramUCR       = "ucr"

	// Cache-busting timestamps; intermediate caches must never answer.
	paramStatusPlan   = "ts_statusplan"
	paramLocalMonitor = "ts_localmonitor"
	paramMonitor      = "ts_monitor"

	redactedKey = "<redacted>"
)

// Client performs the two remote operations for one account-context.
// It is stateless across calls apart from the held credential.
type Client struct {
	http      *http.Client
	logger    logger.Logger
	baseURL   string
	accessKey string
	ucrID     string // empty = let the server pick the active context
	now       func() time.Time
}

// Options configures a Client. HTTPClient is shared across all clients of a
// process; pooling is its concern, each request here is independent.
type Options struct {
	HTTPClient *http.Client
	Logger     logger.Logger
	BaseURL    string // empty = DefaultBaseURL
	AccessKey  string
	UCRID      string
	Now        func() time.Time // for tests, defaults to time.Now
}

// NewClient creates a client for one account-context.
func NewClient(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		http:      opts.HTTPClient,
		logger:    opts.Logger,
		baseURL:   base,
		accessKey: opts.AccessKey,
		ucrID:     opts.UCRID,
		now:       now,
	}
}

// BaseURL returns the configured API endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UCRID returns the account-context this client is scoped to.
func (c *Client) UCRID() string {
	return c.ucrID
}

// Pull fetches the full remote state for the configured account-context.
// It returns the typed snapshot together with the raw document as received.
// Fails with ErrAuth when the credential is rejected, ErrConnection for
// every other transport fault. Never retries.
func (c *Client) Pull(ctx context.Context) (*Snapshot, []byte, error) {
	ts := strconv.FormatInt(c.now().Unix(), 10)

	var buf bytes.Buffer
	rb := requests.
		URL(c.baseURL).
		Path(apiPullPath).
		Param(paramAccessKey, c.accessKey).
		Param(paramStatusPlan, ts).
		Param(paramLocalMonitor, ts).
		Param(paramMonitor, ts).
		Client(c.http).
		ToBytesBuffer(&buf)
	if c.ucrID != "" {
		rb.Param(paramUCR, c.ucrID)
	}

	if err := rb.Fetch(ctx); err != nil {
		return nil, nil, c.classify(err, c.baseURL+apiPullPath)
	}

	snap, err := DecodeSnapshot(buf.Bytes())
	if err != nil {
		c.logger.Error("malformed pull response",
			logger.String("url", redactURL(c.baseURL+apiPullPath)),
			logger.String("error", c.sanitize(err)))
		return nil, nil, fmt.Errorf("%w: decoding pull response", ErrConnection)
	}
	return snap, buf.Bytes(), nil
}

type statusBody struct {
	Status struct {
		ID int64 `json:"id"`
	} `json:"Status"`
}

// SetStatus writes the account's current availability state. It does not
// touch any cache; callers trigger a fresh Pull to observe the effect.
func (c *Client) SetStatus(ctx context.Context, statusID int64) error {
	var body statusBody
	body.Status.ID = statusID

	rb := requests.
		URL(c.baseURL).
		Path(apiStatusPath).
		Method(http.MethodPost).
		Param(paramAccessKey, c.accessKey).
		Client(c.http).
		BodyJSON(&body)
	if c.ucrID != "" {
		rb.Param(paramUCR, c.ucrID)
	}

	if err := rb.Fetch(ctx); err != nil {
		return c.classify(err, c.baseURL+apiStatusPath)
	}
	return nil
}

// classify maps a transport error onto the ErrAuth/ErrConnection taxonomy.
// The logged URL and error text have the credential stripped first.
func (c *Client) classify(err error, rawURL string) error {
	safe := redactURL(rawURL)
	if requests.HasStatusErr(err, http.StatusUnauthorized) {
		c.logger.Error("access key rejected",
			logger.String("url", safe))
		return ErrAuth
	}
	c.logger.Error("request failed",
		logger.String("url", safe),
		logger.String("error", c.sanitize(err)))
	return fmt.Errorf("%w: requesting %s", ErrConnection, safe)
}

// sanitize removes the credential from an error message before logging.
func (c *Client) sanitize(err error) string {
	if c.accessKey == "" {
		return err.Error()
	}
	return strings.ReplaceAll(err.Error(), c.accessKey, redactedKey)
}
