package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mmcdole/logbook/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "logbook/1.0"
)

// Operation names reported in RemoteFailure and user notices.
const (
	OpListMedia     = "get medias"
	OpCreateMedia   = "post media"
	OpUpdateMedia   = "patch media"
	OpDeleteMedia   = "delete media"
	OpCreateComment = "post comment"
	OpUpdateComment = "patch comment"
	OpDeleteComment = "delete comment"
	OpSearch        = "search from external api"
)

var (
	_ domain.MediaRepository   = (*Client)(nil)
	_ domain.CommentRepository = (*Client)(nil)
	_ domain.LookupRepository  = (*Client)(nil)
)

// Client talks to the tracker backend over form-encoded HTTP.
// It never retries; every failure comes back as *domain.RemoteFailure.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a client for baseURL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, fmt.Errorf("server url required")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	base.Path = strings.TrimRight(base.Path, "/")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// BaseURL returns the normalized server address.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// ListMedia returns every entry in server listing order.
func (c *Client) ListMedia(ctx context.Context) ([]domain.MediaEntry, error) {
	body, err := c.doRequest(ctx, OpListMedia, http.MethodGet, "/medias", nil, nil)
	if err != nil {
		return nil, err
	}
	var dtos []mediaDTO
	if err := c.extract(OpListMedia, body, "medias", false, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.MediaEntry, len(dtos))
	for i, d := range dtos {
		out[i] = mapMedia(d)
	}
	return out, nil
}

// CreateMedia submits a new entry and returns the record the server created.
func (c *Client) CreateMedia(ctx context.Context, fields domain.MediaFields) (domain.MediaEntry, error) {
	body, err := c.doRequest(ctx, OpCreateMedia, http.MethodPost, "/media", nil, mediaForm(fields))
	if err != nil {
		return domain.MediaEntry{}, err
	}
	var dto mediaDTO
	if err := c.extract(OpCreateMedia, body, "media", true, &dto); err != nil {
		return domain.MediaEntry{}, err
	}
	return mapMedia(dto), nil
}

// UpdateMedia submits changed fields. The server only confirms success;
// callers apply their own copy of the fields.
func (c *Client) UpdateMedia(ctx context.Context, id int64, fields domain.MediaFields) error {
	form := mediaForm(fields)
	form.Set("id", domain.FormatID(id))
	query := url.Values{"id": {domain.FormatID(id)}}
	_, err := c.doRequest(ctx, OpUpdateMedia, http.MethodPatch, "/media", query, form)
	return err
}

// DeleteMedia removes an entry and returns the deleted record.
func (c *Client) DeleteMedia(ctx context.Context, id int64) (domain.MediaEntry, error) {
	query := url.Values{"id": {domain.FormatID(id)}}
	body, err := c.doRequest(ctx, OpDeleteMedia, http.MethodDelete, "/media", query, nil)
	if err != nil {
		return domain.MediaEntry{}, err
	}
	if !gjson.GetBytes(body, "media").IsObject() {
		return domain.MediaEntry{ID: id}, nil
	}
	var dto mediaDTO
	if err := c.extract(OpDeleteMedia, body, "media", false, &dto); err != nil {
		return domain.MediaEntry{}, err
	}
	return mapMedia(dto), nil
}

// CreateComment attaches a comment to an entry.
func (c *Client) CreateComment(ctx context.Context, mediaID int64, text string) (domain.Comment, error) {
	form := url.Values{"media_id": {domain.FormatID(mediaID)}, "text": {text}}
	body, err := c.doRequest(ctx, OpCreateComment, http.MethodPost, "/comment", nil, form)
	if err != nil {
		return domain.Comment{}, err
	}
	var dto commentDTO
	if err := c.extract(OpCreateComment, body, "comment", true, &dto); err != nil {
		return domain.Comment{}, err
	}
	cm := mapComment(dto)
	if cm.MediaID == 0 {
		cm.MediaID = mediaID
	}
	return cm, nil
}

// UpdateComment replaces a comment's text.
func (c *Client) UpdateComment(ctx context.Context, id int64, text string) (domain.Comment, error) {
	form := url.Values{"id": {domain.FormatID(id)}, "text": {text}}
	body, err := c.doRequest(ctx, OpUpdateComment, http.MethodPatch, "/comment", nil, form)
	if err != nil {
		return domain.Comment{}, err
	}
	var dto commentDTO
	if err := c.extract(OpUpdateComment, body, "comment", true, &dto); err != nil {
		return domain.Comment{}, err
	}
	cm := mapComment(dto)
	if cm.ID == 0 {
		cm.ID = id
	}
	if cm.Text == "" {
		cm.Text = text
	}
	return cm, nil
}

// DeleteComment removes a comment and returns the deleted record.
func (c *Client) DeleteComment(ctx context.Context, id int64) (domain.Comment, error) {
	query := url.Values{"id": {domain.FormatID(id)}}
	body, err := c.doRequest(ctx, OpDeleteComment, http.MethodDelete, "/comment", query, nil)
	if err != nil {
		return domain.Comment{}, err
	}
	if !gjson.GetBytes(body, "comment").IsObject() {
		return domain.Comment{ID: id}, nil
	}
	var dto commentDTO
	if err := c.extract(OpDeleteComment, body, "comment", false, &dto); err != nil {
		return domain.Comment{}, err
	}
	return mapComment(dto), nil
}

// SearchExternal queries the metadata lookup proxied by the backend.
func (c *Client) SearchExternal(ctx context.Context, query string, category domain.Category) ([]domain.LookupResult, error) {
	params := url.Values{"query": {query}, "category": {string(category)}}
	body, err := c.doRequest(ctx, OpSearch, http.MethodGet, "/search", params, nil)
	if err != nil {
		return nil, err
	}
	var dtos []lookupDTO
	if err := c.extract(OpSearch, body, "results", false, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.LookupResult, len(dtos))
	for i, d := range dtos {
		out[i] = mapLookup(d)
	}
	return out, nil
}

// doRequest performs a request and returns the body of a 2xx response.
func (c *Client) doRequest(ctx context.Context, op, method, path string, query, form url.Values) ([]byte, error) {
	rel := &url.URL{Path: c.baseURL.Path + path}
	if query != nil {
		rel.RawQuery = query.Encode()
	}
	reqURL := c.baseURL.ResolveReference(rel).String()

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, &domain.RemoteFailure{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.logger.Debug("tracker request", "op", op, "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RemoteFailure{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.RemoteFailure{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("tracker request rejected", "op", op, "status", resp.StatusCode, "body", string(body))
		return nil, &domain.RemoteFailure{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}
	return body, nil
}

// extract decodes the value at key. With bare set, a body without the key
// is decoded as the entity itself.
func (c *Client) extract(op string, body []byte, key string, bare bool, dest any) error {
	if !gjson.ValidBytes(body) {
		return &domain.RemoteFailure{Op: op, Err: fmt.Errorf("invalid json response")}
	}
	raw := body
	if r := gjson.GetBytes(body, key); r.Exists() {
		raw = []byte(r.Raw)
	} else if !bare {
		return &domain.RemoteFailure{Op: op, Err: fmt.Errorf("response missing %q", key)}
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return &domain.RemoteFailure{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
