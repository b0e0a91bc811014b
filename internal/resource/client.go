package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/deskboard/internal/encoding"
)

const defaultTimeout = 30 * time.Second

// API is the shared transport of every resource client: base URL, bearer token and HTTP client.
type API struct {
	baseURL    string
	token      string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

type APIOption func(*API)

func WithToken(token string) APIOption {
	return func(a *API) { a.token = token }
}

func WithHTTPClient(c *http.Client) APIOption {
	return func(a *API) { a.httpClient = c }
}

// WithTimeout sets the request timeout. A client passed with WithHTTPClient is
// copied, never modified.
func WithTimeout(d time.Duration) APIOption {
	return func(a *API) { a.timeout = d }
}

func WithAPILogger(l *slog.Logger) APIOption {
	return func(a *API) { a.logger = l }
}

func NewAPI(baseURL string, opts ...APIOption) *API {
	a := &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     discardLogger(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.timeout > 0 {
		c := *a.httpClient
		c.Timeout = a.timeout
		a.httpClient = &c
	}

	return a
}

func (a *API) BaseURL() string {
	return a.baseURL
}

func (a *API) do(ctx context.Context, method, path string, query url.Values, body any) (int, []byte, error) {
	endpoint := a.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: create request: %v", ErrNetwork, err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	a.logger.Debug("api request", "method", method, "url", endpoint)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	r, err := encoding.ForContentType(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: decode body: %v", ErrNetwork, err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}

	a.logger.Debug("api response", "method", method, "url", endpoint, "status", resp.StatusCode, "bytes", len(data))

	return resp.StatusCode, data, nil
}

// GetOne fetches a single object from path and decodes it into T. It is used for
// endpoints that are not backed by a collection, such as summaries.
func GetOne[T any](ctx context.Context, api *API, path string) DetailResult[T] {
	status, body, err := api.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return DetailResult[T]{Error: networkMessage(err)}
	}

	res, err := decodeDetail[T](status, body)
	if err != nil {
		return DetailResult[T]{Error: networkMessage(err)}
	}

	return res
}

// Remote is the set of calls a Collection issues against one REST resource.
//
//go:generate mockgen -source=client.go -destination=remote_mock.go -package=resource
type Remote[T any] interface {
	List(ctx context.Context, params ListParams) ListResult[T]
	Get(ctx context.Context, id string) DetailResult[T]
	Create(ctx context.Context, payload any) MutationResult[T]
	Update(ctx context.Context, id string, payload any) MutationResult[T]
	Delete(ctx context.Context, id string) MutationResult[T]
}

// Client talks to one REST resource, e.g. /transactions. Every method resolves to a
// result value: transport and decode failures are reported through Error.
type Client[T any] struct {
	api          *API
	path         string
	updateMethod string
}

type ClientOption func(*clientOptions)

type clientOptions struct {
	updateMethod string
}

// WithUpdateMethod selects PUT (default) or PATCH for updates.
func WithUpdateMethod(method string) ClientOption {
	return func(o *clientOptions) { o.updateMethod = method }
}

func NewClient[T any](api *API, path string, opts ...ClientOption) *Client[T] {
	o := clientOptions{updateMethod: http.MethodPut}
	for _, opt := range opts {
		opt(&o)
	}

	return &Client[T]{
		api:          api,
		path:         strings.Trim(path, "/"),
		updateMethod: o.updateMethod,
	}
}

func (c *Client[T]) Path() string {
	return c.path
}

func (c *Client[T]) List(ctx context.Context, params ListParams) ListResult[T] {
	status, body, err := c.api.do(ctx, http.MethodGet, c.path, params.query(), nil)
	if err != nil {
		return ListResult[T]{Error: networkMessage(err)}
	}

	res, err := decodeList[T](status, body)
	if err != nil {
		c.api.logger.Warn("failed to decode list response", "resource", c.path, "error", err)
		return ListResult[T]{Error: networkMessage(err)}
	}

	return res
}

func (c *Client[T]) Get(ctx context.Context, id string) DetailResult[T] {
	status, body, err := c.api.do(ctx, http.MethodGet, c.itemPath(id), nil, nil)
	if err != nil {
		return DetailResult[T]{Error: networkMessage(err)}
	}

	res, err := decodeDetail[T](status, body)
	if err != nil {
		c.api.logger.Warn("failed to decode detail response", "resource", c.path, "id", id, "error", err)
		return DetailResult[T]{Error: networkMessage(err)}
	}

	return res
}

func (c *Client[T]) Create(ctx context.Context, payload any) MutationResult[T] {
	return c.mutate(ctx, http.MethodPost, c.path, payload)
}

func (c *Client[T]) Update(ctx context.Context, id string, payload any) MutationResult[T] {
	return c.mutate(ctx, c.updateMethod, c.itemPath(id), payload)
}

func (c *Client[T]) Delete(ctx context.Context, id string) MutationResult[T] {
	return c.mutate(ctx, http.MethodDelete, c.itemPath(id), nil)
}

func (c *Client[T]) mutate(ctx context.Context, method, path string, payload any) MutationResult[T] {
	status, body, err := c.api.do(ctx, method, path, nil, payload)
	if err != nil {
		return MutationResult[T]{Error: networkMessage(err)}
	}

	res, err := decodeMutation[T](status, body)
	if err != nil {
		c.api.logger.Warn("failed to decode mutation response", "resource", c.path, "method", method, "error", err)
		return MutationResult[T]{Error: networkMessage(err)}
	}

	return res
}

func (c *Client[T]) itemPath(id string) string {
	return c.path + "/" + url.PathEscape(id)
}

func (p ListParams) query() url.Values {
	q := url.Values{}

	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}

	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Status != "" && p.Status != StatusAll {
		q.Set("status", p.Status)
	}

	return q
}

func networkMessage(err error) string {
	return "Network error: " + err.Error()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
