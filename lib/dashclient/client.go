package dashclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	apimodels "pmfin-backend/models/api"
	userapimodels "pmfin-backend/models/api/user"
)

const apiPrefix = "/api/v1/"

type Config struct {
	BaseURL      string
	Token        string
	Toaster      Toaster
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client talks to the dashboard REST API. Reads are retried and cached; mutations are sent once
// and invalidate related cache entries only after the server confirmed them.
type Client struct {
	baseURL string
	retry   *retryablehttp.Client
	toaster Toaster
	cache   *Cache
	logger  *log.Entry

	mu    sync.RWMutex
	token string
}

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Paging  *apimodels.Paging `json:"paging"`
	Meta    json.RawMessage   `json:"meta"`
}

func New(cfg Config) *Client {
	logger := log.WithField("component", "dashclient")
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	if cfg.RetryMax > 0 {
		retryClient.RetryMax = cfg.RetryMax
	}
	if cfg.RetryWaitMin > 0 {
		retryClient.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		retryClient.RetryWaitMax = cfg.RetryWaitMax
	}
	retryClient.HTTPClient.Timeout = 30 * time.Second
	if cfg.Timeout > 0 {
		retryClient.HTTPClient.Timeout = cfg.Timeout
	}
	retryClient.Logger = leveledLogger{logger}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	toaster := cfg.Toaster
	if toaster == nil {
		toaster = LogToaster{Logger: logger}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		retry:   retryClient,
		toaster: toaster,
		cache:   NewCache(),
		logger:  logger,
		token:   cfg.Token,
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Cache() *Cache {
	return c.cache
}

func (c *Client) Login(ctx context.Context, email, password string) (userapimodels.LoginResponse, error) {
	var resp userapimodels.LoginResponse
	request := userapimodels.LoginRequest{Email: email, Password: password}
	if err := request.Validate(); err != nil {
		return resp, &ValidationError{Message: err.Error()}
	}
	if err := c.send(ctx, http.MethodPost, "auth/login", request, &resp); err != nil {
		return resp, err
	}
	c.SetToken(resp.Token)
	c.cache.Invalidate("")
	return resp, nil
}

func (c *Client) GetSession(ctx context.Context) (userapimodels.Session, error) {
	var resp userapimodels.Session
	err := c.send(ctx, http.MethodGet, "auth/session", nil, &resp)
	return resp, err
}

// query is a cached read. List endpoints take their filter as a POST body.
func query[T any](ctx context.Context, c *Client, key, method, path string, payload any) (T, error) {
	if cached, ok := c.cache.Get(key); ok {
		if value, ok := cached.(T); ok {
			return value, nil
		}
	}
	var value T
	if err := c.send(ctx, method, path, payload, &value); err != nil {
		return value, err
	}
	c.cache.Set(key, value)
	return value, nil
}

// mutate sends a state-changing request and drops the cache prefixes once the server confirmed it.
func (c *Client) mutate(ctx context.Context, method, path string, payload, out any, invalidate ...string) error {
	if err := c.send(ctx, method, path, payload, out); err != nil {
		return err
	}
	c.cache.Invalidate(invalidate...)
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

func (c *Client) upload(ctx context.Context, path, field, fileName string, file io.Reader, out any) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, err := writer.CreateFormFile(field, fileName)
	if err != nil {
		return errors.Wrap(err, "failed to build upload")
	}
	if _, err = io.Copy(part, file); err != nil {
		return errors.Wrap(err, "failed to read upload")
	}
	if err = writer.Close(); err != nil {
		return errors.Wrap(err, "failed to build upload")
	}
	return c.do(ctx, http.MethodPost, path, buf.Bytes(), writer.FormDataContentType(), out)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	url := c.baseURL + apiPrefix + strings.TrimPrefix(path, "/")
	logger := c.logger.WithField("method", method).WithField("url", url)

	resp, err := c.roundTrip(ctx, method, url, body, contentType)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.WithError(err).Warn("request failed")
		c.toast(ctx, "Network error, please try again")
		return errors.Wrapf(err, "%v %v", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: env.Message}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		logger.WithField("status", resp.StatusCode).Debug(apiErr.Message)
		c.toast(ctx, apiErr.ToastMessage())
		return apiErr
	}
	if decodeErr != nil {
		return errors.Wrap(decodeErr, "failed to decode response")
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err = json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(err, "failed to decode response data")
	}
	return nil
}

// roundTrip retries GET requests only. Mutations are sent exactly once.
func (c *Client) roundTrip(ctx context.Context, method, url string, body []byte, contentType string) (*http.Response, error) {
	if method == http.MethodGet {
		req, err := retryablehttp.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, err
		}
		c.setHeaders(req.Header, "")
		return c.retry.Do(req)
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body == nil {
		contentType = ""
	}
	c.setHeaders(req.Header, contentType)
	return c.retry.HTTPClient.Do(req)
}

type quietKey struct{}

// Quiet marks requests made with ctx as background work: their failures are not toasted.
func Quiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey{}, true)
}

func (c *Client) toast(ctx context.Context, message string) {
	if quiet, _ := ctx.Value(quietKey{}).(bool); quiet {
		return
	}
	c.toaster.Error(message)
}

func (c *Client) setHeaders(header http.Header, contentType string) {
	header.Set("Accept", "application/json")
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
}

type leveledLogger struct {
	entry *log.Entry
}

func (l leveledLogger) fields(keysAndValues []interface{}) *log.Entry {
	entry := l.entry
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			entry = entry.WithField(key, keysAndValues[i+1])
		}
	}
	return entry
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Debug(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.fields(keysAndValues).Warn(msg)
}
