package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxResponseBody = 8 << 20

// Client REST client, token 設定後每個 request 都帶 Authorization: Bearer
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zerolog.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  &log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Do 發送 JSON request, 成功時把 envelope 的 data 解到 out
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// FilePart multipart 的檔案欄位
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

// Upload multipart form, Content-Type 由 writer 產生 (含 boundary)
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, file FilePart, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	if file.Content != nil {
		fw, err := mw.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, file.Content); err != nil {
			return err
		}
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

// Download 非 envelope 的 binary 回應 (xlsx 匯出)
func (c *Client) Download(ctx context.Context, path string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
		return httpError(resp.StatusCode, raw)
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *Client) authorize(req *http.Request) {
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		if !IsAborted(err) {
			c.logger.Warn().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("request failed")
		}
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpError(resp.StatusCode, raw)
	}

	var env response.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	if !env.Success {
		return &BusinessError{Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("client: decode data: %w", err)
	}
	return nil
}

// httpError message 優先取 body 的 message, 否則 HTTP <status>
func httpError(status int, raw []byte) *HTTPError {
	msg := fmt.Sprintf("HTTP %d", status)
	var env response.Envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		msg = env.Message
	}
	return &HTTPError{StatusCode: status, Message: msg}
}
