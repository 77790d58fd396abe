// Package remote is the REST client of the construction-management service.
//
// One service per entity type (Projects, Works, Subworks, Entries) exposes
// create, update, delete and list with the shapes the sync engine expects.
// Every call takes the session explicitly; nothing is read from globals.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/dmitrijs2005/civigo/internal/logging"
)

// Client talks JSON over HTTP to the remote service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// New returns a client for baseURL. timeout bounds every single call.
func New(baseURL string, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("module", "remote"),
	}
}

type request struct {
	method  string
	path    string
	sess    *session.Session
	headers map[string]string
	body    any
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do executes req and decodes a 2xx JSON answer into out (if not nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	fail := func(status int, msg string, err error) error {
		return &TransportError{Method: req.method, Path: req.path, StatusCode: status, Message: msg, Err: err}
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if req.sess != nil && req.sess.Token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+req.sess.Token)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fail(0, err.Error(), ErrUnavailable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, err.Error(), ErrUnavailable)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			if eb.Message != "" {
				msg = eb.Message
			} else if eb.Error != "" {
				msg = eb.Error
			}
		}
		c.logger.Debug(ctx, "remote call failed", "method", req.method, "path", req.path, "status", resp.StatusCode)
		return fail(resp.StatusCode, msg, mapStatus(resp.StatusCode))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(resp.StatusCode, "malformed response: "+err.Error(), ErrRejected)
	}
	return nil
}

// Ping reports whether the service answers at all. Any HTTP response,
// whatever its status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return &TransportError{Method: http.MethodGet, Path: "/", Message: err.Error(), Err: ErrUnavailable}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// LoginResponse is the answer of /user/login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/user/login",
		body:   map[string]string{"email": email, "password": password},
	}, &resp)
	if err != nil {
		return LoginResponse{}, err
	}
	if resp.Token == "" {
		return LoginResponse{}, &TransportError{Method: http.MethodPost, Path: "/user/login", Message: "empty token", Err: ErrRejected}
	}
	return resp, nil
}

func (c *Client) Projects() *Projects { return &Projects{c: c} }
func (c *Client) Works() *Works       { return &Works{c: c} }
func (c *Client) Subworks() *Subworks { return &Subworks{c: c} }
func (c *Client) Entries() *Entries   { return &Entries{c: c} }
