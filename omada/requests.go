package omada

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// envelope is the response wrapper every controller endpoint uses. ErrorCode
// is a pointer so a body without one can be told apart from errorCode 0.
type envelope struct {
	ErrorCode *int            `json:"errorCode"`
	Msg       string          `json:"msg"`
	Result    json.RawMessage `json:"result"`
}

// pageResult is the paged listing shape carried inside an envelope's result.
type pageResult[T any] struct {
	CurrentPage int `json:"currentPage"`
	CurrentSize int `json:"currentSize"`
	TotalRows   int `json:"totalRows"`
	Data        []T `json:"data"`
}

func marshalRequest(reqBody interface{}) (io.Reader, error) {
	if reqBody == nil {
		return nil, nil //nolint: nilnil
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(reqBytes), nil
}

func (c *client) buildRequestURL(apiPath string, query url.Values) *url.URL {
	u := *c.baseURL
	u.Path = u.Path + apiPath
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

// Do sends an authenticated request. It fails with ErrNotLoggedIn, without a
// network round trip, when no session is established.
func (c *client) Do(ctx context.Context, method, apiPath string, query url.Values, reqBody, result interface{}) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	return c.do(ctx, method, apiPath, query, reqBody, result)
}

// Get sends an authenticated GET request. It is a convenience wrapper
// around Do.
func (c *client) Get(ctx context.Context, apiPath string, query url.Values, result interface{}) error {
	return c.Do(ctx, http.MethodGet, apiPath, query, nil, result)
}

// Post sends an authenticated POST request. It is a convenience wrapper
// around Do.
func (c *client) Post(ctx context.Context, apiPath string, reqBody, result interface{}) error {
	return c.Do(ctx, http.MethodPost, apiPath, nil, reqBody, result)
}

// Patch sends an authenticated PATCH request. It is a convenience wrapper
// around Do.
func (c *client) Patch(ctx context.Context, apiPath string, reqBody, result interface{}) error {
	return c.Do(ctx, http.MethodPatch, apiPath, nil, reqBody, result)
}

// do executes a request without the session precondition. Login, Logout and
// IsLoggedIn use it directly; everything else goes through Do.
func (c *client) do(ctx context.Context, method, apiPath string, query url.Values, reqBody, result interface{}) error {
	body, err := marshalRequest(reqBody)
	if err != nil {
		return fmt.Errorf("omada: marshaling request body: %w", err)
	}

	u := c.buildRequestURL(apiPath, query)
	c.Debugf("%s %s", method, u)

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("omada: building request %s %s: %w", method, apiPath, err)
	}

	for _, interceptor := range c.interceptors {
		if err := interceptor.InterceptRequest(req); err != nil {
			return err
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: method, URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	for _, interceptor := range c.interceptors {
		if err := interceptor.InterceptResponse(resp); err != nil {
			return err
		}
	}

	return c.decodeEnvelope(resp, u, result)
}

func (c *client) decodeEnvelope(resp *http.Response, u *url.URL, result interface{}) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// The controller revoked the session; drop the local token so the
		// state machine returns to unauthenticated.
		c.clearSession()
		return &AuthError{Code: resp.StatusCode, Message: "session rejected by controller"}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &ProtocolError{URL: u.String(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &ProtocolError{URL: u.String(), Err: fmt.Errorf("decoding response envelope: %w", err)}
	}
	if env.ErrorCode == nil {
		return &ProtocolError{URL: u.String(), Err: fmt.Errorf("response did not contain errorCode")}
	}
	if *env.ErrorCode != 0 {
		return &APIError{Code: *env.ErrorCode, Message: env.Msg}
	}
	if result == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return &ProtocolError{URL: u.String(), Err: fmt.Errorf("decoding result: %w", err)}
	}
	return nil
}

// getPage fetches one page of a paged listing.
func getPage[T any](ctx context.Context, c *client, apiPath string, page, pageSize int, query url.Values) (*pageResult[T], error) {
	q := url.Values{}
	for key, values := range query {
		q[key] = values
	}
	q.Set("currentPage", strconv.Itoa(page))
	q.Set("currentPageSize", strconv.Itoa(pageSize))

	var result pageResult[T]
	if err := c.Get(ctx, apiPath, q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) resolvePageSize(pageSize int) int {
	if pageSize <= 0 {
		return c.pageSize
	}
	return pageSize
}
