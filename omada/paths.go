package omada

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultPageSize is the page size used for listing calls when the
	// configuration does not override it.
	DefaultPageSize = 1024

	defaultUserAgent = "go-omada/0.1.0"

	apiSuffix = "/api/v2"

	loginPath       = "/login"
	logoutPath      = "/logout"
	loginStatusPath = "/loginStatus"
	currentUserPath = "/users/current"

	// CsrfHeader carries the session token issued at login. Every
	// authenticated request must present it.
	CsrfHeader = "Csrf-Token"

	userAgentHeader   = "User-Agent"
	acceptHeader      = "Accept"
	contentTypeHeader = "Content-Type"
	locationHeader    = "Location"
)

// discoverBaseURL resolves the controller's API base URL. The controller
// answers a plain GET on its root with a redirect to a per-controller login
// page; the API root sits next to that page under /api/v2.
func discoverBaseURL(ctx context.Context, httpClient *http.Client, host string) (*url.URL, error) {
	probe := &http.Client{
		Transport: httpClient.Transport,
		Timeout:   httpClient.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	target := "https://" + host
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("omada: building discovery request for %q: %w", host, err)
	}

	resp, err := probe.Do(req)
	if err != nil {
		return nil, &TransportError{Op: http.MethodGet, URL: target, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusFound {
		return nil, &ProtocolError{
			URL: target,
			Err: fmt.Errorf("expected a redirect to the controller login page, got status %d", resp.StatusCode),
		}
	}

	loc, err := url.Parse(resp.Header.Get(locationHeader))
	if err != nil {
		return nil, &ProtocolError{URL: target, Err: fmt.Errorf("unparseable redirect location: %w", err)}
	}
	base := req.URL.ResolveReference(loc)
	base.Path = strings.TrimSuffix(base.Path, loginPath) + apiSuffix
	base.RawQuery = ""
	base.Fragment = ""
	return base, nil
}

// sitePath builds an API path scoped to the client's site.
func (c *client) sitePath(parts ...string) string {
	segs := make([]string, 0, len(parts)+2)
	segs = append(segs, "sites", url.PathEscape(c.site))
	for _, p := range parts {
		segs = append(segs, url.PathEscape(p))
	}
	return "/" + strings.Join(segs, "/")
}
