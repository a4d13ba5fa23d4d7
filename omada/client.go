// Package omada is a client for the TP-Link Omada controller's HTTP API.
//
// A Client owns one authenticated session against one controller. Create it
// with NewClient (discovers the API base URL and logs in) or NewBareClient
// (discovery only; call Login yourself), issue typed accessor calls, and
// Logout when done. Async returns a future-based surface with identical
// semantics for callers that do not want to block.
package omada

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// TransportCustomizer adjusts the HTTP transport before the client starts
// using it, e.g. to pin certificates or set proxy behavior.
type TransportCustomizer func(*http.Transport) (*http.Transport, error)

// ClientConfig holds the parameters for creating a Client.
//
// Host is the controller address (host or host:port), without a scheme: the
// controller is always reached over HTTPS. VerifySSL disables certificate
// verification when false; controllers commonly ship self-signed
// certificates, but the decision stays with the caller. Timeout bounds each
// request; zero means no client-side timeout.
type ClientConfig struct {
	Host                string `validate:"required"`
	Site                string
	User                string `validate:"required"`
	Password            string `validate:"required"`
	VerifySSL           bool
	Timeout             time.Duration
	PageSize            int `validate:"omitempty,gt=0"`
	UserAgent           string
	Interceptors        []Interceptor
	TransportCustomizer TransportCustomizer
	Logger              Logger
}

// Client is one authenticated session against an Omada controller.
//
// Calls issued sequentially from one goroutine observe their own effects in
// order. The session state itself is guarded internally, but overlapping
// calls from multiple goroutines are not otherwise coordinated.
type Client interface {
	Logger

	// BaseURL returns the discovered API base URL of the controller.
	BaseURL() string
	// Site returns the site name the client is scoped to.
	Site() string

	// Login authenticates with the configured credentials. On failure the
	// session stays unauthenticated; the token is stored only on success.
	Login(ctx context.Context) error
	// Logout invalidates the session locally and, best effort, on the
	// controller. Calling it while logged out is a no-op.
	Logout(ctx context.Context) error
	// IsLoggedIn reports whether the controller still honors the session.
	// A client that never logged in answers false without a network call.
	IsLoggedIn(ctx context.Context) (bool, error)
	// CurrentUser returns the account that owns the session.
	CurrentUser(ctx context.Context) (*User, error)

	// ListClients returns every client currently known to the site.
	ListClients(ctx context.Context) ([]NetworkClient, error)
	// GetClient returns the client with the given MAC address.
	GetClient(ctx context.Context, mac string) (*NetworkClient, error)
	// PageClients returns a Pager over the site's clients. Zero values
	// select the first page and the configured page size.
	PageClients(page, pageSize int) *Pager[NetworkClient]
	// UpdateClient applies the patch to the client with the given MAC.
	UpdateClient(ctx context.Context, mac string, patch ClientPatch) error
	// BlockClient blocks the client with the given MAC from the network.
	BlockClient(ctx context.Context, mac string) error
	// UnblockClient lifts a block placed with BlockClient.
	UnblockClient(ctx context.Context, mac string) error

	// ListDevices returns the site's adopted devices.
	ListDevices(ctx context.Context) ([]Device, error)
	// RebootDevice reboots the device with the given MAC.
	RebootDevice(ctx context.Context, mac string) error
	// UpgradeDevice starts an online firmware upgrade of the device.
	UpgradeDevice(ctx context.Context, mac string) error
	// GetSwitch returns details of the switch with the given MAC.
	GetSwitch(ctx context.Context, mac string) (*Switch, error)
	// GetSwitchPorts returns the port table of the switch.
	GetSwitchPorts(ctx context.Context, mac string) ([]SwitchPort, error)
	// GetAccessPoint returns details of the access point with the given MAC.
	GetAccessPoint(ctx context.Context, mac string) (*AccessPoint, error)

	// ListAlerts returns the site's alerts matching the filter.
	ListAlerts(ctx context.Context, filter AlertFilter) ([]Alert, error)
	// PageAlerts returns a Pager over the site's alerts.
	PageAlerts(page, pageSize int, filter AlertFilter) (*Pager[Alert], error)
	// ListEvents returns the site's events matching the filter.
	ListEvents(ctx context.Context, filter EventFilter) ([]Event, error)
	// PageEvents returns a Pager over the site's events.
	PageEvents(page, pageSize int, filter EventFilter) (*Pager[Event], error)

	// Do sends a request to the controller and decodes the envelope result.
	Do(ctx context.Context, method, apiPath string, query url.Values, reqBody, result interface{}) error
	// Get sends an authenticated GET request.
	Get(ctx context.Context, apiPath string, query url.Values, result interface{}) error
	// Post sends an authenticated POST request.
	Post(ctx context.Context, apiPath string, reqBody, result interface{}) error
	// Patch sends an authenticated PATCH request.
	Patch(ctx context.Context, apiPath string, reqBody, result interface{}) error

	// Async returns the future-based surface over this session.
	Async() *AsyncClient
}

// session exists only while the client is authenticated; holding the token
// inside it keeps "authenticated without a token" unrepresentable.
type session struct {
	token string
}

type client struct {
	Logger
	baseURL      *url.URL
	site         string
	user         string
	password     string
	pageSize     int
	http         *http.Client
	interceptors []Interceptor

	mu      sync.Mutex
	session *session
}

var _ Client = &client{}

// NewClient creates a client, discovers the controller's API base URL, and
// logs in. The context bounds both the discovery and the login request.
func NewClient(ctx context.Context, config *ClientConfig) (Client, error) {
	c, err := newBareClient(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := c.Login(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// NewBareClient creates a client and discovers the controller's API base URL
// without logging in. Call Login before issuing authenticated requests.
func NewBareClient(ctx context.Context, config *ClientConfig) (Client, error) {
	return newBareClient(ctx, config)
}

func newBareClient(ctx context.Context, config *ClientConfig) (*client, error) {
	v, err := newValidator()
	if err != nil {
		return nil, err
	}
	if err := v.Validate(config); err != nil {
		return nil, err
	}

	log := config.Logger
	if log == nil {
		log = NewDefaultLogger(InfoLevel)
	}

	transport := &http.Transport{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: !config.VerifySSL},
	}
	if config.TransportCustomizer != nil {
		if transport, err = config.TransportCustomizer(transport); err != nil {
			return nil, fmt.Errorf("omada: customizing HTTP transport: %w", err)
		}
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("omada: creating cookie jar: %w", err)
	}
	httpClient := &http.Client{
		Timeout:   config.Timeout,
		Transport: transport,
		Jar:       jar,
	}

	site := config.Site
	if site == "" {
		site = "Default"
	}
	pageSize := config.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	c := &client{
		Logger:   log,
		site:     site,
		user:     config.User,
		password: config.Password,
		pageSize: pageSize,
		http:     httpClient,
	}
	c.interceptors = append(c.interceptors,
		&csrfInterceptor{c: c},
		&defaultHeadersInterceptor{headers: map[string]string{
			userAgentHeader:   userAgent,
			acceptHeader:      "application/json",
			contentTypeHeader: "application/json; charset=utf-8",
		}},
	)
	c.interceptors = append(c.interceptors, config.Interceptors...)

	base, err := discoverBaseURL(ctx, httpClient, config.Host)
	if err != nil {
		return nil, err
	}
	c.baseURL = base
	c.Debugf("using controller base URL %s", base)
	return c, nil
}

func (c *client) BaseURL() string { return c.baseURL.String() }
func (c *client) Site() string    { return c.site }

// token returns the session token, if one is set.
func (c *client) token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return "", false
	}
	return c.session.token, true
}

func (c *client) setSession(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = &session{token: token}
}

func (c *client) clearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

// requireSession is the local precondition for authenticated operations.
func (c *client) requireSession() error {
	if _, ok := c.token(); !ok {
		return ErrNotLoggedIn
	}
	return nil
}

func (c *client) Login(ctx context.Context) error {
	c.Debugf("logging in to %s as %s", c.baseURL, c.user)

	var result struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, loginPath, nil, &struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{
		Username: c.user,
		Password: c.password,
	}, &result)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return &AuthError{Code: apiErr.Code, Message: apiErr.Message}
		}
		return err
	}
	if result.Token == "" {
		return &ProtocolError{URL: loginPath, Err: errors.New("login response carried no token")}
	}
	c.setSession(result.Token)
	c.Debug("login succeeded")
	return nil
}

func (c *client) Logout(ctx context.Context) error {
	if _, ok := c.token(); !ok {
		return nil
	}
	err := c.do(ctx, http.MethodPost, logoutPath, nil, nil, nil)
	// The local session is gone either way; the server-side invalidation is
	// best effort.
	c.clearSession()
	return err
}

func (c *client) IsLoggedIn(ctx context.Context) (bool, error) {
	if _, ok := c.token(); !ok {
		return false, nil
	}
	var result struct {
		Login bool `json:"login"`
	}
	err := c.do(ctx, http.MethodGet, loginStatusPath, nil, nil, &result)
	if err != nil {
		// A logged-out session gets redirected to the HTML login page
		// instead of a JSON envelope.
		if IsProtocol(err) {
			return false, nil
		}
		return false, err
	}
	return result.Login, nil
}
