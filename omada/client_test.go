package omada_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mheath/go-omada/omada"
	"github.com/mheath/go-omada/testutils"
)

func newTestClient(t *testing.T, f *testutils.FakeController) omada.Client {
	t.Helper()
	c, err := omada.NewBareClient(context.Background(), &omada.ClientConfig{
		Host:     f.Host(),
		User:     testutils.Username,
		Password: testutils.Password,
		Logger:   omada.NewDefaultLogger(omada.DisabledLevel),
	})
	require.NoError(t, err)
	return c
}

func newLoggedInClient(t *testing.T, f *testutils.FakeController) omada.Client {
	t.Helper()
	c := newTestClient(t, f)
	require.NoError(t, c.Login(context.Background()))
	return c
}

func TestDiscoversBaseURL(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()

	c := newTestClient(t, f)
	assert.Equal(t, f.Server.URL+"/abcd1234/api/v2", c.BaseURL())
	assert.Equal(t, "Default", c.Site())
}

func TestDiscoveryWithoutRedirectFails(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	_, err := omada.NewBareClient(context.Background(), &omada.ClientConfig{
		Host:     srv.Listener.Addr().String(),
		User:     "admin",
		Password: "pw",
		Logger:   omada.NewDefaultLogger(omada.DisabledLevel),
	})
	require.Error(t, err)
	assert.True(t, omada.IsProtocol(err))
}

func TestDiscoveryUnreachableHost(t *testing.T) {
	_, err := omada.NewBareClient(context.Background(), &omada.ClientConfig{
		Host:     "127.0.0.1:1",
		User:     "admin",
		Password: "pw",
		Logger:   omada.NewDefaultLogger(omada.DisabledLevel),
	})
	require.Error(t, err)
	assert.True(t, omada.IsTransport(err))
}

func TestConfigValidation(t *testing.T) {
	_, err := omada.NewBareClient(context.Background(), &omada.ClientConfig{
		Host: "controller.local",
		User: "admin",
		// Password missing
	})
	require.Error(t, err)
	var verr *omada.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages, "ClientConfig.Password")
}

func TestLoginAndStatus(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	c := newTestClient(t, f)

	loggedIn, err := c.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn, "fresh client must not report a session")

	require.NoError(t, c.Login(ctx))

	loggedIn, err = c.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)
}

func TestNewClientLogsIn(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	c, err := omada.NewClient(ctx, &omada.ClientConfig{
		Host:     f.Host(),
		User:     testutils.Username,
		Password: testutils.Password,
		Logger:   omada.NewDefaultLogger(omada.DisabledLevel),
	})
	require.NoError(t, err)

	clients, err := c.ListClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestLoginWrongPassword(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	c, err := omada.NewBareClient(ctx, &omada.ClientConfig{
		Host:     f.Host(),
		User:     testutils.Username,
		Password: "wrong-pw",
		Logger:   omada.NewDefaultLogger(omada.DisabledLevel),
	})
	require.NoError(t, err)

	err = c.Login(ctx)
	require.Error(t, err)
	assert.True(t, omada.IsAuth(err))

	// The failed login must not have set a token.
	before := f.RequestCount()
	_, err = c.ListClients(ctx)
	assert.ErrorIs(t, err, omada.ErrNotLoggedIn)
	assert.Equal(t, before, f.RequestCount(), "precondition failure must not reach the network")
}

func TestUnauthenticatedListIssuesNoRequests(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	c := newTestClient(t, f)

	before := f.RequestCount()
	_, err := c.ListClients(ctx)
	assert.ErrorIs(t, err, omada.ErrNotLoggedIn)
	_, err = c.CurrentUser(ctx)
	assert.ErrorIs(t, err, omada.ErrNotLoggedIn)
	err = c.BlockClient(ctx, "aa-bb-cc-dd-ee-ff")
	assert.ErrorIs(t, err, omada.ErrNotLoggedIn)
	assert.Equal(t, before, f.RequestCount())
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	c := newLoggedInClient(t, f)

	require.NoError(t, c.Logout(ctx))
	assert.False(t, f.LoggedIn(), "logout must invalidate the server-side session")

	before := f.RequestCount()
	require.NoError(t, c.Logout(ctx), "second logout is a no-op")
	assert.Equal(t, before, f.RequestCount())

	_, err := c.ListClients(ctx)
	assert.ErrorIs(t, err, omada.ErrNotLoggedIn)
}

func TestCurrentUser(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	c := newLoggedInClient(t, f)

	user, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, testutils.Username, user.Name)
}

func TestRevokedSessionClearsToken(t *testing.T) {
	// A controller that starts answering 401 must push the client back to
	// the unauthenticated state.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/c1/login", http.StatusFound)
	})
	mux.HandleFunc("POST /c1/api/v2/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errorCode":0,"msg":"Success.","result":{"token":"t"}}`))
	})
	mux.HandleFunc("GET /c1/api/v2/sites/Default/clients", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewTLSServer(mux)
	defer srv.Close()
	ctx := context.Background()

	c, err := omada.NewBareClient(ctx, &omada.ClientConfig{
		Host:     srv.Listener.Addr().String(),
		User:     "admin",
		Password: "pw",
		Logger:   omada.NewDefaultLogger(omada.DisabledLevel),
	})
	require.NoError(t, err)
	require.NoError(t, c.Login(ctx))

	_, err = c.ListClients(ctx)
	require.Error(t, err)
	assert.True(t, omada.IsAuth(err))

	_, err = c.ListClients(ctx)
	assert.ErrorIs(t, err, omada.ErrNotLoggedIn)
}
