package omada_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mheath/go-omada/omada"
	"github.com/mheath/go-omada/testutils"
)

func TestAsyncLoginAndList(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	seeded := seedClients(f, 2)
	c := newTestClient(t, f)
	async := c.Async()

	_, err := async.Login(ctx).Await(ctx)
	require.NoError(t, err)

	// The session is shared with the blocking surface.
	loggedIn, err := c.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	clients, err := async.ListClients(ctx).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, seeded, clients)
}

func TestAsyncErrorsMatchBlockingSurface(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	c := newTestClient(t, f)
	async := c.Async()

	before := f.RequestCount()
	_, err := async.ListClients(ctx).Await(ctx)
	assert.ErrorIs(t, err, omada.ErrNotLoggedIn)
	assert.Equal(t, before, f.RequestCount())
}

func TestAsyncCancelledLoginLeavesClientUnauthenticated(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	f.LoginDelay = 5 * time.Second

	c := newTestClient(t, f)
	async := c.Async()

	ctx, cancel := context.WithCancel(context.Background())
	future := async.Login(ctx)
	cancel()

	_, err := future.Await(context.Background())
	require.Error(t, err)
	assert.True(t, omada.IsTransport(err), "an aborted request surfaces as a transport failure")

	// The abandoned login must not have left a half-established session.
	_, err = c.ListClients(context.Background())
	assert.ErrorIs(t, err, omada.ErrNotLoggedIn)
}

func TestAwaitHonoursItsOwnContext(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	f.LoginDelay = 5 * time.Second

	c := newTestClient(t, f)

	// The call keeps running with its own context; only the wait is cut short.
	future := c.Async().Login(context.Background())

	waitCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := future.Await(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFutureDoneChannel(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	c := newTestClient(t, f)
	future := c.Async().Login(ctx)

	select {
	case <-future.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("future never completed")
	}

	_, err := future.Await(ctx)
	require.NoError(t, err)
}

func TestAsyncLogoutAndCommands(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	seedDevices(f)
	c := newLoggedInClient(t, f)
	async := c.Async()

	_, err := async.BlockClient(ctx, "aa-bb-cc-dd-ee-00").Await(ctx)
	require.NoError(t, err)
	assert.True(t, f.Blocked("aa-bb-cc-dd-ee-00"))

	_, err = async.RebootDevice(ctx, "11-11-11-11-11-11").Await(ctx)
	require.NoError(t, err)

	_, err = async.Logout(ctx).Await(ctx)
	require.NoError(t, err)
	assert.False(t, f.LoggedIn())
}
