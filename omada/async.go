package omada

import "context"

// Done is the empty result of calls that only report success or failure.
type Done struct{}

// Future is the pending result of an asynchronous controller call. The call
// runs on its own goroutine; Await collects the outcome.
type Future[T any] struct {
	ready chan struct{}
	val   T
	err   error
}

func newFuture[T any](run func() (T, error)) *Future[T] {
	f := &Future[T]{ready: make(chan struct{})}
	go func() {
		f.val, f.err = run()
		close(f.ready)
	}()
	return f
}

// Await blocks until the call completes or ctx is cancelled. Abandoning a
// pending future never leaves the client half-mutated: session state changes
// only after the underlying call fully succeeds, so a cancelled login leaves
// the client unauthenticated.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.ready:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done exposes completion for callers that want to select across several
// pending calls.
func (f *Future[T]) Done() <-chan struct{} { return f.ready }

// AsyncClient mirrors the Client surface with futures instead of blocking
// calls. Both surfaces share one session: a login awaited through either is
// visible to the other. The ctx handed to each method bounds the underlying
// request itself, so cancelling it aborts the network call rather than just
// the wait.
//
// Pagers are already resumable step by step via Next(ctx) and need no
// separate asynchronous form; use the Page* accessors from either surface.
type AsyncClient struct {
	c Client
}

func (c *client) Async() *AsyncClient { return &AsyncClient{c: c} }

func (a *AsyncClient) Login(ctx context.Context) *Future[Done] {
	return newFuture(func() (Done, error) { return Done{}, a.c.Login(ctx) })
}

func (a *AsyncClient) Logout(ctx context.Context) *Future[Done] {
	return newFuture(func() (Done, error) { return Done{}, a.c.Logout(ctx) })
}

func (a *AsyncClient) IsLoggedIn(ctx context.Context) *Future[bool] {
	return newFuture(func() (bool, error) { return a.c.IsLoggedIn(ctx) })
}

func (a *AsyncClient) CurrentUser(ctx context.Context) *Future[*User] {
	return newFuture(func() (*User, error) { return a.c.CurrentUser(ctx) })
}

func (a *AsyncClient) ListClients(ctx context.Context) *Future[[]NetworkClient] {
	return newFuture(func() ([]NetworkClient, error) { return a.c.ListClients(ctx) })
}

func (a *AsyncClient) GetClient(ctx context.Context, mac string) *Future[*NetworkClient] {
	return newFuture(func() (*NetworkClient, error) { return a.c.GetClient(ctx, mac) })
}

func (a *AsyncClient) UpdateClient(ctx context.Context, mac string, patch ClientPatch) *Future[Done] {
	return newFuture(func() (Done, error) { return Done{}, a.c.UpdateClient(ctx, mac, patch) })
}

func (a *AsyncClient) BlockClient(ctx context.Context, mac string) *Future[Done] {
	return newFuture(func() (Done, error) { return Done{}, a.c.BlockClient(ctx, mac) })
}

func (a *AsyncClient) UnblockClient(ctx context.Context, mac string) *Future[Done] {
	return newFuture(func() (Done, error) { return Done{}, a.c.UnblockClient(ctx, mac) })
}

func (a *AsyncClient) ListDevices(ctx context.Context) *Future[[]Device] {
	return newFuture(func() ([]Device, error) { return a.c.ListDevices(ctx) })
}

func (a *AsyncClient) RebootDevice(ctx context.Context, mac string) *Future[Done] {
	return newFuture(func() (Done, error) { return Done{}, a.c.RebootDevice(ctx, mac) })
}

func (a *AsyncClient) UpgradeDevice(ctx context.Context, mac string) *Future[Done] {
	return newFuture(func() (Done, error) { return Done{}, a.c.UpgradeDevice(ctx, mac) })
}

func (a *AsyncClient) GetSwitch(ctx context.Context, mac string) *Future[*Switch] {
	return newFuture(func() (*Switch, error) { return a.c.GetSwitch(ctx, mac) })
}

func (a *AsyncClient) GetSwitchPorts(ctx context.Context, mac string) *Future[[]SwitchPort] {
	return newFuture(func() ([]SwitchPort, error) { return a.c.GetSwitchPorts(ctx, mac) })
}

func (a *AsyncClient) GetAccessPoint(ctx context.Context, mac string) *Future[*AccessPoint] {
	return newFuture(func() (*AccessPoint, error) { return a.c.GetAccessPoint(ctx, mac) })
}

func (a *AsyncClient) ListAlerts(ctx context.Context, filter AlertFilter) *Future[[]Alert] {
	return newFuture(func() ([]Alert, error) { return a.c.ListAlerts(ctx, filter) })
}

func (a *AsyncClient) ListEvents(ctx context.Context, filter EventFilter) *Future[[]Event] {
	return newFuture(func() ([]Event, error) { return a.c.ListEvents(ctx, filter) })
}
