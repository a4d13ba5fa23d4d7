package omada

import (
	"context"
)

// NetworkClient is one client device attached to the network, as reported by
// the controller's listing endpoints. It is a plain decoding result; the
// client does not cache or track it.
type NetworkClient struct {
	Mac         string `json:"mac"`
	Name        string `json:"name"`
	HostName    string `json:"hostName,omitempty"`
	IP          string `json:"ip"`
	Wireless    bool   `json:"wireless"`
	SSID        string `json:"ssid,omitempty"`
	SignalLevel int    `json:"signalLevel,omitempty"`
	WifiMode    int    `json:"wifiMode,omitempty"`
	ApName      string `json:"apName,omitempty"`
	SwitchName  string `json:"switchName,omitempty"`
	Port        int    `json:"port,omitempty"`
	Vid         int    `json:"vid,omitempty"`
	Activity    int64  `json:"activity"`
	TrafficDown int64  `json:"trafficDown"`
	TrafficUp   int64  `json:"trafficUp"`
	Uptime      int64  `json:"uptime"`
	Blocked     bool   `json:"blocked"`
	Guest       bool   `json:"guest"`
	Active      bool   `json:"active"`
}

// ClientPatch is the set of client attributes the controller accepts updates
// for. Zero-valued fields are left untouched.
type ClientPatch struct {
	Name string `json:"name,omitempty"`
}

func (c *client) ListClients(ctx context.Context) ([]NetworkClient, error) {
	return c.PageClients(0, 0).All(ctx)
}

func (c *client) PageClients(page, pageSize int) *Pager[NetworkClient] {
	return newPager(page, c.resolvePageSize(pageSize), func(ctx context.Context, pg, size int) (*pageResult[NetworkClient], error) {
		return getPage[NetworkClient](ctx, c, c.sitePath("clients"), pg, size, nil)
	})
}

func (c *client) GetClient(ctx context.Context, mac string) (*NetworkClient, error) {
	var nc NetworkClient
	if err := c.Get(ctx, c.sitePath("clients", mac), nil, &nc); err != nil {
		return nil, err
	}
	return &nc, nil
}

func (c *client) UpdateClient(ctx context.Context, mac string, patch ClientPatch) error {
	return c.Patch(ctx, c.sitePath("clients", mac), patch, nil)
}

func (c *client) BlockClient(ctx context.Context, mac string) error {
	return c.Post(ctx, c.sitePath("cmd", "clients", mac, "block"), nil, nil)
}

func (c *client) UnblockClient(ctx context.Context, mac string) error {
	return c.Post(ctx, c.sitePath("cmd", "clients", mac, "unblock"), nil, nil)
}
