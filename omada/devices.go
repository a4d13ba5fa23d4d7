package omada

import "context"

// Device is one adopted device (access point, switch or gateway) in the
// site's inventory.
type Device struct {
	Mac            string `json:"mac"`
	Name           string `json:"name"`
	Type           string `json:"type"` // "ap", "switch" or "gateway"
	Model          string `json:"model"`
	IP             string `json:"ip"`
	Status         int    `json:"status"`
	StatusCategory int    `json:"statusCategory"`
	Version        string `json:"version"`
	Uptime         int64  `json:"uptimeLong"`
	CPUUtil        int    `json:"cpuUtil"`
	MemUtil        int    `json:"memUtil"`
	ClientNum      int    `json:"clientNum"`
	NeedUpgrade    bool   `json:"needUpgrade"`
}

// Switch is the detail view of a managed switch.
type Switch struct {
	Mac     string `json:"mac"`
	Name    string `json:"name"`
	Model   string `json:"model"`
	IP      string `json:"ip"`
	Version string `json:"version"`
	PortNum int    `json:"portNum"`
	Uptime  int64  `json:"uptimeLong"`
}

// SwitchPort is one entry of a switch's port table.
type SwitchPort struct {
	Port        int    `json:"port"`
	Name        string `json:"name"`
	ProfileName string `json:"profileName"`
	Disable     bool   `json:"disable"`
	LinkStatus  int    `json:"linkStatus"`
	LinkSpeed   int    `json:"linkSpeed"`
	Poe         bool   `json:"poe"`
}

// AccessPoint is the detail view of a managed access point.
type AccessPoint struct {
	Mac       string `json:"mac"`
	Name      string `json:"name"`
	Model     string `json:"model"`
	IP        string `json:"ip"`
	Version   string `json:"version"`
	Status    int    `json:"status"`
	ClientNum int    `json:"clientNum"`
}

// The device listing is not paged by the controller, unlike clients, alerts
// and events.
func (c *client) ListDevices(ctx context.Context) ([]Device, error) {
	var devices []Device
	if err := c.Get(ctx, c.sitePath("devices"), nil, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

func (c *client) RebootDevice(ctx context.Context, mac string) error {
	return c.Post(ctx, c.sitePath("cmd", "devices", mac, "reboot"), nil, nil)
}

func (c *client) UpgradeDevice(ctx context.Context, mac string) error {
	return c.Post(ctx, c.sitePath("cmd", "devices", mac, "onlineUpgrade"), nil, nil)
}

func (c *client) GetSwitch(ctx context.Context, mac string) (*Switch, error) {
	var sw Switch
	if err := c.Get(ctx, c.sitePath("switches", mac), nil, &sw); err != nil {
		return nil, err
	}
	return &sw, nil
}

func (c *client) GetSwitchPorts(ctx context.Context, mac string) ([]SwitchPort, error) {
	var ports []SwitchPort
	if err := c.Get(ctx, c.sitePath("switches", mac, "ports"), nil, &ports); err != nil {
		return nil, err
	}
	return ports, nil
}

func (c *client) GetAccessPoint(ctx context.Context, mac string) (*AccessPoint, error) {
	var ap AccessPoint
	if err := c.Get(ctx, c.sitePath("eaps", mac), nil, &ap); err != nil {
		return nil, err
	}
	return &ap, nil
}
