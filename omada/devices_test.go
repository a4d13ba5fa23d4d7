package omada_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mheath/go-omada/omada"
	"github.com/mheath/go-omada/testutils"
)

func seedDevices(f *testutils.FakeController) []omada.Device {
	devices := []omada.Device{
		{Mac: "11-11-11-11-11-11", Name: "office-switch", Type: "switch", Model: "TL-SG2008", IP: "10.0.0.2", Version: "5.0.0"},
		{Mac: "22-22-22-22-22-22", Name: "lobby-ap", Type: "ap", Model: "EAP245", IP: "10.0.0.3", Version: "5.1.0"},
	}
	f.SetDevices(devices)
	return devices
}

func TestListDevices(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()

	seeded := seedDevices(f)
	c := newLoggedInClient(t, f)

	devices, err := c.ListDevices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seeded, devices)
}

func TestRebootDevice(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	seeded := seedDevices(f)
	c := newLoggedInClient(t, f)

	require.NoError(t, c.RebootDevice(ctx, seeded[0].Mac))

	err := c.RebootDevice(ctx, "00-00-00-00-00-00")
	require.Error(t, err)
	apiErr, ok := omada.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, -33000, apiErr.Code)
}

func TestUpgradeDevice(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()

	seeded := seedDevices(f)
	c := newLoggedInClient(t, f)

	require.NoError(t, c.UpgradeDevice(context.Background(), seeded[1].Mac))
}

func TestGetSwitch(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	seeded := seedDevices(f)
	c := newLoggedInClient(t, f)

	sw, err := c.GetSwitch(ctx, seeded[0].Mac)
	require.NoError(t, err)
	assert.Equal(t, seeded[0].Name, sw.Name)
	assert.Equal(t, 8, sw.PortNum)

	// An access point MAC is not a switch.
	_, err = c.GetSwitch(ctx, seeded[1].Mac)
	require.Error(t, err)
	_, ok := omada.AsAPIError(err)
	assert.True(t, ok)
}

func TestGetSwitchPorts(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()

	seeded := seedDevices(f)
	c := newLoggedInClient(t, f)

	ports, err := c.GetSwitchPorts(context.Background(), seeded[0].Mac)
	require.NoError(t, err)
	require.Len(t, ports, 2)
	assert.Equal(t, 1, ports[0].Port)
	assert.Equal(t, 1000, ports[0].LinkSpeed)
}

func TestGetAccessPoint(t *testing.T) {
	f := testutils.NewFakeController()
	defer f.Close()
	ctx := context.Background()

	seeded := seedDevices(f)
	c := newLoggedInClient(t, f)

	ap, err := c.GetAccessPoint(ctx, seeded[1].Mac)
	require.NoError(t, err)
	assert.Equal(t, seeded[1].Name, ap.Name)

	_, err = c.GetAccessPoint(ctx, seeded[0].Mac)
	require.Error(t, err)
	_, ok := omada.AsAPIError(err)
	assert.True(t, ok)
}
