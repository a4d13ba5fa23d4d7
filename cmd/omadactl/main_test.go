package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mheath/go-omada/omada"
)

func TestConnection(t *testing.T) {
	tests := []struct {
		name   string
		client omada.NetworkClient
		want   string
	}{
		{
			name:   "wireless",
			client: omada.NetworkClient{Wireless: true, SSID: "Home", ApName: "lobby-ap"},
			want:   "wifi Home (lobby-ap)",
		},
		{
			name:   "wired with switch",
			client: omada.NetworkClient{SwitchName: "office-switch", Port: 3},
			want:   "wired office-switch port 3",
		},
		{
			name:   "wired without switch detail",
			client: omada.NetworkClient{},
			want:   "wired",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, connection(tt.client))
		})
	}
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "-", formatUptime(0))
	assert.Equal(t, "5m", formatUptime(330))
	assert.Equal(t, "2h5m", formatUptime(2*3600+5*60))
	assert.Equal(t, "3d4h", formatUptime(3*24*3600+4*3600))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", formatTime(0))
	assert.NotEqual(t, "-", formatTime(1700000000000))
}
