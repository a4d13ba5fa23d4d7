package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mheath/go-omada/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "omadactl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
host: controller.example.com:8043
username: admin
password: secret
site: Branch
verify_ssl: false
timeout: 30s
`)

	c, err := config.Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, "controller.example.com:8043", c.Host)
	assert.Equal(t, "admin", c.Username)
	assert.Equal(t, "secret", c.Password)
	assert.Equal(t, "Branch", c.Site)
	assert.False(t, c.VerifySSL)
	assert.Equal(t, 30*time.Second, c.Timeout)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, `
host: controller.example.com
username: admin
password: secret
`)

	c, err := config.Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, "Default", c.Site)
	assert.True(t, c.VerifySSL)
	assert.Equal(t, 10*time.Second, c.Timeout)
	assert.Equal(t, 1024, c.PageSize)
	assert.Equal(t, "info", c.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
host: controller.example.com
username: admin
password: from-file
`)
	t.Setenv("OMADA_PASSWORD", "from-env")
	t.Setenv("OMADA_LOG_LEVEL", "debug")

	c, err := config.Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.Password)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestFlagOverridesEnv(t *testing.T) {
	path := writeConfigFile(t, `
host: controller.example.com
username: admin
password: secret
`)
	t.Setenv("OMADA_SITE", "FromEnv")

	cmd := &cobra.Command{}
	cmd.Flags().String("site", "", "")
	cmd.Flags().String("host", "", "")
	require.NoError(t, cmd.Flags().Set("site", "FromFlag"))

	c, err := config.Load(cmd, path)
	require.NoError(t, err)

	assert.Equal(t, "FromFlag", c.Site)
	assert.Equal(t, "controller.example.com", c.Host, "unset flags must not mask file values")
}

func TestLoadValidation(t *testing.T) {
	path := writeConfigFile(t, `
host: controller.example.com
`)

	_, err := config.Load(nil, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "username cannot be empty")
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(nil, filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidateRejectsNegativePageSize(t *testing.T) {
	c := &config.Config{Host: "h", Username: "u", Password: "p", Site: "Default", PageSize: -1}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size cannot be negative")
}
