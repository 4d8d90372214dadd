package hostconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "host.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, `
service = "orders"

[server]
listen = ":8080"

[restrictions]
enabled = true

[logging]
file = "orders.log"
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "orders", cfg.Service)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.True(t, cfg.Restrictions.Enabled)
	assert.Equal(t, "orders.log", cfg.Logging.File)
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `service = "orders"`))
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.Server.Listen)
	assert.Equal(t, "system.log", cfg.Logging.File)
	assert.False(t, cfg.Restrictions.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, `[server]`+"\n"+`listen = ":1"`))
	assert.Error(t, err, "missing service name")

	_, err = Load(writeConfig(t, `service = "x"`+"\n"+`[server]`+"\n"+`tls_cert = "only-cert.pem"`))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
