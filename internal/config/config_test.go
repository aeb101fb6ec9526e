package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "data/event.json", cfg.DataPath)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Archive.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 0.5, cfg.Executor.Threshold)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emceep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_path: /srv/event.json
http:
  addr: ":9000"
log:
  level: debug
  format: json
archive:
  enabled: false
executor:
  threshold: 0.7
`), 0o644))

	t.Setenv("EMCEEP_HTTP_ADDR", ":9100")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15550000")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/event.json", cfg.DataPath)
	assert.Equal(t, ":9100", cfg.HTTP.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, 0.7, cfg.Executor.Threshold)

	creds := cfg.Twilio.Notify()
	assert.True(t, creds.Configured())
	assert.Equal(t, "+15550000", creds.FromNumber)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	v := New()
	v.Set("executor.threshold", 1.5)
	_, err := Load(v, "")
	assert.ErrorContains(t, err, "executor.threshold")

	v = New()
	v.Set("log.format", "xml")
	_, err = Load(v, "")
	assert.ErrorContains(t, err, "log.format")
}

func TestRegisterFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "emceep"}
	v := New()
	var path string
	RegisterFlags(cmd, v, &path)

	require.NoError(t, cmd.PersistentFlags().Parse([]string{"-c", "custom.yaml", "--data", "/srv/event.json"}))

	assert.Equal(t, "custom.yaml", path)
	assert.Equal(t, "/srv/event.json", v.GetString("data_path"))
	// flags não informadas mantêm o default
	assert.Equal(t, "info", v.GetString("log.level"))
}
