package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cfgtools/confmt"
	"github.com/cfgtools/confmt/example/app/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the real environment through t.Setenv, so none of
// them run in parallel.

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	rec, err := config.Load(config.Options{})
	require.NoError(t, err)

	out, err := confmt.Marshal(rec)
	require.NoError(t, err)
	want := "name = confmt-demo\n" +
		"debug = false\n" +
		"workers = 4\n" +
		"rate = 0.5\n" +
		"level = info\n" +
		"timeout = \n" +
		"features = metrics,no-tracing,no-pprof\n" +
		"tls.cert = /etc/demo/cert.pem\n" +
		"tls.key = /etc/demo/key.pem\n"
	assert.Equal(t, want, string(out))
}

func TestLoadPrecedence(t *testing.T) {
	path := writeTOML(t, "workers = 8\ndebug = true\n")
	t.Setenv("DEMO_WORKERS", "12")
	t.Setenv("DEMO_FEATURES__PPROF", "true")

	rec, err := config.Load(config.Options{
		File: path,
		Args: []string{"--workers=6", "--level=warn"},
	})
	require.NoError(t, err)

	// debug comes from the file, pprof from the environment; workers is
	// set by all three sources and the argument wins; level only by args.
	out, err := confmt.Marshal(rec)
	require.NoError(t, err)
	want := "name = confmt-demo\n" +
		"debug = true\n" +
		"workers = 6\n" +
		"rate = 0.5\n" +
		"level = warn\n" +
		"timeout = \n" +
		"features = metrics,no-tracing,pprof\n" +
		"tls.cert = /etc/demo/cert.pem\n" +
		"tls.key = /etc/demo/key.pem\n"
	assert.Equal(t, want, string(out))
}

func TestLoadEnvRespectsFieldKinds(t *testing.T) {
	t.Setenv("DEMO_NAME", "42")     // string field keeps the text
	t.Setenv("DEMO_RATE", "2")      // integer text widens to float
	t.Setenv("DEMO_TIMEOUT", "2.5") // absent optional adopts float

	rec, err := config.Load(config.Options{})
	require.NoError(t, err)

	out, err := confmt.Marshal(rec)
	require.NoError(t, err)
	got := string(out)
	assert.Contains(t, got, "name = 42\n")
	assert.Contains(t, got, "rate = 2\n")
	assert.Contains(t, got, "timeout = 2.5\n")
}

func TestLoadUnknownEnvVar(t *testing.T) {
	t.Setenv("DEMO_BOGUS", "1")
	_, err := config.Load(config.Options{})
	require.ErrorIs(t, err, confmt.ErrUnknownField)
}

func TestLoadHiddenFieldUnreachable(t *testing.T) {
	t.Setenv("DEMO_TOKEN", "leaked")
	_, err := config.Load(config.Options{})
	require.ErrorIs(t, err, confmt.ErrUnknownField)
}

func TestLoadCompositeNotOverlayable(t *testing.T) {
	path := writeTOML(t, "[tls]\ncert = \"/other.pem\"\n")
	_, err := config.Load(config.Options{File: path})
	require.ErrorIs(t, err, confmt.ErrInvalidValue)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(config.Options{File: filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
}

func TestLoadBadFlag(t *testing.T) {
	_, err := config.Load(config.Options{Args: []string{"--nope=1"}})
	require.Error(t, err)
}
