package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".tripd.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoad_EmptyPath(t *testing.T) {
	t.Parallel()

	loader := &DefaultLoader{}

	_, err := loader.Load("  ")
	require.ErrorIs(t, err, ErrConfigLoadFailed)
}

func TestLoad_MissingFileYieldsEmptyConfig(t *testing.T) {
	t.Parallel()

	loader := &DefaultLoader{}

	cfg, err := loader.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, &Config{}, cfg)
}

func TestLoad_FullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[api]
addr = "127.0.0.1:9000"

[api.timeout]
shutdown = "10s"

[api.cors]
enable = true
allow_origins = ["http://localhost:3000"]
allow_credentials = true
max_age = "2m"

[mock]
seed = 42
connect_delay_min = "0s"
connect_delay_max = "5ms"
invoke_delay_min = "0s"
invoke_delay_max = "10ms"

[transcript]
path = "/tmp/transcript.json"
`)

	loader := &DefaultLoader{}

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.API)
	require.Equal(t, "127.0.0.1:9000", *cfg.API.Addr)
	require.Equal(t, 10*time.Second, time.Duration(*cfg.API.Timeout.Shutdown))
	require.True(t, *cfg.API.CORS.Enable)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.API.CORS.Origins)
	require.True(t, *cfg.API.CORS.Credentials)
	require.Equal(t, 2*time.Minute, time.Duration(*cfg.API.CORS.MaxAge))

	require.NotNil(t, cfg.Mock)
	require.Equal(t, int64(42), *cfg.Mock.Seed)
	require.Equal(t, 5*time.Millisecond, time.Duration(*cfg.Mock.ConnectDelayMax))

	require.NotNil(t, cfg.Transcript)
	require.Equal(t, "/tmp/transcript.json", *cfg.Transcript.Path)
}

func TestLoad_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		contents string
	}{
		{
			name: "invalid addr",
			contents: `
[api]
addr = "not-an-address"
`,
		},
		{
			name: "non-positive shutdown timeout",
			contents: `
[api.timeout]
shutdown = "0s"
`,
		},
		{
			name: "negative cors max age",
			contents: `
[api.cors]
max_age = "-1s"
`,
		},
		{
			name: "delay min exceeds max",
			contents: `
[mock]
invoke_delay_min = "2s"
invoke_delay_max = "1s"
`,
		},
		{
			name: "negative delay",
			contents: `
[mock]
connect_delay_min = "-1s"
`,
		},
		{
			name: "blank transcript path",
			contents: `
[transcript]
path = " "
`,
		},
	}

	loader := &DefaultLoader{}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := loader.Load(writeConfig(t, tc.contents))
			require.ErrorIs(t, err, ErrConfigLoadFailed)
		})
	}
}

func TestLoad_UnparsableFile(t *testing.T) {
	t.Parallel()

	loader := &DefaultLoader{}

	_, err := loader.Load(writeConfig(t, "not [valid toml"))
	require.ErrorIs(t, err, ErrConfigLoadFailed)
}

func TestDuration_TextRoundTrip(t *testing.T) {
	t.Parallel()

	d := Duration(90 * time.Second)

	text, err := d.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "1m30s", string(text))

	var parsed Duration
	require.NoError(t, parsed.UnmarshalText([]byte("250ms")))
	require.Equal(t, Duration(250*time.Millisecond), parsed)

	require.Error(t, parsed.UnmarshalText([]byte("soon")))
}
