package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHomeDir points the platform seam at a fake home for one test.
func withHomeDir(t *testing.T, home string) {
	t.Helper()
	orig := platformDir.homeDir
	platformDir.homeDir = func() (string, error) { return home, nil }
	t.Cleanup(func() { platformDir.homeDir = orig })
}

func TestDirectoryNames(t *testing.T) {
	// The CLI documents these names in its flag help; a drift here is
	// user-visible.
	assert.Equal(t, ".seewee", DefaultConfigDirName)
	assert.Equal(t, ".seewee-db", DefaultDataDirName)
	assert.Equal(t, "SEEWEE_CONFIG_DIR", EnvConfigDir)
	assert.Equal(t, "SEEWEE_DATA_DIR", EnvDataDir)
}

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/seewee", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		withHomeDir(t, "/home/ada")

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/ada/.config/seewee", got)
	})
}

func TestDefaultDataDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_DATA_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/seewee", got)
	})

	t.Run("falls back to ~/.local/share when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		withHomeDir(t, "/home/ada")

		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/ada/.local/share/seewee", got)
	})
}

func TestDefaultDirs_Darwin(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("darwin-only test")
	}

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	appSupport := filepath.Join(home, "Library", "Application Support", "seewee")

	got, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, appSupport, got)

	got, err = DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, appSupport, got)
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")
		got, err := ResolveConfigDir("/explicit/config")
		require.NoError(t, err)
		assert.Equal(t, "/explicit/config", got)
	})

	t.Run("env wins when flag empty", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/env/config")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Equal(t, "/env/config", got)
	})

	t.Run("platform default when both empty", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.Contains(t, got, "seewee")
	})

	t.Run("relative values become absolute", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "relative/env")
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)

		got, err = ResolveConfigDir("relative/flag")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}

// ResolveDataDir feeds the store's Attach; the config.yaml data_dir value
// loaded by the root command slots in between the flag and the env var.
func TestResolveDataDir(t *testing.T) {
	tests := []struct {
		name      string
		flag      string
		configVal string
		envVal    string
		want      string
	}{
		{"flag wins over all", "/flag/data", "/config/data", "/env/data", "/flag/data"},
		{"config.yaml wins over env", "", "/config/data", "/env/data", "/config/data"},
		{"env wins when flag and config empty", "", "", "/env/data", "/env/data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveDataDir(tt.flag, tt.configVal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("CWD default when all empty", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		dir := t.TempDir()
		t.Chdir(dir)

		got, err := ResolveDataDir("", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultDataDirName, filepath.Base(got))
		assert.True(t, filepath.IsAbs(got))
	})

	t.Run("relative config value becomes absolute", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		got, err := ResolveDataDir("", "relative/config")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}
