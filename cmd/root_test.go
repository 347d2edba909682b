package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quickactions/internal/config"
)

// isolate points HOME and the working directory at fresh temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Chdir(work)
	return home, work
}

func TestLoadConfig_WritesDefaultOnFirstRun(t *testing.T) {
	home, _ := isolate(t)

	c, path, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".config", "quickactions", "config.yaml"), path)
	require.FileExists(t, path)
	require.Equal(t, config.Defaults().Palette, c.Palette)
	require.Equal(t, config.ThemeDark, c.UI.Theme)
}

func TestLoadConfig_PrefersLocalFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(".quickactions", 0o750))
	require.NoError(t, os.WriteFile(localConfigPath, []byte("palette:\n  lock_window: 250ms\n  max_recent: 3\n"), 0o600))

	c, path, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, localConfigPath, path)
	require.Equal(t, 250*time.Millisecond, c.Palette.LockWindow)
	require.Equal(t, 3, c.Palette.MaxRecent)
	require.Equal(t, 10, c.Palette.MaxVisibleItems, "unset keys keep defaults")
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	_, work := isolate(t)
	missing := filepath.Join(work, "nope.yaml")

	c, path, err := loadConfig(viper.New(), missing)
	require.Error(t, err)
	require.Equal(t, missing, path)
	require.NoFileExists(t, missing, "explicit paths are never created")
	require.Equal(t, config.Defaults().Palette.LockWindow, c.Palette.LockWindow)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: light\ndatabase:\n  path: /tmp/tx.db\n"), 0o600))

	c, got, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, path, got)
	require.Equal(t, config.ThemeLight, c.UI.Theme)
	require.Equal(t, "/tmp/tx.db", c.Database.Path)
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv(debugEnv, "")
	debugFlag = false
	require.False(t, debugEnabled())

	t.Setenv(debugEnv, "1")
	require.True(t, debugEnabled())

	t.Setenv(debugEnv, "")
	debugFlag = true
	t.Cleanup(func() { debugFlag = false })
	require.True(t, debugEnabled())
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	require.True(t, names["seed"])
	require.True(t, names["catalog"])
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("db"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("debug"))
}
