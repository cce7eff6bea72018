package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/save-state/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, common.StateFileName, cfg.StateFile)
	assert.Equal(t, common.LayoutFileName, cfg.LayoutFile)
	assert.True(t, cfg.WatchStateFile)
	assert.True(t, cfg.RecordHistory)
	assert.Equal(t, common.ThemeAuto, cfg.Theme)
	assert.Equal(t, 360, cfg.WindowWidth)
	assert.Equal(t, 200, cfg.WindowHeight)
}

func TestLoadFile_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", common.ConfigFileName)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().StateFile, cfg.StateFile)
	assert.Equal(t, path, cfg.Path())
	assert.True(t, common.FileExists(path))
}

func TestLoadFile_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.ConfigFileName)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	cfg.StateFile = "/var/lib/save-state/toggle_state.xml"
	cfg.ShowTray = true
	cfg.Theme = common.ThemeDark
	require.NoError(t, cfg.Save())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.StateFile, loaded.StateFile)
	assert.True(t, loaded.ShowTray)
	assert.Equal(t, common.ThemeDark, loaded.Theme)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("show_tray: true\n"), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.ShowTray)
	assert.True(t, cfg.WatchStateFile)
	assert.Equal(t, common.StateFileName, cfg.StateFile)
}

func TestLoadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.ConfigFileName)
	require.NoError(t, os.WriteFile(path, nil, 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Theme, cfg.Theme)
}

func TestLoadFile_Validation(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.ConfigFileName)
	doc := "theme: purple\nstate_file: \"\"\nwindow_width: 10\nwindow_height: -1\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, common.ThemeAuto, cfg.Theme)
	assert.Equal(t, common.StateFileName, cfg.StateFile)
	assert.Equal(t, common.DefaultWindowWidth, cfg.WindowWidth)
	assert.Equal(t, common.DefaultWindowHeight, cfg.WindowHeight)
}

func TestLoadFile_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("auto_reconnect: true\n"), 0600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfigLoad))
}

func TestSave_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	cfg := DefaultConfig()
	cfg.path = filepath.Join(blocker, common.ConfigFileName)

	err := cfg.Save()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfigSave))
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", common.ConfigDirName, common.ConfigFileName), path)
}

func TestOverride_NotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.ConfigFileName)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	cfg.Override("/tmp/oneoff.xml", "/tmp/oneoff.ui")
	assert.Equal(t, "/tmp/oneoff.xml", cfg.EffectiveStateFile())
	assert.Equal(t, "/tmp/oneoff.ui", cfg.EffectiveLayoutFile())
	assert.Equal(t, common.StateFileName, cfg.StateFile)

	cfg.ShowTray = true
	require.NoError(t, cfg.Save())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, common.StateFileName, loaded.StateFile)
	assert.Equal(t, common.LayoutFileName, loaded.LayoutFile)
	assert.Equal(t, common.StateFileName, loaded.EffectiveStateFile())
	assert.True(t, loaded.ShowTray)
}

func TestOverride_EmptyKeepsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StateFile = "custom.xml"

	cfg.Override("", "")
	assert.Equal(t, "custom.xml", cfg.EffectiveStateFile())
	assert.Equal(t, common.LayoutFileName, cfg.EffectiveLayoutFile())
}

func TestFallback_RefusesSave(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := DefaultPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte("theme: [broken"), 0600))

	_, err = Load()
	require.Error(t, err)

	cfg := Fallback()
	assert.True(t, cfg.IsFallback())
	cfg.Theme = common.ThemeDark

	err = cfg.Save()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfigSave))
	assert.True(t, errors.Is(err, common.ErrConfigFallback))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "theme: [broken", string(data))
}
