package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
	"scribe/internal/errors"
	"scribe/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	return testutils.WriteFile(t, t.TempDir(), "scribe.yaml", []byte(body))
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := config.LoadConfigFile(writeConfig(t, `
window:
  width: 1400
  height: 900
editor:
  font_size: 16
  tab_size: 2
  word_wrap: true
  theme: light
storage:
  dir: "/tmp/scribe-data"
watch:
  enabled: false
logging:
  level: debug
  json: true
`))
	require.NoError(t, err)

	assert.Equal(t, 1400, cfg.Window.Width)
	assert.Equal(t, 900, cfg.Window.Height)
	assert.Equal(t, 16, cfg.Editor.FontSize)
	assert.Equal(t, 2, cfg.Editor.TabSize)
	assert.True(t, cfg.Editor.WordWrap)
	assert.Equal(t, "light", cfg.Editor.Theme)
	assert.Equal(t, "/tmp/scribe-data", cfg.Storage.Dir)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)

	// omitted keys keep their defaults
	assert.Equal(t, 600, cfg.Window.MinWidth)
	assert.Equal(t, 400, cfg.Window.MinHeight)
	assert.True(t, cfg.Editor.InsertSpaces)
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)
}

func TestLoadConfigFileRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "broken yaml",
			body: "editor:\n  font_size: \"big\n  tab_size: [1, 2\n",
			want: []string{"error parsing config file"},
		},
		{
			name: "unknown theme",
			body: "editor:\n  theme: \"purple\"\n",
			want: []string{`unknown theme "purple"`, "editor.theme"},
		},
		{
			name: "window below minimum",
			body: "window:\n  width: 500\n  min_width: 600\n",
			want: []string{"minimum window size exceeds window size"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfigFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.True(t, errors.IsInvalidConfig(err))
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := config.New()

	assert.Equal(t, 1200, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)
	assert.Equal(t, 600, cfg.Window.MinWidth)
	assert.Equal(t, 400, cfg.Window.MinHeight)
	assert.Equal(t, 14, cfg.Editor.FontSize)
	assert.Equal(t, 4, cfg.Editor.TabSize)
	assert.Equal(t, "dark", cfg.Editor.Theme)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *config.Config) {}},
		{name: "zero width", mutate: func(c *config.Config) { c.Window.Width = 0 }, wantErr: true},
		{name: "negative minimum", mutate: func(c *config.Config) { c.Window.MinHeight = -1 }, wantErr: true},
		{name: "zero font size", mutate: func(c *config.Config) { c.Editor.FontSize = 0 }, wantErr: true},
		{name: "tab size too large", mutate: func(c *config.Config) { c.Editor.TabSize = 32 }, wantErr: true},
		{name: "light theme", mutate: func(c *config.Config) { c.Editor.Theme = "light" }},
		{name: "unknown log level", mutate: func(c *config.Config) { c.Logging.Level = "loud" }, wantErr: true},
		{name: "warning log level", mutate: func(c *config.Config) { c.Logging.Level = "warning" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsInvalidConfig(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.New()
	cfg.Editor.FontSize = 18
	cfg.Storage.Dir = "/srv/scribe"
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDocumentPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.Storage.Dir = dir

	assert.Equal(t, dir, cfg.DataDir())
	assert.Equal(t, filepath.Join(dir, "recent-files.json"), cfg.RecentFilesPath())
	assert.Equal(t, filepath.Join(dir, "preferences.json"), cfg.PreferencesPath())
	assert.Equal(t, filepath.Join(dir, "format-mappings.json"), cfg.FormatMappingsPath())

	paths := cfg.Paths()
	assert.Equal(t, cfg.RecentFilesPath(), paths.RecentFiles)
	assert.Equal(t, cfg.PreferencesPath(), paths.Preferences)
	assert.Equal(t, cfg.FormatMappingsPath(), paths.FormatMappings)

	cfg.Storage.Dir = ""
	assert.Equal(t, config.DefaultDir(), cfg.DataDir())
	assert.Equal(t, filepath.Join(config.DefaultDir(), "config.yaml"), config.DefaultPath())
}

func TestDataDirExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := config.New()
	cfg.Storage.Dir = "~/notes"
	assert.Equal(t, filepath.Join(home, "notes"), cfg.DataDir())
}

func TestLogOptions(t *testing.T) {
	cfg := config.New()
	assert.Len(t, cfg.LogOptions(), 1)

	cfg.Logging.JSON = true
	cfg.Logging.File = filepath.Join(t.TempDir(), "scribe.log")
	assert.Len(t, cfg.LogOptions(), 3)
}
