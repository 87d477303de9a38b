package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/mdport/internal/foundation/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, DefaultDirective, cfg.Embed.Directive)
	assert.Equal(t, DefaultPlayerURL, cfg.Embed.PlayerURL)
	assert.True(t, cfg.Render.SuppressMarkers())
	assert.Equal(t, TargetPreview, cfg.Render.DefaultTarget)
	assert.Equal(t, DefaultCodeStyle, cfg.Render.CodeStyle)
	assert.Equal(t, DefaultHighlightStyle, cfg.Export.HighlightStyle)
	assert.Equal(t, 150*time.Millisecond, cfg.DebounceDuration())
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	require.NoError(t, Validate(cfg))
}

func TestParse_EmptyDocumentUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Values(t *testing.T) {
	t.Setenv("MDPORT_TEST_DB", "/tmp/drafts.db")

	cfg, err := Parse([]byte(`
version: "1"
embed:
  directive: video
render:
  suppress_list_markers: false
  default_target: HTML
  code_style: Monokai
  memo: true
drafts:
  path: ${MDPORT_TEST_DB}
watch:
  debounce: 1s
logging:
  level: WARNING
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, "video", cfg.Embed.Directive)
	assert.False(t, cfg.Render.SuppressMarkers())
	assert.Equal(t, TargetPortable, cfg.Render.DefaultTarget)
	assert.Equal(t, "monokai", cfg.Render.CodeStyle)
	assert.True(t, cfg.Render.Memo)
	assert.Equal(t, "/tmp/drafts.db", cfg.Drafts.Path)
	assert.Equal(t, time.Second, cfg.DebounceDuration())
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		category foundationerrors.ErrorCategory
	}{
		{"unknown field", "render:\n  colour: red\n", foundationerrors.CategoryConfig},
		{"bad version", "version: \"2\"\n", foundationerrors.CategoryConfig},
		{"bad directive", "embed:\n  directive: \"9lives\"\n", foundationerrors.CategoryValidation},
		{"player without id", "embed:\n  player_url: https://example.com/embed\n", foundationerrors.CategoryValidation},
		{"insecure thumbnail", "embed:\n  thumbnail_url: http://example.com/{id}.jpg\n", foundationerrors.CategoryValidation},
		{"unknown code style", "render:\n  code_style: no-such-style\n", foundationerrors.CategoryValidation},
		{"unknown highlight style", "export:\n  highlight_style: no-such-style\n", foundationerrors.CategoryValidation},
		{"unknown target", "render:\n  default_target: pdf\n", foundationerrors.CategoryValidation},
		{"bad debounce", "watch:\n  debounce: soon\n", foundationerrors.CategoryValidation},
		{"negative debounce", "watch:\n  debounce: -1s\n", foundationerrors.CategoryValidation},
		{"bad level", "logging:\n  level: loud\n", foundationerrors.CategoryValidation},
		{"bad format", "logging:\n  format: xml\n", foundationerrors.CategoryValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, tt.category, foundationerrors.GetCategory(err))
		})
	}
}

func TestNormalize_Warnings(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "DEBUG", Format: "json"},
		Render:  RenderConfig{DefaultTarget: " portable "},
	}
	res := Normalize(cfg)

	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, TargetPortable, cfg.Render.DefaultTarget)
	assert.Len(t, res.Warnings, 2)
}

func TestLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("missing.yaml")
	require.Error(t, err)
	assert.Equal(t, foundationerrors.CategoryConfig, foundationerrors.GetCategory(err))

	require.NoError(t, os.WriteFile(".env", []byte("MDPORT_TEST_STYLE=dracula\n"), 0o600))
	require.NoError(t, os.WriteFile("custom.yaml", []byte("render:\n  code_style: ${MDPORT_TEST_STYLE}\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("MDPORT_TEST_STYLE") })

	cfg, err := Load("custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Render.CodeStyle)
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(DefaultPath, []byte("render:\n  memo: true\n"), 0o600))
	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.True(t, cfg.Render.Memo)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdport.yaml")
	t.Setenv("HOME", "/home/test")

	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/home/test/.local/share/mdport/drafts.db", cfg.Drafts.Path)
	assert.True(t, cfg.Render.Memo)

	err = Init(path, false)
	require.Error(t, err)
	assert.Equal(t, foundationerrors.CategoryValidation, foundationerrors.GetCategory(err))

	require.NoError(t, Init(path, true))
}

func TestLogLevel_SlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", NormalizeLogLevel("debug").SlogLevel().String())
	assert.Equal(t, "WARN", NormalizeLogLevel("warning").SlogLevel().String())
	assert.Equal(t, "INFO", NormalizeLogLevel("bogus").SlogLevel().String())
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat(" JSON "))
}
