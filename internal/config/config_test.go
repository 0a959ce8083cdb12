package config

import (
	"testing"
	"time"
)

func setTestHome(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("APPDATA", root)
	return root
}

func TestLoadConfig_Defaults(t *testing.T) {
	setTestHome(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TMDB.Language != "ko-KR" {
		t.Fatalf("expected default language ko-KR, got %q", cfg.TMDB.Language)
	}
	if cfg.TMDB.Timeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.TMDB.Timeout)
	}
	if cfg.UI.DefaultView != ViewTable || cfg.UI.ScrollThreshold != 5 {
		t.Fatalf("unexpected ui defaults %+v", cfg.UI)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	setTestHome(t)
	t.Setenv("MARQUEE_TMDB_LANGUAGE", "en-US")
	t.Setenv("MARQUEE_UI_DEFAULT_VIEW", "infinite")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TMDB.Language != "en-US" {
		t.Fatalf("expected env language, got %q", cfg.TMDB.Language)
	}
	if cfg.UI.DefaultView != ViewInfinite {
		t.Fatalf("expected infinite view, got %q", cfg.UI.DefaultView)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	setTestHome(t)

	cfg := DefaultConfig()
	cfg.TMDB.Language = "ja-JP"
	cfg.UI.ScrollThreshold = 9
	cfg.Storage.Path = ""
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.TMDB.Language != "ja-JP" || loaded.UI.ScrollThreshold != 9 {
		t.Fatalf("saved values not loaded: %+v", loaded)
	}
	if loaded.Storage.Path != "" {
		t.Fatalf("expected memory-only storage path, got %q", loaded.Storage.Path)
	}
}

func TestNormalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.DefaultView = "grid"
	cfg.UI.ScrollThreshold = -1
	cfg.normalize()

	if cfg.UI.DefaultView != ViewTable || cfg.UI.ScrollThreshold != 5 {
		t.Fatalf("expected repaired ui config, got %+v", cfg.UI)
	}
}

func TestSettings_FlattensInFileOrder(t *testing.T) {
	settings := DefaultConfig().Settings()
	if len(settings) == 0 || settings[0].Key != "tmdb.base_url" {
		t.Fatalf("unexpected first setting %+v", settings)
	}

	seen := make(map[string]any)
	for _, s := range settings {
		seen[s.Key] = s.Value
	}
	if seen["tmdb.language"] != "ko-KR" {
		t.Fatalf("expected language ko-KR, got %v", seen["tmdb.language"])
	}
	if seen["ui.scroll_threshold"] != 5 {
		t.Fatalf("expected scroll threshold 5, got %v", seen["ui.scroll_threshold"])
	}
}
