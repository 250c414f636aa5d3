package bootstrap

import (
	"testing"

	"media-tagger/internal/config"
	"media-tagger/internal/domain"
)

// TestGetModelOptionsContainsDefault checks the default model is offered.
func TestGetModelOptionsContainsDefault(t *testing.T) {
	app := newTestApp(t, &fakeStore{settings: config.DefaultSettings()}, &fakeSource{})

	options := app.GetModelOptions()
	if len(options) == 0 {
		t.Fatal("expected built-in model presets")
	}

	defaultModel := config.DefaultSettings().Generation.Model
	for _, option := range options {
		if option.ID == defaultModel {
			return
		}
	}
	t.Fatalf("default model %s missing from catalog: %+v", defaultModel, options)
}

// TestGetPlatformOptionsCoversKnownPlatforms checks catalog completeness.
func TestGetPlatformOptionsCoversKnownPlatforms(t *testing.T) {
	app := newTestApp(t, &fakeStore{settings: config.DefaultSettings()}, &fakeSource{})

	options := app.GetPlatformOptions()
	byID := make(map[domain.Platform]bool, len(options))
	for _, option := range options {
		byID[option.ID] = true
	}
	for _, platform := range domain.KnownPlatforms {
		if !byID[platform] {
			t.Fatalf("platform %s missing from catalog", platform)
		}
	}
}

// TestCatalogReturnsCopies checks callers cannot mutate the presets.
func TestCatalogReturnsCopies(t *testing.T) {
	app := newTestApp(t, &fakeStore{settings: config.DefaultSettings()}, &fakeSource{})

	options := app.GetModelOptions()
	options[0].Name = "mutated"
	if app.GetModelOptions()[0].Name == "mutated" {
		t.Fatal("catalog must not share backing storage with callers")
	}
}
