package config

import (
	"strings"

	"media-tagger/internal/domain"
)

// DefaultSettings returns baseline configuration for first launch.
func DefaultSettings() domain.Settings {
	return domain.Settings{
		Credentials: nil,
		Generation: domain.GenerationConfig{
			Mode:                  domain.ModeMetadata,
			Platform:              domain.PlatformGeneral,
			Model:                 "gemini-2.0-flash",
			TitleLength:           90,
			KeywordsCount:         30,
			DescriptionLength:     150,
			AutoRemoveDupKeywords: true,
		},
	}
}

// Normalize trims credentials, drops empty slots, caps the list length, and
// clamps the numeric generation knobs into their documented ranges.
func Normalize(settings domain.Settings) domain.Settings {
	credentials := make([]string, 0, len(settings.Credentials))
	for _, credential := range settings.Credentials {
		trimmed := strings.TrimSpace(credential)
		if trimmed == "" {
			continue
		}
		credentials = append(credentials, trimmed)
		if len(credentials) == domain.MaxCredentials {
			break
		}
	}
	settings.Credentials = credentials

	cfg := &settings.Generation
	if cfg.Mode != domain.ModePrompt {
		cfg.Mode = domain.ModeMetadata
	}
	if !knownPlatform(cfg.Platform) {
		cfg.Platform = domain.PlatformGeneral
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = DefaultSettings().Generation.Model
	}
	cfg.TitleLength = clamp(cfg.TitleLength, domain.TitleLengthMin, domain.TitleLengthMax)
	cfg.KeywordsCount = clamp(cfg.KeywordsCount, domain.KeywordsCountMin, domain.KeywordsCountMax)
	cfg.DescriptionLength = clamp(cfg.DescriptionLength, domain.DescriptionLengthMin, domain.DescriptionLengthMax)

	return settings
}

// knownPlatform reports whether the platform identifier is supported.
func knownPlatform(platform domain.Platform) bool {
	for _, known := range domain.KnownPlatforms {
		if platform == known {
			return true
		}
	}
	return false
}

// clamp bounds v into [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
