package bootstrap

import (
	"media-tagger/internal/domain"
)

var modelCatalog = []domain.ModelOption{
	{
		ID:          "gemini-2.0-flash",
		Name:        "Gemini 2.0 Flash",
		Description: "Fast default model, good balance of quality and quota cost.",
	},
	{
		ID:          "gemini-2.0-flash-lite",
		Name:        "Gemini 2.0 Flash Lite",
		Description: "Cheapest option for very large batches.",
	},
	{
		ID:          "gemini-1.5-flash",
		Name:        "Gemini 1.5 Flash",
		Description: "Previous-generation fast model.",
	},
	{
		ID:          "gemini-1.5-pro",
		Name:        "Gemini 1.5 Pro",
		Description: "Highest quality, slowest and most quota-hungry.",
	},
}

var platformCatalog = []domain.PlatformOption{
	{
		ID:          domain.PlatformGeneral,
		Name:        "General",
		Description: "Neutral metadata without marketplace-specific conventions.",
	},
	{
		ID:          domain.PlatformAdobe,
		Name:        "Adobe Stock",
		Description: "Titles and keywords tuned for Adobe Stock search.",
	},
	{
		ID:          domain.PlatformFreepik,
		Name:        "Freepik",
		Description: "Keyword-heavy style favored by Freepik.",
	},
	{
		ID:          domain.PlatformShutterstock,
		Name:        "Shutterstock",
		Description: "Descriptive titles in Shutterstock style.",
	},
	{
		ID:          domain.PlatformVecteezy,
		Name:        "Vecteezy",
		Description: "Vector-oriented metadata for Vecteezy.",
	},
}

// GetModelOptions returns the built-in backend model presets.
func (a *App) GetModelOptions() []domain.ModelOption {
	options := make([]domain.ModelOption, len(modelCatalog))
	copy(options, modelCatalog)
	return options
}

// GetPlatformOptions returns the supported target marketplaces.
func (a *App) GetPlatformOptions() []domain.PlatformOption {
	options := make([]domain.PlatformOption, len(platformCatalog))
	copy(options, platformCatalog)
	return options
}
