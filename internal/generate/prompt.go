package generate

import (
	"fmt"
	"strings"

	"media-tagger/internal/domain"
)

// platformLabels render marketplace identifiers for the instruction text.
var platformLabels = map[domain.Platform]string{
	domain.PlatformAdobe:        "Adobe Stock",
	domain.PlatformFreepik:      "Freepik",
	domain.PlatformShutterstock: "Shutterstock",
	domain.PlatformGeneral:      "general stock marketplaces",
	domain.PlatformVecteezy:     "Vecteezy",
}

// BuildInstruction composes the natural-language request for one file:
// target platform, mode, file identity, exact numeric constraints, and the
// JSON-only output directive.
func BuildInstruction(src domain.SourceFile, cfg domain.GenerationConfig) string {
	platform := platformLabels[cfg.Platform]
	if platform == "" {
		platform = platformLabels[domain.PlatformGeneral]
	}

	var sb strings.Builder
	if cfg.Mode == domain.ModePrompt {
		sb.WriteString("You write reusable AI image-generation prompts from reference assets.\n")
		sb.WriteString(fmt.Sprintf("Study the asset %q (type: %s) and produce:\n", src.Name, src.MimeType))
		sb.WriteString(fmt.Sprintf("- title: a short prompt summary, at most %d characters.\n", cfg.TitleLength))
		sb.WriteString(fmt.Sprintf("- keywords: exactly %d single-word style descriptors.\n", cfg.KeywordsCount))
		sb.WriteString(fmt.Sprintf("- description: a detailed generation prompt that would recreate the asset, at most %d characters.\n", cfg.DescriptionLength))
	} else {
		sb.WriteString(fmt.Sprintf("You write stock-marketplace metadata for %s.\n", platform))
		sb.WriteString(fmt.Sprintf("Study the asset %q (type: %s) and produce:\n", src.Name, src.MimeType))
		sb.WriteString(fmt.Sprintf("- title: a commercial search-friendly title, at most %d characters.\n", cfg.TitleLength))
		sb.WriteString(fmt.Sprintf("- keywords: exactly %d relevant single-word keywords ordered by relevance.\n", cfg.KeywordsCount))
		sb.WriteString(fmt.Sprintf("- description: a factual description, at most %d characters.\n", cfg.DescriptionLength))
	}
	sb.WriteString("Return only a JSON object with keys \"title\" (string), \"keywords\" (array of strings), and \"description\" (string); no extra text.")

	return sb.String()
}
