package diagnostics

import (
	"fmt"
	"strings"
	"time"

	"media-tagger/internal/domain"
)

// Checker validates that settings are complete enough to run a batch.
type Checker struct {
	now func() time.Time
}

// NewChecker builds a checker with the real clock.
func NewChecker() *Checker {
	return &Checker{now: time.Now}
}

// Run executes all preflight checks and returns a combined report.
func (c *Checker) Run(settings domain.Settings) domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		checkCredentials(settings.Credentials),
		checkModel(settings.Generation),
		checkRanges(settings.Generation),
		checkPlatform(settings.Generation),
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			hasFailures = true
			break
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: c.now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// checkCredentials verifies at least one usable API key is stored.
func checkCredentials(credentials []string) domain.DiagnosticItem {
	usable := 0
	for _, credential := range credentials {
		if strings.TrimSpace(credential) != "" {
			usable++
		}
	}

	if usable == 0 {
		return domain.DiagnosticItem{
			ID:      "credentials",
			Name:    "API credentials",
			Status:  domain.DiagnosticStatusFail,
			Message: "No API keys configured",
			Hint:    "Add at least one API key in settings before starting a batch.",
		}
	}

	status := domain.DiagnosticStatusPass
	message := fmt.Sprintf("%d key(s) configured", usable)
	if usable == 1 {
		status = domain.DiagnosticStatusWarn
		message = "Only one key configured; rotation cannot fall back on quota errors"
	}
	return domain.DiagnosticItem{
		ID:      "credentials",
		Name:    "API credentials",
		Status:  status,
		Message: message,
	}
}

// checkModel verifies the backend model name is set.
func checkModel(cfg domain.GenerationConfig) domain.DiagnosticItem {
	if strings.TrimSpace(cfg.Model) == "" {
		return domain.DiagnosticItem{
			ID:      "model",
			Name:    "Backend model",
			Status:  domain.DiagnosticStatusFail,
			Message: "No model selected",
			Hint:    "Pick a model in settings.",
		}
	}

	return domain.DiagnosticItem{
		ID:      "model",
		Name:    "Backend model",
		Status:  domain.DiagnosticStatusPass,
		Message: fmt.Sprintf("Using %s", cfg.Model),
	}
}

// checkRanges verifies the numeric knobs sit inside their bounds.
func checkRanges(cfg domain.GenerationConfig) domain.DiagnosticItem {
	var problems []string
	if cfg.TitleLength < domain.TitleLengthMin || cfg.TitleLength > domain.TitleLengthMax {
		problems = append(problems, fmt.Sprintf("title length %d outside %d-%d", cfg.TitleLength, domain.TitleLengthMin, domain.TitleLengthMax))
	}
	if cfg.KeywordsCount < domain.KeywordsCountMin || cfg.KeywordsCount > domain.KeywordsCountMax {
		problems = append(problems, fmt.Sprintf("keyword count %d outside %d-%d", cfg.KeywordsCount, domain.KeywordsCountMin, domain.KeywordsCountMax))
	}
	if cfg.DescriptionLength < domain.DescriptionLengthMin || cfg.DescriptionLength > domain.DescriptionLengthMax {
		problems = append(problems, fmt.Sprintf("description length %d outside %d-%d", cfg.DescriptionLength, domain.DescriptionLengthMin, domain.DescriptionLengthMax))
	}

	if len(problems) > 0 {
		return domain.DiagnosticItem{
			ID:      "ranges",
			Name:    "Generation limits",
			Status:  domain.DiagnosticStatusFail,
			Message: strings.Join(problems, "; "),
			Hint:    "Save settings to clamp the values into range.",
		}
	}

	return domain.DiagnosticItem{
		ID:      "ranges",
		Name:    "Generation limits",
		Status:  domain.DiagnosticStatusPass,
		Message: "All limits within range",
	}
}

// checkPlatform verifies the selected marketplace is known.
func checkPlatform(cfg domain.GenerationConfig) domain.DiagnosticItem {
	for _, known := range domain.KnownPlatforms {
		if cfg.Platform == known {
			return domain.DiagnosticItem{
				ID:      "platform",
				Name:    "Target platform",
				Status:  domain.DiagnosticStatusPass,
				Message: fmt.Sprintf("Targeting %s", cfg.Platform),
			}
		}
	}

	return domain.DiagnosticItem{
		ID:      "platform",
		Name:    "Target platform",
		Status:  domain.DiagnosticStatusFail,
		Message: fmt.Sprintf("Unknown platform: %s", cfg.Platform),
		Hint:    "Pick one of the supported marketplaces in settings.",
	}
}
