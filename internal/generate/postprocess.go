package generate

import (
	"strings"

	"media-tagger/internal/domain"
	"media-tagger/internal/textproc"
)

// finalizeResult applies the deterministic post-processing contract to the
// parsed model payload: title is normalized, truncated, then wrapped with
// the configured affixes; keywords run through the keyword builder with the
// bulk text; the description is truncated verbatim.
func finalizeResult(payload metadataPayload, cfg domain.GenerationConfig) Result {
	title := textproc.NormalizeTitle(payload.Title)
	title = textproc.TruncateRunes(title, cfg.TitleLength)
	title = applyAffixes(title, cfg)

	bulk := ""
	if cfg.BulkKeywordEnabled {
		bulk = cfg.BulkKeywordText
	}
	keywords := textproc.BuildKeywords(string(payload.Keywords), bulk, cfg.AutoRemoveDupKeywords, cfg.KeywordsCount)

	return Result{
		Title:       title,
		Keywords:    keywords,
		Description: textproc.TruncateRunes(payload.Description, cfg.DescriptionLength),
	}
}

// applyAffixes prepends/appends the configured prefix and suffix with a
// single separating space, only when enabled and non-blank after trimming.
func applyAffixes(title string, cfg domain.GenerationConfig) string {
	if cfg.PrefixEnabled {
		if prefix := strings.TrimSpace(cfg.PrefixText); prefix != "" {
			if title == "" {
				title = prefix
			} else {
				title = prefix + " " + title
			}
		}
	}
	if cfg.SuffixEnabled {
		if suffix := strings.TrimSpace(cfg.SuffixText); suffix != "" {
			if title == "" {
				title = suffix
			} else {
				title = title + " " + suffix
			}
		}
	}
	return title
}
