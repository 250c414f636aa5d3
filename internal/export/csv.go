package export

import (
	"path/filepath"
	"strings"

	"media-tagger/internal/domain"
)

// Category partitions exported items by their source file format.
type Category string

const (
	CategoryAI      Category = "AI"
	CategoryEPS     Category = "EPS"
	CategorySVG     Category = "SVG"
	CategoryGeneral Category = "General"
)

// Categories is the fixed export order of the archive entries.
var Categories = []Category{CategoryAI, CategoryEPS, CategorySVG, CategoryGeneral}

// csvHeader is the fixed column layout of every exported file.
const csvHeader = "filename,title,keywords,description,platform"

// Partition splits items by source extension. When no item lands in the
// General bucket it falls back to the full unfiltered set so the General
// file is never empty while items exist.
func Partition(items []domain.FileItem) map[Category][]domain.FileItem {
	buckets := map[Category][]domain.FileItem{}
	for _, item := range items {
		buckets[categoryOf(item)] = append(buckets[categoryOf(item)], item)
	}

	if len(buckets[CategoryGeneral]) == 0 && len(items) > 0 {
		buckets[CategoryGeneral] = append([]domain.FileItem(nil), items...)
	}
	return buckets
}

// categoryOf maps a source file extension to its export category.
func categoryOf(item domain.FileItem) Category {
	switch strings.ToLower(filepath.Ext(item.Source.Name)) {
	case ".ai":
		return CategoryAI
	case ".eps":
		return CategoryEPS
	case ".svg":
		return CategorySVG
	default:
		return CategoryGeneral
	}
}

// MarshalCSV renders one category's rows. Every field is double-quote
// enclosed with internal quotes doubled and embedded newlines collapsed to
// spaces; rows are separated by CRLF.
func MarshalCSV(items []domain.FileItem, platform domain.Platform) []byte {
	var sb strings.Builder
	sb.WriteString(csvHeader)
	sb.WriteString("\r\n")

	for _, item := range items {
		fields := []string{
			item.Source.Name,
			item.Title,
			item.Keywords,
			item.Description,
			string(platform),
		}
		for i, field := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(quoteField(field))
		}
		sb.WriteString("\r\n")
	}

	return []byte(sb.String())
}

// quoteField encloses a value in double quotes, doubling internal quotes
// and flattening newlines.
func quoteField(value string) string {
	flattened := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(value)
	return `"` + strings.ReplaceAll(flattened, `"`, `""`) + `"`
}
