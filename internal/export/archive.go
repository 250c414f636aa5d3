package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"strings"

	"media-tagger/internal/domain"
)

// BuildArchive bundles the four per-category CSV files into a ZIP.
func BuildArchive(items []domain.FileItem, platform domain.Platform) ([]byte, error) {
	buckets := Partition(items)

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, category := range Categories {
		entry, err := writer.Create(archiveEntryName(category))
		if err != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", category, err)
		}
		if _, err := entry.Write(MarshalCSV(buckets[category], platform)); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", category, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteArchive builds the bundle and writes it to the given path.
func WriteArchive(path string, items []domain.FileItem, platform domain.Platform) error {
	data, err := BuildArchive(items, platform)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// archiveEntryName names one CSV inside the bundle.
func archiveEntryName(category Category) string {
	return "metadata_" + strings.ToLower(string(category)) + ".csv"
}
