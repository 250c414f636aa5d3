package encode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-tagger/internal/domain"
)

// maxSourceTextLen caps how much raw vector source is sent to the backend.
const maxSourceTextLen = 3000

// Attachment is the visual payload fragment for one generation request:
// inline image bytes plus, for vector sources, a truncated source excerpt.
// A nil Attachment means the request carries the text prompt only.
type Attachment struct {
	Data       []byte
	MimeType   string
	SourceText string
}

// EncodingError reports an unreadable or unrasterizable source asset.
type EncodingError struct {
	Name    string
	Message string
	Err     error
}

// Error formats encoding failures for logs and item rows.
func (e *EncodingError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("encode %s: %s", e.Name, e.Message)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *EncodingError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Encoder converts source files into request attachments.
type Encoder struct {
	readFile func(name string) ([]byte, error)
}

// NewEncoder constructs the production encoder reading from the OS.
func NewEncoder() *Encoder {
	return &Encoder{readFile: os.ReadFile}
}

// NewEncoderForTests constructs an encoder with an injectable file reader.
func NewEncoderForTests(readFile func(name string) ([]byte, error)) *Encoder {
	return &Encoder{readFile: readFile}
}

// Encode prepares the attachment for one source file. Raster images are
// passed through as is, SVG sources are rasterized to PNG and accompanied
// by a truncated source excerpt, anything else yields no attachment.
func (e *Encoder) Encode(src domain.SourceFile) (*Attachment, error) {
	switch {
	case isRasterMime(src.MimeType):
		data, err := e.readFile(src.Path)
		if err != nil {
			return nil, &EncodingError{
				Name:    src.Name,
				Message: "cannot read image file",
				Err:     err,
			}
		}
		return &Attachment{Data: data, MimeType: src.MimeType}, nil

	case isVectorSource(src):
		data, err := e.readFile(src.Path)
		if err != nil {
			return nil, &EncodingError{
				Name:    src.Name,
				Message: "cannot read svg file",
				Err:     err,
			}
		}

		pngData, err := rasterizeSVG(data)
		if err != nil {
			return nil, &EncodingError{
				Name:    src.Name,
				Message: "svg rasterization failed",
				Err:     err,
			}
		}

		source := string(data)
		if len(source) > maxSourceTextLen {
			source = source[:maxSourceTextLen]
		}

		return &Attachment{
			Data:       pngData,
			MimeType:   "image/png",
			SourceText: source,
		}, nil

	default:
		// Formats such as .ai/.eps cannot be rasterized client-side; the
		// backend receives the text prompt without visual input.
		return nil, nil
	}
}

// isRasterMime reports whether the MIME type is a supported raster image.
func isRasterMime(mimeType string) bool {
	switch strings.ToLower(mimeType) {
	case "image/png", "image/jpeg", "image/jpg", "image/webp", "image/gif":
		return true
	default:
		return false
	}
}

// isVectorSource matches SVG inputs by MIME type or file extension.
func isVectorSource(src domain.SourceFile) bool {
	if strings.EqualFold(src.MimeType, "image/svg+xml") {
		return true
	}
	return strings.EqualFold(filepath.Ext(src.Name), ".svg")
}
