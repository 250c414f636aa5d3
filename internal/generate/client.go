package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"media-tagger/internal/domain"
	"media-tagger/internal/encode"
)

// defaultBaseURL targets the Gemini generateContent REST API.
const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// defaultModel is used when settings carry no model name.
const defaultModel = "gemini-2.0-flash"

// Result is the fully post-processed metadata triple for one item.
type Result struct {
	Title       string `json:"title"`
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
}

// httpDoer abstracts the HTTP client for testability.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// assetEncoder abstracts attachment preparation for testability.
type assetEncoder interface {
	Encode(src domain.SourceFile) (*encode.Attachment, error)
}

// Client issues one generation request per (credential, file) pair.
type Client struct {
	baseURL    string
	httpClient httpDoer
	encoder    assetEncoder
}

// NewClient constructs the production client.
func NewClient() *Client {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		encoder:    encode.NewEncoder(),
	}
}

// NewClientForTests constructs a client with injectable dependencies.
func NewClientForTests(baseURL string, httpClient httpDoer, encoder assetEncoder) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient, encoder: encoder}
}

// Request/response wire shapes for the generateContent endpoint.
type wireRequest struct {
	Contents         []wireContent  `json:"contents"`
	GenerationConfig *wireGenConfig `json:"generationConfig,omitempty"`
}

type wireContent struct {
	Parts []wirePart `json:"parts"`
}

type wirePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *wireInlineData `json:"inlineData,omitempty"`
}

type wireInlineData struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

type wireGenConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type wireResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// metadataPayload is the loosely-typed JSON object the model returns.
type metadataPayload struct {
	Title       string          `json:"title"`
	Keywords    flexibleStrings `json:"keywords"`
	Description string          `json:"description"`
}

// flexibleStrings accepts a JSON array of strings or a single string and
// stores the comma-joined value.
type flexibleStrings string

// UnmarshalJSON implements the array-or-string coercion rule.
func (f *flexibleStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = flexibleStrings(strings.Join(list, ", "))
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = flexibleStrings(single)
		return nil
	}

	return fmt.Errorf("keywords must be a string or an array of strings")
}

// RequestMetadata performs one generation call with the given credential and
// returns the post-processed triple. The raw credential value never appears
// in returned errors.
func (c *Client) RequestMetadata(ctx context.Context, credential string, item domain.FileItem, cfg domain.GenerationConfig) (Result, error) {
	attachment, err := c.encoder.Encode(item.Source)
	if err != nil {
		return Result{}, err
	}

	parts := []wirePart{{Text: BuildInstruction(item.Source, cfg)}}
	if attachment != nil {
		parts = append(parts, wirePart{
			InlineData: &wireInlineData{
				MimeType: attachment.MimeType,
				Data:     attachment.Data,
			},
		})
		if attachment.SourceText != "" {
			parts = append(parts, wirePart{
				Text: "Truncated source of the vector file:\n" + attachment.SourceText,
			})
		}
	}

	body, err := json.Marshal(wireRequest{
		Contents:         []wireContent{{Parts: parts}},
		GenerationConfig: &wireGenConfig{ResponseMIMEType: "application/json"},
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", credential)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("call backend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var envelope wireResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return Result{}, &ParseError{Raw: string(respBody), Err: err}
	}

	text := collectText(envelope)
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyResponse
	}

	extracted := extractJSONObject(text)
	var payload metadataPayload
	if err := json.Unmarshal([]byte(extracted), &payload); err != nil {
		return Result{}, &ParseError{Raw: text, Err: err}
	}

	return finalizeResult(payload, cfg), nil
}

// collectText concatenates all text parts of the first candidate.
func collectText(envelope wireResponse) string {
	if len(envelope.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, part := range envelope.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// extractJSONObject defensively isolates the JSON object inside model text:
// code fences are stripped and anything around the outermost braces is
// dropped, tolerating the commentary some models add.
func extractJSONObject(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return strings.TrimSpace(cleaned)
}
