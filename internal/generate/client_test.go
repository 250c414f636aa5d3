package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"media-tagger/internal/domain"
	"media-tagger/internal/encode"
)

// fakeEncoder returns a canned attachment without touching the filesystem.
type fakeEncoder struct {
	attachment *encode.Attachment
	err        error
}

// Encode delegates to the injected values.
func (f *fakeEncoder) Encode(src domain.SourceFile) (*encode.Attachment, error) {
	return f.attachment, f.err
}

// testItem is a raster image item used across client tests.
var testItem = domain.FileItem{
	ID: "item-1",
	Source: domain.SourceFile{
		Path:     "/photos/cat.png",
		Name:     "cat.png",
		MimeType: "image/png",
	},
	Status: domain.ItemStatusPending,
}

// testConfig is a baseline generation config used across client tests.
var testConfig = domain.GenerationConfig{
	Mode:                  domain.ModeMetadata,
	Platform:              domain.PlatformAdobe,
	Model:                 "gemini-test",
	TitleLength:           40,
	KeywordsCount:         5,
	DescriptionLength:     60,
	AutoRemoveDupKeywords: true,
}

// candidateBody builds a minimal backend envelope around the given text.
func candidateBody(text string) string {
	envelope := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(envelope)
	return string(data)
}

// TestRequestMetadataSuccess checks the full happy path with post-processing.
func TestRequestMetadataSuccess(t *testing.T) {
	var gotPath, gotCredential string
	var gotRequest wireRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCredential = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(candidateBody(`{"title":"Cat  CAT sitting 99!","keywords":["cat","animal","pet"],"description":"A cat sitting on a windowsill looking outside at the garden in the morning sun."}`)))
	}))
	defer server.Close()

	client := NewClientForTests(server.URL, server.Client(), &fakeEncoder{
		attachment: &encode.Attachment{Data: []byte{1, 2, 3}, MimeType: "image/png"},
	})

	result, err := client.RequestMetadata(context.Background(), "key-a", testItem, testConfig)
	if err != nil {
		t.Fatalf("RequestMetadata() error = %v", err)
	}

	if gotPath != "/models/gemini-test:generateContent" {
		t.Fatalf("request path = %q", gotPath)
	}
	if gotCredential != "key-a" {
		t.Fatalf("credential header = %q", gotCredential)
	}
	parts := gotRequest.Contents[0].Parts
	if len(parts) != 2 {
		t.Fatalf("parts = %d, want instruction + inline image", len(parts))
	}
	if !strings.Contains(parts[0].Text, "at most 40 characters") {
		t.Fatalf("instruction misses title constraint: %q", parts[0].Text)
	}
	if !strings.Contains(parts[0].Text, "exactly 5") {
		t.Fatalf("instruction misses keyword constraint: %q", parts[0].Text)
	}
	if parts[1].InlineData == nil || parts[1].InlineData.MimeType != "image/png" {
		t.Fatalf("second part must be inline image data: %+v", parts[1])
	}

	if result.Title != "Cat sitting" {
		t.Fatalf("title = %q, want %q", result.Title, "Cat sitting")
	}
	tokens := strings.Split(result.Keywords, ", ")
	if len(tokens) != 5 {
		t.Fatalf("keyword count = %d, want 5 (%q)", len(tokens), result.Keywords)
	}
	if tokens[0] != "cat" || tokens[1] != "animal" || tokens[2] != "pet" {
		t.Fatalf("generated keywords must lead: %q", result.Keywords)
	}
	if len([]rune(result.Description)) != 60 {
		t.Fatalf("description length = %d, want 60", len([]rune(result.Description)))
	}
}

// TestRequestMetadataSendsVectorSourceText checks the supplementary SVG part.
func TestRequestMetadataSendsVectorSourceText(t *testing.T) {
	var gotRequest wireRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotRequest)
		w.Write([]byte(candidateBody(`{"title":"Shape","keywords":[],"description":""}`)))
	}))
	defer server.Close()

	client := NewClientForTests(server.URL, server.Client(), &fakeEncoder{
		attachment: &encode.Attachment{
			Data:       []byte{9},
			MimeType:   "image/png",
			SourceText: "<svg/>",
		},
	})

	if _, err := client.RequestMetadata(context.Background(), "k", testItem, testConfig); err != nil {
		t.Fatalf("RequestMetadata() error = %v", err)
	}
	parts := gotRequest.Contents[0].Parts
	if len(parts) != 3 {
		t.Fatalf("parts = %d, want instruction + image + source text", len(parts))
	}
	if !strings.Contains(parts[2].Text, "<svg/>") {
		t.Fatalf("third part misses svg source: %q", parts[2].Text)
	}
}

// TestRequestMetadataToleratesFencedCommentary checks defensive extraction.
func TestRequestMetadataToleratesFencedCommentary(t *testing.T) {
	text := "Sure! Here is the metadata:\n```json\n{\"title\":\"Sunset\",\"keywords\":\"sun, sky\",\"description\":\"d\"}\n```\nLet me know if you need more."
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody(text)))
	}))
	defer server.Close()

	client := NewClientForTests(server.URL, server.Client(), &fakeEncoder{})
	result, err := client.RequestMetadata(context.Background(), "k", testItem, testConfig)
	if err != nil {
		t.Fatalf("RequestMetadata() error = %v", err)
	}
	if result.Title != "Sunset" {
		t.Fatalf("title = %q, want Sunset", result.Title)
	}
	if !strings.HasPrefix(result.Keywords, "sun, sky") {
		t.Fatalf("string keywords must be coerced: %q", result.Keywords)
	}
}

// TestRequestMetadataHTTPError checks status and body are carried.
func TestRequestMetadataHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("quota exceeded"))
	}))
	defer server.Close()

	client := NewClientForTests(server.URL, server.Client(), &fakeEncoder{})
	_, err := client.RequestMetadata(context.Background(), "k", testItem, testConfig)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error type = %T, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", httpErr.StatusCode)
	}
	if httpErr.Body != "quota exceeded" {
		t.Fatalf("body = %q", httpErr.Body)
	}
}

// TestRequestMetadataEmptyResponse checks the no-text-content error.
func TestRequestMetadataEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClientForTests(server.URL, server.Client(), &fakeEncoder{})
	_, err := client.RequestMetadata(context.Background(), "k", testItem, testConfig)
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("error = %v, want ErrEmptyResponse", err)
	}
}

// TestRequestMetadataParseError checks malformed model JSON handling.
func TestRequestMetadataParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody("this is not json at all")))
	}))
	defer server.Close()

	client := NewClientForTests(server.URL, server.Client(), &fakeEncoder{})
	_, err := client.RequestMetadata(context.Background(), "k", testItem, testConfig)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
}

// TestRequestMetadataEncodingErrorPropagates checks encoder failures surface.
func TestRequestMetadataEncodingErrorPropagates(t *testing.T) {
	encErr := &encode.EncodingError{Name: "cat.png", Message: "cannot read image file"}
	client := NewClientForTests("http://unused", nil, &fakeEncoder{err: encErr})

	_, err := client.RequestMetadata(context.Background(), "k", testItem, testConfig)
	var gotErr *encode.EncodingError
	if !errors.As(err, &gotErr) {
		t.Fatalf("error type = %T, want *EncodingError", err)
	}
}

// TestExtractJSONObject covers fence stripping and brace isolation.
func TestExtractJSONObject(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                          "{\"a\":1}",
		"```json\n{\"a\":1}\n```":            "{\"a\":1}",
		"noise before {\"a\":1} noise after": "{\"a\":1}",
		"no braces here":                     "no braces here",
	}
	for input, want := range cases {
		if got := extractJSONObject(input); got != want {
			t.Fatalf("extractJSONObject(%q) = %q, want %q", input, got, want)
		}
	}
}
