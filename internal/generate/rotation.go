package generate

import (
	"context"
	"strings"

	"media-tagger/internal/domain"
)

// Attempt describes one per-credential call for the activity log. The
// credential is identified by its ordinal position only, never its value.
type Attempt struct {
	Ordinal int
	Total   int
	Err     error
}

// metadataRequester abstracts the AI client for testability.
type metadataRequester interface {
	RequestMetadata(ctx context.Context, credential string, item domain.FileItem, cfg domain.GenerationConfig) (Result, error)
}

// Rotator tries configured credentials in order until one succeeds.
type Rotator struct {
	client    metadataRequester
	onAttempt func(Attempt)
}

// NewRotator constructs a rotator over the production client.
func NewRotator(onAttempt func(Attempt)) *Rotator {
	return &Rotator{client: NewClient(), onAttempt: onAttempt}
}

// NewRotatorForTests constructs a rotator with an injectable client.
func NewRotatorForTests(client metadataRequester, onAttempt func(Attempt)) *Rotator {
	return &Rotator{client: client, onAttempt: onAttempt}
}

// CleanCredentials trims entries, drops blanks, and caps the list length.
func CleanCredentials(credentials []string) []string {
	cleaned := make([]string, 0, len(credentials))
	for _, credential := range credentials {
		trimmed := strings.TrimSpace(credential)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
		if len(cleaned) == domain.MaxCredentials {
			break
		}
	}
	return cleaned
}

// Generate runs one item through the credential rotation: first success
// wins and remaining credentials are left untried; when every credential
// fails the last underlying error is wrapped in an ExhaustedError.
func (r *Rotator) Generate(ctx context.Context, credentials []string, item domain.FileItem, cfg domain.GenerationConfig) (Result, error) {
	cleaned := CleanCredentials(credentials)
	if len(cleaned) == 0 {
		return Result{}, ErrNoCredentials
	}

	var lastErr error
	for i, credential := range cleaned {
		result, err := r.client.RequestMetadata(ctx, credential, item, cfg)
		r.emitAttempt(Attempt{Ordinal: i + 1, Total: len(cleaned), Err: err})
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return Result{}, &ExhaustedError{Attempts: len(cleaned), LastErr: lastErr}
}

// emitAttempt forwards attempt reports when a callback is configured.
func (r *Rotator) emitAttempt(attempt Attempt) {
	if r.onAttempt != nil {
		r.onAttempt(attempt)
	}
}
