package batch

import (
	"context"
	"errors"
	"sync"

	"media-tagger/internal/domain"
	"media-tagger/internal/generate"
)

// ErrRunActive is returned when starting a batch while one is running.
var ErrRunActive = errors.New("batch run already active")

// ErrNoActiveRun is returned when stop is requested with no run in flight.
var ErrNoActiveRun = errors.New("no active batch run")

// metadataSource abstracts the rotation pipeline for testability.
type metadataSource interface {
	Generate(ctx context.Context, credentials []string, item domain.FileItem, cfg domain.GenerationConfig) (generate.Result, error)
}

// ConfigProvider returns the generation config current at the moment an
// item's generation starts; it may change between items of one run.
type ConfigProvider func() domain.GenerationConfig

// Summary reports the outcome of one batch run.
type Summary struct {
	Processed int  `json:"processed"`
	Succeeded int  `json:"succeeded"`
	Failed    int  `json:"failed"`
	Stopped   bool `json:"stopped"`
}

// Runner drives per-item state transitions across the collection, strictly
// sequentially, with cooperative stop polled between items.
type Runner struct {
	collection *Collection
	source     metadataSource
	onEvent    func(Event)

	mu      sync.Mutex
	active  bool
	stopped bool
}

// NewRunner constructs a runner over a collection and a metadata source.
// onEvent may be nil.
func NewRunner(collection *Collection, source metadataSource, onEvent func(Event)) *Runner {
	return &Runner{collection: collection, source: source, onEvent: onEvent}
}

// Active reports whether a batch run is currently in flight.
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Stop requests cooperative cancellation of the active run. The item being
// generated always completes; no new item starts afterwards.
func (r *Runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return ErrNoActiveRun
	}
	r.stopped = true
	return nil
}

// Run executes one batch over the items that are pending or failed at call
// time. Items added after the snapshot are not part of this run. Per-item
// failures never abort the loop; the only hard error is the missing
// credential precondition or a second concurrent run.
func (r *Runner) Run(ctx context.Context, credentials []string, config ConfigProvider) (Summary, error) {
	if len(generate.CleanCredentials(credentials)) == 0 {
		return Summary{}, generate.ErrNoCredentials
	}

	r.mu.Lock()
	if r.active {
		r.mu.Unlock()
		return Summary{}, ErrRunActive
	}
	r.active = true
	r.stopped = false
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.active = false
		r.stopped = false
		r.mu.Unlock()
	}()

	queue := r.collection.IDsWithStatus(domain.ItemStatusPending, domain.ItemStatusFailed)
	r.emit(Event{Type: EventTypeRunStarted, Message: "Batch run started", Queued: len(queue)})

	var summary Summary
	for _, id := range queue {
		if r.stopRequested() {
			summary.Stopped = true
			r.emit(Event{Type: EventTypeRunStopped, Message: "Batch run stopped by user"})
			break
		}

		item, ok := r.collection.Get(id)
		if !ok {
			// Removed while the run was in progress.
			continue
		}
		if err := r.collection.BeginGeneration(id); err != nil {
			continue
		}
		r.emit(Event{
			Type:     EventTypeItemStarted,
			ItemID:   id,
			FileName: item.Source.Name,
			Message:  "Generating metadata",
		})

		result, err := r.source.Generate(ctx, credentials, item, config())
		summary.Processed++
		if err != nil {
			summary.Failed++
			message := itemErrorMessage(err)
			_ = r.collection.FailGeneration(id, message)
			r.emit(Event{
				Type:     EventTypeItemFailed,
				ItemID:   id,
				FileName: item.Source.Name,
				Message:  message,
			})
			continue
		}

		summary.Succeeded++
		_ = r.collection.CompleteGeneration(id, result.Title, result.Keywords, result.Description)
		r.emit(Event{
			Type:     EventTypeItemSucceeded,
			ItemID:   id,
			FileName: item.Source.Name,
			Message:  "Metadata generated",
		})
	}

	if !summary.Stopped {
		r.emit(Event{
			Type:      EventTypeRunFinished,
			Message:   "Batch run finished",
			Succeeded: summary.Succeeded,
			Failed:    summary.Failed,
		})
	}
	return summary, nil
}

// RunOne generates metadata for a single item outside a batch run.
func (r *Runner) RunOne(ctx context.Context, credentials []string, id string, config ConfigProvider) error {
	if len(generate.CleanCredentials(credentials)) == 0 {
		return generate.ErrNoCredentials
	}
	if r.Active() {
		return ErrRunActive
	}

	item, ok := r.collection.Get(id)
	if !ok {
		return ErrItemNotFound
	}
	if err := r.collection.BeginGeneration(id); err != nil {
		return err
	}
	r.emit(Event{
		Type:     EventTypeItemStarted,
		ItemID:   id,
		FileName: item.Source.Name,
		Message:  "Regenerating metadata",
	})

	result, err := r.source.Generate(ctx, credentials, item, config())
	if err != nil {
		message := itemErrorMessage(err)
		_ = r.collection.FailGeneration(id, message)
		r.emit(Event{
			Type:     EventTypeItemFailed,
			ItemID:   id,
			FileName: item.Source.Name,
			Message:  message,
		})
		return nil
	}

	_ = r.collection.CompleteGeneration(id, result.Title, result.Keywords, result.Description)
	r.emit(Event{
		Type:     EventTypeItemSucceeded,
		ItemID:   id,
		FileName: item.Source.Name,
		Message:  "Metadata generated",
	})
	return nil
}

// stopRequested reads the cooperative cancellation flag.
func (r *Runner) stopRequested() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

// emit forwards run events when a callback is configured.
func (r *Runner) emit(event Event) {
	if r.onEvent != nil {
		r.onEvent(event)
	}
}

// itemErrorMessage stores the most useful diagnostic on the item row: when
// every credential failed, the last underlying error rather than only the
// generic exhaustion marker.
func itemErrorMessage(err error) string {
	var exhausted *generate.ExhaustedError
	if errors.As(err, &exhausted) && exhausted.LastErr != nil {
		return exhausted.LastErr.Error()
	}
	return err.Error()
}
