package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"media-tagger/internal/batch"
	"media-tagger/internal/config"
	"media-tagger/internal/diagnostics"
	"media-tagger/internal/domain"
	"media-tagger/internal/export"
	"media-tagger/internal/generate"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

var mediaDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "Media files",
		Pattern:     "*.png;*.jpg;*.jpeg;*.webp;*.gif;*.svg;*.eps;*.ai",
	},
	{
		DisplayName: "All files",
		Pattern:     "*",
	},
}

// App wires settings, the file collection, the batch runner, and UI runtime
// callbacks.
type App struct {
	Store       config.Store
	Files       *batch.Collection
	Runner      *batch.Runner
	Diagnostics domain.DiagnosticReport
	assets      fs.FS
	checker     *diagnostics.Checker
	events      *batch.EventBus

	mu         sync.Mutex
	settings   domain.Settings
	runtimeCtx context.Context
}

// New builds the application with persisted settings and startup checks.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user home: %w", err)
	}

	store := config.NewJSONStore(filepath.Join(homeDir, ".media-tagger", "settings.json"))
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	checker := diagnostics.NewChecker()
	app := &App{
		Store:       store,
		Files:       batch.NewCollection(nil),
		Diagnostics: checker.Run(settings),
		assets:      assets,
		checker:     checker,
		events:      batch.NewEventBus(1000),
		settings:    settings,
	}
	rotator := generate.NewRotator(app.publishAttempt)
	app.Runner = batch.NewRunner(app.Files, rotator, app.publishEvent)

	return app, nil
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "Media Tagger",
		Width:       1180,
		Height:      780,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
		},
		Bind: []interface{}{a},
	})
}

// Startup stores Wails runtime context for push events.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// GetDiagnostics returns the latest cached preflight report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Diagnostics
}

// RefreshDiagnostics reloads settings and reruns preflight checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}

	a.mu.Lock()
	a.settings = settings
	a.Diagnostics = a.checker.Run(settings)
	report := a.Diagnostics
	a.mu.Unlock()

	return report, nil
}

// GetSettings loads and returns the latest persisted settings.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	a.mu.Lock()
	a.settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings normalizes and persists settings, then refreshes the preflight
// report. An active run keeps the credential list it was started with; the
// new generation config applies from the next item on.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	normalized := config.Normalize(settings)
	if err := a.Store.Save(normalized); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.mu.Lock()
	a.settings = normalized
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(normalized)
	}
	a.mu.Unlock()

	return normalized, nil
}

// PickMediaFiles opens a native multi-select dialog and imports the chosen
// files into the working set.
func (a *App) PickMediaFiles() ([]domain.FileItem, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return nil, err
	}

	paths, err := wailsruntime.OpenMultipleFilesDialog(ctx, wailsruntime.OpenDialogOptions{
		Title:   "Select media files",
		Filters: mediaDialogFilter,
	})
	if err != nil {
		return nil, err
	}

	return a.AddFiles(paths)
}

// AddFiles imports the given paths (dialog selection or drag-and-drop) as
// pending items. Unreadable paths are skipped and reported to the activity
// log instead of aborting the import.
func (a *App) AddFiles(paths []string) ([]domain.FileItem, error) {
	added := make([]domain.FileItem, 0, len(paths))
	for _, path := range paths {
		trimmed := strings.TrimSpace(path)
		if trimmed == "" {
			continue
		}

		info, err := os.Stat(trimmed)
		if err != nil || info.IsDir() {
			a.publishEvent(batch.Event{
				Type:    batch.EventTypeError,
				Message: fmt.Sprintf("Cannot import %s", filepath.Base(trimmed)),
			})
			continue
		}

		name := filepath.Base(trimmed)
		item := a.Files.Add(domain.SourceFile{
			Path:     trimmed,
			Name:     name,
			MimeType: detectMimeType(name),
		})
		added = append(added, item)
	}
	return added, nil
}

// ListFiles returns a snapshot of the working set in insertion order.
func (a *App) ListFiles() []domain.FileItem {
	return a.Files.Items()
}

// RemoveFile deletes one item from the working set.
func (a *App) RemoveFile(id string) error {
	return a.Files.Remove(id)
}

// ClearFiles destroys the whole working set atomically.
func (a *App) ClearFiles() {
	a.Files.Clear()
}

// UpdateItemFields applies manual edits to an item's text fields. Edits never
// change the item's status.
func (a *App) UpdateItemFields(id, title, keywords, description string) error {
	return a.Files.UpdateFields(id, title, keywords, description)
}

// StartBatch launches a run over all pending and failed items. The
// missing-credential precondition surfaces here, synchronously.
func (a *App) StartBatch() error {
	settings, err := a.Store.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	a.mu.Lock()
	a.settings = settings
	a.mu.Unlock()

	credentials := generate.CleanCredentials(settings.Credentials)
	if len(credentials) == 0 {
		return generate.ErrNoCredentials
	}
	if a.Runner.Active() {
		return batch.ErrRunActive
	}

	go func() {
		if _, err := a.Runner.Run(context.Background(), credentials, a.currentConfig); err != nil {
			a.publishEvent(batch.Event{
				Type:    batch.EventTypeError,
				Message: fmt.Sprintf("Batch run aborted: %v", err),
			})
		}
	}()
	return nil
}

// StopBatch requests cooperative cancellation of the active run. The item in
// flight still finishes; untouched items stay pending.
func (a *App) StopBatch() error {
	return a.Runner.Stop()
}

// RegenerateItem re-runs generation for a single pending or failed item.
func (a *App) RegenerateItem(id string) error {
	settings, err := a.Store.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	a.mu.Lock()
	a.settings = settings
	a.mu.Unlock()

	credentials := generate.CleanCredentials(settings.Credentials)
	if len(credentials) == 0 {
		return generate.ErrNoCredentials
	}
	if a.Runner.Active() {
		return batch.ErrRunActive
	}
	if _, ok := a.Files.Get(id); !ok {
		return batch.ErrItemNotFound
	}

	go func() {
		if err := a.Runner.RunOne(context.Background(), credentials, id, a.currentConfig); err != nil {
			a.publishEvent(batch.Event{
				Type:    batch.EventTypeError,
				ItemID:  id,
				Message: fmt.Sprintf("Regeneration aborted: %v", err),
			})
		}
	}()
	return nil
}

// ExportArchive bundles the per-format CSV files into a ZIP at a location
// chosen by the user. Returns the written path, or empty when cancelled.
func (a *App) ExportArchive() (string, error) {
	items := a.Files.Items()
	if len(items) == 0 {
		return "", fmt.Errorf("no files to export")
	}

	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	path, err := wailsruntime.SaveFileDialog(ctx, wailsruntime.SaveDialogOptions{
		Title:           "Export metadata archive",
		DefaultFilename: "metadata_bundle.zip",
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(path) == "" {
		return "", nil
	}

	a.mu.Lock()
	platform := a.settings.Generation.Platform
	a.mu.Unlock()

	if err := export.WriteArchive(path, items, platform); err != nil {
		return "", fmt.Errorf("write archive: %w", err)
	}

	a.publishEvent(batch.Event{
		Type:    batch.EventTypeRunFinished,
		Message: fmt.Sprintf("Exported %d item(s) to %s", len(items), filepath.Base(path)),
	})
	return path, nil
}

// RevealInFolder opens the given path in the platform file manager.
func (a *App) RevealInFolder(path string) error {
	target := strings.TrimSpace(path)
	if target == "" {
		return fmt.Errorf("path is empty")
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	openPath := target
	if !info.IsDir() {
		openPath = filepath.Dir(target)
	}
	return openInFileManager(openPath)
}

// ActivityEvents returns all activity entries with sequence greater than sinceSeq.
func (a *App) ActivityEvents(sinceSeq int64) []batch.Event {
	return a.events.Since(sinceSeq)
}

// ClearActivity discards the buffered activity history.
func (a *App) ClearActivity() {
	a.events.Reset()
}

// currentConfig snapshots the generation config applied to the next item.
func (a *App) currentConfig() domain.GenerationConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings.Generation
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event batch.Event) {
	published := a.events.Publish(event)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, "activity:event", published)
	}
}

// publishAttempt logs one credential attempt by ordinal position. The
// credential value itself never reaches the log.
func (a *App) publishAttempt(attempt generate.Attempt) {
	message := fmt.Sprintf("Credential %d/%d succeeded", attempt.Ordinal, attempt.Total)
	if attempt.Err != nil {
		message = fmt.Sprintf("Credential %d/%d failed: %v", attempt.Ordinal, attempt.Total, attempt.Err)
	}

	a.publishEvent(batch.Event{
		Type:    batch.EventTypeAttempt,
		Ordinal: attempt.Ordinal,
		Total:   attempt.Total,
		Message: message,
	})
}

// runtimeContext returns current Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

// detectMimeType maps a filename to the MIME type used by the encoder.
func detectMimeType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".eps", ".ai":
		return "application/postscript"
	default:
		if detected := mime.TypeByExtension(filepath.Ext(name)); detected != "" {
			return detected
		}
		return "application/octet-stream"
	}
}

// openInFileManager launches the platform file explorer for the provided path.
func openInFileManager(path string) error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", filepath.Clean(path))
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch file manager: %w", err)
	}
	return nil
}
