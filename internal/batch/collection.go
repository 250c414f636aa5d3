package batch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"media-tagger/internal/domain"
)

// ErrItemNotFound is returned for operations on unknown item IDs.
var ErrItemNotFound = errors.New("file item not found")

// ErrItemGenerating is returned when a second generation is requested for
// an item that already has one in flight.
var ErrItemGenerating = errors.New("item generation already in flight")

// ReleaseFunc frees per-item transient resources (preview handles) when an
// item leaves the collection.
type ReleaseFunc func(item domain.FileItem)

// Collection is the insertion-ordered working set of file items. All status
// transitions go through it so the per-item state machine is enforced in
// one place.
type Collection struct {
	mu      sync.RWMutex
	items   []domain.FileItem
	release ReleaseFunc
}

// NewCollection creates an empty collection. release may be nil.
func NewCollection(release ReleaseFunc) *Collection {
	return &Collection{release: release}
}

// Add appends a new pending item for the source file and returns it.
func (c *Collection) Add(source domain.SourceFile) domain.FileItem {
	item := domain.FileItem{
		ID:     uuid.NewString(),
		Source: source,
		Status: domain.ItemStatusPending,
	}

	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()

	return item
}

// Items returns a snapshot of all items in insertion order.
func (c *Collection) Items() []domain.FileItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.FileItem(nil), c.items...)
}

// Get returns a copy of the item with the given ID.
func (c *Collection) Get(id string) (domain.FileItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return domain.FileItem{}, false
}

// Len reports the number of items.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// IDsWithStatus returns, in insertion order, the IDs of items whose status
// matches any of the given statuses. Used to snapshot a batch work queue.
func (c *Collection) IDsWithStatus(statuses ...domain.ItemStatus) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.items))
	for _, item := range c.items {
		for _, status := range statuses {
			if item.Status == status {
				ids = append(ids, item.ID)
				break
			}
		}
	}
	return ids
}

// UpdateFields edits the user-editable text fields without touching status.
func (c *Collection) UpdateFields(id, title, keywords, description string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	c.items[i].Title = title
	c.items[i].Keywords = keywords
	c.items[i].Description = description
	return nil
}

// BeginGeneration transitions an item to generating, clearing prior errors.
// Only pending and failed items may enter generation.
func (c *Collection) BeginGeneration(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	switch c.items[i].Status {
	case domain.ItemStatusGenerating:
		return ErrItemGenerating
	case domain.ItemStatusPending, domain.ItemStatusFailed:
	default:
		return fmt.Errorf("invalid transition: %s -> %s", c.items[i].Status, domain.ItemStatusGenerating)
	}

	c.items[i].Status = domain.ItemStatusGenerating
	c.items[i].Error = ""
	return nil
}

// CompleteGeneration commits a successful result and marks the item success.
func (c *Collection) CompleteGeneration(id, title, keywords, description string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	if c.items[i].Status != domain.ItemStatusGenerating {
		return fmt.Errorf("invalid transition: %s -> %s", c.items[i].Status, domain.ItemStatusSuccess)
	}

	c.items[i].Title = title
	c.items[i].Keywords = keywords
	c.items[i].Description = description
	c.items[i].Status = domain.ItemStatusSuccess
	c.items[i].Error = ""
	return nil
}

// FailGeneration marks the item failed with a diagnostic message.
func (c *Collection) FailGeneration(id, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	if c.items[i].Status != domain.ItemStatusGenerating {
		return fmt.Errorf("invalid transition: %s -> %s", c.items[i].Status, domain.ItemStatusFailed)
	}

	c.items[i].Status = domain.ItemStatusFailed
	c.items[i].Error = message
	return nil
}

// Remove deletes one item and releases its transient resources.
func (c *Collection) Remove(id string) error {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return ErrItemNotFound
	}
	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	release := c.release
	c.mu.Unlock()

	if release != nil {
		release(removed)
	}
	return nil
}

// Clear atomically destroys all items and releases their resources.
func (c *Collection) Clear() {
	c.mu.Lock()
	removed := c.items
	c.items = nil
	release := c.release
	c.mu.Unlock()

	if release != nil {
		for _, item := range removed {
			release(item)
		}
	}
}

// indexOf locates an item by ID; callers must hold the lock.
func (c *Collection) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}
