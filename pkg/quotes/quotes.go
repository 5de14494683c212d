// Package quotes persists the user's quote library through the storage
// facade and keeps track of the currently featured quote.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/daily-spark/quote-store/pkg/storage"
)

const (
	quoteKeyPrefix = "quote/"
	currentKey     = "current"
)

// Quote is a single motivational quote.
type Quote struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
	AddedAt time.Time `json:"added_at,omitempty"`
}

// Pack is an importable set of quotes, typically loaded from a YAML file.
type Pack struct {
	Name   string  `json:"name,omitempty"`
	Quotes []Quote `json:"quotes"`
}

// Library stores quotes through a storage service. All persistence goes
// through the narrow facade contract; the library owns no state of its own.
type Library struct {
	store *storage.Service
	log   logrus.FieldLogger
}

// NewLibrary creates a library over the given storage service.
func NewLibrary(store *storage.Service) *Library {
	return &Library{
		store: store,
		log:   logrus.StandardLogger(),
	}
}

// Add stores a quote, assigning an ID and timestamp when missing.
func (l *Library) Add(ctx context.Context, quote Quote) (Quote, error) {
	if strings.TrimSpace(quote.Text) == "" {
		return Quote{}, fmt.Errorf("empty quote text")
	}
	if quote.ID == "" {
		quote.ID = uuid.NewString()
	}
	if quote.AddedAt.IsZero() {
		quote.AddedAt = time.Now().UTC()
	}

	if err := l.store.Set(ctx, quoteKeyPrefix+quote.ID, quote); err != nil {
		return Quote{}, fmt.Errorf("failed to store quote '%s': %w", quote.ID, err)
	}
	return quote, nil
}

// Get returns a quote by ID, or nil when absent.
func (l *Library) Get(ctx context.Context, id string) (*Quote, error) {
	quote, found, err := storage.GetAs[Quote](ctx, l.store, quoteKeyPrefix+id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &quote, nil
}

// List returns every stored quote, in no particular order.
func (l *Library) List(ctx context.Context) ([]Quote, error) {
	var quotes []Quote
	for _, key := range l.store.Keys(ctx) {
		if !strings.HasPrefix(key, quoteKeyPrefix) {
			continue
		}
		quote, found, err := storage.GetAs[Quote](ctx, l.store, key)
		if err != nil {
			return nil, err
		}
		if !found {
			// Deleted between enumeration and read; skip.
			continue
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

// Remove deletes a quote. Removing the current quote leaves the current
// marker dangling; Current treats a dangling marker as no selection.
func (l *Library) Remove(ctx context.Context, id string) error {
	return l.store.Remove(ctx, quoteKeyPrefix+id)
}

// SetCurrent marks the quote with the given ID as the featured one.
func (l *Library) SetCurrent(ctx context.Context, id string) error {
	quote, err := l.Get(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return fmt.Errorf("quote '%s' not found", id)
	}
	return l.store.Set(ctx, currentKey, id)
}

// Current returns the featured quote, or nil when none is selected.
func (l *Library) Current(ctx context.Context) (*Quote, error) {
	id, err := l.store.GetString(ctx, currentKey)
	if err != nil || id == "" {
		return nil, err
	}
	return l.Get(ctx, id)
}

// CurrentSync is the best-effort, cache-only variant of Current for call
// sites that cannot block. It returns nil unless both the marker and the
// quote are already cached.
func (l *Library) CurrentSync() *Quote {
	id := l.store.GetStringSync(currentKey)
	if id == "" {
		return nil
	}
	value := l.store.GetSync(quoteKeyPrefix + id)
	if value == nil {
		return nil
	}

	// The cache holds either the Quote written by this process or the
	// decoded JSON of a read-through; normalize both.
	if quote, ok := value.(Quote); ok {
		return &quote
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil
	}
	var quote Quote
	if err := json.Unmarshal(raw, &quote); err != nil {
		return nil
	}
	return &quote
}

// ImportPack parses a YAML quote pack and stores its quotes. Returns the
// number of quotes imported.
func (l *Library) ImportPack(ctx context.Context, data []byte) (int, error) {
	jsonBytes, err := yaml.YAMLToJSON(data)
	if err != nil {
		return 0, fmt.Errorf("failed to convert pack YAML to JSON: %w", err)
	}

	var pack Pack
	if err := json.Unmarshal(jsonBytes, &pack); err != nil {
		return 0, fmt.Errorf("failed to unmarshal pack: %w", err)
	}
	if len(pack.Quotes) == 0 {
		return 0, fmt.Errorf("pack contains no quotes")
	}

	count := 0
	for _, quote := range pack.Quotes {
		if _, err := l.Add(ctx, quote); err != nil {
			l.log.WithError(err).Warnf("Skipped quote from pack '%s'", pack.Name)
			continue
		}
		count++
	}
	return count, nil
}
