// Package history keeps the bounded, de-duplicated list of recently searched
// cities.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/common"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/store"
)

const (
	// StorageKey is the persisted key holding the JSON history array.
	StorageKey = "weatherAppHistory"

	// MaxEntries bounds the history length.
	MaxEntries = 5
)

// Manager owns the in-memory history and keeps the store in sync with it.
// Entries are most-recent-first and unique under case-insensitive comparison.
type Manager struct {
	mu       sync.Mutex
	store    store.Store
	entries  []string
	onChange func([]string)
	logger   *slog.Logger
}

// NewManager creates a Manager with an empty history. Call Load to read the
// persisted list.
func NewManager(st store.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  st,
		logger: logger,
	}
}

// OnChange registers fn to be called with a copy of the entries after every
// mutation.
func (m *Manager) OnChange(fn func([]string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Load replaces the in-memory list with the persisted one. A missing key
// yields an empty list. A value that is not a JSON string array is discarded
// and the list reset to empty; that case is logged, not returned.
func (m *Manager) Load() error {
	raw, err := m.store.Get(StorageKey)
	if errors.Is(err, store.ErrNotFound) {
		m.set(nil, false)
		return nil
	}
	if err != nil {
		return fmt.Errorf("history: load: %w", err)
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		m.logger.Warn("failed to parse search history; resetting", "error", err)
		if delErr := m.store.Delete(StorageKey); delErr != nil {
			m.logger.Warn("failed to discard malformed search history", "error", delErr)
		}
		m.set(nil, false)
		return nil
	}

	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	m.set(entries, false)
	return nil
}

// Record moves city (title-cased) to the front of the history, trims the
// list to MaxEntries and persists it.
func (m *Manager) Record(city string) error {
	formatted := common.TitleCase(city)
	if formatted == "" {
		return nil
	}

	m.mu.Lock()
	next := make([]string, 0, MaxEntries)
	next = append(next, formatted)
	for _, e := range m.entries {
		if strings.EqualFold(e, formatted) {
			continue
		}
		if len(next) == MaxEntries {
			break
		}
		next = append(next, e)
	}
	m.entries = next
	snapshot, fn := m.snapshotLocked()
	m.mu.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}
	saveErr := m.store.Set(StorageKey, string(data))

	if fn != nil {
		fn(snapshot)
	}
	if saveErr != nil {
		return fmt.Errorf("history: save: %w", saveErr)
	}
	return nil
}

// Clear empties the history and removes the persisted key.
func (m *Manager) Clear() error {
	m.set(nil, true)
	if err := m.store.Delete(StorageKey); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	return nil
}

// Entries returns a copy of the current history.
func (m *Manager) Entries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out, _ := m.snapshotLocked()
	return out
}

func (m *Manager) set(entries []string, notify bool) {
	m.mu.Lock()
	m.entries = entries
	snapshot, fn := m.snapshotLocked()
	m.mu.Unlock()

	if notify && fn != nil {
		fn(snapshot)
	}
}

func (m *Manager) snapshotLocked() ([]string, func([]string)) {
	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out, m.onChange
}
