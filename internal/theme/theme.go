// Package theme persists the light/dark display preference.
package theme

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/store"
)

// StorageKey holds the literal "true" or "false".
const StorageKey = "weatherAppDarkMode"

// Preference is the dark-mode flag. The zero state is light.
type Preference struct {
	mu    sync.Mutex
	store store.Store
	dark  bool
}

func NewPreference(st store.Store) *Preference {
	return &Preference{store: st}
}

// Load reads the persisted flag. Only the literal "true" selects dark mode.
func (p *Preference) Load() error {
	v, err := p.store.Get(StorageKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("theme: load: %w", err)
	}

	p.mu.Lock()
	p.dark = v == "true"
	p.mu.Unlock()
	return nil
}

// Toggle flips the flag and writes it back immediately. The in-memory value
// changes even when the write fails.
func (p *Preference) Toggle() (bool, error) {
	p.mu.Lock()
	p.dark = !p.dark
	dark := p.dark
	p.mu.Unlock()

	if err := p.store.Set(StorageKey, strconv.FormatBool(dark)); err != nil {
		return dark, fmt.Errorf("theme: save: %w", err)
	}
	return dark, nil
}

func (p *Preference) Dark() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}
