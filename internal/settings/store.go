// Package settings persists the small set of per-user boolean preferences the
// editor remembers across sessions, such as dismissed banners.
package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Known preference keys.
const (
	BannerDismissed       = "banner_dismissed"
	ProfileNudgeDismissed = "profile_nudge_dismissed"
	TemplateTipDismissed  = "template_tip_dismissed"
	PaymentModalDismissed = "payment_modal_dismissed"
)

var knownKeys = map[string]bool{
	BannerDismissed:       true,
	ProfileNudgeDismissed: true,
	TemplateTipDismissed:  true,
	PaymentModalDismissed: true,
}

// Keys returns every known preference key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrNotLoaded is returned when the store is read or saved before Load.
var ErrNotLoaded = errors.New("settings not loaded")

// UnknownKeyError indicates a preference key outside the known set
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown preference key: %q", e.Key)
}

// Backend loads and saves the raw preference map.
type Backend interface {
	Load(ctx context.Context) (map[string]bool, error)
	Save(ctx context.Context, values map[string]bool) error
}

// Store caches preferences from a Backend with an explicit Load/Save lifecycle.
type Store struct {
	backend Backend

	mu     sync.RWMutex
	values map[string]bool
	loaded bool
	dirty  bool
}

// NewStore creates a store; call Load before use.
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load reads preferences from the backend, discarding unsaved changes.
// Unknown keys found in storage are ignored.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	values := make(map[string]bool, len(knownKeys))
	for k, v := range raw {
		if knownKeys[k] {
			values[k] = v
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = values
	s.loaded = true
	s.dirty = false
	return nil
}

// Bool returns the value for key. Unset keys are false.
func (s *Store) Bool(key string) (bool, error) {
	if !knownKeys[key] {
		return false, &UnknownKeyError{Key: key}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return false, ErrNotLoaded
	}
	return s.values[key], nil
}

// SetBool updates key in memory; Save persists it.
func (s *Store) SetBool(key string, value bool) error {
	if !knownKeys[key] {
		return &UnknownKeyError{Key: key}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.values[key] != value {
		s.values[key] = value
		s.dirty = true
	}
	return nil
}

// All returns a copy of every known key with its current value.
func (s *Store) All() (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	out := make(map[string]bool, len(knownKeys))
	for k := range knownKeys {
		out[k] = s.values[k]
	}
	return out, nil
}

// Save writes pending changes. It is a no-op when nothing changed.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	if !s.dirty {
		return nil
	}

	snapshot := make(map[string]bool, len(s.values))
	for k, v := range s.values {
		snapshot[k] = v
	}
	if err := s.backend.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.dirty = false
	return nil
}
