package services

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"go.uber.org/zap"

	"hostdeck/internal/core/domain"
	"hostdeck/internal/core/ports"
)

// PreferencesManager stores console settings in the credential store.
// Loads merge defaults under whatever is stored, so adding a field never
// breaks an old settings blob.
type PreferencesManager struct {
	store  ports.KeyValueStore
	logger *zap.Logger
}

func NewPreferencesManager(store ports.KeyValueStore, logger *zap.Logger) *PreferencesManager {
	return &PreferencesManager{store: store, logger: logger}
}

// Get returns the stored preferences merged over defaults. A missing or
// corrupt blob yields pure defaults.
func (m *PreferencesManager) Get() domain.Preferences {
	prefs := domain.DefaultPreferences()
	raw, ok := m.store.Get(ports.KeyUserPreferences)
	if !ok || raw == "" {
		return prefs
	}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		m.logger.Warn("discarding unreadable preferences", zap.Error(err))
		return domain.DefaultPreferences()
	}
	return prefs
}

// Save persists the full preference set.
func (m *PreferencesManager) Save(prefs domain.Preferences) {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return
	}
	m.store.Set(ports.KeyUserPreferences, string(raw))
}

// Reset drops the stored blob; the next Get sees defaults.
func (m *PreferencesManager) Reset() {
	m.store.Delete(ports.KeyUserPreferences)
}

// Watch re-reads preferences on the given interval and invokes onChange
// when they differ from the last observed value. A few seconds of staleness
// is acceptable; this is a poll, not a file watcher. Stops when ctx is done.
func (m *PreferencesManager) Watch(ctx context.Context, interval time.Duration, onChange func(domain.Preferences)) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	last := m.Get()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current := m.Get()
				if !reflect.DeepEqual(current, last) {
					last = current
					onChange(current)
				}
			}
		}
	}()
}
