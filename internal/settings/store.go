package settings

import (
	"errors"
	"io/fs"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"example.com/fitlog/internal/observability"
	"example.com/fitlog/internal/persistence"
)

// Store loads and persists the settings file and holds the current value.
type Store struct {
	mu      sync.Mutex
	path    string
	current Settings
	logger  zerolog.Logger
}

// Option customises a Store.
type Option func(*Store)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger.With().Str("component", "settings").Logger()
	}
}

// NewStore constructs a Store and loads path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.Load()
	return s
}

// Load re-reads the file. A missing or corrupt file yields Defaults.
func (s *Store) Load() Settings {
	loaded := Defaults()
	err := persistence.ReadJSON(s.path, &loaded)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug().Str("path", s.path).Msg("no settings file yet, using defaults")
		observability.RecordLoadFallback("settings", "absent")
		loaded = Defaults()
	default:
		s.logger.Warn().Err(err).Str("path", s.path).Msg("settings file unreadable, using defaults")
		observability.RecordLoadFallback("settings", "corrupt")
		loaded = Defaults()
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return loaded
}

// Current returns the value last loaded or saved.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Save overwrites the file with v and makes it current.
func (s *Store) Save(v Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(v)
}

// UpdateAndPersist derives a new value from the current one, writes it and
// returns it. On a write failure the current value is unchanged.
func (s *Store) UpdateAndPersist(fn func(Settings) Settings) (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.current)
	if err := s.save(next); err != nil {
		return s.current, err
	}
	return next, nil
}

func (s *Store) save(v Settings) error {
	if err := persistence.WriteJSON(s.path, v); err != nil {
		observability.RecordPersistFailure("settings")
		s.logger.Error().Err(err).Str("path", s.path).Msg("persist settings")
		return err
	}
	observability.RecordPersisted("settings", time.Now())
	s.current = v
	return nil
}
