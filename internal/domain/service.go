// Package domain defines accounts, workouts and the rules that govern them.
package domain

import (
	"errors"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"example.com/fitlog/internal/observability"
)

// AccountRepository loads and saves the whole account map at once.
type AccountRepository interface {
	Load() (map[string]Account, error)
	Save(accounts map[string]Account) error
}

// Service owns the in-memory account map and persists it after every mutation.
type Service struct {
	mu       sync.Mutex
	repo     AccountRepository
	accounts map[string]Account
	logger   zerolog.Logger
	clock    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger.With().Str("component", "accounts").Logger()
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// NewService constructs a Service and loads the account map from repo.
// A missing or unreadable store yields an empty map; it is never an error.
func NewService(repo AccountRepository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: zerolog.Nop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.accounts = s.load()
	return s
}

func (s *Service) load() map[string]Account {
	accounts, err := s.repo.Load()
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Debug().Msg("no accounts file yet, starting empty")
		observability.RecordLoadFallback("accounts", "absent")
		return map[string]Account{}
	default:
		s.logger.Warn().Err(err).Msg("accounts file unreadable, starting empty")
		observability.RecordLoadFallback("accounts", "corrupt")
		return map[string]Account{}
	}
	if accounts == nil {
		return map[string]Account{}
	}
	migrated := 0
	for name, acct := range accounts {
		if n := acct.normalize(name); n > 0 {
			s.logger.Info().Str("username", name).Int("workouts", n).Msg("assigned ids to legacy workouts")
			migrated += n
		}
		accounts[name] = acct
	}
	if migrated > 0 {
		if err := s.repo.Save(accounts); err != nil {
			s.logger.Warn().Err(err).Msg("persist migrated workout ids")
		}
	}
	return accounts
}

// Register creates an account. All three fields are required and the
// confirmation must equal the password.
func (s *Service) Register(username, password, confirm string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	confirm = strings.TrimSpace(confirm)

	switch {
	case username == "":
		return invalid("username", "is required")
	case password == "":
		return invalid("password", "is required")
	case confirm == "":
		return invalid("confirm", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[username]; exists {
		return ErrDuplicateUsername
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	s.accounts[username] = newAccount(password)
	if err := s.repo.Save(s.accounts); err != nil {
		delete(s.accounts, username)
		return err
	}
	s.logger.Info().Str("username", username).Msg("account registered")
	return nil
}

// Login checks the credentials and returns a session bound to username.
func (s *Service) Login(username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" {
		return Session{}, invalid("username", "is required")
	}
	if password == "" {
		return Session{}, invalid("password", "is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[username]
	if !ok || acct.Password != password {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Username: username, StartedAt: s.clock()}, nil
}

// Usernames lists registered users in lexical order.
func (s *Service) Usernames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.accounts))
	for name := range s.accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile returns a copy of the user's profile map.
func (s *Service) Profile(username string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acct.clone().Profile, nil
}

// SaveProfile replaces the user's profile. Keys and values are trimmed and
// entries with a blank key are dropped.
func (s *Service) SaveProfile(username string, profile map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(username, func(acct *Account) error {
		next := make(map[string]string, len(profile))
		for k, v := range profile {
			if key := strings.TrimSpace(k); key != "" {
				next[key] = strings.TrimSpace(v)
			}
		}
		acct.Profile = next
		return nil
	})
}

// AppendWorkout validates input and appends it to the user's log.
func (s *Service) AppendWorkout(username string, input WorkoutInput) (Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created Workout
	err := s.update(username, func(acct *Account) error {
		stamp := newStamper(acct.Workouts).next(s.clock())
		w, err := NewWorkout(input, stamp)
		if err != nil {
			recordValidation(err)
			return err
		}
		acct.Workouts = append(acct.Workouts, w)
		created = w
		return nil
	})
	if err != nil {
		return Workout{}, err
	}
	observability.RecordWorkoutMutation("append", 1)
	return created, nil
}

// AppendWorkouts validates every input before appending any of them; a single
// invalid input rejects the batch with an *ImportError naming its 1-based position.
func (s *Service) AppendWorkouts(username string, inputs []WorkoutInput) ([]Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]Workout, 0, len(inputs))
	err := s.update(username, func(acct *Account) error {
		stamps := newStamper(acct.Workouts)
		taken := make(map[int64]bool, len(acct.Workouts)+len(inputs))
		for _, w := range acct.Workouts {
			if t, err := ParseTimestamp(w.CreatedAt); err == nil {
				taken[t.UnixMicro()] = true
			}
		}
		for _, in := range inputs {
			stamps.observe(strings.TrimSpace(in.CreatedAt))
		}
		now := s.clock()
		for i, in := range inputs {
			// A supplied created_at that is already in use gets a fresh stamp.
			if t, err := ParseTimestamp(strings.TrimSpace(in.CreatedAt)); err == nil && taken[t.UnixMicro()] {
				s.logger.Debug().Str("username", username).Str("created_at", in.CreatedAt).Msg("restamping duplicate created_at")
				in.CreatedAt = ""
			}
			stamp := now
			if strings.TrimSpace(in.CreatedAt) == "" {
				stamp = stamps.next(now)
			}
			w, err := NewWorkout(in, stamp)
			if err != nil {
				recordValidation(err)
				return &ImportError{Row: i + 1, Err: err}
			}
			if t, err := ParseTimestamp(w.CreatedAt); err == nil {
				taken[t.UnixMicro()] = true
			}
			created = append(created, w)
		}
		acct.Workouts = append(acct.Workouts, created...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.RecordWorkoutMutation("append", len(created))
	return created, nil
}

// FindWorkout returns the first workout matching identity (ID or created_at).
func (s *Service) FindWorkout(username, identity string) (Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[username]
	if !ok {
		return Workout{}, ErrAccountNotFound
	}
	i := acct.indexOf(identity)
	if i < 0 {
		return Workout{}, ErrWorkoutNotFound
	}
	return acct.Workouts[i], nil
}

// EditWorkout applies patch to the first workout matching identity.
func (s *Service) EditWorkout(username, identity string, patch WorkoutPatch) (Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var edited Workout
	err := s.update(username, func(acct *Account) error {
		i := acct.indexOf(identity)
		if i < 0 {
			return ErrWorkoutNotFound
		}
		w, err := acct.Workouts[i].Apply(patch, s.clock())
		if err != nil {
			recordValidation(err)
			return err
		}
		acct.Workouts[i] = w
		edited = w
		return nil
	})
	if err != nil {
		return Workout{}, err
	}
	observability.RecordWorkoutMutation("edit", 1)
	return edited, nil
}

// DeleteWorkout removes the first workout matching identity and returns it.
func (s *Service) DeleteWorkout(username, identity string) (Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed Workout
	err := s.update(username, func(acct *Account) error {
		i := acct.indexOf(identity)
		if i < 0 {
			return ErrWorkoutNotFound
		}
		removed = acct.Workouts[i]
		acct.Workouts = append(acct.Workouts[:i], acct.Workouts[i+1:]...)
		return nil
	})
	if err != nil {
		return Workout{}, err
	}
	observability.RecordWorkoutMutation("delete", 1)
	return removed, nil
}

// ClearWorkouts empties the user's log and returns how many entries were removed.
func (s *Service) ClearWorkouts(username string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	err := s.update(username, func(acct *Account) error {
		removed = len(acct.Workouts)
		acct.Workouts = []Workout{}
		return nil
	})
	if err != nil {
		return 0, err
	}
	observability.RecordWorkoutMutation("delete", removed)
	return removed, nil
}

// ListWorkouts returns a copy of the user's log in insertion order.
func (s *Service) ListWorkouts(username string) ([]Workout, error) {
	return s.SortedWorkouts(username, InsertionOrder)
}

// SortedWorkouts returns a copy of the user's log in the requested order.
func (s *Service) SortedWorkouts(username string, order Order) ([]Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acct, ok := s.accounts[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return SortWorkouts(acct.Workouts, order), nil
}

// update applies fn to a copy of the account and persists the result. When fn
// or the write fails, the stored account is left untouched. Callers hold s.mu.
func (s *Service) update(username string, fn func(*Account) error) error {
	current, ok := s.accounts[username]
	if !ok {
		return ErrAccountNotFound
	}
	next := current.clone()
	if err := fn(&next); err != nil {
		return err
	}
	s.accounts[username] = next
	if err := s.repo.Save(s.accounts); err != nil {
		s.accounts[username] = current
		s.logger.Error().Err(err).Str("username", username).Msg("persist accounts")
		return err
	}
	return nil
}

func recordValidation(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		observability.RecordValidationFailure(verr.Field)
	}
}
