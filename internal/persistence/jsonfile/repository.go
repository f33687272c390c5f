// Package jsonfile stores the account map as a single JSON document.
package jsonfile

import (
	"time"

	"example.com/fitlog/internal/domain"
	"example.com/fitlog/internal/observability"
	"example.com/fitlog/internal/persistence"
)

// Repository provides file-backed persistence for accounts and their workouts.
type Repository struct {
	path string
}

// NewRepository constructs a Repository writing to path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// Path returns the backing file.
func (r *Repository) Path() string {
	return r.path
}

// Load reads the whole account map. See persistence.ReadJSON for the errors it returns.
func (r *Repository) Load() (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account)
	if err := persistence.ReadJSON(r.path, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = make(map[string]domain.Account)
	}
	return accounts, nil
}

// Save rewrites the file with the full account map.
func (r *Repository) Save(accounts map[string]domain.Account) error {
	if err := persistence.WriteJSON(r.path, accounts); err != nil {
		observability.RecordPersistFailure("accounts")
		return err
	}
	observability.RecordPersisted("accounts", time.Now())
	return nil
}
