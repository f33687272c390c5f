package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is one registered user. Passwords are stored as entered.
type Account struct {
	Password string            `json:"password"`
	Profile  map[string]string `json:"profile"`
	Workouts []Workout         `json:"workouts"`
}

// Session is the result of a successful login.
type Session struct {
	Username  string
	StartedAt time.Time
}

// ProfileField describes a well-known profile entry.
type ProfileField struct {
	Key   string
	Label string
}

// ProfileFields are the entries shown on the profile form, in display order.
var ProfileFields = []ProfileField{
	{Key: ProfileKey("Name"), Label: "Name"},
	{Key: ProfileKey("Age"), Label: "Age"},
	{Key: ProfileKey("Weight (kg)"), Label: "Weight (kg)"},
	{Key: ProfileKey("Height (cm)"), Label: "Height (cm)"},
	{Key: ProfileKey("Daily Calorie Goal"), Label: "Daily Calorie Goal"},
}

// ProfileKey derives the stored key for a form label.
func ProfileKey(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}

func newAccount(password string) Account {
	return Account{
		Password: password,
		Profile:  map[string]string{},
		Workouts: []Workout{},
	}
}

func (a Account) clone() Account {
	out := Account{
		Password: a.Password,
		Profile:  make(map[string]string, len(a.Profile)),
		Workouts: make([]Workout, len(a.Workouts)),
	}
	for k, v := range a.Profile {
		out.Profile[k] = v
	}
	copy(out.Workouts, a.Workouts)
	return out
}

// normalize fills nil collections and assigns IDs to workouts written before
// IDs existed. It returns the number of workouts that received an ID.
func (a *Account) normalize(username string) int {
	if a.Profile == nil {
		a.Profile = map[string]string{}
	}
	if a.Workouts == nil {
		a.Workouts = []Workout{}
	}
	assigned := 0
	for i := range a.Workouts {
		if a.Workouts[i].ID == "" {
			a.Workouts[i].ID = legacyID(username, i, a.Workouts[i].CreatedAt)
			assigned++
		}
	}
	return assigned
}

// legacyID derives a stable ID for a workout stored without one, so every
// load of the same file yields the same IDs until they are persisted.
func legacyID(username string, index int, createdAt string) string {
	name := fmt.Sprintf("%s|%d|%s", username, index, createdAt)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

func (a Account) indexOf(identity string) int {
	for i, w := range a.Workouts {
		if w.Matches(identity) {
			return i
		}
	}
	return -1
}

// stamper hands out creation times that are strictly increasing within one account.
type stamper struct {
	last time.Time
}

func newStamper(workouts []Workout) *stamper {
	s := &stamper{}
	for _, w := range workouts {
		s.observe(w.CreatedAt)
	}
	return s
}

func (s *stamper) observe(createdAt string) {
	if t, err := ParseTimestamp(createdAt); err == nil && t.After(s.last) {
		s.last = t
	}
}

func (s *stamper) next(now time.Time) time.Time {
	t := now.Truncate(time.Microsecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond).In(now.Location())
	}
	s.last = t.UTC()
	return t
}
