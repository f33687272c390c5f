package domain

import "testing"

func TestSortWorkoutsDoesNotReorderInput(t *testing.T) {
	log := []Workout{
		{ID: "c", Date: "2024-01-12", CreatedAt: "2024-01-12T08:00:00.000000"},
		{ID: "a", Date: "2024-01-10", CreatedAt: "2024-01-10T09:00:00.000000"},
		{ID: "b", Date: "2024-01-10", CreatedAt: "2024-01-10T08:00:00.000000"},
	}

	asc := SortWorkouts(log, Ascending)
	if got := ids(asc); got != "bac" {
		t.Fatalf("expected ascending bac got %s", got)
	}
	desc := SortWorkouts(log, Descending)
	if got := ids(desc); got != "cab" {
		t.Fatalf("expected descending cab got %s", got)
	}
	if got := ids(log); got != "cab" {
		t.Fatalf("input reordered to %s", got)
	}
	if got := ids(SortWorkouts(log, InsertionOrder)); got != "cab" {
		t.Fatalf("expected insertion order cab got %s", got)
	}
}

func TestCompareWorkoutsMixedPrecision(t *testing.T) {
	a := Workout{Date: "2024-01-10", CreatedAt: "2024-01-10T08:00:00"}
	b := Workout{Date: "2024-01-10", CreatedAt: "2024-01-10T08:00:00.000001"}
	if CompareWorkouts(a, b) >= 0 {
		t.Fatalf("expected a before b")
	}
}

func TestParseOrder(t *testing.T) {
	for name, want := range map[string]Order{"": InsertionOrder, "asc": Ascending, "DESC": Descending, "insertion": InsertionOrder} {
		got, err := ParseOrder(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if got != want {
			t.Fatalf("parse %q: expected %d got %d", name, want, got)
		}
	}
	if _, err := ParseOrder("sideways"); err == nil {
		t.Fatal("expected error for unknown order")
	}
}

func ids(ws []Workout) string {
	out := ""
	for _, w := range ws {
		out += w.ID
	}
	return out
}
