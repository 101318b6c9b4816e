package sorter

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/javiermolinar/taskpilot/internal/task"
)

var base = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func mk(id string, deadlineHours int, weight float64, label task.Label, title string) *task.Task {
	return &task.Task{
		ID:       id,
		Label:    label,
		Title:    title,
		Start:    base,
		Deadline: base.Add(time.Duration(deadlineHours) * time.Hour),
		Weight:   weight,
		Status:   task.StatusPending,
	}
}

func ids(tasks []*task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func randomTasks(r *rand.Rand, n int) []*task.Task {
	labels := []task.Label{task.LabelPersonal, task.LabelAcademic}
	out := make([]*task.Task, n)
	for i := range out {
		start := base.Add(time.Duration(r.IntN(10)) * time.Hour)
		out[i] = &task.Task{
			ID:       fmt.Sprintf("t%03d", r.IntN(1000)*1000+i),
			Label:    labels[r.IntN(2)],
			Title:    fmt.Sprintf("task %d", r.IntN(5)),
			Start:    start,
			Deadline: start.Add(time.Duration(r.IntN(6)) * time.Hour),
			Weight:   float64(r.IntN(4)),
			Status:   task.StatusPending,
		}
	}
	return out
}

func TestSortBy_Deadline(t *testing.T) {
	view := []*task.Task{
		mk("c", 3, 1, task.LabelPersonal, "C"),
		mk("a", 1, 1, task.LabelPersonal, "A"),
		mk("b", 2, 1, task.LabelPersonal, "B"),
	}

	got := ids(SortBy(view, KeyDeadline, Ascending))
	if want := []string{"a", "b", "c"}; !equalIDs(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = ids(SortBy(view, KeyDeadline, Descending))
	if want := []string{"c", "b", "a"}; !equalIDs(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	view := []*task.Task{
		mk("c", 3, 1, task.LabelPersonal, "C"),
		mk("a", 1, 1, task.LabelPersonal, "A"),
	}
	_ = SortBy(view, KeyDeadline, Ascending)

	if got := ids(view); !equalIDs(got, []string{"c", "a"}) {
		t.Errorf("input reordered to %v", got)
	}
}

func TestSortBy_TieBreakOnID(t *testing.T) {
	view := []*task.Task{
		mk("z", 1, 5, task.LabelAcademic, "Same"),
		mk("m", 1, 5, task.LabelAcademic, "Same"),
		mk("a", 1, 5, task.LabelAcademic, "Same"),
	}

	for _, key := range []Key{KeyDeadline, KeyStart, KeyPriority, KeyLabel, KeyTitle} {
		for _, order := range []Order{Ascending, Descending} {
			t.Run(string(key)+"/"+string(order), func(t *testing.T) {
				got := ids(SortBy(view, key, order))
				if want := []string{"a", "m", "z"}; !equalIDs(got, want) {
					t.Errorf("got %v, want %v", got, want)
				}
			})
		}
	}
}

func TestSortBy_PriorityDescending(t *testing.T) {
	view := []*task.Task{
		mk("a", 1, 1, task.LabelPersonal, "A"),
		mk("b", 1, 3, task.LabelPersonal, "B"),
		mk("c", 1, 3, task.LabelPersonal, "C"),
		mk("d", 1, 0, task.LabelPersonal, "D"),
	}

	got := ids(SortBy(view, KeyPriority, Descending))
	if want := []string{"b", "c", "a", "d"}; !equalIDs(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortBy_TitleCaseInsensitive(t *testing.T) {
	view := []*task.Task{
		mk("1", 1, 1, task.LabelPersonal, "banana"),
		mk("2", 1, 1, task.LabelPersonal, "Apple"),
		mk("3", 1, 1, task.LabelPersonal, "cherry"),
	}

	got := ids(SortBy(view, KeyTitle, Ascending))
	if want := []string{"2", "1", "3"}; !equalIDs(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortBy_Degenerate(t *testing.T) {
	if got := SortBy(nil, KeyDeadline, Ascending); len(got) != 0 {
		t.Errorf("empty input: got %d tasks", len(got))
	}

	one := []*task.Task{mk("a", 1, 1, task.LabelPersonal, "A")}
	got := SortBy(one, KeyDeadline, Descending)
	if len(got) != 1 || got[0] != one[0] {
		t.Errorf("single element: got %v", ids(got))
	}

	SortInPlace(nil, KeyDeadline, Ascending)
	SortInPlace(one, KeyDeadline, Ascending)
	if one[0].ID != "a" {
		t.Errorf("single element in place: got %v", ids(one))
	}
}

func TestSort_Idempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	view := randomTasks(r, 200)

	for _, key := range []Key{KeyDeadline, KeyPriority, KeyLabel, KeyTitle} {
		for _, order := range []Order{Ascending, Descending} {
			once := SortBy(view, key, order)
			twice := SortBy(once, key, order)
			if !equalIDs(ids(once), ids(twice)) {
				t.Errorf("%s/%s: sorting a sorted view changed it", key, order)
			}
		}
	}
}

func TestSortInPlace_MatchesSortBy(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for _, n := range []int{0, 1, 2, 3, 5, 12, 13, 50, 500} {
		view := randomTasks(r, n)
		for _, key := range []Key{KeyDeadline, KeyStart, KeyPriority, KeyLabel, KeyTitle} {
			for _, order := range []Order{Ascending, Descending} {
				want := ids(SortBy(view, key, order))

				inPlace := make([]*task.Task, len(view))
				copy(inPlace, view)
				SortInPlace(inPlace, key, order)

				if got := ids(inPlace); !equalIDs(got, want) {
					t.Fatalf("n=%d %s/%s: quicksort order %v differs from merge sort %v", n, key, order, got, want)
				}
			}
		}
	}
}

func TestSortInPlace_AlreadySortedAndReversed(t *testing.T) {
	var view []*task.Task
	for i := range 100 {
		view = append(view, mk(fmt.Sprintf("%03d", i), i, 1, task.LabelPersonal, "x"))
	}

	SortInPlace(view, KeyDeadline, Ascending)
	for i := 1; i < len(view); i++ {
		if Compare(view[i-1], view[i], KeyDeadline, Ascending) > 0 {
			t.Fatalf("ascending: out of order at %d", i)
		}
	}

	SortInPlace(view, KeyDeadline, Descending)
	for i := 1; i < len(view); i++ {
		if Compare(view[i-1], view[i], KeyDeadline, Descending) > 0 {
			t.Fatalf("descending: out of order at %d", i)
		}
	}
}

func TestGroupBy_Label(t *testing.T) {
	view := []*task.Task{
		mk("p2", 1, 1, task.LabelPersonal, "Gym"),
		mk("a1", 2, 1, task.LabelAcademic, "Essay"),
		mk("p1", 3, 1, task.LabelPersonal, "Groceries"),
	}

	groups := GroupBy(view, KeyLabel)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Name != "academic" || !equalIDs(ids(groups[0].Tasks), []string{"a1"}) {
		t.Errorf("group 0 = %s %v", groups[0].Name, ids(groups[0].Tasks))
	}
	if groups[1].Name != "personal" || !equalIDs(ids(groups[1].Tasks), []string{"p1", "p2"}) {
		t.Errorf("group 1 = %s %v", groups[1].Name, ids(groups[1].Tasks))
	}
}

func TestGroupBy_Empty(t *testing.T) {
	if groups := GroupBy(nil, KeyPriority); len(groups) != 0 {
		t.Errorf("got %d groups, want 0", len(groups))
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{"deadline", KeyDeadline, false},
		{"Priority", KeyPriority, false},
		{"weight", KeyPriority, false},
		{"type", KeyLabel, false},
		{"title", KeyTitle, false},
		{"size", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseKey(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseKey(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseKey(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	if o, err := ParseOrder("DESC"); err != nil || o != Descending {
		t.Errorf("ParseOrder(DESC) = %q, %v", o, err)
	}
	if o, err := ParseOrder("ascending"); err != nil || o != Ascending {
		t.Errorf("ParseOrder(ascending) = %q, %v", o, err)
	}
	if _, err := ParseOrder("up"); err == nil {
		t.Error("expected error for unknown order")
	}
}
