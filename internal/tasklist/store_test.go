package tasklist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskmini/internal/model"
)

type recordingSaver struct {
	saves [][]model.Task
	err   error
}

func (r *recordingSaver) Save(_ context.Context, tasks []model.Task) error {
	r.saves = append(r.saves, tasks)
	return r.err
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestStore(saver Saver) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)}
	seq := 0
	return New(nil, saver, Options{
		Now: clock.Now,
		NewID: func() string {
			seq++
			return fmt.Sprintf("task-%d", seq)
		},
	}), clock
}

func TestAddInsertsAtHeadAndSaves(t *testing.T) {
	saver := &recordingSaver{}
	s, _ := newTestStore(saver)
	ctx := context.Background()

	first, err := s.Add(ctx, "  Buy milk ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.Text != "Buy milk" || first.Completed || first.CompletedAt != nil {
		t.Fatalf("unexpected new task: %+v", first)
	}
	second, err := s.Add(ctx, "Walk dog")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	list := s.List()
	if len(list) != 2 || list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if len(saver.saves) != 2 || len(saver.saves[1]) != 2 {
		t.Fatalf("expected a full write-through per add, got %d saves", len(saver.saves))
	}
}

func TestAddRejectsInvalidText(t *testing.T) {
	saver := &recordingSaver{}
	s, _ := newTestStore(saver)
	ctx := context.Background()

	cases := []struct {
		in   string
		want error
	}{
		{"", model.ErrEmptyText},
		{" ", model.ErrEmptyText},
		{strings.Repeat("x", 201), model.ErrTextTooLong},
	}
	for _, tc := range cases {
		if _, err := s.Add(ctx, tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("add(%q): expected %v, got %v", tc.in, tc.want, err)
		}
	}
	if s.Len() != 0 || len(saver.saves) != 0 {
		t.Fatalf("invalid adds must not mutate or save: len=%d saves=%d", s.Len(), len(saver.saves))
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	s, clock := newTestStore(&recordingSaver{})
	ctx := context.Background()
	task, _ := s.Add(ctx, "Write report")

	clock.now = clock.now.Add(time.Hour)
	done, found, err := s.Toggle(ctx, task.ID)
	if err != nil || !found {
		t.Fatalf("toggle: found=%v err=%v", found, err)
	}
	if !done.Completed || done.CompletedAt == nil || !done.CompletedAt.Equal(clock.now) {
		t.Fatalf("expected completed with timestamp, got %+v", done)
	}

	undone, _, _ := s.Toggle(ctx, task.ID)
	if undone.Completed != task.Completed || undone.CompletedAt != nil {
		t.Fatalf("expected original completion state, got %+v", undone)
	}
}

func TestToggleAndDeleteMissingAreNoops(t *testing.T) {
	saver := &recordingSaver{}
	s, _ := newTestStore(saver)
	ctx := context.Background()
	_, _ = s.Add(ctx, "Only task")
	before := len(saver.saves)

	if _, found, err := s.Toggle(ctx, "missing"); found || err != nil {
		t.Fatalf("expected silent no-op, got found=%v err=%v", found, err)
	}
	if removed, err := s.Delete(ctx, "missing"); removed || err != nil {
		t.Fatalf("expected silent no-op, got removed=%v err=%v", removed, err)
	}
	if s.Len() != 1 || len(saver.saves) != before {
		t.Fatalf("no-ops must not mutate or save: len=%d saves=%d", s.Len(), len(saver.saves))
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s, _ := newTestStore(&recordingSaver{})
	ctx := context.Background()
	a, _ := s.Add(ctx, "a")
	b, _ := s.Add(ctx, "b")
	c, _ := s.Add(ctx, "c")

	removed, err := s.Delete(ctx, b.ID)
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	list := s.List()
	if len(list) != 2 || list[0].ID != c.ID || list[1].ID != a.ID {
		t.Fatalf("unexpected list after delete: %+v", list)
	}
}

func TestListIsACopy(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()
	_, _ = s.Add(ctx, "original")

	list := s.List()
	list[0].Text = "mutated"
	if got, _ := s.At(0); got.Text != "original" {
		t.Fatalf("store state leaked through List: %q", got.Text)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()
	first, _ := s.Add(ctx, "first")
	_, _ = s.Add(ctx, "second")
	_, _, _ = s.Toggle(ctx, first.ID)

	snap := s.Snapshot()
	if len(snap.Tasks) != 2 || snap.Tasks[0].Text != "second" {
		t.Fatalf("unexpected snapshot tasks: %+v", snap.Tasks)
	}
	if snap.Stats != (model.Stats{Total: 2, Completed: 1, Pending: 1}) {
		t.Fatalf("unexpected snapshot stats: %+v", snap.Stats)
	}

	_, _ = s.Add(ctx, "third")
	snap.Tasks[0].Text = "mutated"
	if len(snap.Tasks) != 2 || snap.Stats.Total != 2 {
		t.Fatal("snapshot must not follow later mutations")
	}
	if got, _ := s.At(1); got.Text != "second" {
		t.Fatalf("store state leaked through Snapshot: %q", got.Text)
	}
}

func TestStatsAlwaysAddUp(t *testing.T) {
	s, _ := newTestStore(nil)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		task, _ := s.Add(ctx, fmt.Sprintf("task %d", i))
		if i%2 == 0 {
			_, _, _ = s.Toggle(ctx, task.ID)
		}
		st := s.Stats()
		if st.Completed+st.Pending != st.Total || st.Total != s.Len() {
			t.Fatalf("inconsistent stats: %+v", st)
		}
	}
	st := s.Stats()
	if st.Total != 5 || st.Completed != 3 || st.Pending != 2 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestClearCompleted(t *testing.T) {
	saver := &recordingSaver{}
	s, _ := newTestStore(saver)
	ctx := context.Background()
	a, _ := s.Add(ctx, "a")
	_, _ = s.Add(ctx, "b")
	_, _, _ = s.Toggle(ctx, a.ID)
	before := len(saver.saves)

	removed, err := s.ClearCompleted(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("clear: removed=%d err=%v", removed, err)
	}
	if len(saver.saves) != before+1 {
		t.Fatalf("expected a single write, got %d", len(saver.saves)-before)
	}
	if removed, _ := s.ClearCompleted(ctx); removed != 0 || len(saver.saves) != before+1 {
		t.Fatal("clearing with nothing completed must not save")
	}
}

func TestSaveErrorKeepsMutation(t *testing.T) {
	boom := errors.New("disk full")
	s, _ := newTestStore(&recordingSaver{err: boom})

	task, err := s.Add(context.Background(), "still here")
	if !errors.Is(err, boom) {
		t.Fatalf("expected save error, got %v", err)
	}
	if got, ok := s.Get(task.ID); !ok || got.Text != "still here" {
		t.Fatal("task should remain in memory after a failed save")
	}
}

func TestDefaultIDsAreUnique(t *testing.T) {
	s := New(nil, nil, Options{})
	ctx := context.Background()
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		task, err := s.Add(ctx, "same instant")
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %q", task.ID)
		}
		seen[task.ID] = true
	}
}
