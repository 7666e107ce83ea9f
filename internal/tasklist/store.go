// Package tasklist holds the in-memory task collection for a session and
// writes it through to storage after every mutation.
package tasklist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskmini/internal/model"
)

// Saver persists the full collection. *storage.TaskRepository satisfies it.
type Saver interface {
	Save(ctx context.Context, tasks []model.Task) error
}

type Options struct {
	Now   func() time.Time
	NewID func() string
}

// State is an immutable snapshot handed to renderers.
type State struct {
	Tasks []model.Task
	Stats model.Stats
}

type Store struct {
	tasks []model.Task
	saver Saver
	now   func() time.Time
	newID func() string
}

func New(initial []model.Task, saver Saver, opts Options) *Store {
	s := &Store{
		tasks: append([]model.Task(nil), initial...),
		saver: saver,
		now:   opts.Now,
		newID: opts.NewID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.NewString() }
	}
	return s
}

// Add validates text and inserts a new task at the head. Validation errors
// leave the collection untouched. A save error is returned after the task is
// already in memory.
func (s *Store) Add(ctx context.Context, text string) (model.Task, error) {
	normalized, err := model.NormalizeText(text)
	if err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:        s.newID(),
		Text:      normalized,
		CreatedAt: s.now().UTC(),
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	return task, s.persist(ctx)
}

// Toggle flips completion for id. found is false when id is absent, in which
// case nothing is saved.
func (s *Store) Toggle(ctx context.Context, id string) (task model.Task, found bool, err error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false, nil
	}
	s.tasks[idx] = s.tasks[idx].Toggled(s.now())
	return s.tasks[idx], true, s.persist(ctx)
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	return true, s.persist(ctx)
}

// ClearCompleted drops every completed task with a single write.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	kept := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept
	return removed, s.persist(ctx)
}

func (s *Store) Get(id string) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

// At returns the task at a zero-based position in display order.
func (s *Store) At(pos int) (model.Task, bool) {
	if pos < 0 || pos >= len(s.tasks) {
		return model.Task{}, false
	}
	return s.tasks[pos], true
}

func (s *Store) List() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Stats() model.Stats {
	return model.ComputeStats(s.tasks)
}

// Snapshot copies the current collection and its counters.
func (s *Store) Snapshot() State {
	return NewState(s.tasks)
}

// NewState builds a snapshot from tasks loaded outside a Store.
func NewState(tasks []model.Task) State {
	return State{
		Tasks: append([]model.Task(nil), tasks...),
		Stats: model.ComputeStats(tasks),
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist(ctx context.Context) error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Save(ctx, s.List())
}
