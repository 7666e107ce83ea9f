package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "plain", in: "Buy milk", want: "Buy milk"},
		{name: "trimmed", in: "  Buy milk \n", want: "Buy milk"},
		{name: "empty", in: "", wantErr: ErrEmptyText},
		{name: "spaces", in: "   ", wantErr: ErrEmptyText},
		{name: "max length", in: strings.Repeat("a", MaxTextLength), want: strings.Repeat("a", MaxTextLength)},
		{name: "too long", in: strings.Repeat("a", MaxTextLength+1), wantErr: ErrTextTooLong},
		{name: "multibyte at limit", in: strings.Repeat("ж", MaxTextLength), want: strings.Repeat("ж", MaxTextLength)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeText(tc.in)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTaskValidateCompletedAtInvariant(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{ID: "task-1", Text: "Done task", Completed: true, CreatedAt: now}
	if err := task.Validate(); err == nil || err.Error() != "model: completedAt is required when task is completed" {
		t.Fatalf("unexpected error: %v", err)
	}

	task.Completed = false
	task.CompletedAt = &now
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for completedAt on pending task")
	}

	task.CompletedAt = nil
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestToggledIsInvolution(t *testing.T) {
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{ID: "task-1", Text: "Write docs", CreatedAt: created}

	done := task.Toggled(created.Add(time.Hour))
	if !done.Completed || done.CompletedAt == nil {
		t.Fatalf("expected completed task with timestamp: %+v", done)
	}
	if !done.CompletedAt.Equal(created.Add(time.Hour)) {
		t.Fatalf("unexpected completedAt: %v", done.CompletedAt)
	}

	back := done.Toggled(created.Add(2 * time.Hour))
	if back.Completed || back.CompletedAt != nil {
		t.Fatalf("expected original state, got %+v", back)
	}
	if task.Completed || task.CompletedAt != nil {
		t.Fatal("toggle must not mutate the receiver")
	}
}

func TestTaskJSONWireFormat(t *testing.T) {
	created := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(Task{ID: "abc", Text: "Buy milk", CreatedAt: created})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"abc","text":"Buy milk","completed":false,"createdAt":"2026-02-09T12:00:00Z","completedAt":null}`
	if string(raw) != want {
		t.Fatalf("unexpected wire form:\n got %s\nwant %s", raw, want)
	}
}

func TestTaskJSONAcceptsNumericID(t *testing.T) {
	payload := `{"id":1739102400000.4217,"text":"Legacy","completed":true,"createdAt":"2026-02-09T12:00:00.000Z","completedAt":"2026-02-09T13:00:00.000Z"}`
	var task Task
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if task.ID != "1739102400000.4217" {
		t.Fatalf("unexpected id: %q", task.ID)
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid legacy task: %v", err)
	}

	if err := json.Unmarshal([]byte(`{"id":null,"text":"x"}`), &task); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: "1", Text: "a", CreatedAt: now},
		{ID: "2", Text: "b", CreatedAt: now, Completed: true, CompletedAt: &now},
		{ID: "3", Text: "c", CreatedAt: now},
	}
	s := ComputeStats(tasks)
	if s.Total != 3 || s.Completed != 1 || s.Pending != 2 {
		t.Fatalf("unexpected stats: %+v", s)
	}
	if s.Completed+s.Pending != s.Total {
		t.Fatalf("stats do not add up: %+v", s)
	}
	if empty := ComputeStats(nil); empty != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", empty)
	}
}
