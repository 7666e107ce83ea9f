package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength is measured in characters, not bytes.
const MaxTextLength = 200

var (
	ErrEmptyText   = errors.New("enter task text")
	ErrTextTooLong = errors.New("task too long")
	ErrInvalidID   = errors.New("model: invalid task id")
)

type Task struct {
	ID          string
	Text        string
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NormalizeText trims raw input and checks it against the length bounds.
func NormalizeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", ErrTextTooLong
	}
	return text, nil
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if _, err := NormalizeText(t.Text); err != nil {
		return fmt.Errorf("model: task %s: %w", t.ID, err)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task createdAt is required")
	}
	if t.Completed && t.CompletedAt == nil {
		return errors.New("model: completedAt is required when task is completed")
	}
	if !t.Completed && t.CompletedAt != nil {
		return errors.New("model: completedAt must be nil when task is not completed")
	}
	return nil
}

// Toggled returns a copy with the completion flag flipped and completedAt
// stamped with now or cleared.
func (t Task) Toggled(now time.Time) Task {
	out := t
	out.Completed = !t.Completed
	if out.Completed {
		stamp := now.UTC()
		out.CompletedAt = &stamp
	} else {
		out.CompletedAt = nil
	}
	return out
}

type wireTask struct {
	ID          json.RawMessage `json:"id"`
	Text        string          `json:"text"`
	Completed   bool            `json:"completed"`
	CreatedAt   time.Time       `json:"createdAt"`
	CompletedAt *time.Time      `json:"completedAt"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	id, err := json.Marshal(t.ID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireTask{
		ID:          id,
		Text:        t.Text,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	})
}

// UnmarshalJSON accepts the id either as a string or as a bare JSON number;
// older payloads stored numeric ids, which are kept in their decimal form.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w wireTask
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	id, err := decodeID(w.ID)
	if err != nil {
		return err
	}
	*t = Task{
		ID:          id,
		Text:        w.Text,
		Completed:   w.Completed,
		CreatedAt:   w.CreatedAt,
		CompletedAt: w.CompletedAt,
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", fmt.Errorf("%w: missing", ErrInvalidID)
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidID, err)
		}
		return s, nil
	}
	if _, err := strconv.ParseFloat(string(trimmed), 64); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidID, trimmed)
	}
	return string(trimmed), nil
}

type Stats struct {
	Total     int
	Completed int
	Pending   int
}

func ComputeStats(tasks []Task) Stats {
	out := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			out.Completed++
		}
	}
	out.Pending = out.Total - out.Completed
	return out
}
