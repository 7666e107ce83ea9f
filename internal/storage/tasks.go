package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskmini/internal/model"
)

const (
	keyPrefix   = "tasks_"
	FallbackKey = "tasks_local"
)

// KeyFor derives the storage key for a user identity. An empty identity maps
// to FallbackKey.
func KeyFor(identity string) string {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return FallbackKey
	}
	return keyPrefix + identity
}

// TaskRepository mirrors the whole task collection to a single KV entry.
type TaskRepository struct {
	kv     KV
	key    string
	logger *log.Logger
}

func NewTaskRepository(kv KV, key string, logger *log.Logger) (*TaskRepository, error) {
	if kv == nil {
		return nil, fmt.Errorf("storage: nil kv")
	}
	if strings.TrimSpace(key) == "" {
		key = FallbackKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TaskRepository{kv: kv, key: key, logger: logger}, nil
}

func (r *TaskRepository) Key() string {
	return r.key
}

// Load never fails: missing, unreadable or malformed data yields an empty
// collection and a logged warning.
func (r *TaskRepository) Load(ctx context.Context) []model.Task {
	raw, ok, err := r.kv.Get(ctx, r.key)
	if err != nil {
		r.logger.Warn("read tasks failed", "key", r.key, "err", err)
		return []model.Task{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Task{}
	}
	var decoded []model.Task
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		r.logger.Warn("stored tasks are malformed, starting empty", "key", r.key, "err", err)
		return []model.Task{}
	}
	out := make([]model.Task, 0, len(decoded))
	seen := make(map[string]bool, len(decoded))
	for _, t := range decoded {
		if err := t.Validate(); err != nil {
			r.logger.Warn("dropping invalid stored task", "key", r.key, "err", err)
			continue
		}
		if seen[t.ID] {
			r.logger.Warn("dropping duplicate stored task", "key", r.key, "id", t.ID)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	r.logger.Debug("tasks loaded", "key", r.key, "count", len(out))
	return out
}

func (r *TaskRepository) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, string(payload)); err != nil {
		r.logger.Error("write tasks failed", "key", r.key, "err", err)
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}
