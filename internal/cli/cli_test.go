package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskmini/internal/model"
	"github.com/sandeepkv93/taskmini/internal/storage"
	"github.com/sandeepkv93/taskmini/internal/tasklist"
	"gopkg.in/yaml.v3"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("TASKMINI_LOG_FILE", "")
	t.Setenv("TASKMINI_USER_ID", "")
	t.Setenv("TASKMINI_DB_PATH", "")
	return dir
}

func sampleTasks() []model.Task {
	created := time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC)
	done := created.Add(time.Hour)
	return []model.Task{
		{ID: "b", Text: "Call <mom>", Completed: true, CreatedAt: created, CompletedAt: &done},
		{ID: "a", Text: "Buy milk", CreatedAt: created},
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	dir := isolateEnv(t)
	cfgPath := filepath.Join(dir, "taskmini.toml")
	if err := os.WriteFile(cfgPath, []byte("db_path = \"from-file.db\"\nuser_id = \"file-user\"\nlog_level = \"warn\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKMINI_USER_ID", "env-user")

	root := NewRootCommand()
	if err := root.ParseFlags([]string{"--config", cfgPath, "--db", "flag.db", "--no-host-dialogs"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	opts := &rootOptions{}
	opts.configPath, _ = root.Flags().GetString("config")
	opts.dbPath, _ = root.Flags().GetString("db")
	opts.noHostDialogs, _ = root.Flags().GetBool("no-host-dialogs")

	cfg, err := resolveConfig(root, opts)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("flag must win for db path, got %q", cfg.DBPath)
	}
	if cfg.UserID != "env-user" {
		t.Fatalf("env must override file, got %q", cfg.UserID)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("file must override defaults, got %q", cfg.LogLevel)
	}
	if cfg.HostDialogs {
		t.Fatal("--no-host-dialogs must disable host dialogs")
	}
}

func TestResolveConfigExplicitMissingFile(t *testing.T) {
	dir := isolateEnv(t)
	root := NewRootCommand()
	opts := &rootOptions{configPath: filepath.Join(dir, "missing.toml")}
	if _, err := resolveConfig(root, opts); err == nil {
		t.Fatal("an explicit config path that does not exist must fail")
	}
}

func TestWriteExportJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "json", tasklist.NewState(sampleTasks()), time.Now()); err != nil {
		t.Fatalf("export: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 2 || decoded[0]["id"] != "b" || decoded[0]["completedAt"] == nil {
		t.Fatalf("unexpected json export: %v", decoded)
	}
	if _, ok := decoded[1]["completedAt"]; ok && decoded[1]["completedAt"] != nil {
		t.Fatalf("pending task must not carry completedAt: %v", decoded[1])
	}

	buf.Reset()
	if err := writeExport(&buf, "json", tasklist.State{}, time.Now()); err != nil {
		t.Fatalf("export empty: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("empty export must be an empty array, got %q", buf.String())
	}
}

func TestWriteExportYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "YAML", tasklist.NewState(sampleTasks()), time.Now()); err != nil {
		t.Fatalf("export: %v", err)
	}
	var doc exportDoc
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Stats != (model.Stats{Total: 2, Completed: 1, Pending: 1}) {
		t.Fatalf("unexpected stats: %+v", doc.Stats)
	}
	if len(doc.Tasks) != 2 || doc.Tasks[0].Text != "Call <mom>" || doc.Tasks[1].CompletedAt != nil {
		t.Fatalf("unexpected tasks: %+v", doc.Tasks)
	}
}

func TestWriteExportHTMLEscapes(t *testing.T) {
	var buf bytes.Buffer
	if err := writeExport(&buf, "html", tasklist.NewState(sampleTasks()), time.Now()); err != nil {
		t.Fatalf("export: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<mom>") || !strings.Contains(out, "&lt;mom&gt;") {
		t.Fatalf("task text must be escaped, got %q", out)
	}
}

func TestWriteExportUnknownFormat(t *testing.T) {
	if err := writeExport(&bytes.Buffer{}, "csv", tasklist.State{}, time.Now()); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestExportCommandReadsUserScopedList(t *testing.T) {
	dir := isolateEnv(t)
	dbPath := filepath.Join(dir, "tasks.db")
	kv, err := storage.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo, err := storage.NewTaskRepository(kv, storage.KeyFor("42"), nil)
	if err != nil {
		t.Fatalf("repository: %v", err)
	}
	if err := repo.Save(context.Background(), sampleTasks()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"export", "--db", dbPath, "--user", "42", "--format", "json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Buy milk") {
		t.Fatalf("expected user 42's tasks, got %q", out.String())
	}

	out.Reset()
	root = NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"export", "--db", dbPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Fatalf("anonymous user must see the fallback list, got %q", out.String())
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "taskmini") || !strings.Contains(out.String(), Version) {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}
