package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sandeepkv93/taskmini/internal/model"
	"github.com/sandeepkv93/taskmini/internal/tasklist"
	"github.com/sandeepkv93/taskmini/internal/views"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatHTML = "html"
)

type exportTask struct {
	ID          string     `yaml:"id"`
	Text        string     `yaml:"text"`
	Completed   bool       `yaml:"completed"`
	CreatedAt   time.Time  `yaml:"created_at"`
	CompletedAt *time.Time `yaml:"completed_at,omitempty"`
}

type exportDoc struct {
	Stats model.Stats  `yaml:"stats"`
	Tasks []exportTask `yaml:"tasks"`
}

func newExportCommand(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the task list as json, yaml or html",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			s, err := openSession(contextOrBackground(cmd.Context()), cfg, opts.ephemeral, false)
			if err != nil {
				return err
			}
			defer s.Close()
			return writeExport(cmd.OutOrStdout(), format, tasklist.NewState(s.tasks), time.Now())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, yaml or html")
	return cmd
}

func writeExport(w io.Writer, format string, state tasklist.State, now time.Time) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case formatJSON:
		tasks := state.Tasks
		if tasks == nil {
			tasks = []model.Task{}
		}
		out, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case formatYAML:
		doc := exportDoc{Stats: state.Stats, Tasks: make([]exportTask, 0, len(state.Tasks))}
		for _, t := range state.Tasks {
			doc.Tasks = append(doc.Tasks, exportTask{
				ID:          t.ID,
				Text:        t.Text,
				Completed:   t.Completed,
				CreatedAt:   t.CreatedAt,
				CompletedAt: t.CompletedAt,
			})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatHTML:
		page, err := views.RenderPageHTML(state, now, time.Local)
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		_, err = io.WriteString(w, page)
		return err
	default:
		return fmt.Errorf("unsupported format %q (want json, yaml or html)", format)
	}
}
