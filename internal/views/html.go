package views

import (
	"bytes"
	"html/template"
	"time"

	"github.com/sandeepkv93/taskmini/internal/model"
	"github.com/sandeepkv93/taskmini/internal/tasklist"
)

// The templates rely on html/template's contextual escaping for task text;
// nothing user-supplied is ever marked template.HTML.
var htmlTemplates = template.Must(template.New("tasks").Parse(`
{{- define "list" -}}
{{- if not .Rows -}}
<div class="empty-state">
  <div class="empty-icon">📝</div>
  <h3>No tasks yet</h3>
  <p>Add your first task above!<br>Type a task and press "Add" or Enter</p>
</div>
{{- else -}}
{{- range .Rows }}
<div class="task-item" data-id="{{ .ID }}">
  {{ if .Completed }}<input type="checkbox" class="task-checkbox" data-id="{{ .ID }}" checked>{{ else }}<input type="checkbox" class="task-checkbox" data-id="{{ .ID }}">{{ end }}
  <div class="task-text{{ if .Completed }} completed{{ end }}">
    {{ .Text }}
    <div class="task-date">{{ .Created }}{{ if .Completed }} • Completed: {{ .Finished }}{{ end }}</div>
  </div>
  <button class="delete-btn" data-id="{{ .ID }}">×</button>
</div>
{{- end }}
{{- end -}}
{{- end -}}

{{- define "stats" -}}
<div class="stats">
  <div class="stat"><span id="totalTasks">{{ .Total }}</span> total</div>
  <div class="stat"><span id="completedTasks">{{ .Completed }}</span> completed</div>
  <div class="stat"><span id="pendingTasks">{{ .Pending }}</span> pending</div>
</div>
{{- end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>taskmini</title></head>
<body>
{{ template "stats" .Stats }}
<div id="tasksList">
{{ template "list" . }}
</div>
</body>
</html>
{{- end -}}
`))

type htmlRow struct {
	ID        string
	Text      string
	Completed bool
	Created   string
	Finished  string
}

type htmlData struct {
	Rows  []htmlRow
	Stats model.Stats
}

func buildHTMLData(state tasklist.State, now time.Time, loc *time.Location) htmlData {
	rows := make([]htmlRow, 0, len(state.Tasks))
	for _, t := range state.Tasks {
		row := htmlRow{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Created:   FormatDate(t.CreatedAt, now, loc),
		}
		if t.CompletedAt != nil {
			row.Finished = FormatDate(*t.CompletedAt, now, loc)
		}
		rows = append(rows, row)
	}
	return htmlData{Rows: rows, Stats: state.Stats}
}

// RenderTaskListHTML renders the list fragment: one row per task in order,
// or the empty-state placeholder.
func RenderTaskListHTML(state tasklist.State, now time.Time, loc *time.Location) (string, error) {
	return executeHTML("list", buildHTMLData(state, now, loc))
}

func RenderStatsHTML(state tasklist.State) (string, error) {
	return executeHTML("stats", state.Stats)
}

// RenderPageHTML renders a standalone document with counters and list.
func RenderPageHTML(state tasklist.State, now time.Time, loc *time.Location) (string, error) {
	return executeHTML("page", buildHTMLData(state, now, loc))
}

func executeHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
