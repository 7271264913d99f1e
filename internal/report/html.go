// internal/report/html.go
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/mwiater/ragbench/internal/util"
)

type pageData struct {
	*Dashboard
	EmptyMessage   string
	ScoreboardJSON template.JS
	Hidden         []hiddenField
}

type hiddenField struct {
	Name  string
	Value string
}

// RenderHTML writes the dashboard as a self-contained HTML page.
func RenderHTML(w io.Writer, d *Dashboard) error {
	if d == nil {
		return fmt.Errorf("render dashboard: dashboard is nil")
	}
	payload, err := json.Marshal(d.Scoreboard)
	if err != nil {
		return fmt.Errorf("marshal scoreboard: %w", err)
	}
	data := pageData{
		Dashboard:      d,
		EmptyMessage:   EmptyMessage,
		ScoreboardJSON: template.JS(payload),
		Hidden:         sortFields(d.State),
	}
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// WriteHTMLFile renders the dashboard to path, creating parent directories.
func WriteHTMLFile(path string, d *Dashboard) error {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, d); err != nil {
		return err
	}
	if err := util.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("unable to write HTML report %s: %w", path, err)
	}
	return nil
}

// sortFields carries the sort state through the filter form.
func sortFields(st State) []hiddenField {
	var out []hiddenField
	for name, values := range st.Query() {
		if name == "q" || name == "db" {
			continue
		}
		out = append(out, hiddenField{Name: name, Value: values[0]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

var templateFuncs = template.FuncMap{
	"width": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"upper": strings.ToUpper,
}

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(templateFuncs).Parse(dashboardTemplateHTML))

const dashboardTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}{{ if .Dataset }} - {{ .Dataset }}{{ end }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #3B82F6;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --success: #10B981;
      --border: #E2E8F0;
    }
    body {
      background-color: var(--light);
      color: var(--text);
    }
    .navbar-dark, .bg-dark {
      background-color: var(--primary) !important;
    }
    .card {
      border: 1px solid var(--border);
      background-color: var(--background);
    }
    .card.winner {
      border-color: var(--accent);
      box-shadow: 0 4px 12px rgba(59, 130, 246, 0.2);
    }
    .spotlight {
      background-color: rgba(59, 130, 246, 0.06);
      border-color: rgba(59, 130, 246, 0.25);
    }
    .spotlight .label {
      color: var(--accent);
      font-weight: 700;
      letter-spacing: 0.05em;
    }
    .bar {
      height: 6px;
      width: 100%;
      background-color: var(--light);
      border-radius: 999px;
      overflow: hidden;
    }
    .bar > div {
      height: 100%;
      background-color: rgba(100, 116, 139, 0.3);
    }
    .card.winner .bar > div {
      background-color: var(--accent);
    }
    .metric-label {
      font-size: 0.65rem;
      text-transform: uppercase;
      letter-spacing: 0.08em;
      color: var(--secondary);
    }
    .mono {
      font-family: ui-monospace, SFMono-Regular, Menlo, monospace;
      font-variant-numeric: tabular-nums;
    }
    .table thead th {
      background-color: var(--light);
      color: var(--secondary);
      border-color: var(--border);
      white-space: nowrap;
    }
    .table thead th a {
      color: inherit;
      text-decoration: none;
    }
    .table thead th a:hover {
      color: var(--text);
    }
    .table td.query {
      max-width: 300px;
      overflow: hidden;
      text-overflow: ellipsis;
      white-space: nowrap;
    }
    .sort-icon { font-size: 0.7rem; margin-left: 0.25rem; }
    .empty-state {
      padding: 3rem;
      text-align: center;
      color: var(--secondary);
    }
    .badge.bg-primary {
      background-color: var(--accent) !important;
    }
    .badge.bg-secondary {
      background-color: var(--secondary) !important;
    }
    .badge.bg-success {
      background-color: var(--success) !important;
    }
  </style>
</head>
<body>
  <nav class="navbar navbar-dark bg-dark">
    <div class="container-fluid">
      <span class="navbar-brand mb-0 h1">{{ .Title }}</span>
      <div class="d-flex align-items-center gap-2">
        {{ if .BenchDate }}<span class="badge bg-secondary">{{ .BenchDate }}</span>{{ end }}
        {{ if .Metadata.LLMModel }}<span class="badge bg-secondary">{{ .Metadata.LLMModel }}</span>{{ end }}
        {{ if .Metadata.EmbeddingModel }}<span class="badge bg-secondary">{{ .Metadata.EmbeddingModel }}</span>{{ end }}
        <span class="text-light small">Generated: {{ .GeneratedAt }}</span>
      </div>
    </div>
  </nav>
  <main class="container-fluid my-4">
    <p class="text-muted">Performance analysis of RAG pipeline across vector databases.</p>
    {{ if and .Interactive .Datasets }}
    <ul class="nav nav-pills mb-3">
      {{ range .Datasets }}
      <li class="nav-item"><a class="nav-link{{ if eq . $.Dataset }} active{{ end }}" href="/datasets/{{ . }}">{{ . }}</a></li>
      {{ end }}
    </ul>
    {{ end }}

    {{ if .Winner.Database }}
    <section>
      <div class="card spotlight shadow-sm">
        <div class="card-body">
          <div class="label">OVERALL WINNER</div>
          <h2 class="display-6 mb-1">{{ .Winner.Database }}</h2>
          <p class="mb-0">Outperformed competitors with {{ .Winner.SpeedImprovementPercent }}% faster speeds and avg retrieval of {{ .Winner.AvgRetrievalMs }}ms.</p>
        </div>
      </div>
    </section>
    {{ end }}

    <section class="mt-4">
      <div class="row g-3">
        {{ range .Cards }}
        <div class="col-12 col-md-4">
          <div class="card h-100{{ if .Winner }} winner{{ end }}">
            <div class="card-body">
              <div class="d-flex justify-content-between align-items-center mb-3">
                <h5 class="mb-0">{{ .Database }}</h5>
                {{ if .Winner }}<span class="badge bg-primary">Winner</span>{{ end }}
              </div>
              <div class="d-flex justify-content-between small">
                <span class="text-muted">Mean Total</span>
                <span class="mono fw-semibold">{{ .MeanTotal }}</span>
              </div>
              <div class="bar my-2"><div style="width: {{ width .Bar }}%"></div></div>
              <div class="row mt-3">
                <div class="col-6">
                  <div class="metric-label">Retrieval</div>
                  <div class="mono small">{{ .Retrieval }}</div>
                </div>
                <div class="col-6">
                  <div class="metric-label">LLM Gen</div>
                  <div class="mono small">{{ .LLM }}</div>
                </div>
              </div>
              <hr>
              <div class="d-flex justify-content-between small fw-semibold">
                <span class="text-muted">Success Rate</span>
                <span>{{ .SuccessRate }}</span>
              </div>
            </div>
          </div>
        </div>
        {{ end }}
      </div>
    </section>

    <section class="mt-4">
      <div class="card shadow-sm">
        <div class="card-header bg-white d-flex flex-wrap justify-content-between align-items-center gap-2">
          <div>
            <h5 class="mb-0">{{ .Results.Title }}</h5>
            <small class="text-muted">Explore individual query performance. Showing {{ len .Results.Rows }} of {{ .Results.Total }}.</small>
          </div>
          {{ if .Interactive }}
          <form class="d-flex gap-2" method="get" action="{{ .BasePath }}">
            <input class="form-control form-control-sm" type="search" name="q" placeholder="Search queries..." value="{{ .State.Search }}">
            <select class="form-select form-select-sm w-auto" name="db">
              <option value="all"{{ if eq .State.Database "all" }} selected{{ end }}>All Databases</option>
              {{ range .Databases }}
              <option value="{{ . }}"{{ if eq . $.State.Database }} selected{{ end }}>{{ . }}</option>
              {{ end }}
            </select>
            {{ range .Hidden }}<input type="hidden" name="{{ .Name }}" value="{{ .Value }}">{{ end }}
            <button class="btn btn-sm btn-primary" type="submit">Apply</button>
          </form>
          {{ else if or .State.Search (ne .State.Database "all") }}
          <small class="text-muted">Filter: "{{ .State.Search }}" in {{ .State.Database }}</small>
          {{ end }}
        </div>
        <div class="card-body">
          {{ template "table" .Results }}
          {{ if .Results.Empty }}<div class="empty-state">{{ .EmptyMessage }}</div>{{ end }}
        </div>
      </div>
    </section>

    <section class="mt-4">
      <div class="row g-3">
        <div class="col-12 col-lg-6">
          <div class="card shadow-sm h-100">
            <div class="card-header bg-white"><h5 class="mb-0">{{ .Quality.Title }}</h5></div>
            <div class="card-body">{{ template "table" .Quality }}</div>
          </div>
        </div>
        <div class="col-12 col-lg-6">
          <div class="card shadow-sm h-100">
            <div class="card-header bg-white"><h5 class="mb-0">{{ .Scalability.Title }}</h5></div>
            <div class="card-body">
              {{ template "table" .Scalability }}
              {{ if .Growth }}
              <ul class="list-unstyled small text-muted mb-0" id="scalabilityGrowth">
                {{ range .Growth }}<li>{{ .Database }}: top_k {{ .FromTopK }} &rarr; {{ .ToTopK }} {{ printf "%+.1f%%" .Percent }}</li>
                {{ end }}
              </ul>
              {{ end }}
            </div>
          </div>
        </div>
      </div>
    </section>

    {{ if .Scoreboard }}
    <section class="mt-4">
      <div class="card shadow-sm">
        <div class="card-header bg-white"><h5 class="mb-0">Winners by Metric</h5></div>
        <div class="card-body">
          <ul class="list-group">
            {{ range .Scoreboard }}
            <li class="list-group-item d-flex justify-content-between">
              <span><span class="badge bg-secondary">{{ upper .Section }}</span> {{ .Label }}</span>
              {{ if .Winner.AllEqual }}<span class="text-muted">All equal</span>{{ else if .Winner.Found }}<span class="badge bg-success">{{ .Winner.Database }}</span>{{ else }}<span class="text-muted">n/a</span>{{ end }}
            </li>
            {{ end }}
          </ul>
        </div>
      </div>
    </section>
    {{ end }}
  </main>
  <script>
    window.ragbenchScoreboard = {{ .ScoreboardJSON }};
  </script>
</body>
</html>
{{ define "table" }}
<div class="table-responsive">
  <table class="table table-striped table-hover table-sm mb-0" id="{{ .ID }}Table">
    <thead>
      <tr>
        {{ range .Headers }}
        <th class="{{ if .Numeric }}text-end{{ end }}">{{ if .Href }}<a href="{{ .Href }}">{{ .Title }}</a>{{ else }}{{ .Title }}{{ end }}{{ if .Arrow }}<span class="sort-icon">{{ .Arrow }}</span>{{ end }}</th>
        {{ end }}
      </tr>
    </thead>
    <tbody>
      {{ $headers := .Headers }}
      {{ range .Rows }}
      <tr>
        {{ range $i, $cell := . }}
        {{ with index $headers $i }}<td class="{{ if .Numeric }}text-end mono{{ else if eq .Key "query" }}query{{ end }}"{{ if eq .Key "query" }} title="{{ $cell }}"{{ end }}>{{ $cell }}</td>{{ end }}
        {{ end }}
      </tr>
      {{ end }}
    </tbody>
  </table>
</div>
{{ end }}
`
