package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

// renderRuns writes runs as a table, newest first as given.
func renderRuns(w io.Writer, runs []domain.IngestRun) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Resource", "Table", "Mode", "Status", "Loaded", "Expected", "Started", "Duration"})
	for i := range runs {
		run := &runs[i]
		t.AppendRow(table.Row{
			run.Resource,
			run.Table,
			run.Mode,
			styles.RunStatus(run.Status),
			run.Loaded,
			run.Expected,
			run.StartedAt.Local().Format(time.DateTime),
			formatDuration(run),
		})
	}
	t.Render()

	for i := range runs {
		if runs[i].Error != "" {
			fmt.Fprintf(w, "%s %s: %s\n", styles.Error.Render("error"), runs[i].Resource, runs[i].Error)
		}
	}
}

// renderTables writes raw table row counts.
func renderTables(w io.Writer, infos []domain.RawTableInfo) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Table", "Rows", "Note"})
	total := 0
	for _, info := range infos {
		note := ""
		if info.Staging {
			note = styles.Warning.Render("unfinished swap load")
		}
		t.AppendRow(table.Row{info.Name, info.Rows, note})
		total += info.Rows
	}
	t.AppendFooter(table.Row{"Total", total, ""})
	t.Render()
}

// renderSettings writes effective settings as key/value rows.
func renderSettings(w io.Writer, settings *domain.IngestSettings) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.AppendRows([]table.Row{
		{"api.base_url", settings.API.BaseURL},
		{"api.path_prefix", settings.API.PathPrefix},
		{"api.page_size", settings.API.PageSize},
		{"api.timeout_seconds", settings.API.Timeout.Seconds()},
		{"api.user_agent", settings.API.UserAgent},
		{"api.requests_per_second", formatRate(settings.API.RequestsPerSecond)},
		{"spec.url", settings.Spec.URL},
		{"spec.path", settings.Spec.Path},
		{"store.path", settings.Store.Path},
		{"ingest.resources", fmt.Sprint(settings.Ingest.Resources)},
		{"ingest.load_mode", settings.Ingest.Mode},
		{"ingest.continue_on_error", settings.Ingest.ContinueOnError},
	})
	t.Render()
}

func formatDuration(run *domain.IngestRun) string {
	if !run.Finished() {
		return "-"
	}
	return run.Duration().Round(time.Millisecond).String()
}

func formatRate(rps float64) string {
	if rps <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%g", rps)
}
