package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driving"
)

// pollInterval is how often a running ingestion is polled for progress.
const pollInterval = 500 * time.Millisecond

// progressLine renders one line of ingestion progress.
type progressLine struct {
	bar progress.Model
}

func newProgressLine(theme *Theme) *progressLine {
	return &progressLine{
		bar: progress.New(
			progress.WithGradient(string(theme.Primary), string(theme.Secondary)),
			progress.WithWidth(40),
		),
	}
}

// View returns the line for a status snapshot.
func (p *progressLine) View(status *driving.IngestStatus) string {
	if status.Discovering {
		return fmt.Sprintf("%s discovering ids %d/%d", status.Resource, status.Discovered, status.Expected)
	}
	return fmt.Sprintf("%s %s %d/%d", status.Resource, p.bar.ViewAs(status.Fraction()),
		status.Loaded, status.Discovered)
}

// ingestWithProgress runs one ingestion while redrawing a progress bar on w.
func ingestWithProgress(
	ctx context.Context,
	w io.Writer,
	ing driving.Ingestor,
	resource string,
) (*domain.IngestRun, error) {
	type result struct {
		run *domain.IngestRun
		err error
	}

	// Start ingestion in goroutine
	done := make(chan result, 1)
	go func() {
		run, err := ing.IngestResource(ctx, resource)
		done <- result{run: run, err: err}
	}()

	line := newProgressLine(styles.Theme())
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case res := <-done:
			if res.run != nil && res.run.Discovered > 0 {
				final := &driving.IngestStatus{
					Resource:   resource,
					Expected:   res.run.Expected,
					Discovered: res.run.Discovered,
					Loaded:     res.run.Loaded,
				}
				fmt.Fprintf(w, "\r%s\n", line.View(final))
			}
			return res.run, res.err
		case <-ticker.C:
			// Best effort; a status error only skips a redraw.
			status, err := ing.Status(ctx, resource)
			if err == nil && status != nil && status.Running {
				fmt.Fprintf(w, "\r%s", line.View(status))
			}
		}
	}
}
