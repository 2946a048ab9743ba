package report

import (
	"fmt"
	"io"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// Print writes the run counters for the operator, followed by a blank line.
func Print(w io.Writer, summary models.RunSummary) error {
	if _, err := fmt.Fprintf(w, "Total Records: %d\nTotal Failures: %d\n",
		summary.TotalRecords, summary.FailureCount); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}

	if summary.Skipped > 0 {
		if _, err := fmt.Fprintf(w, "Skipped Lines: %d\n", summary.Skipped); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}

	return nil
}
