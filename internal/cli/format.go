package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/liamgriffiths/visits/internal/visit"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printSummary prints visits as a table followed by totals.
func printSummary(out io.Writer, s visit.Summary) error {
	if len(s.Rows) == 0 {
		_, err := fmt.Fprintf(out, "No visits recorded.\nDays left today: %d of %d in %d\n", s.DaysLeftToday, s.MaxDays, s.Period)
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tENTER\tEXIT\tDAYS\tDAYS LEFT"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t----\t----\t---------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, r := range s.Rows {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			r.ID, r.EnterAt, r.ExitAt, r.Days, formatDaysLeft(r.DaysLeft)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(out, "\nTotal: %s, %s\nDays left today: %d of %d in %d\n",
		plural(len(s.Rows), "visit"), plural(s.TotalDays, "day"), s.DaysLeftToday, s.MaxDays, s.Period)
	return err
}

// printCandidate prints a proposed visit.
func printCandidate(out io.Writer, c visit.Candidate) error {
	_, err := fmt.Fprintf(out, "Next visit: %s to %s\n  Length:   %s\n  From now: %s\n",
		c.EnterAt, c.ExitAt, plural(c.Days, "day"), plural(c.DaysUntil, "day"))
	return err
}

// formatDaysLeft marks an overstay with a trailing "!".
func formatDaysLeft(n int) string {
	if n < 0 {
		return fmt.Sprintf("%d!", n)
	}
	return fmt.Sprintf("%d", n)
}

// plural formats a count with its noun, adding "s" unless n is 1.
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
