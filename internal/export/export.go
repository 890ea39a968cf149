// Package export renders planner tables as CSV, aligned text or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/abrezinsky/cubeplan/internal/planner"
)

// Format selects a rendering.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, csv or json)", s)
	}
}

// WriteCSV writes the header row followed by every data row.
func WriteCSV(w io.Writer, t planner.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteText writes an aligned, bordered text table.
func WriteText(w io.Writer, t planner.Table) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Headers)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.AppendBulk(t.Rows)
	tw.Render()
	return nil
}

// WriteWarnings writes each warning as a bullet; multi-line warnings keep
// their continuation lines indented.
func WriteWarnings(w io.Writer, warnings []string) error {
	for _, warning := range warnings {
		lines := strings.Split(warning, "\n")
		if _, err := fmt.Fprintf(w, "* %s\n", lines[0]); err != nil {
			return err
		}
		for _, line := range lines[1:] {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// WritePlan renders a whole plan: stations, estimates, timetable and
// warnings. The CSV form separates the two tables with an empty record.
func WritePlan(w io.Writer, plan *planner.Plan, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)

	case FormatCSV:
		if err := WriteCSV(w, plan.EstimateTable()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		return WriteCSV(w, plan.ScheduleTable())

	case FormatText, "":
		if _, err := fmt.Fprintf(w, "Solving stations required: %d\n\n", plan.Estimates.Stations); err != nil {
			return err
		}
		if err := WriteText(w, plan.EstimateTable()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := WriteText(w, plan.ScheduleTable()); err != nil {
			return err
		}
		if len(plan.Warnings) == 0 {
			return nil
		}
		if _, err := io.WriteString(w, "\nWarnings:\n"); err != nil {
			return err
		}
		return WriteWarnings(w, plan.Warnings)

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
