package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"jamesfarrell.me/youtube-to-blog/internal/batch"
	"jamesfarrell.me/youtube-to-blog/internal/logging"
)

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		configs = append(configs, table.ColumnConfig{
			Number:           i + 1,
			Align:            text.AlignLeft,
			AlignHeader:      text.AlignLeft,
			WidthMax:         60,
			WidthMaxEnforcer: text.WrapSoft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// printOutcomes writes a table on a terminal and tab-separated lines
// otherwise, followed by a per-status count.
func printOutcomes(w io.Writer, outcomes []batch.Outcome) {
	writeOutcomes(w, outcomes, logging.IsTerminal(w))
}

func writeOutcomes(w io.Writer, outcomes []batch.Outcome, tty bool) {
	if len(outcomes) == 0 {
		return
	}
	if tty {
		rows := make([][]string, 0, len(outcomes))
		for _, o := range outcomes {
			rows = append(rows, []string{string(o.Status), o.URL, o.Title, o.Reason})
		}
		fmt.Fprintln(w, renderTable([]string{"Status", "URL", "Title", "Reason"}, rows))
	} else {
		for _, o := range outcomes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.Status, o.URL, o.Title, o.Reason)
		}
	}

	counts := batch.Summary(outcomes)
	fmt.Fprint(w, "Summary:")
	for _, s := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(w, " %s=%d", s, counts[s])
	}
	fmt.Fprintln(w)
}
