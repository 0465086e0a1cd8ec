package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"singe/internal/queue"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableColumn pairs a header with its cell alignment. Numeric columns (job
// ids, track counts, lengths) are right-aligned; everything else reads left.
type tableColumn struct {
	Title string
	Align columnAlignment
}

func leftColumn(title string) tableColumn  { return tableColumn{Title: title} }
func rightColumn(title string) tableColumn { return tableColumn{Title: title, Align: alignRight} }

func renderTable(columns []tableColumn, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.Title
		align := text.AlignLeft
		if col.Align == alignRight {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// statusCell colors a job status for terminal output; piped output stays
// plain so scripts can match on the literal status strings.
func statusCell(status queue.Status, colorize bool) string {
	if !colorize {
		return string(status)
	}
	switch status {
	case queue.StatusCompleted:
		return ansiGreen + string(status) + ansiReset
	case queue.StatusFailed:
		return ansiRed + string(status) + ansiReset
	case queue.StatusInProgress:
		return ansiYellow + string(status) + ansiReset
	default:
		return string(status)
	}
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(file.Fd())
}
