package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tuiflip/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// RenderHistoryTable prints the newest limit flips of h. limit <= 0 prints all.
func RenderHistoryTable(w io.Writer, h model.History, labels model.Labels, limit int) error {
	if len(h) == 0 {
		_, err := fmt.Fprintln(w, "No flips recorded yet.")
		return err
	}
	if limit <= 0 || limit > len(h) {
		limit = len(h)
	}
	rows := make([][]string, 0, limit)
	for i, rec := range h[:limit] {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			rec.Time().In(time.Local).Format(timeLayout),
			labels.Label(rec.Outcome),
		})
	}
	return writeTable(w, "Recent Flips", []string{"#", "Time", "Result"}, rows, map[int]bool{0: true})
}

// RenderRunsTable prints the longest runs of a report.
func RenderRunsTable(w io.Writer, runs []Run, labels model.Labels) error {
	if len(runs) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			labels.Label(run.Outcome),
			fmt.Sprintf("%d", run.Length),
			time.UnixMilli(run.Newest).In(time.Local).Format(timeLayout),
		})
	}
	return writeTable(w, "Longest Runs", []string{"Result", "Length", "Ended"}, rows, map[int]bool{1: true})
}

func writeTable(w io.Writer, title string, headers []string, rows [][]string, rightAlign map[int]bool) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
