package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
	activeColor  = color.New(color.FgGreen)
	orphanColor  = color.New(color.FgYellow)
)

func printSuccess(format string, a ...any) {
	_, _ = successColor.Printf("✓ "+format+"\n", a...)
}

func printWarning(format string, a ...any) {
	_, _ = warningColor.Printf("⚠ "+format+"\n", a...)
}

func printLabelValue(label, value string) {
	_, _ = labelColor.Printf("  %s: ", label)
	fmt.Println(value)
}

func printHint(format string, a ...any) {
	_, _ = dimColor.Printf(format+"\n", a...)
}

// formatSize renders a byte count the way humans read it.
func formatSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.2fMB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1fKB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// truncatePath shortens a path for table display, keeping the tail — the
// distinctive part of a directory path.
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-(maxLen-3):]
}

// renderTable prints headers and rows in aligned columns.
func renderTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&b, "%-*s  ", widths[i], h)
	}
	_, _ = labelColor.Println(strings.TrimRight(b.String(), " "))

	for _, row := range rows {
		b.Reset()
		for i, cell := range row {
			fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}
}
