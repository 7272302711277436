// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/service"
)

// FormatProject formats one project line. The selected project is marked
// with an asterisk.
// Format: "{MARK} {ID:>4}  {NAME}\n"
func FormatProject(w io.Writer, p service.Project, selected bool) {
	mark := " "
	if selected {
		mark = "*"
	}
	fmt.Fprintf(w, "%s %4d  %s\n", mark, p.ID, normalizeTitle(p.Name))
}

// FormatTask formats one task line with a completion checkbox.
// Format: "[x] {ID:>4}  {TITLE}\n"
func FormatTask(w io.Writer, t service.Task) {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	fmt.Fprintf(w, "%s %4d  %s\n", box, t.ID, normalizeTitle(t.Title))
}

// FormatTaskHeader formats the header above a task listing.
func FormatTaskHeader(w io.Writer, projectName string) {
	fmt.Fprintln(w, "------------")
	fmt.Fprintln(w, normalizeTitle(projectName))
	fmt.Fprintln(w, "------------")
}

// FormatProgress formats the completion summary line.
func FormatProgress(w io.Writer, done, total, pct int) {
	fmt.Fprintf(w, "%d/%d done (%d%%)\n", done, total, pct)
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
