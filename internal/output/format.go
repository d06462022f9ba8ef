// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskmaster/internal/prefs"
	"taskmaster/internal/service"
)

// palette holds the styles for one theme.
type palette struct {
	id, title, done, muted lipgloss.Style
}

func newPalette(r *lipgloss.Renderer, theme prefs.Theme) palette {
	// Colors are fixed per theme so nothing queries the terminal background.
	switch theme {
	case prefs.ThemeDark:
		return palette{
			id:    r.NewStyle().Foreground(lipgloss.Color("#7DCFFF")),
			title: r.NewStyle().Foreground(lipgloss.Color("#E0E0E0")).Bold(true),
			done:  r.NewStyle().Foreground(lipgloss.Color("#6C7086")).Strikethrough(true),
			muted: r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		}
	default:
		return palette{
			id:    r.NewStyle().Foreground(lipgloss.Color("#1E66F5")),
			title: r.NewStyle().Foreground(lipgloss.Color("#303030")).Bold(true),
			done:  r.NewStyle().Foreground(lipgloss.Color("#9CA0B0")).Strikethrough(true),
			muted: r.NewStyle().Foreground(lipgloss.Color("#8C8FA1")),
		}
	}
}

// Printer writes tasks to w using the given theme. Styling is dropped when
// w is not a terminal.
type Printer struct {
	w io.Writer
	p palette
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer, theme prefs.Theme) *Printer {
	return &Printer{w: w, p: newPalette(lipgloss.NewRenderer(w), theme)}
}

// Task formats a task line.
// Format: "{ID:>4}  [x] {TITLE}  ({DATE})\n" (the date part is omitted when empty)
func (pr *Printer) Task(task service.Task) {
	box := "[ ]"
	title := pr.p.title.Render(normalizeTitle(task.Title))
	if task.IsCompleted {
		box = "[x]"
		title = pr.p.done.Render(normalizeTitle(task.Title))
	}

	line := fmt.Sprintf("%s  %s %s", pr.p.id.Render(fmt.Sprintf("%4d", task.ID)), box, title)
	if task.CreatedDate != "" {
		line += "  " + pr.p.muted.Render("("+task.CreatedDate+")")
	}
	fmt.Fprintln(pr.w, line)
}

// TaskDetail formats a single task with its description.
func (pr *Printer) TaskDetail(task service.Task) {
	status := "open"
	if task.IsCompleted {
		status = "done"
	}
	created := task.CreatedDate
	if created == "" {
		created = "-"
	}

	fmt.Fprintf(pr.w, "%s %d\n", pr.p.muted.Render("id:     "), task.ID)
	fmt.Fprintf(pr.w, "%s %s\n", pr.p.muted.Render("title:  "), pr.p.title.Render(normalizeTitle(task.Title)))
	fmt.Fprintf(pr.w, "%s %s\n", pr.p.muted.Render("status: "), status)
	fmt.Fprintf(pr.w, "%s %s\n", pr.p.muted.Render("created:"), created)
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintln(pr.w)
		fmt.Fprintln(pr.w, desc)
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
