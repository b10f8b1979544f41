package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
)

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	box := lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(t.BorderColor).
		Padding(0, 1)
	fmt.Fprintln(w, box.Render(strings.Join(lines, "\n")))
}

// OK prints a success line.
func OK(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Success.Render(t.SymOK+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	t := Current()
	fmt.Fprintln(w, t.Error.Render(t.SymFail+" "+msg))
}

// Hint prints a muted line.
func Hint(w io.Writer, msg string) {
	fmt.Fprintln(w, Current().Muted.Render(msg))
}

// ListLines renders items for Panel: a header, then title and description
// per item in insertion order.
func ListLines(items []model.Item) []string {
	t := Current()
	lines := []string{
		t.Title.Render("To Do List"),
		t.Muted.Render("Your list of todos for today"),
		"",
	}
	if len(items) == 0 {
		return append(lines, t.Muted.Render("Go ahead and add a new item"))
	}
	for i, it := range items {
		if i > 0 {
			lines = append(lines, "")
		}
		id := t.Accent.Render(fmt.Sprintf("#%d", it.ID))
		lines = append(lines, fmt.Sprintf("%s %s %s", t.SymItem, id, t.Title.Render(it.Title)))
		for _, dl := range strings.Split(it.Description, "\n") {
			lines = append(lines, "    "+t.Muted.Render(dl))
		}
	}
	lines = append(lines, "", t.Muted.Render(fmt.Sprintf("%d to go", len(items))))
	return lines
}
