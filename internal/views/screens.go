package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type BoardItemData struct {
	ID       string
	Name     string
	Priority string
	Selected bool
	Pending  bool
}

type BoardColumnData struct {
	Title   string
	Focused bool
	Items   []BoardItemData
}

type BoardData struct {
	Columns []BoardColumnData
	Spinner string
}

func RenderBoard(data BoardData) string {
	rendered := make([]string, 0, len(data.Columns))
	for _, col := range data.Columns {
		rendered = append(rendered, renderColumn(col))
	}
	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if data.Spinner != "" {
		board += "\n" + pendingStyle.Render(data.Spinner+" request in flight")
	}
	return board
}

func renderColumn(col BoardColumnData) string {
	var b strings.Builder
	title := fmt.Sprintf("%s (%d)", col.Title, len(col.Items))
	if col.Focused {
		title = selectedStyle.Render(title)
	}
	b.WriteString(title + "\n")
	if len(col.Items) == 0 {
		b.WriteString("(empty)")
	}
	for _, item := range col.Items {
		cursor := " "
		if item.Selected {
			cursor = ">"
		}
		line := fmt.Sprintf("%s [%s] %s", cursor, item.Priority, item.Name)
		if item.Pending {
			line = pendingStyle.Render(line + " …")
		} else if item.Selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return columnStyle.Render(strings.TrimRight(b.String(), "\n"))
}

type FormData struct {
	Title        string
	NameView     string
	DescView     string
	Priority     string
	FocusedField string
	Pending      bool
	ErrorText    string
}

func RenderTaskForm(data FormData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n")
	b.WriteString("name: " + data.NameView + "\n")
	b.WriteString("description: " + data.DescView + "\n")
	b.WriteString(fmt.Sprintf("priority: < %s >\n", data.Priority))
	if data.Pending {
		b.WriteString(pendingStyle.Render("saving…") + "\n")
	}
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render("error: "+data.ErrorText) + "\n")
	}
	b.WriteString("actions: [tab]next field [left/right]priority [enter]save [esc]cancel")
	return strings.TrimSpace(b.String())
}

type ConfirmData struct {
	TaskName  string
	Pending   bool
	ErrorText string
}

func RenderDeleteConfirm(data ConfirmData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("delete %q?\n", data.TaskName))
	if data.Pending {
		b.WriteString(pendingStyle.Render("deleting…") + "\n")
	}
	if data.ErrorText != "" {
		b.WriteString(errorStyle.Render("error: "+data.ErrorText) + "\n")
		b.WriteString("actions: [enter]retry [esc]close")
		return b.String()
	}
	b.WriteString("actions: [enter]confirm [esc]cancel")
	return b.String()
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}
