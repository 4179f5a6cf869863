package update

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/taskboard/internal/client"
	"github.com/example/taskboard/internal/model"
	"github.com/example/taskboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.boardSpinner.Tick, loadTasksCmd(m.api, m.filter))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}

		if m.form.Active {
			return m.handleFormKey(typed)
		}
		if m.confirm.Active {
			return m.handleConfirmKey(typed)
		}
		if m.palette.Active {
			return m.handlePaletteKey(typed)
		}

		switch keyStr {
		case "/":
			return m.openPalette(), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleBoardKey(typed)

	case spinner.TickMsg:
		if m.spinnerActive() {
			var cmd tea.Cmd
			m.boardSpinner, cmd = m.boardSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case TasksLoadedMsg:
		if m.loading > 0 {
			m.loading--
		}
		m.tasks = typed.Tasks
		m.clampCursor()
		m.Status = StatusBar{Text: fmt.Sprintf("%d tasks loaded", len(m.tasks))}
		return m, nil

	case LoadFailedMsg:
		if m.loading > 0 {
			m.loading--
		}
		m.LastError = typed.Err
		m.Status = StatusBar{Text: "load failed: " + typed.Err.Error(), IsError: true}
		return m, nil

	case TaskCreatedMsg:
		m.pendingRequests--
		m.insertByCreation(typed.Task)
		m.form = FormState{}
		m.nameInput.SetValue("")
		m.descInput.SetValue("")
		m.Status = StatusBar{Text: "created " + shortID(typed.Task.ID)}
		return m, nil

	case CreateFailedMsg:
		m.pendingRequests--
		m.LastError = typed.Err
		if m.form.Active {
			// No speculative record was added, so the only reconciliation is
			// keeping the form open with the error attached.
			m.form.Pending = false
			m.form.Err = typed.Err.Error()
		} else {
			m.Status = StatusBar{Text: "create failed: " + typed.Err.Error(), IsError: true}
		}
		return m, nil

	case TaskUpdatedMsg:
		m.pendingRequests--
		delete(m.updating, typed.Task.ID)
		m.replaceTask(typed.Task)
		m.clampCursor()
		if m.form.Active && m.form.TaskID == typed.Task.ID {
			m.form = FormState{}
		}
		m.Status = StatusBar{Text: "updated " + shortID(typed.Task.ID)}
		return m, nil

	case UpdateFailedMsg:
		m.pendingRequests--
		// The release must be unconditional: success, failure, or panic paths
		// all leave the id free for the next mutation.
		delete(m.updating, typed.ID)
		m.replaceTask(typed.Snapshot)
		m.clampCursor()
		m.LastError = typed.Err
		if m.form.Active && m.form.TaskID == typed.ID {
			m.form.Pending = false
			m.form.Err = typed.Err.Error()
		}
		m.Status = StatusBar{Text: "update failed: " + typed.Err.Error(), IsError: true}
		return m, nil

	case TaskDeletedMsg:
		m.pendingRequests--
		delete(m.deleting, typed.ID)
		if m.confirm.Active && m.confirm.Task.ID == typed.ID {
			m.confirm = ConfirmState{}
		}
		m.Status = StatusBar{Text: "deleted " + shortID(typed.ID)}
		return m, nil

	case DeleteFailedMsg:
		m.pendingRequests--
		delete(m.deleting, typed.ID)
		m.LastError = typed.Err
		if errors.Is(typed.Err, client.ErrNotFound) {
			// Anti-entropy special case: the server no longer has the record,
			// so the optimistic removal already matches reality.
			if m.confirm.Active && m.confirm.Task.ID == typed.ID {
				m.confirm = ConfirmState{}
			}
			m.Status = StatusBar{Text: "task " + shortID(typed.ID) + " was already deleted"}
			return m, nil
		}
		m.insertByCreation(typed.Removed)
		m.clampCursor()
		if m.confirm.Active && m.confirm.Task.ID == typed.ID {
			m.confirm.Pending = false
			m.confirm.Err = typed.Err.Error()
		}
		m.Status = StatusBar{Text: "delete failed: " + typed.Err.Error(), IsError: true}
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	overlay := ""
	switch {
	case m.form.Active:
		overlay = views.RenderTaskForm(m.formData())
	case m.confirm.Active:
		overlay = views.RenderDeleteConfirm(views.ConfirmData{
			TaskName:  m.confirm.Task.Name,
			Pending:   m.confirm.Pending,
			ErrorText: m.confirm.Err,
		})
	case m.palette.Active:
		overlay = views.RenderCommandPalette(true, m.commandInput.View())
	case m.HelpVisible:
		overlay = views.RenderMarkdown(helpMarkdown)
	}

	filterLabel := m.filter
	if filterLabel == "" {
		filterLabel = "all"
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("taskboard | %d tasks | filter: %s", len(m.tasks), filterLabel),
		Board:      views.RenderBoard(m.boardData()),
		Overlay:    overlay,
		StatusLine: status,
		Footer: fmt.Sprintf("keys: %s new | %s edit | %s delete | space cycle | %s refresh | / cmd | %s help | %s quit",
			m.Keys.New, m.Keys.Edit, m.Keys.Delete, m.Keys.Refresh, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) boardData() views.BoardData {
	statuses := m.columnStatuses()
	cols := make([]views.BoardColumnData, 0, len(statuses))
	for colIdx, status := range statuses {
		tasks := m.columnTasks(status)
		items := make([]views.BoardItemData, 0, len(tasks))
		for rowIdx, task := range tasks {
			items = append(items, views.BoardItemData{
				ID:       task.ID,
				Name:     task.Name,
				Priority: string(task.Priority),
				Selected: colIdx == m.column && rowIdx == m.row,
				Pending:  m.inFlight(task.ID),
			})
		}
		cols = append(cols, views.BoardColumnData{
			Title:   string(status),
			Focused: colIdx == m.column,
			Items:   items,
		})
	}
	data := views.BoardData{Columns: cols}
	if m.spinnerActive() {
		data.Spinner = m.boardSpinner.View()
	}
	return data
}

func (m Model) formData() views.FormData {
	title := "new task"
	if m.form.TaskID != "" {
		title = "edit task " + shortID(m.form.TaskID)
	}
	focused := "name"
	switch m.form.Focus {
	case formFieldDesc:
		focused = "description"
	case formFieldPriority:
		focused = "priority"
	}
	return views.FormData{
		Title:        title,
		NameView:     m.nameInput.View(),
		DescView:     m.descInput.View(),
		Priority:     string(model.Priorities()[m.form.PriorityIdx]),
		FocusedField: focused,
		Pending:      m.form.Pending,
		ErrorText:    m.form.Err,
	}
}
