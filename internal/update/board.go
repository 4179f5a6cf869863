package update

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/taskboard/internal/client"
	"github.com/example/taskboard/internal/model"
)

// columnStatuses returns the statuses shown as board columns. An active
// filter narrows the board to that single column.
func (m Model) columnStatuses() []model.Status {
	if m.filter != "" {
		return []model.Status{model.Status(m.filter)}
	}
	return model.Statuses()
}

func (m Model) columnTasks(status model.Status) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range m.tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

func (m Model) selectedTask() *model.Task {
	statuses := m.columnStatuses()
	if m.column < 0 || m.column >= len(statuses) {
		return nil
	}
	col := m.columnTasks(statuses[m.column])
	if m.row < 0 || m.row >= len(col) {
		return nil
	}
	id := col[m.row].ID
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return &m.tasks[i]
		}
	}
	return nil
}

func (m *Model) clampCursor() {
	statuses := m.columnStatuses()
	if m.column >= len(statuses) {
		m.column = len(statuses) - 1
	}
	if m.column < 0 {
		m.column = 0
	}
	col := m.columnTasks(statuses[m.column])
	if m.row >= len(col) {
		m.row = len(col) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *Model) replaceTask(task model.Task) {
	for i := range m.tasks {
		if m.tasks[i].ID == task.ID {
			m.tasks[i] = task
			return
		}
	}
}

func (m *Model) removeTask(id string) (model.Task, bool) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			removed := m.tasks[i]
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return removed, true
		}
	}
	return model.Task{}, false
}

// insertByCreation puts a task back at its creation-order position, so a
// rolled-back delete reappears exactly where it was.
func (m *Model) insertByCreation(task model.Task) {
	idx := sort.Search(len(m.tasks), func(i int) bool {
		if m.tasks[i].CreatedAt.Equal(task.CreatedAt) {
			return m.tasks[i].ID > task.ID
		}
		return m.tasks[i].CreatedAt.After(task.CreatedAt)
	})
	m.tasks = append(m.tasks, model.Task{})
	copy(m.tasks[idx+1:], m.tasks[idx:])
	m.tasks[idx] = task
}

func (m Model) taskByPrefix(prefix string) *model.Task {
	prefix = strings.ToLower(prefix)
	var found *model.Task
	for i := range m.tasks {
		if strings.HasPrefix(strings.ToLower(m.tasks[i].ID), prefix) {
			if found != nil {
				return nil // ambiguous
			}
			found = &m.tasks[i]
		}
	}
	return found
}

func (m Model) handleBoardKey(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "h", "left":
		m.column--
		m.clampCursor()
		return m, nil
	case "l", "right":
		m.column++
		m.clampCursor()
		return m, nil
	case "k", "up":
		m.row--
		m.clampCursor()
		return m, nil
	case "j", "down":
		m.row++
		m.clampCursor()
		return m, nil
	case m.Keys.New:
		return m.openCreateForm(), nil
	case m.Keys.Edit:
		return m.openEditForm()
	case m.Keys.Delete:
		return m.openDeleteConfirm()
	case m.Keys.Cycle:
		return m.startStatusCycle()
	case m.Keys.Refresh:
		m.loading++
		return m, tea.Batch(m.boardSpinner.Tick, loadTasksCmd(m.api, m.filter))
	}
	return m, nil
}

// startStatusCycle runs the optimistic update machine for the status
// shortcut: snapshot, speculative apply, request. The snapshot is taken
// before the command suspends, so no other handler can observe a
// half-applied state.
func (m Model) startStatusCycle() (Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	if m.inFlight(task.ID) {
		m.Status = StatusBar{Text: fmt.Sprintf("task %s has a request in flight", shortID(task.ID))}
		return m, nil
	}

	snapshot := *task
	next := string(task.Status.Next())
	task.Status = model.Status(next)
	m.updating[task.ID] = true
	m.pendingRequests++
	m.clampCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("moving %s to %s", shortID(task.ID), next)}
	return m, tea.Batch(
		m.boardSpinner.Tick,
		updateTaskCmd(m.api, snapshot.ID, client.UpdateTaskRequest{Status: &next}, snapshot),
	)
}
