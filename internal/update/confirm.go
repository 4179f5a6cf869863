package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) openDeleteConfirm() (Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	if m.inFlight(task.ID) {
		m.Status = StatusBar{Text: "task " + shortID(task.ID) + " has a request in flight"}
		return m, nil
	}
	m.confirm = ConfirmState{Active: true, Task: *task}
	return m, nil
}

func (m Model) handleConfirmKey(key tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirm.Pending {
		return m, nil
	}

	switch key.String() {
	case "esc", "n":
		m.confirm = ConfirmState{}
		return m, nil
	case "enter", "y":
		return m.startDelete()
	}
	return m, nil
}

// startDelete runs the optimistic delete machine: the task leaves the board
// immediately and the confirm state retains the removed copy for the
// rollback path. Enter on a failed confirm retries with the same copy.
func (m Model) startDelete() (Model, tea.Cmd) {
	id := m.confirm.Task.ID
	if m.inFlight(id) {
		return m, nil
	}

	removed, ok := m.removeTask(id)
	if !ok {
		// Already gone locally; nothing to send.
		m.confirm = ConfirmState{}
		return m, nil
	}

	m.confirm.Pending = true
	m.confirm.Err = ""
	m.deleting[id] = true
	m.pendingRequests++
	m.clampCursor()
	return m, tea.Batch(m.boardSpinner.Tick, deleteTaskCmd(m.api, removed))
}
