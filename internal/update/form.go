package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/taskboard/internal/client"
	"github.com/example/taskboard/internal/model"
)

const (
	formFieldName = iota
	formFieldDesc
	formFieldPriority
)

func (m Model) openCreateForm() Model {
	m.form = FormState{Active: true, PriorityIdx: priorityIndex(model.PriorityMedium)}
	m.nameInput.SetValue("")
	m.descInput.SetValue("")
	m.nameInput.Focus()
	m.descInput.Blur()
	return m
}

func (m Model) openEditForm() (Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	if m.inFlight(task.ID) {
		m.Status = StatusBar{Text: "task " + shortID(task.ID) + " has a request in flight"}
		return m, nil
	}
	m.form = FormState{
		Active:      true,
		TaskID:      task.ID,
		Snapshot:    *task,
		PriorityIdx: priorityIndex(task.Priority),
	}
	m.nameInput.SetValue(task.Name)
	m.descInput.SetValue(task.Description)
	m.nameInput.Focus()
	m.descInput.Blur()
	return m, nil
}

func (m Model) handleFormKey(key tea.KeyMsg) (Model, tea.Cmd) {
	if m.form.Pending {
		// A save is in flight; only escape is honored, and it abandons the
		// form without touching the request outcome.
		if key.String() == "esc" {
			m.form = FormState{}
			return m, nil
		}
		return m, nil
	}

	switch key.String() {
	case "esc":
		m.form = FormState{}
		return m, nil
	case "tab", "shift+tab":
		if key.String() == "tab" {
			m.form.Focus = (m.form.Focus + 1) % 3
		} else {
			m.form.Focus = (m.form.Focus + 2) % 3
		}
		m.nameInput.Blur()
		m.descInput.Blur()
		switch m.form.Focus {
		case formFieldName:
			m.nameInput.Focus()
		case formFieldDesc:
			m.descInput.Focus()
		}
		return m, nil
	case "left":
		if m.form.Focus == formFieldPriority {
			m.form.PriorityIdx = (m.form.PriorityIdx + len(model.Priorities()) - 1) % len(model.Priorities())
			return m, nil
		}
	case "right":
		if m.form.Focus == formFieldPriority {
			m.form.PriorityIdx = (m.form.PriorityIdx + 1) % len(model.Priorities())
			return m, nil
		}
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	switch m.form.Focus {
	case formFieldName:
		m.nameInput, cmd = m.nameInput.Update(key)
	case formFieldDesc:
		m.descInput, cmd = m.descInput.Update(key)
	}
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	if strings.TrimSpace(m.nameInput.Value()) == "" {
		m.form.Err = "name must not be empty"
		return m, nil
	}

	if m.form.TaskID == "" {
		return m.submitCreate()
	}
	return m.submitEdit()
}

// submitCreate issues the request without touching the board: the server
// assigns the id and timestamps, so there is nothing to apply speculatively
// and nothing to roll back.
func (m Model) submitCreate() (Model, tea.Cmd) {
	m.form.Pending = true
	m.form.Err = ""
	m.pendingRequests++
	req := client.CreateTaskRequest{
		Name:        m.nameInput.Value(),
		Description: m.descInput.Value(),
		Priority:    string(model.Priorities()[m.form.PriorityIdx]),
	}
	return m, tea.Batch(m.boardSpinner.Tick, createTaskCmd(m.api, req))
}

// submitEdit runs the optimistic update machine: the board shows the edited
// values immediately and the snapshot in the form state is the rollback.
func (m Model) submitEdit() (Model, tea.Cmd) {
	id := m.form.TaskID
	if m.inFlight(id) {
		m.form.Err = "a request for this task is already in flight"
		return m, nil
	}

	name := m.nameInput.Value()
	desc := m.descInput.Value()
	priority := string(model.Priorities()[m.form.PriorityIdx])

	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Name = name
			m.tasks[i].Description = desc
			m.tasks[i].Priority = model.Priority(priority)
		}
	}

	m.form.Pending = true
	m.form.Err = ""
	m.updating[id] = true
	m.pendingRequests++
	req := client.UpdateTaskRequest{Name: &name, Description: &desc, Priority: &priority}
	return m, tea.Batch(m.boardSpinner.Tick, updateTaskCmd(m.api, id, req, m.form.Snapshot))
}

func priorityIndex(p model.Priority) int {
	for i, candidate := range model.Priorities() {
		if candidate == p {
			return i
		}
	}
	return 1
}
