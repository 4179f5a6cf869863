package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/taskboard/internal/client"
	"github.com/example/taskboard/internal/commands"
	"github.com/example/taskboard/internal/model"
)

func (m Model) openPalette() Model {
	m.palette.Active = true
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	return m
}

func (m Model) handlePaletteKey(key tea.KeyMsg) (Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.palette.Active = false
		m.commandInput.Blur()
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.palette.Active = false
		m.commandInput.Blur()
		return m.runCommand(input)
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(key)
	return m, cmd
}

// runCommand dispatches a palette command onto the same optimistic machines
// the key bindings use.
func (m Model) runCommand(input string) (Model, tea.Cmd) {
	parsed, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var cmd tea.Cmd
	result, err := commands.Execute(parsed, commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			m.pendingRequests++
			cmd = createTaskCmd(m.api, client.CreateTaskRequest{Name: args.Name})
			return commands.Result{Message: "creating " + args.Name}, nil
		},
		Done: func(args commands.DoneArgs) (commands.Result, error) {
			task := m.taskByPrefix(args.Target)
			if task == nil {
				return commands.Result{}, fmt.Errorf("no unique task matches %q", args.Target)
			}
			if m.inFlight(task.ID) {
				return commands.Result{}, fmt.Errorf("task %s has a request in flight", shortID(task.ID))
			}
			snapshot := *task
			done := string(model.StatusCompleted)
			task.Status = model.StatusCompleted
			m.updating[task.ID] = true
			m.pendingRequests++
			cmd = updateTaskCmd(m.api, snapshot.ID, client.UpdateTaskRequest{Status: &done}, snapshot)
			return commands.Result{Message: "completing " + shortID(task.ID)}, nil
		},
		Delete: func(args commands.DeleteArgs) (commands.Result, error) {
			task := m.taskByPrefix(args.Target)
			if task == nil {
				return commands.Result{}, fmt.Errorf("no unique task matches %q", args.Target)
			}
			if m.inFlight(task.ID) {
				return commands.Result{}, fmt.Errorf("task %s has a request in flight", shortID(task.ID))
			}
			removed, _ := m.removeTask(task.ID)
			m.deleting[removed.ID] = true
			m.pendingRequests++
			m.clampCursor()
			cmd = deleteTaskCmd(m.api, removed)
			return commands.Result{Message: "deleting " + shortID(removed.ID)}, nil
		},
		Filter: func(args commands.FilterArgs) (commands.Result, error) {
			if args.Status != "" && !model.Status(args.Status).IsValid() {
				return commands.Result{}, fmt.Errorf("unknown status %q", args.Status)
			}
			m.filter = args.Status
			m.column = 0
			m.row = 0
			m.loading++
			cmd = loadTasksCmd(m.api, m.filter)
			label := args.Status
			if label == "" {
				label = "all"
			}
			return commands.Result{Message: "filter: " + label}, nil
		},
		Refresh: func() (commands.Result, error) {
			m.loading++
			cmd = loadTasksCmd(m.api, m.filter)
			return commands.Result{Message: "refreshing"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	m.Status = StatusBar{Text: result.Message}
	if cmd != nil {
		return m, tea.Batch(m.boardSpinner.Tick, cmd)
	}
	return m, nil
}
