package update

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/taskboard/internal/client"
	"github.com/example/taskboard/internal/model"
)

type fakeAPI struct {
	listFn   func(ctx context.Context, status string) ([]model.Task, error)
	createFn func(ctx context.Context, in client.CreateTaskRequest) (model.Task, error)
	updateFn func(ctx context.Context, id string, in client.UpdateTaskRequest) (model.Task, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeAPI) ListTasks(ctx context.Context, status string) ([]model.Task, error) {
	if f.listFn != nil {
		return f.listFn(ctx, status)
	}
	return nil, nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, in client.CreateTaskRequest) (model.Task, error) {
	if f.createFn != nil {
		return f.createFn(ctx, in)
	}
	return model.Task{}, nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, id string, in client.UpdateTaskRequest) (model.Task, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, in)
	}
	return model.Task{}, nil
}

func (f *fakeAPI) DeleteTask(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func makeTask(id, name string, status model.Status, priority model.Priority, createdOffset time.Duration) model.Task {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return model.Task{
		ID:        id,
		Name:      name,
		Status:    status,
		Priority:  priority,
		CreatedAt: base.Add(createdOffset),
		UpdatedAt: base.Add(createdOffset),
	}
}

func newBoardModel(tasks ...model.Task) Model {
	m := NewModel(&fakeAPI{})
	m.tasks = append(m.tasks, tasks...)
	m.loading = 0
	return m
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(&fakeAPI{})
	if m.Keys.Quit != "q" || m.Keys.New != "n" {
		t.Fatalf("unexpected key map: %+v", m.Keys)
	}
	if len(m.tasks) != 0 {
		t.Fatalf("expected empty board, got %d tasks", len(m.tasks))
	}
	if m.form.Active || m.confirm.Active || m.palette.Active {
		t.Fatal("no overlay should be active initially")
	}
}

func TestStatusCycleAppliesSpeculatively(t *testing.T) {
	m := newBoardModel(makeTask("task-1", "Plan", model.StatusUpcoming, model.PriorityMedium, 0))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected a request command")
	}
	if next.tasks[0].Status != model.StatusInProgress {
		t.Fatalf("expected speculative IN_PROGRESS, got %s", next.tasks[0].Status)
	}
	if !next.updating["task-1"] {
		t.Fatal("expected task-1 in the updating set")
	}
}

func TestUpdateRollbackRestoresSnapshot(t *testing.T) {
	task := makeTask("task-1", "Plan", model.StatusUpcoming, model.PriorityLow, 0)
	m := newBoardModel(task)

	// Speculative priority bump is on the board and the id is in flight.
	snapshot := m.tasks[0]
	m.tasks[0].Priority = model.PriorityHigh
	m.updating["task-1"] = true
	m.pendingRequests = 1

	serverErr := &client.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	updated, _ := m.Update(UpdateFailedMsg{ID: "task-1", Snapshot: snapshot, Err: serverErr})
	next := updated.(Model)

	if next.tasks[0].Priority != model.PriorityLow {
		t.Fatalf("expected rollback to LOW, got %s", next.tasks[0].Priority)
	}
	if next.updating["task-1"] {
		t.Fatal("updating set must release the id on failure")
	}
	if !next.Status.IsError || next.Status.Text == "" {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
	if next.pendingRequests != 0 {
		t.Fatalf("pending requests = %d, want 0", next.pendingRequests)
	}
}

func TestUpdateSuccessReleasesInFlightSet(t *testing.T) {
	m := newBoardModel(makeTask("task-1", "Plan", model.StatusUpcoming, model.PriorityMedium, 0))
	m.updating["task-1"] = true
	m.pendingRequests = 1

	server := makeTask("task-1", "Plan", model.StatusInProgress, model.PriorityMedium, 0)
	updated, _ := m.Update(TaskUpdatedMsg{Task: server})
	next := updated.(Model)

	if next.tasks[0].Status != model.StatusInProgress {
		t.Fatalf("expected server copy on board, got %s", next.tasks[0].Status)
	}
	if next.updating["task-1"] {
		t.Fatal("updating set must release the id on success")
	}
}

func TestInFlightGuardBlocksSecondMutation(t *testing.T) {
	m := newBoardModel(makeTask("task-1", "Plan", model.StatusUpcoming, model.PriorityMedium, 0))
	m.updating["task-1"] = true

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	next := updated.(Model)
	if cmd != nil {
		t.Fatal("expected no command while the id is in flight")
	}
	if next.tasks[0].Status != model.StatusUpcoming {
		t.Fatalf("status must not change while in flight, got %s", next.tasks[0].Status)
	}

	// Delete is blocked too.
	updated, _ = next.Update(keyRunes('d'))
	next = updated.(Model)
	if next.confirm.Active {
		t.Fatal("confirm dialog must not open for an in-flight task")
	}
}

func TestCreateSuccessAppendsAndClosesForm(t *testing.T) {
	m := newBoardModel(makeTask("task-1", "First", model.StatusUpcoming, model.PriorityMedium, 0))
	m.form = FormState{Active: true, Pending: true}
	m.pendingRequests = 1

	created := makeTask("task-2", "Second", model.StatusUpcoming, model.PriorityHigh, time.Minute)
	updated, _ := m.Update(TaskCreatedMsg{Task: created})
	next := updated.(Model)

	if next.form.Active {
		t.Fatal("form must close on successful create")
	}
	if len(next.tasks) != 2 || next.tasks[1].ID != "task-2" {
		t.Fatalf("expected appended task, got %#v", next.tasks)
	}
}

func TestCreateFailureKeepsFormOpen(t *testing.T) {
	m := newBoardModel()
	m.form = FormState{Active: true, Pending: true}
	m.pendingRequests = 1

	updated, _ := m.Update(CreateFailedMsg{Err: &client.ValidationError{Message: "name required"}})
	next := updated.(Model)

	if !next.form.Active {
		t.Fatal("form must stay open on create failure")
	}
	if next.form.Pending {
		t.Fatal("pending affordance must clear on failure")
	}
	if next.form.Err == "" {
		t.Fatal("expected inline form error")
	}
	if len(next.tasks) != 0 {
		t.Fatal("no speculative record may be added for create")
	}
}

func TestDeleteRemovesImmediately(t *testing.T) {
	m := newBoardModel(makeTask("task-1", "Doomed", model.StatusUpcoming, model.PriorityMedium, 0))

	updated, _ := m.Update(keyRunes('d'))
	next := updated.(Model)
	if !next.confirm.Active || next.confirm.Task.ID != "task-1" {
		t.Fatalf("expected confirm dialog for task-1, got %+v", next.confirm)
	}

	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a delete command")
	}
	if len(next.tasks) != 0 {
		t.Fatal("task must leave the board before the request resolves")
	}
	if !next.deleting["task-1"] {
		t.Fatal("expected task-1 in the deleting set")
	}
	if !next.confirm.Pending {
		t.Fatal("expected pending confirm dialog")
	}
}

func TestDeleteNotFoundIsBenign(t *testing.T) {
	removed := makeTask("task-1", "Ghost", model.StatusUpcoming, model.PriorityMedium, 0)
	m := newBoardModel()
	m.confirm = ConfirmState{Active: true, Task: removed, Pending: true}
	m.deleting["task-1"] = true
	m.pendingRequests = 1

	updated, _ := m.Update(DeleteFailedMsg{ID: "task-1", Removed: removed, Err: client.ErrNotFound})
	next := updated.(Model)

	if len(next.tasks) != 0 {
		t.Fatal("task must not be reinserted when the server says not found")
	}
	if next.confirm.Active {
		t.Fatal("confirm dialog must close on the not-found special case")
	}
	if next.Status.IsError {
		t.Fatalf("expected informational status, got error: %+v", next.Status)
	}
	if next.deleting["task-1"] {
		t.Fatal("deleting set must release the id")
	}
}

func TestDeleteFailureReinsertsAtCreationOrder(t *testing.T) {
	first := makeTask("task-1", "First", model.StatusUpcoming, model.PriorityMedium, 0)
	middle := makeTask("task-2", "Middle", model.StatusUpcoming, model.PriorityMedium, time.Minute)
	last := makeTask("task-3", "Last", model.StatusUpcoming, model.PriorityMedium, 2*time.Minute)

	m := newBoardModel(first, last)
	m.confirm = ConfirmState{Active: true, Task: middle, Pending: true}
	m.deleting["task-2"] = true
	m.pendingRequests = 1

	serverErr := &client.APIError{StatusCode: http.StatusInternalServerError, Message: "db down"}
	updated, _ := m.Update(DeleteFailedMsg{ID: "task-2", Removed: middle, Err: serverErr})
	next := updated.(Model)

	if len(next.tasks) != 3 || next.tasks[1].ID != "task-2" {
		ids := make([]string, 0, len(next.tasks))
		for _, task := range next.tasks {
			ids = append(ids, task.ID)
		}
		t.Fatalf("expected reinsertion at creation position, got order %v", ids)
	}
	if !next.confirm.Active || next.confirm.Err == "" {
		t.Fatalf("confirm dialog must stay open with a retryable error, got %+v", next.confirm)
	}
	if next.confirm.Pending {
		t.Fatal("pending affordance must clear on failure")
	}
	if next.deleting["task-2"] {
		t.Fatal("deleting set must release the id")
	}
}

func TestDeleteSuccessClosesDialog(t *testing.T) {
	m := newBoardModel()
	m.confirm = ConfirmState{Active: true, Task: makeTask("task-1", "Done for", model.StatusCompleted, model.PriorityLow, 0), Pending: true}
	m.deleting["task-1"] = true
	m.pendingRequests = 1

	updated, _ := m.Update(TaskDeletedMsg{ID: "task-1"})
	next := updated.(Model)
	if next.confirm.Active {
		t.Fatal("confirm dialog must close on success")
	}
	if next.deleting["task-1"] {
		t.Fatal("deleting set must release the id")
	}
}

func TestTasksLoadedReplacesBoard(t *testing.T) {
	m := newBoardModel(makeTask("stale", "Old", model.StatusUpcoming, model.PriorityMedium, 0))
	m.loading = 1
	m.row = 5

	fresh := []model.Task{
		makeTask("task-1", "New one", model.StatusUpcoming, model.PriorityMedium, 0),
	}
	updated, _ := m.Update(TasksLoadedMsg{Tasks: fresh})
	next := updated.(Model)

	if len(next.tasks) != 1 || next.tasks[0].ID != "task-1" {
		t.Fatalf("unexpected board: %#v", next.tasks)
	}
	if next.row != 0 {
		t.Fatalf("cursor must be clamped, row = %d", next.row)
	}
	if next.loading != 0 {
		t.Fatalf("loading = %d, want 0", next.loading)
	}
}

func TestPaletteAddProducesCommand(t *testing.T) {
	m := newBoardModel()
	next, cmd := m.runCommand("/add write docs")
	if cmd == nil {
		t.Fatal("expected create command")
	}
	if next.pendingRequests != 1 {
		t.Fatalf("pending requests = %d, want 1", next.pendingRequests)
	}
	if next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}
}

func TestPaletteDoneResolvesPrefix(t *testing.T) {
	m := newBoardModel(makeTask("abc12345", "Prefixed", model.StatusUpcoming, model.PriorityMedium, 0))
	next, cmd := m.runCommand("/done abc")
	if cmd == nil {
		t.Fatal("expected update command")
	}
	if next.tasks[0].Status != model.StatusCompleted {
		t.Fatalf("expected speculative COMPLETED, got %s", next.tasks[0].Status)
	}
	if !next.updating["abc12345"] {
		t.Fatal("expected id in updating set")
	}
}

func TestPaletteRejectsUnknownFilter(t *testing.T) {
	m := newBoardModel()
	next, cmd := m.runCommand("/filter bogus")
	if cmd != nil {
		t.Fatal("expected no command for invalid filter")
	}
	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newBoardModel()
	updated, cmd := m.Update(keyRunes('q'))
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := newBoardModel(makeTask("task-42", "Visible task", model.StatusUpcoming, model.PriorityHigh, 0))
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "taskboard") {
		t.Fatalf("expected header in output: %q", out)
	}
	if !strings.Contains(out, "Visible task") {
		t.Fatalf("expected task name in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
}
