package update

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/taskboard/internal/client"
	"github.com/example/taskboard/internal/model"
)

// TaskAPI is the slice of the HTTP client the board controller needs.
// *client.Client satisfies it; tests substitute a fake.
type TaskAPI interface {
	ListTasks(ctx context.Context, status string) ([]model.Task, error)
	CreateTask(ctx context.Context, in client.CreateTaskRequest) (model.Task, error)
	UpdateTask(ctx context.Context, id string, in client.UpdateTaskRequest) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	New     string
	Edit    string
	Delete  string
	Cycle   string
	Refresh string
	Help    string
	Quit    string
}

// FormState backs the create/edit modal. TaskID empty means create; set, it
// is an edit and Snapshot holds the pre-mutation copy used for rollback.
type FormState struct {
	Active      bool
	TaskID      string
	Snapshot    model.Task
	PriorityIdx int
	Focus       int
	Pending     bool
	Err         string
}

// ConfirmState backs the delete confirmation dialog. Task retains the
// removed record so a failed delete can reinsert it.
type ConfirmState struct {
	Active  bool
	Task    model.Task
	Pending bool
	Err     string
}

type PaletteState struct {
	Active bool
}

type Model struct {
	api TaskAPI

	// tasks is the client-side mirror of server state, kept in creation
	// order. The board columns are derived views partitioned by status.
	tasks  []model.Task
	filter string

	column int
	row    int

	// In-flight guards: at most one pending mutation per task id.
	updating map[string]bool
	deleting map[string]bool

	form    FormState
	confirm ConfirmState
	palette PaletteState

	nameInput    textinput.Model
	descInput    textinput.Model
	commandInput textinput.Model
	boardSpinner spinner.Model

	loading         int
	pendingRequests int

	Status      StatusBar
	HelpVisible bool
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
}

// Messages produced by the asynchronous API commands. Failure messages carry
// everything the reconciliation step needs, so a delayed handler never has
// to re-read state captured before the request suspended.

type TasksLoadedMsg struct {
	Tasks []model.Task
}

type LoadFailedMsg struct {
	Err error
}

type TaskCreatedMsg struct {
	Task model.Task
}

type CreateFailedMsg struct {
	Err error
}

type TaskUpdatedMsg struct {
	Task model.Task
}

type UpdateFailedMsg struct {
	ID       string
	Snapshot model.Task
	Err      error
}

type TaskDeletedMsg struct {
	ID string
}

type DeleteFailedMsg struct {
	ID      string
	Removed model.Task
	Err     error
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

func NewModel(api TaskAPI) Model {
	nameInput := textinput.New()
	nameInput.Placeholder = "task name"
	nameInput.CharLimit = 120

	descInput := textinput.New()
	descInput.Placeholder = "description (optional)"
	descInput.CharLimit = 500

	commandInput := textinput.New()
	commandInput.Placeholder = "/add buy milk"
	commandInput.Prompt = "/"

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		api:      api,
		tasks:    make([]model.Task, 0),
		updating: make(map[string]bool),
		deleting: make(map[string]bool),
		// Init fires the first load, so the model starts in the loading state.
		loading:      1,
		nameInput:    nameInput,
		descInput:    descInput,
		commandInput: commandInput,
		boardSpinner: sp,
		Keys: GlobalKeyMap{
			New:     "n",
			Edit:    "e",
			Delete:  "d",
			Cycle:   " ",
			Refresh: "r",
			Help:    "?",
			Quit:    "q",
		},
	}
}

func (m Model) inFlight(id string) bool {
	return m.updating[id] || m.deleting[id]
}

func (m Model) spinnerActive() bool {
	return m.loading > 0 || m.pendingRequests > 0
}

func loadTasksCmd(api TaskAPI, status string) tea.Cmd {
	return func() tea.Msg {
		tasks, err := api.ListTasks(context.Background(), status)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return TasksLoadedMsg{Tasks: tasks}
	}
}

func createTaskCmd(api TaskAPI, req client.CreateTaskRequest) tea.Cmd {
	return func() tea.Msg {
		task, err := api.CreateTask(context.Background(), req)
		if err != nil {
			return CreateFailedMsg{Err: err}
		}
		return TaskCreatedMsg{Task: task}
	}
}

func updateTaskCmd(api TaskAPI, id string, req client.UpdateTaskRequest, snapshot model.Task) tea.Cmd {
	return func() tea.Msg {
		task, err := api.UpdateTask(context.Background(), id, req)
		if err != nil {
			return UpdateFailedMsg{ID: id, Snapshot: snapshot, Err: err}
		}
		return TaskUpdatedMsg{Task: task}
	}
}

func deleteTaskCmd(api TaskAPI, removed model.Task) tea.Cmd {
	return func() tea.Msg {
		if err := api.DeleteTask(context.Background(), removed.ID); err != nil {
			return DeleteFailedMsg{ID: removed.ID, Removed: removed, Err: err}
		}
		return TaskDeletedMsg{ID: removed.ID}
	}
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
