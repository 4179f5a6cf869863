package api

import (
	"encoding/json"
	"net/http"

	"github.com/example/taskboard/internal/service"
)

type CreateTaskRequestBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type UpdateTaskRequestBody struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	tasks, err := h.taskService.List(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, tasks, "")
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, task, "")
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var body CreateTaskRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{
			Success: false,
			Error:   "bad_request",
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	task, err := h.taskService.Create(r.Context(), service.CreateInput{
		Name:        body.Name,
		Description: body.Description,
		Priority:    body.Priority,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, task, "task created")
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var body UpdateTaskRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{
			Success: false,
			Error:   "bad_request",
			Message: "invalid JSON body: " + err.Error(),
		})
		return
	}

	task, err := h.taskService.Update(r.Context(), r.PathValue("id"), service.UpdateInput{
		Name:        body.Name,
		Description: body.Description,
		Status:      body.Status,
		Priority:    body.Priority,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, task, "task updated")
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "task deleted"})
}
