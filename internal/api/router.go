package api

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/example/taskboard/internal/service"
)

func NewRouter(taskService *service.TaskService, logger *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	taskHandler := NewTaskHandler(taskService)

	mux.HandleFunc("GET /tasks", taskHandler.ListTasks)
	mux.HandleFunc("GET /tasks/{id}", taskHandler.GetTask)
	mux.HandleFunc("POST /tasks", taskHandler.CreateTask)
	mux.HandleFunc("PUT /tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", taskHandler.DeleteTask)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Envelope{Success: true, Message: "ok"})
	})

	return LoggingMiddleware(logger)(mux)
}
