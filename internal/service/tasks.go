package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/example/taskboard/internal/model"
	"github.com/example/taskboard/internal/storage"
)

// TaskService owns the CRUD semantics over the task store: id generation,
// enum validation, defaulting, partial merges, and the updated_at refresh.
type TaskService struct {
	repo   storage.Repository
	logger *logrus.Logger
	now    func() time.Time
	newID  func() string
}

func NewTaskService(repo storage.Repository, logger *logrus.Logger) *TaskService {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &TaskService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.New().String() },
	}
}

// WithClock fixes the service clock and id source. Test hook.
func (s *TaskService) WithClock(now func() time.Time, newID func() string) *TaskService {
	if now != nil {
		s.now = now
	}
	if newID != nil {
		s.newID = newID
	}
	return s
}

type CreateInput struct {
	Name        string
	Description string
	Priority    string
}

type UpdateInput struct {
	Name        *string
	Description *string
	Status      *string
	Priority    *string
}

func (s *TaskService) List(ctx context.Context, status string) ([]model.Task, error) {
	if status != "" && !model.Status(status).IsValid() {
		return nil, invalidField("status", "must be one of UPCOMING, IN_PROGRESS, COMPLETED")
	}
	rows, err := s.repo.ListTasks(ctx, storage.TaskListFilter{Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromEntity(row))
	}
	return out, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (model.Task, error) {
	row, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	return fromEntity(row), nil
}

func (s *TaskService) Create(ctx context.Context, in CreateInput) (model.Task, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Task{}, invalidField("name", "must not be empty")
	}

	priority := model.PriorityMedium
	if in.Priority != "" {
		priority = model.Priority(in.Priority)
		if !priority.IsValid() {
			return model.Task{}, invalidField("priority", "must be one of LOW, MEDIUM, HIGH")
		}
	}

	now := s.now()
	task := model.Task{
		ID:          s.newID(),
		Name:        name,
		Description: in.Description,
		Status:      model.StatusUpcoming,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	if err := s.repo.CreateTask(ctx, toEntity(task)); err != nil {
		return model.Task{}, err
	}
	s.logger.WithFields(logrus.Fields{"task_id": task.ID, "priority": task.Priority}).Info("task created")
	return task, nil
}

// Update merges the provided fields into the stored task. Validation happens
// before any write, so a rejected update leaves the record untouched.
func (s *TaskService) Update(ctx context.Context, id string, in UpdateInput) (model.Task, error) {
	existing, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	task := fromEntity(existing)

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.Task{}, invalidField("name", "must not be empty")
		}
		task.Name = name
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		status := model.Status(*in.Status)
		if !status.IsValid() {
			return model.Task{}, invalidField("status", "must be one of UPCOMING, IN_PROGRESS, COMPLETED")
		}
		task.Status = status
	}
	if in.Priority != nil {
		priority := model.Priority(*in.Priority)
		if !priority.IsValid() {
			return model.Task{}, invalidField("priority", "must be one of LOW, MEDIUM, HIGH")
		}
		task.Priority = priority
	}

	task.UpdatedAt = s.now()
	if err := s.repo.UpdateTask(ctx, toEntity(task)); err != nil {
		return model.Task{}, err
	}
	s.logger.WithField("task_id", task.ID).Info("task updated")
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("task_id", id).Info("task deleted")
	return nil
}

func toEntity(t model.Task) storage.Task {
	return storage.Task{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func fromEntity(t storage.Task) model.Task {
	return model.Task{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Status:      model.Status(t.Status),
		Priority:    model.Priority(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
