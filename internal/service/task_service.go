package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"orgboard/internal/access"
	"orgboard/internal/model"
	"orgboard/internal/mq"
	"orgboard/internal/resilience"
	"orgboard/internal/response"
)

// TaskService owns task reads, updates, assignment and the status
// state machine: To Do, then Done when the assignee marks the task
// complete, then Confirmed when a Leader signs it off. Nothing moves a
// task back to an earlier status.
type TaskService struct {
	tasks       TaskStore
	users       UserStore
	assignments AssignmentStore
	gate        *access.Gate
	exec        *resilience.Executor
	events      EventPublisher
	logger      *zap.Logger
}

func NewTaskService(tasks TaskStore, users UserStore, assignments AssignmentStore, gate *access.Gate, exec *resilience.Executor, events EventPublisher, logger *zap.Logger) *TaskService {
	return &TaskService{
		tasks:       tasks,
		users:       users,
		assignments: assignments,
		gate:        gate,
		exec:        exec,
		events:      events,
		logger:      logger,
	}
}

// GetTask returns a task to any resolved caller; reads are not role
// gated.
func (s *TaskService) GetTask(ctx context.Context, taskID, callerID int) response.Response[*model.Task] {
	return resilience.Do(ctx, s.exec, "task.get", func(ctx context.Context) (response.Response[*model.Task], error) {
		task, err := s.tasks.GetTask(ctx, taskID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[*model.Task]("Task not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[*model.Task]{}, err
		}
		return response.OkMsg(task, "Task retrieved successfully"), nil
	})
}

// UpdateTask rewrites a task's descriptive fields regardless of its
// status. Leader only.
func (s *TaskService) UpdateTask(ctx context.Context, task *model.Task, callerID int) response.Response[*model.Task] {
	return resilience.Do(ctx, s.exec, "task.update", func(ctx context.Context) (response.Response[*model.Task], error) {
		leader, err := s.gate.IsTeamLeader(ctx, callerID)
		if err != nil {
			return response.Response[*model.Task]{}, err
		}
		if !leader {
			return response.Fail[*model.Task]("Access Denied", http.StatusForbidden), nil
		}

		existing, err := s.tasks.GetTask(ctx, task.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[*model.Task]("Task not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[*model.Task]{}, err
		}

		existing.Title = task.Title
		existing.Description = task.Description
		existing.Estimation = task.Estimation
		existing.Headcount = task.Headcount

		if err := s.tasks.UpdateTask(ctx, existing); err != nil {
			return response.Response[*model.Task]{}, err
		}
		return response.OkMsg(existing, "Task updated successfully"), nil
	})
}

// DeleteTask removes a task outright, cascading its assignments.
// Leader only.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, callerID int) response.Response[bool] {
	return resilience.Do(ctx, s.exec, "task.delete", func(ctx context.Context) (response.Response[bool], error) {
		leader, err := s.gate.IsTeamLeader(ctx, callerID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if !leader {
			return response.Fail[bool]("Access Denied", http.StatusForbidden), nil
		}

		if _, err := s.tasks.GetTask(ctx, taskID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("Task not found", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		if err := s.tasks.DeleteTask(ctx, taskID); err != nil {
			return response.Response[bool]{}, err
		}
		s.logger.Info("Task deleted", zap.Int("task_id", taskID), zap.Int("caller_id", callerID))
		return response.OkMsg(true, "Task deleted successfully"), nil
	})
}

// AssignTask makes a user responsible for a task. Leader only.
func (s *TaskService) AssignTask(ctx context.Context, taskID, callerID, assigneeID int) response.Response[bool] {
	return resilience.Once(ctx, s.exec, "task.assign", func(ctx context.Context) (response.Response[bool], error) {
		leader, err := s.gate.IsTeamLeader(ctx, callerID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if !leader {
			return response.Fail[bool]("Access Denied", http.StatusForbidden), nil
		}

		if _, err := s.tasks.GetTask(ctx, taskID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("Task not found", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		if _, err := s.users.GetUser(ctx, assigneeID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("User not found", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		assignment := &model.Assignment{UserID: assigneeID, TaskID: taskID}
		if err := s.assignments.CreateAssignment(ctx, assignment); err != nil {
			return response.Response[bool]{}, err
		}

		s.publish(mq.EventTaskAssigned, mq.TaskAssignedPayload{TaskID: taskID, UserID: assigneeID})
		s.logger.Info("Task assigned",
			zap.Int("task_id", taskID),
			zap.Int("assignee_id", assigneeID),
			zap.Int("caller_id", callerID),
		)
		return response.OkMsg(true, "Task assigned successfully"), nil
	})
}

// MarkTaskAsComplete moves a task to Done. Only the task's current
// assignee may do this, whatever their role.
func (s *TaskService) MarkTaskAsComplete(ctx context.Context, taskID, callerID int) response.Response[bool] {
	return resilience.Do(ctx, s.exec, "task.complete", func(ctx context.Context) (response.Response[bool], error) {
		assignee, err := s.gate.IsTaskAssignee(ctx, callerID, taskID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if !assignee {
			return response.Fail[bool]("Access Denied", http.StatusForbidden), nil
		}

		if _, err := s.tasks.GetTask(ctx, taskID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("Task not found", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		if err := s.tasks.SetStatus(ctx, taskID, model.StatusDone); err != nil {
			return response.Response[bool]{}, err
		}

		s.publish(mq.EventTaskStatusChanged, mq.TaskStatusChangedPayload{TaskID: taskID, StatusID: model.StatusDone})
		return response.OkMsg(true, "Task marked as complete"), nil
	})
}

// ConfirmTaskCompletion moves a task to Confirmed. Leader only.
func (s *TaskService) ConfirmTaskCompletion(ctx context.Context, taskID, callerID int) response.Response[bool] {
	return resilience.Do(ctx, s.exec, "task.confirm", func(ctx context.Context) (response.Response[bool], error) {
		leader, err := s.gate.IsTeamLeader(ctx, callerID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if !leader {
			return response.Fail[bool]("Access Denied", http.StatusForbidden), nil
		}

		if _, err := s.tasks.GetTask(ctx, taskID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[bool]("Task not found", http.StatusNotFound), nil
			}
			return response.Response[bool]{}, err
		}

		if err := s.tasks.SetStatus(ctx, taskID, model.StatusConfirmed); err != nil {
			return response.Response[bool]{}, err
		}

		s.publish(mq.EventTaskStatusChanged, mq.TaskStatusChangedPayload{TaskID: taskID, StatusID: model.StatusConfirmed})
		return response.OkMsg(true, "Task completion confirmed"), nil
	})
}

func (s *TaskService) publish(routingKey string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, payload); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
