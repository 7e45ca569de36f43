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

// NewTask carries the caller-supplied fields of a task to create.
type NewTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Estimation  *float64 `json:"estimation,omitempty"`
	Headcount   *float64 `json:"headcount,omitempty"`
}

// BoardService owns the board lifecycle, including the cascading
// delete, and task creation onto a board.
type BoardService struct {
	boards BoardStore
	tasks  TaskStore
	users  UserStore
	gate   *access.Gate
	exec   *resilience.Executor
	events EventPublisher
	logger *zap.Logger
}

func NewBoardService(boards BoardStore, tasks TaskStore, users UserStore, gate *access.Gate, exec *resilience.Executor, events EventPublisher, logger *zap.Logger) *BoardService {
	return &BoardService{
		boards: boards,
		tasks:  tasks,
		users:  users,
		gate:   gate,
		exec:   exec,
		events: events,
		logger: logger,
	}
}

// CreateBoard persists a new board on the calling Leader's team.
func (s *BoardService) CreateBoard(ctx context.Context, name string, callerID int) response.Response[*model.Board] {
	return resilience.Once(ctx, s.exec, "board.create", func(ctx context.Context) (response.Response[*model.Board], error) {
		leader, err := s.gate.IsTeamLeader(ctx, callerID)
		if err != nil {
			return response.Response[*model.Board]{}, err
		}
		if !leader {
			return response.Fail[*model.Board]("Access Denied", http.StatusForbidden), nil
		}

		caller, err := s.users.GetUser(ctx, callerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[*model.Board]("User not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[*model.Board]{}, err
		}

		board := &model.Board{Name: name, TeamID: caller.TeamID}
		if err := s.boards.CreateBoard(ctx, board); err != nil {
			return response.Response[*model.Board]{}, err
		}
		return response.OkMsg(board, "Board created successfully"), nil
	})
}

// GetBoard returns a board to members of its team. A board without a
// team is reported as not found.
func (s *BoardService) GetBoard(ctx context.Context, boardID, callerID int) response.Response[*model.Board] {
	return resilience.Do(ctx, s.exec, "board.get", func(ctx context.Context) (response.Response[*model.Board], error) {
		board, err := s.boards.GetBoard(ctx, boardID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[*model.Board]("Board not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[*model.Board]{}, err
		}
		if board.TeamID == nil {
			return response.Fail[*model.Board]("Board not found", http.StatusNotFound), nil
		}

		member, err := s.gate.IsBoardTeamMember(ctx, callerID, boardID)
		if err != nil {
			return response.Response[*model.Board]{}, err
		}
		if !member {
			return response.Fail[*model.Board]("Access Denied", http.StatusForbidden), nil
		}

		return response.OkMsg(board, "Board retrieved successfully"), nil
	})
}

// GetTeamBoards lists a team's boards to that team's members.
func (s *BoardService) GetTeamBoards(ctx context.Context, teamID, callerID int) response.Response[[]model.Board] {
	return resilience.Do(ctx, s.exec, "board.list", func(ctx context.Context) (response.Response[[]model.Board], error) {
		member, err := s.gate.IsTeamMember(ctx, callerID, teamID)
		if err != nil {
			return response.Response[[]model.Board]{}, err
		}
		if !member {
			return response.Fail[[]model.Board]("Access Denied", http.StatusForbidden), nil
		}

		boards, err := s.boards.ListByTeam(ctx, teamID)
		if err != nil {
			return response.Response[[]model.Board]{}, err
		}
		if len(boards) == 0 {
			return response.Fail[[]model.Board]("No boards found", http.StatusNotFound), nil
		}
		return response.Ok(boards), nil
	})
}

// UpdateBoard renames a board. The caller must be a Leader on the
// board's team.
func (s *BoardService) UpdateBoard(ctx context.Context, board *model.Board, callerID int) response.Response[*model.Board] {
	return resilience.Do(ctx, s.exec, "board.update", func(ctx context.Context) (response.Response[*model.Board], error) {
		existing, err := s.boards.GetBoard(ctx, board.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[*model.Board]("Board not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[*model.Board]{}, err
		}

		ok, err := s.isBoardLeader(ctx, board.ID, callerID)
		if err != nil {
			return response.Response[*model.Board]{}, err
		}
		if !ok {
			return response.Fail[*model.Board]("Access Denied", http.StatusForbidden), nil
		}

		existing.Name = board.Name
		if err := s.boards.UpdateBoardName(ctx, existing); err != nil {
			return response.Response[*model.Board]{}, err
		}
		return response.OkMsg(existing, "Board updated successfully"), nil
	})
}

// DeleteBoard removes a board and everything scoped to it. The
// task-and-assignment cascade and the board delete commit as one
// transaction.
func (s *BoardService) DeleteBoard(ctx context.Context, boardID, callerID int) response.Response[bool] {
	return resilience.Do(ctx, s.exec, "board.delete", func(ctx context.Context) (response.Response[bool], error) {
		board, err := s.boards.GetBoard(ctx, boardID)
		if errors.Is(err, pgx.ErrNoRows) {
			return response.Fail[bool]("Board not found", http.StatusNotFound), nil
		}
		if err != nil {
			return response.Response[bool]{}, err
		}

		ok, err := s.isBoardLeader(ctx, boardID, callerID)
		if err != nil {
			return response.Response[bool]{}, err
		}
		if !ok {
			return response.Fail[bool]("Access Denied", http.StatusForbidden), nil
		}

		if err := s.boards.DeleteBoardWithTasks(ctx, boardID); err != nil {
			return response.Response[bool]{}, err
		}

		s.publish(mq.EventBoardDeleted, mq.BoardDeletedPayload{BoardID: boardID, TeamID: board.TeamID})
		s.logger.Info("Board deleted", zap.Int("board_id", boardID), zap.Int("caller_id", callerID))
		return response.OkMsg(true, "Board deleted successfully"), nil
	})
}

// GetBoardTasks lists the board's tasks to members of its team.
func (s *BoardService) GetBoardTasks(ctx context.Context, boardID, callerID int) response.Response[[]model.Task] {
	return resilience.Do(ctx, s.exec, "board.tasks", func(ctx context.Context) (response.Response[[]model.Task], error) {
		if _, err := s.boards.GetBoard(ctx, boardID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return response.Fail[[]model.Task]("Board not found", http.StatusNotFound), nil
			}
			return response.Response[[]model.Task]{}, err
		}

		member, err := s.gate.IsBoardTeamMember(ctx, callerID, boardID)
		if err != nil {
			return response.Response[[]model.Task]{}, err
		}
		if !member {
			return response.Fail[[]model.Task]("Access Denied", http.StatusForbidden), nil
		}

		tasks, err := s.tasks.ListByBoard(ctx, boardID)
		if err != nil {
			return response.Response[[]model.Task]{}, err
		}
		if len(tasks) == 0 {
			return response.Fail[[]model.Task]("No tasks found", http.StatusNotFound), nil
		}
		return response.OkMsg(tasks, "Tasks retrieved successfully"), nil
	})
}

// CreateTask creates a task on a board in the initial To Do status.
// Leader only.
func (s *BoardService) CreateTask(ctx context.Context, task NewTask, boardID, callerID int) response.Response[*model.Task] {
	return resilience.Once(ctx, s.exec, "task.create", func(ctx context.Context) (response.Response[*model.Task], error) {
		leader, err := s.gate.IsTeamLeader(ctx, callerID)
		if err != nil {
			return response.Response[*model.Task]{}, err
		}
		if !leader {
			return response.Fail[*model.Task]("Access Denied", http.StatusForbidden), nil
		}

		t := &model.Task{
			BoardID:     boardID,
			StatusID:    model.StatusToDo,
			Title:       task.Title,
			Description: task.Description,
			Estimation:  task.Estimation,
			Headcount:   task.Headcount,
		}
		if err := s.tasks.CreateTask(ctx, t); err != nil {
			return response.Response[*model.Task]{}, err
		}
		return response.OkMsg(t, "Task created successfully"), nil
	})
}

// isBoardLeader is the update/delete gate: Leader role and membership
// of the board's team.
func (s *BoardService) isBoardLeader(ctx context.Context, boardID, callerID int) (bool, error) {
	leader, err := s.gate.IsTeamLeader(ctx, callerID)
	if err != nil || !leader {
		return false, err
	}
	return s.gate.IsBoardTeamMember(ctx, callerID, boardID)
}

func (s *BoardService) publish(routingKey string, payload any) {
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
