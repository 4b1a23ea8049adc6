package service

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/abdullah-alholiel/mutualtasks/internal/error_values"
	"github.com/abdullah-alholiel/mutualtasks/internal/repository"
	"github.com/abdullah-alholiel/mutualtasks/internal/taskflow"
	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
)

type StatusService struct {
	tasksRepo       repository.TasksRepositoryI
	statusRepo      repository.StatusRepositoryI
	completionsRepo repository.CompletionsRepositoryI
	usersRepo       repository.UsersRepositoryI
}

func NewStatusService(
	tasksRepo repository.TasksRepositoryI,
	statusRepo repository.StatusRepositoryI,
	completionsRepo repository.CompletionsRepositoryI,
	usersRepo repository.UsersRepositoryI,
) *StatusService {
	if tasksRepo == nil || statusRepo == nil || completionsRepo == nil || usersRepo == nil {
		log.Fatal("on status service provided nil repos")
	}
	return &StatusService{
		tasksRepo:       tasksRepo,
		statusRepo:      statusRepo,
		completionsRepo: completionsRepo,
		usersRepo:       usersRepo,
	}
}

// Complete records the one-time completion event for this user's task. The
// resolver gates the action; the completion insert rides the unique
// constraint, so two racing tabs still produce a single log.
func (ss *StatusService) Complete(ctx context.Context, taskID, userID uuid.UUID, difficultyRating int) (*entity.CompletionLog, error) {
	view, err := ss.tasksRepo.GetUserTaskView(ctx, taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound), errors.Is(err, errorvalues.ErrNotParticipant):
			return nil, err
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	now := time.Now()
	status := taskflow.ResolveView(view, now)
	if status == taskflow.StatusCompleted {
		return nil, errorvalues.ErrAlreadyCompleted
	}
	if !taskflow.CanComplete(status, view.Completion != nil) {
		return nil, errorvalues.ErrNotCompletable
	}
	penalty := taskflow.PenaltyApplies(&view.Status, view.Task.DueDate, now)
	completion := entity.CompletionLog{
		TaskID:           taskID,
		UserID:           userID,
		CreatedAt:        now,
		DifficultyRating: difficultyRating,
		PenaltyApplied:   penalty,
		XPEarned:         taskflow.XP(difficultyRating, penalty),
	}
	err = ss.completionsRepo.Create(ctx, &completion)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAlreadyCompleted) {
			return nil, err
		}
		return nil, errors.New("completions repository error: " + err.Error())
	}
	// total_xp is a denormalized sum of completion_logs.xp_earned; a failed
	// credit leaves the log authoritative and the total reconcilable from it
	if err = ss.usersRepo.AddXP(ctx, userID, completion.XPEarned); err != nil {
		slog.Error("crediting xp failed after completion",
			slog.String("task_id", taskID.String()),
			slog.String("uid", userID.String()),
			slog.Int("xp", completion.XPEarned),
			slog.String("error", err.Error()))
	}
	return &completion, nil
}

// Archive lets a user archive their own past-due task ahead of the sweep. The
// repository re-checks the active-and-past-due condition inside the UPDATE.
func (ss *StatusService) Archive(ctx context.Context, taskID, userID uuid.UUID) (*entity.UserTaskView, error) {
	view, err := ss.tasksRepo.GetUserTaskView(ctx, taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound), errors.Is(err, errorvalues.ErrNotParticipant):
			return nil, err
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	now := time.Now()
	if taskflow.ResolveView(view, now) != taskflow.StatusActive {
		return nil, errorvalues.ErrNotArchivable
	}
	err = ss.statusRepo.MarkArchived(ctx, taskID, userID, now)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNotArchivable) {
			return nil, err
		}
		return nil, errors.New("status repository error: " + err.Error())
	}
	view, err = ss.tasksRepo.GetUserTaskView(ctx, taskID, userID)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	return view, nil
}

// Recover un-archives the user's task so it can still be completed, at half
// XP once the due date has passed.
func (ss *StatusService) Recover(ctx context.Context, taskID, userID uuid.UUID) (*entity.UserTaskView, error) {
	view, err := ss.tasksRepo.GetUserTaskView(ctx, taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound), errors.Is(err, errorvalues.ErrNotParticipant):
			return nil, err
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	now := time.Now()
	if !taskflow.CanRecover(taskflow.ResolveView(view, now)) {
		return nil, errorvalues.ErrNotRecoverable
	}
	err = ss.statusRepo.MarkRecovered(ctx, taskID, userID, now)
	if err != nil {
		if errors.Is(err, errorvalues.ErrNotRecoverable) {
			return nil, err
		}
		return nil, errors.New("status repository error: " + err.Error())
	}
	view, err = ss.tasksRepo.GetUserTaskView(ctx, taskID, userID)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	return view, nil
}

func (ss *StatusService) Status(view *entity.UserTaskView) taskflow.DisplayStatus {
	return taskflow.ResolveView(view, time.Now())
}
