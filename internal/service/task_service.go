package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	errorvalues "github.com/abdullah-alholiel/mutualtasks/internal/error_values"
	"github.com/abdullah-alholiel/mutualtasks/internal/repository"
	"github.com/abdullah-alholiel/mutualtasks/internal/taskflow"
	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
)

type TaskService struct {
	tasksRepo    repository.TasksRepositoryI
	projectsRepo repository.ProjectsRepositoryI
}

func NewTaskService(tasksRepo repository.TasksRepositoryI, projectsRepo repository.ProjectsRepositoryI) *TaskService {
	if tasksRepo == nil || projectsRepo == nil {
		log.Fatal("on task service provided nil repos")
	}
	return &TaskService{
		tasksRepo:    tasksRepo,
		projectsRepo: projectsRepo,
	}
}

// CreateTask turns the request into one task, or for habits into the whole
// generated series. Every project member gets a status record on every
// instance, so each participant completes independently.
func (ts *TaskService) CreateTask(ctx context.Context, projectID, creatorID uuid.UUID, req *CreateTaskRequest) ([]*entity.Task, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	member, err := ts.projectsRepo.IsMember(ctx, projectID, creatorID)
	if err != nil {
		return nil, errors.New("projects repository error: " + err.Error())
	}
	if !member {
		return nil, errorvalues.ErrNotMember
	}
	participants, err := ts.projectsRepo.GetMemberIDs(ctx, projectID)
	if err != nil {
		return nil, errors.New("projects repository error: " + err.Error())
	}

	dueDates := []time.Time{req.DueDate}
	pattern := ""
	var seriesID *uuid.UUID
	if req.Type == entity.TaskTypeHabit {
		p := taskflow.Pattern(req.RecurrencePattern)
		if req.RecurrencePattern == "" {
			return nil, errorvalues.ErrInvalidRecurrence
		}
		maxOcc := req.MaxOccurrences
		if maxOcc <= 0 {
			maxOcc = taskflow.DefaultOccurrences(p)
		}
		var custom *taskflow.CustomRecurrence
		if req.CustomFrequency != "" {
			custom = &taskflow.CustomRecurrence{
				Frequency: taskflow.Frequency(req.CustomFrequency),
				Interval:  req.CustomInterval,
			}
		}
		dueDates = taskflow.Occurrences(req.DueDate, p, req.Interval, maxOcc, req.EndDate, custom)
		if len(dueDates) == 0 {
			return nil, errorvalues.ErrInvalidRecurrence
		}
		pattern = req.RecurrencePattern
		sid := uuid.New()
		seriesID = &sid
	}

	tasks := make([]*entity.Task, 0, len(dueDates))
	for _, due := range dueDates {
		tasks = append(tasks, &entity.Task{
			ProjectID:         projectID,
			CreatorID:         creatorID,
			Title:             req.Title,
			Description:       req.Description,
			DueDate:           due,
			Type:              req.Type,
			RecurrencePattern: pattern,
			SeriesID:          seriesID,
		})
	}
	err = ts.tasksRepo.CreateBatch(ctx, tasks, participants)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProjectNotFound) {
			return nil, err
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	return tasks, nil
}

func (ts *TaskService) GetTask(ctx context.Context, taskID, userID uuid.UUID) (*entity.UserTaskView, error) {
	view, err := ts.tasksRepo.GetUserTaskView(ctx, taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound), errors.Is(err, errorvalues.ErrNotParticipant):
			return nil, err
		}
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	return view, nil
}

// ListTasks resolves every view through the same precedence rules the rest of
// the system uses and groups them into the UI's display sections.
func (ts *TaskService) ListTasks(ctx context.Context, projectID, userID uuid.UUID) (*TaskBuckets, error) {
	member, err := ts.projectsRepo.IsMember(ctx, projectID, userID)
	if err != nil {
		return nil, errors.New("projects repository error: " + err.Error())
	}
	if !member {
		return nil, errorvalues.ErrNotMember
	}
	views, err := ts.tasksRepo.ListUserTaskViews(ctx, projectID, userID)
	if err != nil {
		return nil, errors.New("tasks repository error: " + err.Error())
	}
	buckets := TaskBuckets{
		Active:    make([]*entity.UserTaskView, 0),
		Upcoming:  make([]*entity.UserTaskView, 0),
		Completed: make([]*entity.UserTaskView, 0),
		Archived:  make([]*entity.UserTaskView, 0),
		Recovered: make([]*entity.UserTaskView, 0),
	}
	now := time.Now()
	for _, v := range views {
		switch taskflow.ResolveView(v, now) {
		case taskflow.StatusCompleted:
			buckets.Completed = append(buckets.Completed, v)
		case taskflow.StatusRecovered:
			buckets.Recovered = append(buckets.Recovered, v)
		case taskflow.StatusArchived:
			buckets.Archived = append(buckets.Archived, v)
		case taskflow.StatusUpcoming:
			buckets.Upcoming = append(buckets.Upcoming, v)
		default:
			buckets.Active = append(buckets.Active, v)
		}
	}
	return &buckets, nil
}

func (ts *TaskService) DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error {
	task, err := ts.tasksRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return err
		}
		return errors.New("tasks repository error: " + err.Error())
	}
	if task.CreatorID != userID {
		return errorvalues.ErrWrongOwner
	}
	err = ts.tasksRepo.Delete(ctx, taskID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrTaskNotFound) {
			return err
		}
		return errors.New("tasks repository error: " + err.Error())
	}
	return nil
}
