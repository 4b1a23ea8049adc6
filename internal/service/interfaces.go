package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abdullah-alholiel/mutualtasks/internal/taskflow"
	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type ChangePasswordRequest struct {
	OldPassword string `validate:"required"`
	NewPassword string `validate:"required,min=8,max=72"`
}

type CreateProjectRequest struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=2000"`
}

// CreateTaskRequest describes either a one-off task or the seed of a habit
// series. Recurrence fields only apply to habits.
type CreateTaskRequest struct {
	Title             string `validate:"required,min=1,max=200"`
	Description       string `validate:"max=2000"`
	DueDate           time.Time
	Type              entity.TaskType `validate:"required,oneof=one_off habit"`
	RecurrencePattern string          `validate:"omitempty,oneof=Daily weekly custom"`
	Interval          int
	MaxOccurrences    int
	EndDate           *time.Time
	CustomFrequency   string `validate:"omitempty,oneof=days weeks months"`
	CustomInterval    int
}

type PaginationOpts struct {
	Limit  int
	Offset int
}

// TaskBuckets groups a user's task views by display status for UI sectioning.
type TaskBuckets struct {
	Active    []*entity.UserTaskView `json:"active"`
	Upcoming  []*entity.UserTaskView `json:"upcoming"`
	Completed []*entity.UserTaskView `json:"completed"`
	Archived  []*entity.UserTaskView `json:"archived"`
	Recovered []*entity.UserTaskView `json:"recovered"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Swaps the password hash after verifying the old password
	ChangePassword(ctx context.Context, id uuid.UUID, req *ChangePasswordRequest) error
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type ProjectServiceI interface {
	CreateProject(ctx context.Context, ownerID uuid.UUID, req *CreateProjectRequest) (*entity.Project, error)
	GetProject(ctx context.Context, projectID, userID uuid.UUID) (*entity.Project, error)
	ListUserProjects(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Project, error)
	// Adds a user to the project; only the owner may invite
	AddMember(ctx context.Context, projectID, ownerID, newMemberID uuid.UUID) error
}

type TaskServiceI interface {
	// Creates a one-off task, or expands a habit recurrence into the full
	// series; every project member gets a status record for every instance
	CreateTask(ctx context.Context, projectID, creatorID uuid.UUID, req *CreateTaskRequest) ([]*entity.Task, error)
	GetTask(ctx context.Context, taskID, userID uuid.UUID) (*entity.UserTaskView, error)
	// Buckets the user's tasks in a project by resolved display status
	ListTasks(ctx context.Context, projectID, userID uuid.UUID) (*TaskBuckets, error)
	// Removes a task instance; only its creator may delete
	DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error
}

type StatusServiceI interface {
	// Marks the user's task complete, computing XP and late-recovery penalty
	Complete(ctx context.Context, taskID, userID uuid.UUID, difficultyRating int) (*entity.CompletionLog, error)
	// Moves an archived status back into an actionable state
	Recover(ctx context.Context, taskID, userID uuid.UUID) (*entity.UserTaskView, error)
	// Archives the user's past-due active task without waiting for the sweep
	Archive(ctx context.Context, taskID, userID uuid.UUID) (*entity.UserTaskView, error)
	// Resolves the display status for a fetched view
	Status(view *entity.UserTaskView) taskflow.DisplayStatus
}
