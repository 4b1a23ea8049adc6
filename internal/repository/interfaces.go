package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Overwrites user's name and password hash
	Update(ctx context.Context, user *entity.User) error
	// Credits earned XP to the user's lifetime total
	AddXP(ctx context.Context, uid uuid.UUID, xp int) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type ProjectsRepositoryI interface {
	// Creates project and enrolls the owner as its first member
	Create(ctx context.Context, project *entity.Project) (uuid.UUID, error)
	// Searches project with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	// Lists projects the user is a member of. Requires pagination params
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Project, error)
	// Enrolls a user into the project
	AddMember(ctx context.Context, projectID, uid uuid.UUID) error
	// Lists member ids of a project
	GetMemberIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error)
	// Inspects if user belongs to project
	IsMember(ctx context.Context, projectID, uid uuid.UUID) (bool, error)
	// Deletes project with all its tasks
	Delete(ctx context.Context, id uuid.UUID) error
}

type TasksRepositoryI interface {
	// Inserts a series of task instances in one transaction, creating one
	// status record per (task, participant) pair
	CreateBatch(ctx context.Context, tasks []*entity.Task, participantIDs []uuid.UUID) error
	// Searches task with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)
	// Fetches the task together with one user's status and completion, keyed
	// by (taskID, userID) so callers can't mismatch records
	GetUserTaskView(ctx context.Context, taskID, userID uuid.UUID) (*entity.UserTaskView, error)
	// Lists all of a user's task views within a project
	ListUserTaskViews(ctx context.Context, projectID, userID uuid.UUID) ([]*entity.UserTaskView, error)
	// Deletes task with id, cascading statuses and completions
	Delete(ctx context.Context, id uuid.UUID) error
}

type StatusRepositoryI interface {
	// Archives one user's status; fails unless currently active and past due
	MarkArchived(ctx context.Context, taskID, userID uuid.UUID, at time.Time) error
	// Marks an archived status recovered; fails unless currently archived
	MarkRecovered(ctx context.Context, taskID, userID uuid.UUID, at time.Time) error
	// Archives every active status whose task's due date has passed.
	// Returns the number of archived records
	SweepDue(ctx context.Context, now time.Time) (int, error)
}

type CompletionsRepositoryI interface {
	// Records a completion event and flips the status record to completed in
	// one transaction. Fails if a completion already exists for the pair
	Create(ctx context.Context, log *entity.CompletionLog) error
	// Fetches the completion for (taskID, userID), nil when none exists
	GetByTaskAndUser(ctx context.Context, taskID, userID uuid.UUID) (*entity.CompletionLog, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
