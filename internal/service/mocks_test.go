package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	errorvalues "github.com/abdullah-alholiel/mutualtasks/internal/error_values"
	"github.com/abdullah-alholiel/mutualtasks/internal/service"
	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

type mockState int

const (
	stateSuccess mockState = iota
	stateDBError
	stateTaskNotFound
	stateNotParticipant
	stateProjectNotFound
	stateNotMember
	stateMemberExists
	stateDuplicateCompletion
	stateNotRecoverable
	stateNotArchivable
	stateUserExists
	stateUserNotFound
	stateXPCreditError
)

// Shared test fixtures
var (
	testUserID    = uuid.New()
	testMemberID  = uuid.New()
	testProjectID = uuid.New()
	testTaskID    = uuid.New()
)

type tasksRepoMock struct {
	state        mockState
	view         *entity.UserTaskView
	views        []*entity.UserTaskView
	created      []*entity.Task
	participants []uuid.UUID
}

func (m *tasksRepoMock) CreateBatch(ctx context.Context, tasks []*entity.Task, participantIDs []uuid.UUID) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateProjectNotFound:
		return errorvalues.ErrProjectNotFound
	}
	for _, task := range tasks {
		task.ID = uuid.New()
		task.CreatedAt = time.Now()
	}
	m.created = tasks
	m.participants = participantIDs
	return nil
}

func (m *tasksRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	switch m.state {
	case stateDBError:
		return nil, errors.New("db error")
	case stateTaskNotFound:
		return nil, errorvalues.ErrTaskNotFound
	}
	task := m.view.Task
	return &task, nil
}

func (m *tasksRepoMock) GetUserTaskView(ctx context.Context, taskID, userID uuid.UUID) (*entity.UserTaskView, error) {
	switch m.state {
	case stateDBError:
		return nil, errors.New("db error")
	case stateTaskNotFound:
		return nil, errorvalues.ErrTaskNotFound
	case stateNotParticipant:
		return nil, errorvalues.ErrNotParticipant
	}
	return m.view, nil
}

func (m *tasksRepoMock) ListUserTaskViews(ctx context.Context, projectID, userID uuid.UUID) ([]*entity.UserTaskView, error) {
	if m.state == stateDBError {
		return nil, errors.New("db error")
	}
	return m.views, nil
}

func (m *tasksRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateTaskNotFound:
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

type projectsRepoMock struct {
	state mockState
}

func (m *projectsRepoMock) Create(ctx context.Context, project *entity.Project) (uuid.UUID, error) {
	switch m.state {
	case stateDBError:
		return uuid.UUID{}, errors.New("db error")
	}
	return testProjectID, nil
}

func (m *projectsRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	switch m.state {
	case stateDBError:
		return nil, errors.New("db error")
	case stateProjectNotFound:
		return nil, errorvalues.ErrProjectNotFound
	}
	return &entity.Project{
		ID:      testProjectID,
		OwnerID: testUserID,
		Title:   "chores",
	}, nil
}

func (m *projectsRepoMock) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Project, error) {
	if m.state == stateDBError {
		return nil, errors.New("db error")
	}
	return []*entity.Project{}, nil
}

func (m *projectsRepoMock) AddMember(ctx context.Context, projectID, uid uuid.UUID) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateMemberExists:
		return errorvalues.ErrMemberExists
	case stateProjectNotFound:
		return errorvalues.ErrProjectNotFound
	}
	return nil
}

func (m *projectsRepoMock) GetMemberIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	if m.state == stateDBError {
		return nil, errors.New("db error")
	}
	return []uuid.UUID{testUserID, testMemberID}, nil
}

func (m *projectsRepoMock) IsMember(ctx context.Context, projectID, uid uuid.UUID) (bool, error) {
	switch m.state {
	case stateDBError:
		return false, errors.New("db error")
	case stateNotMember:
		return false, nil
	}
	return true, nil
}

func (m *projectsRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.state == stateDBError {
		return errors.New("db error")
	}
	return nil
}

type statusRepoMock struct {
	state mockState
	view  *entity.UserTaskView
}

func (m *statusRepoMock) MarkArchived(ctx context.Context, taskID, userID uuid.UUID, at time.Time) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotArchivable:
		return errorvalues.ErrNotArchivable
	}
	if m.view != nil {
		m.view.Status.Status = "archived"
		m.view.Status.ArchivedAt = &at
	}
	return nil
}

func (m *statusRepoMock) MarkRecovered(ctx context.Context, taskID, userID uuid.UUID, at time.Time) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateNotRecoverable:
		return errorvalues.ErrNotRecoverable
	}
	if m.view != nil {
		m.view.Status.Status = "recovered"
		m.view.Status.RecoveredAt = &at
	}
	return nil
}

func (m *statusRepoMock) SweepDue(ctx context.Context, now time.Time) (int, error) {
	if m.state == stateDBError {
		return 0, errors.New("db error")
	}
	return 0, nil
}

type completionsRepoMock struct {
	state   mockState
	created *entity.CompletionLog
}

func (m *completionsRepoMock) Create(ctx context.Context, log *entity.CompletionLog) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateDuplicateCompletion:
		return errorvalues.ErrAlreadyCompleted
	}
	m.created = log
	return nil
}

func (m *completionsRepoMock) GetByTaskAndUser(ctx context.Context, taskID, userID uuid.UUID) (*entity.CompletionLog, error) {
	if m.state == stateDBError {
		return nil, errors.New("db error")
	}
	return m.created, nil
}

type usersRepoMock struct {
	state      mockState
	user       *entity.User
	created    *entity.User
	updated    *entity.User
	xpCredited int
}

func (m *usersRepoMock) Create(ctx context.Context, user *entity.User) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateUserExists:
		return errorvalues.ErrUserExists
	}
	m.created = user
	return nil
}

func (m *usersRepoMock) FindByName(ctx context.Context, name string) (*entity.User, error) {
	switch m.state {
	case stateDBError:
		return nil, errors.New("db error")
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	}
	if m.user != nil {
		return m.user, nil
	}
	return &entity.User{ID: testUserID, Name: name}, nil
}

func (m *usersRepoMock) FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error) {
	switch m.state {
	case stateDBError:
		return nil, errors.New("db error")
	case stateUserNotFound:
		return nil, errorvalues.ErrUserNotFound
	}
	if m.user != nil {
		return m.user, nil
	}
	return &entity.User{ID: uid, Name: "test_user"}, nil
}

func (m *usersRepoMock) Update(ctx context.Context, user *entity.User) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateUserNotFound:
		return errorvalues.ErrUserNotFound
	}
	m.updated = user
	return nil
}

func (m *usersRepoMock) AddXP(ctx context.Context, uid uuid.UUID, xp int) error {
	switch m.state {
	case stateDBError:
		return errors.New("db error")
	case stateXPCreditError:
		return errors.New("xp credit error")
	}
	m.xpCredited += xp
	return nil
}

func (m *usersRepoMock) Delete(ctx context.Context, uid uuid.UUID) error {
	if m.state == stateDBError {
		return errors.New("db error")
	}
	return nil
}

func viewDue(due time.Time) *entity.UserTaskView {
	return &entity.UserTaskView{
		Task: entity.Task{
			ID:        testTaskID,
			ProjectID: testProjectID,
			CreatorID: testUserID,
			Title:     "test_task",
			DueDate:   due,
			Type:      entity.TaskTypeOneOff,
		},
		Status: entity.TaskStatus{
			TaskID: testTaskID,
			UserID: testUserID,
			Status: "active",
		},
	}
}
