package taskflow_test

import (
	"testing"
	"time"

	"github.com/abdullah-alholiel/mutualtasks/internal/taskflow"
	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var (
	now       = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	yesterday = time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	tomorrow  = time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)
)

func taskDue(due time.Time) *entity.Task {
	return &entity.Task{
		ID:      uuid.New(),
		Title:   "water the plants",
		DueDate: due,
		Type:    entity.TaskTypeOneOff,
	}
}

func TestResolve(t *testing.T) {
	uid := uuid.New()
	t.Run("completion wins over everything", func(t *testing.T) {
		archived := now.Add(-time.Hour)
		recovered := now.Add(-30 * time.Minute)
		st := &entity.TaskStatus{UserID: uid, Status: "archived", ArchivedAt: &archived, RecoveredAt: &recovered}
		comp := &entity.CompletionLog{UserID: uid, CreatedAt: now}
		got := taskflow.Resolve(taskDue(yesterday), st, comp, now)
		assert.Equal(t, taskflow.StatusCompleted, got)
	})
	t.Run("completed even if owner archived afterwards", func(t *testing.T) {
		archived := now.Add(time.Hour)
		st := &entity.TaskStatus{UserID: uid, Status: "completed", ArchivedAt: &archived}
		comp := &entity.CompletionLog{UserID: uid, CreatedAt: now.Add(-time.Hour)}
		got := taskflow.Resolve(taskDue(yesterday), st, comp, now)
		assert.Equal(t, taskflow.StatusCompleted, got)
	})
	t.Run("recovered without completion", func(t *testing.T) {
		archived := now.Add(-2 * time.Hour)
		recovered := now.Add(-time.Hour)
		st := &entity.TaskStatus{UserID: uid, Status: "recovered", ArchivedAt: &archived, RecoveredAt: &recovered}
		got := taskflow.Resolve(taskDue(yesterday), st, nil, now)
		assert.Equal(t, taskflow.StatusRecovered, got)
	})
	t.Run("archived by timestamp", func(t *testing.T) {
		archived := now.Add(-time.Hour)
		st := &entity.TaskStatus{UserID: uid, Status: "active", ArchivedAt: &archived}
		got := taskflow.Resolve(taskDue(yesterday), st, nil, now)
		assert.Equal(t, taskflow.StatusArchived, got)
	})
	t.Run("archived by stored status alone", func(t *testing.T) {
		st := &entity.TaskStatus{UserID: uid, Status: "archived"}
		got := taskflow.Resolve(taskDue(yesterday), st, nil, now)
		assert.Equal(t, taskflow.StatusArchived, got)
	})
	t.Run("due tomorrow is upcoming", func(t *testing.T) {
		st := &entity.TaskStatus{UserID: uid, Status: "active"}
		got := taskflow.Resolve(taskDue(tomorrow), st, nil, now)
		assert.Equal(t, taskflow.StatusUpcoming, got)
	})
	t.Run("due today is active", func(t *testing.T) {
		today := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
		st := &entity.TaskStatus{UserID: uid, Status: "active"}
		got := taskflow.Resolve(taskDue(today), st, nil, now)
		assert.Equal(t, taskflow.StatusActive, got)
	})
	t.Run("past due without archival mark stays active", func(t *testing.T) {
		// The sweep owns archival; the resolver never infers it from the clock.
		st := &entity.TaskStatus{UserID: uid, Status: "active"}
		got := taskflow.Resolve(taskDue(yesterday), st, nil, now)
		assert.Equal(t, taskflow.StatusActive, got)
	})
	t.Run("explicit time-of-day compares exactly", func(t *testing.T) {
		dueLater := time.Date(2026, time.March, 15, 18, 30, 0, 0, time.UTC)
		st := &entity.TaskStatus{UserID: uid, Status: "active"}
		assert.Equal(t, taskflow.StatusUpcoming, taskflow.Resolve(taskDue(dueLater), st, nil, now))
		dueEarlier := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
		assert.Equal(t, taskflow.StatusActive, taskflow.Resolve(taskDue(dueEarlier), st, nil, now))
	})
}

func TestActionGating(t *testing.T) {
	t.Run("complete only for active and recovered", func(t *testing.T) {
		assert.True(t, taskflow.CanComplete(taskflow.StatusActive, false))
		assert.True(t, taskflow.CanComplete(taskflow.StatusRecovered, false))
		assert.False(t, taskflow.CanComplete(taskflow.StatusUpcoming, false))
		assert.False(t, taskflow.CanComplete(taskflow.StatusArchived, false))
		assert.False(t, taskflow.CanComplete(taskflow.StatusCompleted, true))
		assert.False(t, taskflow.CanComplete(taskflow.StatusActive, true))
	})
	t.Run("recover only for archived", func(t *testing.T) {
		assert.True(t, taskflow.CanRecover(taskflow.StatusArchived))
		assert.False(t, taskflow.CanRecover(taskflow.StatusRecovered))
		assert.False(t, taskflow.CanRecover(taskflow.StatusCompleted))
		assert.False(t, taskflow.CanRecover(taskflow.StatusActive))
		assert.False(t, taskflow.CanRecover(taskflow.StatusUpcoming))
	})
	t.Run("archived never offers both actions", func(t *testing.T) {
		for _, s := range []taskflow.DisplayStatus{
			taskflow.StatusActive, taskflow.StatusUpcoming, taskflow.StatusCompleted,
			taskflow.StatusArchived, taskflow.StatusRecovered,
		} {
			assert.False(t, taskflow.CanRecover(s) && taskflow.CanComplete(s, false), "status %s", s)
		}
	})
}

func TestXP(t *testing.T) {
	t.Run("base is rating times 100", func(t *testing.T) {
		assert.Equal(t, 100, taskflow.XP(1, false))
		assert.Equal(t, 500, taskflow.XP(5, false))
	})
	t.Run("unrated defaults to difficulty 3", func(t *testing.T) {
		assert.Equal(t, 300, taskflow.XP(0, false))
	})
	t.Run("out of range clamps", func(t *testing.T) {
		assert.Equal(t, 100, taskflow.XP(-2, false))
		assert.Equal(t, 500, taskflow.XP(9, false))
	})
	t.Run("penalty halves rounding down", func(t *testing.T) {
		assert.Equal(t, 200, taskflow.XP(4, true))
		assert.Equal(t, 150, taskflow.XP(3, true))
		assert.Equal(t, 50, taskflow.XP(1, true))
	})
}

func TestPenaltyApplies(t *testing.T) {
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	recovered := due.Add(-48 * time.Hour)
	t.Run("late completion after recovery", func(t *testing.T) {
		st := &entity.TaskStatus{RecoveredAt: &recovered}
		assert.True(t, taskflow.PenaltyApplies(st, due, due.Add(time.Hour)))
	})
	t.Run("recovered but completed before due date", func(t *testing.T) {
		st := &entity.TaskStatus{RecoveredAt: &recovered}
		assert.False(t, taskflow.PenaltyApplies(st, due, due.Add(-time.Hour)))
	})
	t.Run("late but never recovered", func(t *testing.T) {
		st := &entity.TaskStatus{}
		assert.False(t, taskflow.PenaltyApplies(st, due, due.Add(time.Hour)))
	})
}
