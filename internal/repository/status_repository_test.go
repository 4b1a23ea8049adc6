package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"

	errorvalues "github.com/abdullah-alholiel/mutualtasks/internal/error_values"
	"github.com/abdullah-alholiel/mutualtasks/internal/repository"
)

func TestMarkRecovered(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewStatusRepoWithConn(conn)
	taskID := uuid.New()
	uid := uuid.New()
	at := time.Now()
	query := regexp.QuoteMeta(`UPDATE task_statuses SET status = 'recovered', recovered_at = $1, updated_at = NOW()
		WHERE task_id = $2 AND user_id = $3 AND status = 'archived';`)
	t.Run("recovered", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(at, taskID, uid).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.MarkRecovered(ctx, taskID, uid, at)
		assert.NoError(t, err)
	})
	t.Run("not archived so not recoverable", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(at, taskID, uid).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.MarkRecovered(ctx, taskID, uid, at)
		assert.ErrorIs(t, err, errorvalues.ErrNotRecoverable)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(at, taskID, uid).WillReturnError(errors.New("db error"))
		err := repo.MarkRecovered(ctx, taskID, uid, at)
		assert.Error(t, err)
	})
}

func TestMarkArchived(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewStatusRepoWithConn(conn)
	taskID := uuid.New()
	uid := uuid.New()
	at := time.Now()
	query := regexp.QuoteMeta(`UPDATE task_statuses s SET status = 'archived', archived_at = $1, updated_at = $1
		FROM tasks t WHERE s.task_id = t.id AND s.task_id = $2 AND s.user_id = $3
		AND s.status = 'active' AND t.due_date < $1;`)
	t.Run("archived", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(at, taskID, uid).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		err := repo.MarkArchived(ctx, taskID, uid, at)
		assert.NoError(t, err)
	})
	t.Run("not active or not past due", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(at, taskID, uid).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		err := repo.MarkArchived(ctx, taskID, uid, at)
		assert.ErrorIs(t, err, errorvalues.ErrNotArchivable)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(at, taskID, uid).WillReturnError(errors.New("db error"))
		err := repo.MarkArchived(ctx, taskID, uid, at)
		assert.Error(t, err)
	})
}

func TestSweepDue(t *testing.T) {
	conn, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	repo := repository.NewStatusRepoWithConn(conn)
	now := time.Now()
	query := regexp.QuoteMeta(`UPDATE task_statuses s SET status = 'archived', archived_at = $1, updated_at = $1
		FROM tasks t WHERE s.task_id = t.id AND s.status = 'active' AND t.due_date < $1;`)
	t.Run("archives past-due actives", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(now).WillReturnResult(pgxmock.NewResult("UPDATE", 7))
		count, err := repo.SweepDue(ctx, now)
		assert.NoError(t, err)
		assert.Equal(t, 7, count)
	})
	t.Run("nothing due", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(now).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		count, err := repo.SweepDue(ctx, now)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})
	t.Run("db error", func(t *testing.T) {
		conn.ExpectExec(query).WithArgs(now).WillReturnError(errors.New("db error"))
		_, err := repo.SweepDue(ctx, now)
		assert.Error(t, err)
	})
}
