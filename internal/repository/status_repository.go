package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/abdullah-alholiel/mutualtasks/internal/error_values"
	"github.com/abdullah-alholiel/mutualtasks/pkg/cleanup"
)

type StatusRepository struct {
	conn PgConnection
}

func NewStatusRepo(cfg DBConfig) *StatusRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for statusRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for statusRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &StatusRepository{
		conn: pool,
	}
}

func NewStatusRepoWithConn(conn PgConnection) *StatusRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for statusRepo: " + err.Error())
	}
	return &StatusRepository{
		conn: conn,
	}
}

// MarkArchived archives a single user's status record on explicit request. The
// WHERE clause enforces the transition: the record must still be active and the
// task already past due, otherwise nothing changes and the caller gets
// ErrNotArchivable.
func (sr *StatusRepository) MarkArchived(ctx context.Context, taskID, userID uuid.UUID, at time.Time) error {
	ct, err := sr.conn.Exec(ctx, `UPDATE task_statuses s SET status = 'archived', archived_at = $1, updated_at = $1
		FROM tasks t WHERE s.task_id = t.id AND s.task_id = $2 AND s.user_id = $3
		AND s.status = 'active' AND t.due_date < $1;`,
		at,
		taskID,
		userID,
	)
	if err != nil {
		return errors.New("marking status archived error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNotArchivable
	}
	return nil
}

// MarkRecovered flips an archived record back into an actionable state. The
// WHERE clause guards the transition: a record that isn't archived is left
// untouched and the caller gets ErrNotRecoverable.
func (sr *StatusRepository) MarkRecovered(ctx context.Context, taskID, userID uuid.UUID, at time.Time) error {
	ct, err := sr.conn.Exec(ctx, `UPDATE task_statuses SET status = 'recovered', recovered_at = $1, updated_at = NOW()
		WHERE task_id = $2 AND user_id = $3 AND status = 'archived';`,
		at,
		taskID,
		userID,
	)
	if err != nil {
		return errors.New("marking status recovered error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrNotRecoverable
	}
	return nil
}

// SweepDue archives every still-active status whose task due date has passed.
// This is the one place where the clock decides archival; the resolver only
// ever reads the mark left here.
func (sr *StatusRepository) SweepDue(ctx context.Context, now time.Time) (int, error) {
	ct, err := sr.conn.Exec(ctx, `UPDATE task_statuses s SET status = 'archived', archived_at = $1, updated_at = $1
		FROM tasks t WHERE s.task_id = t.id AND s.status = 'active' AND t.due_date < $1;`,
		now,
	)
	if err != nil {
		return 0, errors.New("sweeping due statuses error: " + err.Error())
	}
	return int(ct.RowsAffected()), nil
}
