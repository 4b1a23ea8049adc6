package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/abdullah-alholiel/mutualtasks/internal/error_values"
	"github.com/abdullah-alholiel/mutualtasks/pkg/cleanup"
	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
)

type CompletionsRepository struct {
	conn PgConnection
}

func NewCompletionsRepo(cfg DBConfig) *CompletionsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for completionsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for completionsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &CompletionsRepository{
		conn: pool,
	}
}

func NewCompletionsRepoWithConn(conn PgConnection) *CompletionsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for completionsRepo: " + err.Error())
	}
	return &CompletionsRepository{
		conn: conn,
	}
}

// Create appends the completion event and flips the status record to
// completed in the same transaction, so the log and the status never disagree.
// The unique constraint on (task_id, user_id) makes this the insert-if-absent
// point that guarantees at most one completion per participant even under
// concurrent writers.
func (cr *CompletionsRepository) Create(ctx context.Context, completion *entity.CompletionLog) error {
	if completion == nil {
		return errors.New("completion is nil")
	}
	var rating *int
	if completion.DifficultyRating != 0 {
		rating = &completion.DifficultyRating
	}
	tx, err := cr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, `INSERT INTO completion_logs (task_id, user_id, created_at, difficulty_rating, penalty_applied, xp_earned)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		completion.TaskID,
		completion.UserID,
		completion.CreatedAt,
		rating,
		completion.PenaltyApplied,
		completion.XPEarned,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrAlreadyCompleted
			// FK violation
			case "23503":
				return errorvalues.ErrTaskNotFound
			}
		}
		return errors.New("creating completion error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `UPDATE task_statuses SET status = 'completed', updated_at = $1
		WHERE task_id = $2 AND user_id = $3;`,
		completion.CreatedAt,
		completion.TaskID,
		completion.UserID,
	)
	if err != nil {
		return errors.New("marking status completed error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing completion tx error: " + err.Error())
	}
	return nil
}

func (cr *CompletionsRepository) GetByTaskAndUser(ctx context.Context, taskID, userID uuid.UUID) (*entity.CompletionLog, error) {
	var c entity.CompletionLog
	c.TaskID = taskID
	c.UserID = userID
	row := cr.conn.QueryRow(ctx, `SELECT id, created_at, difficulty_rating, penalty_applied, xp_earned
		FROM completion_logs WHERE task_id = $1 AND user_id = $2;`, taskID, userID)
	var rating *int
	if err := row.Scan(&c.ID, &c.CreatedAt, &rating, &c.PenaltyApplied, &c.XPEarned); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.New("getting completion error: " + err.Error())
	}
	if rating != nil {
		c.DifficultyRating = *rating
	}
	return &c, nil
}
