package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/abdullah-alholiel/mutualtasks/internal/error_values"
	"github.com/abdullah-alholiel/mutualtasks/pkg/cleanup"
	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
)

type TasksRepository struct {
	conn PgConnection
}

func NewTasksRepo(cfg DBConfig) *TasksRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for tasksRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for tasksRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &TasksRepository{
		conn: pool,
	}
}

func NewTasksRepoWithConn(conn PgConnection) *TasksRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for tasksRepo: " + err.Error())
	}
	return &TasksRepository{
		conn: conn,
	}
}

// CreateBatch inserts every instance of a series plus one status record per
// (task, participant) pair in a single transaction, so a half-created series
// never becomes visible.
func (tr *TasksRepository) CreateBatch(ctx context.Context, tasks []*entity.Task, participantIDs []uuid.UUID) error {
	if len(tasks) == 0 {
		return errors.New("no tasks to insert")
	}
	tx, err := tr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	for _, task := range tasks {
		row := tx.QueryRow(ctx, `INSERT INTO tasks (project_id, creator_id, title, description, due_date, type, recurrence_pattern, series_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`,
			task.ProjectID,
			task.CreatorID,
			task.Title,
			task.Description,
			task.DueDate,
			task.Type,
			task.RecurrencePattern,
			task.SeriesID,
		)
		if err := row.Scan(&task.ID); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch pgErr.Code {
				// FK violation
				case "23503":
					return errorvalues.ErrProjectNotFound
				}
			}
			return errors.New("creating task db error: " + err.Error())
		}
		for _, uid := range participantIDs {
			_, err = tx.Exec(ctx, `INSERT INTO task_statuses (task_id, user_id, status) VALUES ($1, $2, 'active');`,
				task.ID,
				uid,
			)
			if err != nil {
				return errors.New("creating status record error: " + err.Error())
			}
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing tasks tx error: " + err.Error())
	}
	return nil
}

func (tr *TasksRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var task entity.Task
	task.ID = id
	row := tr.conn.QueryRow(ctx, `SELECT project_id, creator_id, title, description, due_date, type, recurrence_pattern, series_id, created_at
		FROM tasks WHERE id = $1;`, id)
	err := row.Scan(&task.ProjectID, &task.CreatorID, &task.Title, &task.Description, &task.DueDate,
		&task.Type, &task.RecurrencePattern, &task.SeriesID, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrTaskNotFound
		}
		return nil, errors.New("getting task by id error: " + err.Error())
	}
	return &task, nil
}

// GetUserTaskView fetches the task with exactly this user's status record and
// completion log. The pairing is done here, keyed by (taskID, userID), so a
// status belonging to another user can never sit next to the task.
func (tr *TasksRepository) GetUserTaskView(ctx context.Context, taskID, userID uuid.UUID) (*entity.UserTaskView, error) {
	task, err := tr.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	view := entity.UserTaskView{Task: *task}
	row := tr.conn.QueryRow(ctx, `SELECT id, status, archived_at, recovered_at, updated_at
		FROM task_statuses WHERE task_id = $1 AND user_id = $2;`, taskID, userID)
	err = row.Scan(&view.Status.ID, &view.Status.Status, &view.Status.ArchivedAt, &view.Status.RecoveredAt, &view.Status.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrNotParticipant
		}
		return nil, errors.New("getting status record error: " + err.Error())
	}
	view.Status.TaskID = taskID
	view.Status.UserID = userID
	completion, err := tr.getCompletion(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	view.Completion = completion
	return &view, nil
}

func (tr *TasksRepository) ListUserTaskViews(ctx context.Context, projectID, userID uuid.UUID) ([]*entity.UserTaskView, error) {
	rows, err := tr.conn.Query(ctx, `SELECT t.id, t.project_id, t.creator_id, t.title, t.description, t.due_date, t.type, t.recurrence_pattern, t.series_id, t.created_at,
			s.id, s.status, s.archived_at, s.recovered_at, s.updated_at,
			c.id, c.created_at, c.difficulty_rating, c.penalty_applied, c.xp_earned
		FROM tasks t
		JOIN task_statuses s ON s.task_id = t.id AND s.user_id = $2
		LEFT JOIN completion_logs c ON c.task_id = t.id AND c.user_id = $2
		WHERE t.project_id = $1 ORDER BY t.due_date;`, projectID, userID)
	if err != nil {
		return nil, errors.New("listing task views error: " + err.Error())
	}
	defer rows.Close()
	views := make([]*entity.UserTaskView, 0)
	for rows.Next() {
		v := entity.UserTaskView{}
		var compID *int
		var compCreated *time.Time
		var compRating *int
		var compPenalty *bool
		var compXP *int
		err = rows.Scan(&v.Task.ID, &v.Task.ProjectID, &v.Task.CreatorID, &v.Task.Title, &v.Task.Description,
			&v.Task.DueDate, &v.Task.Type, &v.Task.RecurrencePattern, &v.Task.SeriesID, &v.Task.CreatedAt,
			&v.Status.ID, &v.Status.Status, &v.Status.ArchivedAt, &v.Status.RecoveredAt, &v.Status.UpdatedAt,
			&compID, &compCreated, &compRating, &compPenalty, &compXP)
		if err != nil {
			return nil, errors.New("task view row parsing error: " + err.Error())
		}
		v.Status.TaskID = v.Task.ID
		v.Status.UserID = userID
		if compID != nil {
			completion := entity.CompletionLog{
				ID:             *compID,
				TaskID:         v.Task.ID,
				UserID:         userID,
				CreatedAt:      *compCreated,
				PenaltyApplied: *compPenalty,
				XPEarned:       *compXP,
			}
			if compRating != nil {
				completion.DifficultyRating = *compRating
			}
			v.Completion = &completion
		}
		views = append(views, &v)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected task view rows error: " + rows.Err().Error())
	}
	return views, nil
}

func (tr *TasksRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := tr.conn.Exec(ctx, `DELETE FROM tasks WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting task error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrTaskNotFound
	}
	return nil
}

func (tr *TasksRepository) getCompletion(ctx context.Context, taskID, userID uuid.UUID) (*entity.CompletionLog, error) {
	var c entity.CompletionLog
	c.TaskID = taskID
	c.UserID = userID
	row := tr.conn.QueryRow(ctx, `SELECT id, created_at, difficulty_rating, penalty_applied, xp_earned
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
