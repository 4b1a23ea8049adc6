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

type ProjectsRepository struct {
	conn PgConnection
}

func NewProjectsRepo(cfg DBConfig) *ProjectsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for projectsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for projectsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ProjectsRepository{
		conn: pool,
	}
}

func NewProjectsRepoWithConn(conn PgConnection) *ProjectsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for projectsRepo: " + err.Error())
	}
	return &ProjectsRepository{
		conn: conn,
	}
}

func (pr *ProjectsRepository) Create(ctx context.Context, project *entity.Project) (uuid.UUID, error) {
	tx, err := pr.conn.Begin(ctx)
	if err != nil {
		return uuid.UUID{}, errors.New("beginning tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	var id uuid.UUID
	row := tx.QueryRow(ctx, `INSERT INTO projects (owner_id, title, description) VALUES ($1, $2, $3) RETURNING id;`,
		project.OwnerID,
		project.Title,
		project.Description,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating project db error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `INSERT INTO project_members (project_id, user_id) VALUES ($1, $2);`, id, project.OwnerID)
	if err != nil {
		return uuid.UUID{}, errors.New("enrolling owner error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return uuid.UUID{}, errors.New("committing project tx error: " + err.Error())
	}
	return id, nil
}

func (pr *ProjectsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	project.ID = id
	row := pr.conn.QueryRow(ctx, `SELECT owner_id, title, description, created_at FROM projects WHERE id = $1;`, id)
	if err := row.Scan(&project.OwnerID, &project.Title, &project.Description, &project.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrProjectNotFound
		}
		return nil, errors.New("getting project by id error: " + err.Error())
	}
	return &project, nil
}

func (pr *ProjectsRepository) GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Project, error) {
	projects := make([]*entity.Project, 0)
	rows, err := pr.conn.Query(ctx, `SELECT p.id, p.owner_id, p.title, p.description, p.created_at
		FROM projects p JOIN project_members m ON m.project_id = p.id
		WHERE m.user_id = $1 ORDER BY p.created_at LIMIT $2 OFFSET $3;`, uid, limit, offset)
	if err != nil {
		return nil, errors.New("getting projects by uid error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		p := entity.Project{}
		err = rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling project error: " + err.Error())
		}
		projects = append(projects, &p)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return projects, nil
}

func (pr *ProjectsRepository) AddMember(ctx context.Context, projectID, uid uuid.UUID) error {
	_, err := pr.conn.Exec(ctx, `INSERT INTO project_members (project_id, user_id) VALUES ($1, $2);`, projectID, uid)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return errorvalues.ErrMemberExists
			// FK violation
			case "23503":
				return errorvalues.ErrProjectNotFound
			}
		}
		return errors.New("adding member error: " + err.Error())
	}
	return nil
}

func (pr *ProjectsRepository) GetMemberIDs(ctx context.Context, projectID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := pr.conn.Query(ctx, `SELECT user_id FROM project_members WHERE project_id = $1;`, projectID)
	if err != nil {
		return nil, errors.New("getting members error: " + err.Error())
	}
	defer rows.Close()
	ids := make([]uuid.UUID, 0, 2)
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, errors.New("member row parsing error: " + err.Error())
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected member rows error: " + rows.Err().Error())
	}
	return ids, nil
}

func (pr *ProjectsRepository) IsMember(ctx context.Context, projectID, uid uuid.UUID) (bool, error) {
	var exists bool
	row := pr.conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2);`,
		projectID,
		uid,
	)
	if err := row.Scan(&exists); err != nil {
		return false, errors.New("inspecting membership error: " + err.Error())
	}
	return exists, nil
}

func (pr *ProjectsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := pr.conn.Exec(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting project error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrProjectNotFound
	}
	return nil
}
