package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	errorvalues "github.com/abdullah-alholiel/mutualtasks/internal/error_values"
	"github.com/abdullah-alholiel/mutualtasks/internal/repository"
	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
)

type ProjectService struct {
	repo repository.ProjectsRepositoryI
}

func NewProjectService(projectsRepo repository.ProjectsRepositoryI) *ProjectService {
	if projectsRepo == nil {
		log.Fatal("provided nil projectsRepo")
	}
	return &ProjectService{
		repo: projectsRepo,
	}
}

func (ps *ProjectService) CreateProject(ctx context.Context, ownerID uuid.UUID, req *CreateProjectRequest) (*entity.Project, error) {
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
	p := entity.Project{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
	}
	id, err := ps.repo.Create(ctx, &p)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("projects repository error: " + err.Error())
	}
	project, err := ps.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProjectNotFound) {
			return nil, err
		}
		return nil, errors.New("projects repository error: " + err.Error())
	}
	return project, nil
}

func (ps *ProjectService) GetProject(ctx context.Context, projectID, userID uuid.UUID) (*entity.Project, error) {
	project, err := ps.repo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProjectNotFound) {
			return nil, err
		}
		return nil, errors.New("projects repository error: " + err.Error())
	}
	member, err := ps.repo.IsMember(ctx, projectID, userID)
	if err != nil {
		return nil, errors.New("projects repository error: " + err.Error())
	}
	if !member {
		return nil, errorvalues.ErrNotMember
	}
	return project, nil
}

func (ps *ProjectService) ListUserProjects(ctx context.Context, uid uuid.UUID, pagination PaginationOpts) ([]*entity.Project, error) {
	projects, err := ps.repo.GetByUserID(ctx, uid, pagination.Limit, pagination.Offset)
	if err != nil {
		return nil, errors.New("projects repository error: " + err.Error())
	}
	return projects, nil
}

func (ps *ProjectService) AddMember(ctx context.Context, projectID, ownerID, newMemberID uuid.UUID) error {
	project, err := ps.repo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrProjectNotFound) {
			return err
		}
		return errors.New("projects repository error: " + err.Error())
	}
	if project.OwnerID != ownerID {
		return errorvalues.ErrWrongOwner
	}
	err = ps.repo.AddMember(ctx, projectID, newMemberID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrMemberExists), errors.Is(err, errorvalues.ErrProjectNotFound):
			return err
		}
		return errors.New("projects repository error: " + err.Error())
	}
	return nil
}
