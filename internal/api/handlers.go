package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	errorvalues "github.com/abdullah-alholiel/mutualtasks/internal/error_values"
	"github.com/abdullah-alholiel/mutualtasks/internal/service"
	"github.com/abdullah-alholiel/mutualtasks/internal/taskflow"
	"github.com/abdullah-alholiel/mutualtasks/pkg/entity"
	"github.com/abdullah-alholiel/mutualtasks/pkg/httputil"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"desc"`
}

type AddMemberRequest struct {
	UserID string `json:"uid"`
}

type CustomRecurrenceRequest struct {
	Frequency string `json:"frequency"`
	Interval  int    `json:"interval"`
}

type CreateTaskRequest struct {
	Title             string                   `json:"title"`
	Description       string                   `json:"desc"`
	DueDate           time.Time                `json:"due_date"`
	Type              string                   `json:"type"`
	RecurrencePattern string                   `json:"recurrence_pattern,omitempty"`
	Interval          int                      `json:"interval,omitempty"`
	MaxOccurrences    int                      `json:"max_occurrences,omitempty"`
	EndDate           *time.Time               `json:"end_date,omitempty"`
	Custom            *CustomRecurrenceRequest `json:"custom_recurrence,omitempty"`
}

type CompleteTaskRequest struct {
	DifficultyRating int `json:"difficulty_rating"`
}

type GetProjectsResponse struct {
	UserID   string            `json:"uid"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	Projects []*entity.Project `json:"projects"`
}

// TaskResponse decorates a view with its resolved status and the actions the
// client may offer for it.
type TaskResponse struct {
	*entity.UserTaskView
	DisplayStatus string `json:"display_status"`
	CanComplete   bool   `json:"can_complete"`
	CanRecover    bool   `json:"can_recover"`
}

func (s *Server) taskResponse(view *entity.UserTaskView) TaskResponse {
	status := s.statusService.Status(view)
	return TaskResponse{
		UserTaskView:  view,
		DisplayStatus: string(status),
		CanComplete:   taskflow.CanComplete(status, view.Completion != nil),
		CanRecover:    taskflow.CanRecover(status),
	}
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such name already exists", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such name doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid username or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("change password error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ChangePasswordRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("change password error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.ChangePassword(ctx, uid, &service.ChangePasswordRequest{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("change password error: wrong old password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "wrong password", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("change password error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("change password error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while changing password", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"uid": uid.String()})
	logger.Info("password changed")
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("account deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req DeleteAccountRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("account deletion error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.DeleteAccount(ctx, uid, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("account deletion error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "wrong password", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("account deletion error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("account deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting account", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"uid": uid.String()})
	logger.Info("account deleted")
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create project error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CreateProjectRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create project error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	project, err := s.projectService.CreateProject(ctx, uid, &service.CreateProjectRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("create project error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create project: user doesn't exists", nil)
		default:
			logger.Error("create project error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating project", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"project_id": project.ID.String()})
	logger.Info("project created")
}

func (s *Server) GetProjects(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get projects error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	projects, err := s.projectService.ListUserProjects(ctx, uid, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error("getting projects list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting projects list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetProjectsResponse{
		UserID:   uid.String(),
		Page:     page,
		Limit:    limit,
		Projects: projects,
	})
	logger.Info("projects provided")
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get project error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get project error: invalid project id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid project id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	project, err := s.projectService.GetProject(ctx, projectID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrProjectNotFound):
			logger.Error("get project error: unexist project")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "project doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrNotMember):
			logger.Error("get project error: not a member")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "only members can view a project", nil)
		default:
			logger.Error("getting project error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting project", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, project)
	logger.Info("project provided")
}

func (s *Server) AddMember(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("add member error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("add member error: invalid project id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid project id", nil)
		return
	}
	var req AddMemberRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("add member error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	newMemberID, err := uuid.Parse(req.UserID)
	if err != nil {
		logger.Error("add member error: invalid member uid")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid member uid", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.projectService.AddMember(ctx, projectID, uid, newMemberID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrProjectNotFound):
			logger.Error("add member error: unexist project")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "project doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("add member error: not an owner")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "only the owner can invite members", nil)
		case errors.Is(err, errorvalues.ErrMemberExists):
			logger.Error("add member error: already a member")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user is already a member", nil)
		default:
			logger.Error("add member error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while adding member", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"project_id": projectID.String(), "uid": newMemberID.String()})
	logger.Info("member added")
}

func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("create task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("create task error: invalid project id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid project id", nil)
		return
	}
	var req CreateTaskRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create task error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	serviceReq := service.CreateTaskRequest{
		Title:             req.Title,
		Description:       req.Description,
		DueDate:           req.DueDate,
		Type:              entity.TaskType(req.Type),
		RecurrencePattern: req.RecurrencePattern,
		Interval:          req.Interval,
		MaxOccurrences:    req.MaxOccurrences,
		EndDate:           req.EndDate,
	}
	if req.Custom != nil {
		serviceReq.CustomFrequency = req.Custom.Frequency
		serviceReq.CustomInterval = req.Custom.Interval
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	tasks, err := s.taskService.CreateTask(ctx, projectID, uid, &serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrNotMember):
			logger.Error("create task error: not a member")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "only project members can create tasks", nil)
		case errors.Is(err, errorvalues.ErrProjectNotFound):
			logger.Error("create task error: unexist project")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "project doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrInvalidRecurrence):
			logger.Error("create task error: invalid recurrence")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid recurrence parameters", nil)
		default:
			logger.Error("create task error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating task", nil)
		}
		return
	}
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID.String())
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"task_ids": ids,
		"count":    len(ids),
	})
	logger.Info("tasks created", slog.Int("count", len(ids)))
}

func (s *Server) GetTasks(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get tasks error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get tasks error: invalid project id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid project id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	buckets, err := s.taskService.ListTasks(ctx, projectID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrNotMember):
			logger.Error("get tasks error: not a member")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "only project members can list tasks", nil)
		default:
			logger.Error("getting tasks error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting tasks", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, buckets)
	logger.Info("tasks provided")
}

func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get task error: invalid task id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	view, err := s.taskService.GetTask(ctx, taskID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound):
			logger.Error("get task error: unexist task")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "task doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrNotParticipant):
			logger.Error("get task error: not a participant")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "no status record for this task", nil)
		default:
			logger.Error("getting task error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting task", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.taskResponse(view))
	logger.Info("task provided")
}

func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("task deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("task deletion error: invalid task id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.taskService.DeleteTask(ctx, taskID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound):
			logger.Error("task deletion error: unexist task")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "task doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("task deletion error: not a creator")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "only the creator can delete a task", nil)
		default:
			logger.Error("task deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting task", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"task_id": taskID.String()})
	logger.Info("task deleted")
}

func (s *Server) CompleteTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("complete task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("complete task error: invalid task id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}
	var req CompleteTaskRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("complete task error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	completion, err := s.statusService.Complete(ctx, taskID, uid, req.DifficultyRating)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound):
			logger.Error("complete task error: unexist task")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "task doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrNotParticipant):
			logger.Error("complete task error: not a participant")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "no status record for this task", nil)
		case errors.Is(err, errorvalues.ErrAlreadyCompleted):
			logger.Error("complete task error: duplicate completion")
			httputil.WriteErrorResponse(w, http.StatusConflict, "task already completed", nil)
		case errors.Is(err, errorvalues.ErrNotCompletable):
			logger.Error("complete task error: not completable")
			httputil.WriteErrorResponse(w, http.StatusConflict, "task is not in a completable state", nil)
		default:
			logger.Error("complete task error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while completing task", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, completion)
	logger.Info("task completed", slog.Int("xp_earned", completion.XPEarned), slog.Bool("penalty", completion.PenaltyApplied))
}

func (s *Server) ArchiveTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("archive task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("archive task error: invalid task id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	view, err := s.statusService.Archive(ctx, taskID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound):
			logger.Error("archive task error: unexist task")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "task doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrNotParticipant):
			logger.Error("archive task error: not a participant")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "no status record for this task", nil)
		case errors.Is(err, errorvalues.ErrNotArchivable):
			logger.Error("archive task error: not archivable")
			httputil.WriteErrorResponse(w, http.StatusConflict, "only past-due active tasks can be archived", nil)
		default:
			logger.Error("archive task error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while archiving task", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.taskResponse(view))
	logger.Info("task archived")
}

func (s *Server) RecoverTask(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("recover task error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	taskID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("recover task error: invalid task id")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid task id", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	view, err := s.statusService.Recover(ctx, taskID, uid)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrTaskNotFound):
			logger.Error("recover task error: unexist task")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "task doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrNotParticipant):
			logger.Error("recover task error: not a participant")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "no status record for this task", nil)
		case errors.Is(err, errorvalues.ErrNotRecoverable):
			logger.Error("recover task error: not recoverable")
			httputil.WriteErrorResponse(w, http.StatusConflict, "only archived tasks can be recovered", nil)
		default:
			logger.Error("recover task error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while recovering task", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, s.taskResponse(view))
	logger.Info("task recovered")
}
