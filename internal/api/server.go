package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abdullah-alholiel/mutualtasks/internal/service"
)

type Server struct {
	mx             *chi.Mux
	userService    service.UserServiceI
	projectService service.ProjectServiceI
	taskService    service.TaskServiceI
	statusService  service.StatusServiceI
	jwtService     JWTServiceI
}

type ServicesList struct {
	UserService    service.UserServiceI
	ProjectService service.ProjectServiceI
	TaskService    service.TaskServiceI
	StatusService  service.StatusServiceI
	JwtService     JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:             chi.NewMux(),
		userService:    servicesOptions.UserService,
		projectService: servicesOptions.ProjectService,
		taskService:    servicesOptions.TaskService,
		statusService:  servicesOptions.StatusService,
		jwtService:     servicesOptions.JwtService,
	}
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Patch("/auth/password", s.ChangePassword)
			r.Delete("/auth/account", s.DeleteAccount)
			r.Post("/projects", s.CreateProject)
			r.Get("/projects", s.GetProjects)
			r.Get("/projects/{id}", s.GetProject)
			r.Post("/projects/{id}/members", s.AddMember)
			r.Post("/projects/{id}/tasks", s.CreateTask)
			r.Get("/projects/{id}/tasks", s.GetTasks)
			r.Get("/tasks/{id}", s.GetTask)
			r.Delete("/tasks/{id}", s.DeleteTask)
			r.Post("/tasks/{id}/complete", s.CompleteTask)
			r.Post("/tasks/{id}/archive", s.ArchiveTask)
			r.Post("/tasks/{id}/recover", s.RecoverTask)
		})
	})
}

func (s *Server) Run(address string) error {
	s.routes()
	return http.ListenAndServe(address, s.mx)
}
