// @title Mutual Tasks API
// @description API for the collaborative task and habit tracker "Mutual Tasks"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"
	"time"

	"github.com/abdullah-alholiel/mutualtasks/internal/api"
	"github.com/abdullah-alholiel/mutualtasks/internal/repository"
	"github.com/abdullah-alholiel/mutualtasks/internal/service"
	"github.com/abdullah-alholiel/mutualtasks/pkg/cleanup"
	"github.com/abdullah-alholiel/mutualtasks/pkg/config"
	jwtservice "github.com/abdullah-alholiel/mutualtasks/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	usersRepo := repository.NewUsersRepo(&dbCfg)
	projectsRepo := repository.NewProjectsRepo(&dbCfg)
	tasksRepo := repository.NewTasksRepo(&dbCfg)
	statusRepo := repository.NewStatusRepo(&dbCfg)
	completionsRepo := repository.NewCompletionsRepo(&dbCfg)

	sweeper := service.NewSweeper(statusRepo, cfg.GetDuration("SWEEP_INTERVAL", time.Minute))
	if err := sweeper.Start(); err != nil {
		log.Fatal("starting archival sweeper error: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "stopping archival sweeper",
		F: func() error {
			sweeper.Stop()
			return nil
		},
	})

	serv := api.New(&api.ServicesList{
		UserService:    service.NewUserService(usersRepo),
		ProjectService: service.NewProjectService(projectsRepo),
		TaskService:    service.NewTaskService(tasksRepo, projectsRepo),
		StatusService:  service.NewStatusService(tasksRepo, statusRepo, completionsRepo, usersRepo),
		JwtService:     jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
	cleanup.CleanUp()
}
