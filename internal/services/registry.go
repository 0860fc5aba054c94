package services

import (
	"mural_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService    AuthService
	PostService    PostService
	CommentService CommentService
	AdminService   AdminService
	EmailService   *EmailService
}

// Repositories - набор репозиториев, общий для сервисов и middleware
type Repositories struct {
	Users    repositories.UserRepository
	Sessions repositories.SessionRepository
	Posts    repositories.PostRepository
	Comments repositories.CommentRepository
	Reports  repositories.ReportRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Users:    repositories.NewUserRepository(),
		Sessions: repositories.NewSessionRepository(),
		Posts:    repositories.NewPostRepository(),
		Comments: repositories.NewCommentRepository(),
		Reports:  repositories.NewReportRepository(),
	}
}

type ContainerConfig struct {
	Auth              AuthConfig
	AutoHideThreshold int
}

// NewServiceContainer связывает сервисы с репозиториями, конвейером медиа и лентой
func NewServiceContainer(cfg ContainerConfig, repos *Repositories, pipeline MediaPipeline, emails *EmailService, broadcaster Broadcaster) *ServiceContainer {
	return &ServiceContainer{
		AuthService:    NewAuthService(cfg.Auth, repos.Users, repos.Sessions, emails),
		PostService:    NewPostService(pipeline, repos.Posts, repos.Reports, broadcaster, cfg.AutoHideThreshold),
		CommentService: NewCommentService(repos.Comments, repos.Posts, repos.Users, repos.Reports, broadcaster),
		AdminService:   NewAdminService(repos.Users, repos.Sessions, repos.Posts, repos.Comments, repos.Reports, emails),
		EmailService:   emails,
	}
}
