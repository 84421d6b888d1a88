package userRepo

import "mountify/models"

// UserRepository persists user accounts and worker applications.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(userID string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByTokenHash(tokenHash string) (*models.User, error)
	Update(user *models.User) error
	Delete(userID string) error
	DeleteTestUserByEmail(email string) error

	CreateApplication(app *models.WorkerApplication) error
	GetApplication(appID string) (*models.WorkerApplication, error)
	UpdateApplication(app *models.WorkerApplication) error
}
