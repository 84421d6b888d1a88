package user

import (
	"context"

	"go.uber.org/zap"

	userRepo "mountify/database/repository/user"
	"mountify/models"
	"mountify/services/coverage"
	"mountify/services/storage"
)

// RegisterInput creates a new customer account.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// WorkerApplicationInput is a prospective worker's application form.
type WorkerApplicationInput struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	ZipCodes []string `json:"zipCodes"`
}

// AuthResult is the session handed back after login or registration.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// UserService manages accounts, sessions and worker onboarding.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, userID string) error
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
	SavePaymentMethod(ctx context.Context, userID, paymentMethodID string) error

	SubmitWorkerApplication(ctx context.Context, in WorkerApplicationInput, docs [][]byte) (*models.WorkerApplication, error)
	ApproveWorkerApplication(ctx context.Context, appID string) (*models.User, error)
	RejectWorkerApplication(ctx context.Context, appID string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	Coverage coverage.CoverageService
	Storage  storage.StorageService
	Logger   *zap.Logger
}
