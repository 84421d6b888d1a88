package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mountify/models"
	"mountify/utils"
)

const sessionDuration = 7 * 24 * time.Hour

// Register creates a customer account and opens a session for it.
func (svc *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, newUserError("invalidEmail", "a valid email address is required")
	}
	if len(in.Password) < 8 {
		return nil, newUserError("weakPassword", "password must be at least 8 characters")
	}
	if _, err := svc.Repo.GetByEmail(in.Email); err == nil {
		return nil, newUserError("emailTaken", "an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	account := &models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		Name:         in.Name,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := svc.Repo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return svc.openSession(account)
}

// Authenticate verifies credentials and opens a session.
func (svc *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := svc.Repo.GetByEmail(email)
	if err != nil {
		return nil, newUserError("badCredentials", "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, newUserError("badCredentials", "invalid email or password")
	}
	return svc.openSession(account)
}

// openSession mints a JWT and stores its hash so the auth middleware can
// resolve bearer tokens back to accounts.
func (svc *DefaultUserService) openSession(account *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(account.ID, string(account.Role), sessionDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	account.TokenHash = utils.HashToken(token)
	account.UpdatedAt = time.Now().UTC()
	if err := svc.Repo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &AuthResult{Token: token, User: account}, nil
}

// Logout invalidates the active session token.
func (svc *DefaultUserService) Logout(ctx context.Context, userID string) error {
	account, err := svc.Repo.GetByID(userID)
	if err != nil {
		return newUserError("notFound", "account not found")
	}
	account.TokenHash = ""
	account.UpdatedAt = time.Now().UTC()
	return svc.Repo.Update(account)
}

func (svc *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	account, err := svc.Repo.GetByID(userID)
	if err != nil {
		return nil, newUserError("notFound", "account not found")
	}
	return account, nil
}

// UpdateFCMToken stores the device push token reported by the client.
func (svc *DefaultUserService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	account, err := svc.Repo.GetByID(userID)
	if err != nil {
		return newUserError("notFound", "account not found")
	}
	account.FCMToken = token
	account.UpdatedAt = time.Now().UTC()
	return svc.Repo.Update(account)
}

// SavePaymentMethod attaches a tokenized payment method to the account.
// Raw card data never reaches this service.
func (svc *DefaultUserService) SavePaymentMethod(ctx context.Context, userID, paymentMethodID string) error {
	if paymentMethodID == "" {
		return newUserError("missingPaymentMethod", "a payment method id is required")
	}
	account, err := svc.Repo.GetByID(userID)
	if err != nil {
		return newUserError("notFound", "account not found")
	}
	account.PaymentMethodID = paymentMethodID
	account.UpdatedAt = time.Now().UTC()
	return svc.Repo.Update(account)
}

// SubmitWorkerApplication stores the application and uploads its supporting
// documents. Documents that fail to upload fail the whole submission.
func (svc *DefaultUserService) SubmitWorkerApplication(ctx context.Context, in WorkerApplicationInput, docs [][]byte) (*models.WorkerApplication, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, newUserError("invalidEmail", "a valid email address is required")
	}
	if len(in.ZipCodes) == 0 {
		return nil, newUserError("missingZips", "at least one service zip code is required")
	}

	app := &models.WorkerApplication{
		ID:        uuid.New().String(),
		Email:     in.Email,
		Name:      in.Name,
		Phone:     in.Phone,
		ZipCodes:  in.ZipCodes,
		Status:    models.ApplicationSubmitted,
		CreatedAt: time.Now().UTC(),
	}

	if len(docs) > 0 && svc.Storage == nil {
		return nil, newUserError("uploadsDisabled", "document uploads are not available right now")
	}
	for i, doc := range docs {
		publicID, err := svc.Storage.UploadDocument(ctx, "worker_applications",
			fmt.Sprintf("%s_doc_%d", app.ID, i), doc)
		if err != nil {
			return nil, fmt.Errorf("failed to upload application document: %w", err)
		}
		app.DocumentIDs = append(app.DocumentIDs, publicID)
	}

	if err := svc.Repo.CreateApplication(app); err != nil {
		return nil, fmt.Errorf("failed to store application: %w", err)
	}
	return app, nil
}

// ApproveWorkerApplication creates the worker account and registers its
// service area. The worker sets a password through the reset flow.
func (svc *DefaultUserService) ApproveWorkerApplication(ctx context.Context, appID string) (*models.User, error) {
	app, err := svc.Repo.GetApplication(appID)
	if err != nil {
		return nil, newUserError("notFound", "application not found")
	}
	if app.Status != models.ApplicationSubmitted {
		return nil, newUserError("alreadyResolved", fmt.Sprintf("application is already %s", app.Status))
	}

	now := time.Now().UTC()
	worker := &models.User{
		ID:        uuid.New().String(),
		Email:     app.Email,
		Role:      models.RoleWorker,
		Name:      app.Name,
		Phone:     app.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := svc.Repo.Create(worker); err != nil {
		return nil, fmt.Errorf("failed to create worker account: %w", err)
	}
	if err := svc.Coverage.RegisterWorker(ctx, worker.ID, app.ZipCodes); err != nil {
		svc.Logger.Error("failed to register worker coverage",
			zap.String("workerID", worker.ID), zap.Error(err))
	}

	app.Status = models.ApplicationApproved
	if err := svc.Repo.UpdateApplication(app); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return worker, nil
}

func (svc *DefaultUserService) RejectWorkerApplication(ctx context.Context, appID string) error {
	app, err := svc.Repo.GetApplication(appID)
	if err != nil {
		return newUserError("notFound", "application not found")
	}
	if app.Status != models.ApplicationSubmitted {
		return newUserError("alreadyResolved", fmt.Sprintf("application is already %s", app.Status))
	}
	app.Status = models.ApplicationRejected
	return svc.Repo.UpdateApplication(app)
}
