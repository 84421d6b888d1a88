package models

import "time"

// Role determines which surfaces a user can reach.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleWorker   Role = "worker"
	RoleAdmin    Role = "admin"
)

// User is a customer, worker or admin account.
type User struct {
	ID              string    `bson:"id" json:"id"`
	Email           string    `bson:"email" json:"email"`
	PasswordHash    string    `bson:"password_hash" json:"-"`
	Role            Role      `bson:"role" json:"role"`
	Name            string    `bson:"name" json:"name"`
	Phone           string    `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken        string    `bson:"fcm_token,omitempty" json:"-"`
	PaymentMethodID string    `bson:"payment_method_id,omitempty" json:"-"`
	StripeCustomer  string    `bson:"stripe_customer,omitempty" json:"-"`
	TokenHash       string    `bson:"token_hash,omitempty" json:"-"`
	TestAccount     bool      `bson:"test_account,omitempty" json:"test_account,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// WorkerApplicationStatus is the review state of a worker application.
type WorkerApplicationStatus string

const (
	ApplicationSubmitted WorkerApplicationStatus = "submitted"
	ApplicationApproved  WorkerApplicationStatus = "approved"
	ApplicationRejected  WorkerApplicationStatus = "rejected"
)

// WorkerApplication is submitted by a prospective worker, with uploaded
// identity/insurance documents referenced by their storage public IDs.
type WorkerApplication struct {
	ID          string                  `bson:"id" json:"id"`
	Email       string                  `bson:"email" json:"email"`
	Name        string                  `bson:"name" json:"name"`
	Phone       string                  `bson:"phone" json:"phone"`
	ZipCodes    []string                `bson:"zip_codes" json:"zip_codes"`
	DocumentIDs []string                `bson:"document_ids,omitempty" json:"document_ids,omitempty"`
	Status      WorkerApplicationStatus `bson:"status" json:"status"`
	CreatedAt   time.Time               `bson:"created_at" json:"created_at"`
}
