package store

import (
	"context"

	"github.com/frederic5962/bill-app/internal/domain"
)

// Credentials is the login payload sent to the remote store.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewUser is the account-creation payload.
type NewUser struct {
	Type     domain.Role `json:"type"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
}

// AuthResponse carries the access token returned by a successful login.
type AuthResponse struct {
	JWT string `json:"jwt"`
}

// FileUpload is the multipart payload for the first phase of bill
// creation: the receipt file plus the owner's email.
type FileUpload struct {
	FileName    string
	ContentType string
	Data        []byte
	Email       string
}

// CreateBillResponse is the remote store's answer to a draft creation:
// the record key to update at final submission and the stored file URL.
type CreateBillResponse struct {
	Key     string `json:"key"`
	FileURL string `json:"fileUrl"`
}

// Remote is the external data store boundary. A nil Remote means the
// collaborator is not configured; consumers short-circuit to an
// empty result instead of calling it.
type Remote interface {
	Login(ctx context.Context, creds Credentials) (*AuthResponse, error)
	CreateUser(ctx context.Context, user NewUser) error
	ListBills(ctx context.Context) ([]domain.Bill, error)
	CreateBill(ctx context.Context, upload FileUpload) (*CreateBillResponse, error)
	UpdateBill(ctx context.Context, id string, bill domain.Bill) error
}
