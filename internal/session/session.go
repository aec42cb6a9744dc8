package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/kv"
	"github.com/frederic5962/bill-app/internal/routes"
	"github.com/frederic5962/bill-app/internal/store"
)

// InvalidEmailMessage is the role-scoped inline message shown when the
// submitted email does not have a local@domain.tld shape.
const InvalidEmailMessage = "Invalid email format"

// ErrInvalidEmail rejects a credential submission before any network
// call or navigation happens.
var ErrInvalidEmail = errors.New("invalid email format")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result reports where a successful submission navigated to.
type Result struct {
	Redirect         string `json:"redirect"`
	PreviousLocation string `json:"previousLocation"`
	// ResetBackground tells the front end to restore the neutral
	// page background after leaving the login view.
	ResetBackground bool `json:"resetBackground"`
}

// Manager turns a submitted email/password pair into an authenticated
// session record, creating the account on first use. One manager
// serves both roles; the role tag picks the landing route.
type Manager struct {
	Remote   store.Remote
	Sessions kv.Store
	Nav      *routes.Navigator
}

func NewManager(remote store.Remote, sessions kv.Store, nav *routes.Navigator) *Manager {
	return &Manager{Remote: remote, Sessions: sessions, Nav: nav}
}

// SubmitCredentials validates the email shape, persists a provisional
// session record, authenticates against the remote store (registering
// the account and retrying once on failure) and navigates to the
// role's home view. Navigation happens at most once, and only after an
// authenticate call resolves.
func (m *Manager) SubmitCredentials(ctx context.Context, role domain.Role, email, password string) (*Result, error) {
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	record := domain.SessionRecord{
		Type:     role,
		Email:    email,
		Password: password,
		Status:   "connected",
	}

	// The record is written before the remote round trip and is not
	// rolled back if that round trip fails.
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	if err := m.Sessions.Set(ctx, kv.KeyUser, string(raw)); err != nil {
		return nil, fmt.Errorf("persist session record: %w", err)
	}

	if err := m.login(ctx, record); err != nil {
		log.Printf("login failed for %s, registering account: %v", email, err)
		if err := m.Register(ctx, record); err != nil {
			return nil, fmt.Errorf("register fallback: %w", err)
		}
	}

	redirect := routes.Bills
	if role == domain.RoleAdmin {
		redirect = routes.Dashboard
	}
	m.Nav.Go(redirect)

	return &Result{
		Redirect:         redirect,
		PreviousLocation: m.Nav.PreviousLocation,
		ResetBackground:  true,
	}, nil
}

// Register creates the account on the remote store and immediately
// authenticates with the same credentials. With no remote configured
// it is a no-op.
func (m *Manager) Register(ctx context.Context, record domain.SessionRecord) error {
	if m.Remote == nil {
		return nil
	}

	user := store.NewUser{
		Type:     record.Type,
		Name:     localPart(record.Email),
		Email:    record.Email,
		Password: record.Password,
	}
	if err := m.Remote.CreateUser(ctx, user); err != nil {
		return err
	}
	log.Printf("user with %s is created", record.Email)

	return m.login(ctx, record)
}

// login authenticates and stores the returned access token under its
// own key. A nil remote resolves to nothing rather than an error.
func (m *Manager) login(ctx context.Context, record domain.SessionRecord) error {
	if m.Remote == nil {
		return nil
	}

	res, err := m.Remote.Login(ctx, store.Credentials{
		Email:    record.Email,
		Password: record.Password,
	})
	if err != nil {
		return err
	}
	if res != nil {
		if err := m.Sessions.Set(ctx, kv.KeyJWT, res.JWT); err != nil {
			return fmt.Errorf("persist access token: %w", err)
		}
	}
	return nil
}

// Current returns the persisted session record, or nil when nobody is
// connected.
func (m *Manager) Current(ctx context.Context) (*domain.SessionRecord, error) {
	raw, err := m.Sessions.Get(ctx, kv.KeyUser)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var record domain.SessionRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
