package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frederic5962/bill-app/internal/domain"
	"github.com/frederic5962/bill-app/internal/kv"
	"github.com/frederic5962/bill-app/internal/routes"
	"github.com/frederic5962/bill-app/internal/store"
)

type fakeRemote struct {
	loginCalls      int
	loginErrs       []error
	createUserCalls int
	createUserErr   error
	lastUser        store.NewUser
}

func (f *fakeRemote) Login(_ context.Context, _ store.Credentials) (*store.AuthResponse, error) {
	call := f.loginCalls
	f.loginCalls++
	if call < len(f.loginErrs) && f.loginErrs[call] != nil {
		return nil, f.loginErrs[call]
	}
	return &store.AuthResponse{JWT: "token-123"}, nil
}

func (f *fakeRemote) CreateUser(_ context.Context, user store.NewUser) error {
	f.createUserCalls++
	f.lastUser = user
	return f.createUserErr
}

func (f *fakeRemote) ListBills(context.Context) ([]domain.Bill, error) { return nil, nil }

func (f *fakeRemote) CreateBill(context.Context, store.FileUpload) (*store.CreateBillResponse, error) {
	return nil, nil
}

func (f *fakeRemote) UpdateBill(context.Context, string, domain.Bill) error { return nil }

func newTestManager(remote store.Remote) (*Manager, *kv.Memory, *[]string) {
	sessions := kv.NewMemory()
	var visited []string
	nav := &routes.Navigator{OnNavigate: func(path string) {
		visited = append(visited, path)
	}}
	return NewManager(remote, sessions, nav), sessions, &visited
}

func TestSubmitCredentialsRejectsInvalidEmail(t *testing.T) {
	remote := &fakeRemote{}
	m, sessions, visited := newTestManager(remote)

	res, err := m.SubmitCredentials(context.Background(), domain.RoleEmployee, "invalidemail", "azerty")

	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.Nil(t, res)
	assert.Zero(t, remote.loginCalls, "no authenticate call on invalid email")
	assert.Zero(t, remote.createUserCalls)
	assert.Empty(t, *visited, "no navigation on invalid email")

	raw, _ := sessions.Get(context.Background(), kv.KeyUser)
	assert.Empty(t, raw, "no session record persisted")
}

func TestSubmitCredentialsWithoutRemotePersistsRecord(t *testing.T) {
	m, sessions, visited := newTestManager(nil)

	res, err := m.SubmitCredentials(context.Background(), domain.RoleEmployee, "johndoe@email.com", "azerty")
	require.NoError(t, err)

	raw, err := sessions.Get(context.Background(), kv.KeyUser)
	require.NoError(t, err)

	var record domain.SessionRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	assert.Equal(t, domain.SessionRecord{
		Type:     domain.RoleEmployee,
		Email:    "johndoe@email.com",
		Password: "azerty",
		Status:   "connected",
	}, record)

	assert.Equal(t, routes.Bills, res.Redirect)
	assert.True(t, res.ResetBackground)
	assert.Equal(t, []string{routes.Bills}, *visited)
}

func TestSubmitCredentialsStoresToken(t *testing.T) {
	remote := &fakeRemote{}
	m, sessions, _ := newTestManager(remote)

	_, err := m.SubmitCredentials(context.Background(), domain.RoleEmployee, "johndoe@email.com", "azerty")
	require.NoError(t, err)

	token, err := sessions.Get(context.Background(), kv.KeyJWT)
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)
	assert.Equal(t, 1, remote.loginCalls)
	assert.Zero(t, remote.createUserCalls)
}

func TestSubmitCredentialsFallsBackToRegistration(t *testing.T) {
	remote := &fakeRemote{loginErrs: []error{errors.New("invalid credentials")}}
	m, _, visited := newTestManager(remote)

	res, err := m.SubmitCredentials(context.Background(), domain.RoleEmployee, "johndoe@email.com", "azerty")
	require.NoError(t, err)

	assert.Equal(t, 1, remote.createUserCalls, "exactly one registration call")
	assert.Equal(t, 2, remote.loginCalls, "authenticate retried after registration")
	assert.Equal(t, []string{routes.Bills}, *visited, "navigation happens exactly once")
	assert.Equal(t, routes.Bills, res.Redirect)

	assert.Equal(t, store.NewUser{
		Type:     domain.RoleEmployee,
		Name:     "johndoe",
		Email:    "johndoe@email.com",
		Password: "azerty",
	}, remote.lastUser, "registration derives the name from the email's local part")
}

func TestSubmitCredentialsAdminNavigatesToDashboard(t *testing.T) {
	remote := &fakeRemote{}
	m, _, visited := newTestManager(remote)

	res, err := m.SubmitCredentials(context.Background(), domain.RoleAdmin, "admin@company.tld", "secret")
	require.NoError(t, err)

	assert.Equal(t, routes.Dashboard, res.Redirect)
	assert.Equal(t, []string{routes.Dashboard}, *visited)
	assert.Equal(t, routes.Dashboard, m.Nav.PreviousLocation)
}

func TestSubmitCredentialsRegistrationFailure(t *testing.T) {
	remote := &fakeRemote{
		loginErrs:     []error{errors.New("invalid credentials")},
		createUserErr: errors.New("duplicate account"),
	}
	m, sessions, visited := newTestManager(remote)

	res, err := m.SubmitCredentials(context.Background(), domain.RoleEmployee, "johndoe@email.com", "azerty")

	require.Error(t, err)
	assert.Nil(t, res)
	assert.Empty(t, *visited, "no navigation when the fallback fails")

	// The provisional record stays: it is written before the round
	// trip and never rolled back.
	raw, _ := sessions.Get(context.Background(), kv.KeyUser)
	assert.NotEmpty(t, raw)
}

func TestCurrentRoundTrips(t *testing.T) {
	m, _, _ := newTestManager(nil)

	record, err := m.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record, "nobody connected yet")

	_, err = m.SubmitCredentials(context.Background(), domain.RoleEmployee, "johndoe@email.com", "azerty")
	require.NoError(t, err)

	record, err = m.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "johndoe@email.com", record.Email)
	assert.Equal(t, domain.RoleEmployee, record.Type)
}
