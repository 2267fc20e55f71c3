package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ankirsydii/Orderly/internal/models"
	"github.com/ankirsydii/Orderly/internal/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock CredentialRepository
type mockCredentialRepo struct {
	credentials map[string]models.Credential // by ID
	failure     error
}

func newMockCredentialRepo() *mockCredentialRepo {
	return &mockCredentialRepo{credentials: make(map[string]models.Credential)}
}

func (m *mockCredentialRepo) Create(credential *models.Credential) error {
	if m.failure != nil {
		return m.failure
	}
	for _, c := range m.credentials {
		if c.Email == credential.Email {
			return errors.New("duplicate email")
		}
	}
	m.credentials[credential.ID] = *credential
	return nil
}

func (m *mockCredentialRepo) GetByEmail(email string) (*models.Credential, error) {
	for _, c := range m.credentials {
		if c.Email == email {
			out := c
			return &out, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockCredentialRepo) GetByID(id string) (*models.Credential, error) {
	c, ok := m.credentials[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &c, nil
}

func (m *mockCredentialRepo) UpdatePassword(id, passwordHash string) error {
	c, ok := m.credentials[id]
	if !ok {
		return errors.New("not found")
	}
	c.PasswordHash = passwordHash
	m.credentials[id] = c
	return nil
}

func (m *mockCredentialRepo) Delete(id string) error {
	delete(m.credentials, id)
	return nil
}

// Mock UserRepository
type mockUserRepo struct {
	users   map[string]models.User
	failure error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]models.User)}
}

func (m *mockUserRepo) Create(user *models.User) error {
	if m.failure != nil {
		return m.failure
	}
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &u, nil
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockUserRepo) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(user *models.User) error { return m.Create(user) }

func (m *mockUserRepo) Delete(id string) error {
	delete(m.users, id)
	return nil
}

// Mock SessionStore
type mockSessionStore struct {
	sessions    map[string]*redis.SessionData
	resetTokens map[string]string
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{
		sessions:    make(map[string]*redis.SessionData),
		resetTokens: make(map[string]string),
	}
}

func (m *mockSessionStore) SetSession(token string, data *redis.SessionData, ttl time.Duration) error {
	m.sessions[token] = data
	return nil
}

func (m *mockSessionStore) DeleteSession(token string) error {
	delete(m.sessions, token)
	return nil
}

func (m *mockSessionStore) SetResetToken(token, credentialID string, ttl time.Duration) error {
	m.resetTokens[token] = credentialID
	return nil
}

func (m *mockSessionStore) GetResetToken(token string) (string, error) {
	id, ok := m.resetTokens[token]
	if !ok {
		return "", errors.New("reset token not found or expired")
	}
	return id, nil
}

func (m *mockSessionStore) DeleteResetToken(token string) error {
	delete(m.resetTokens, token)
	return nil
}

func newAuthFixture() (AuthService, *mockCredentialRepo, *mockUserRepo, *mockSessionStore) {
	credentials := newMockCredentialRepo()
	users := newMockUserRepo()
	sessions := newMockSessionStore()
	svc := NewAuthService(credentials, users, sessions, time.Hour, 15*time.Minute)
	return svc, credentials, users, sessions
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		FullName:        "Nurul",
		Email:           "nurul@lawu.cafe",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		TermsAccepted:   true,
	}
}

func TestRegisterCreatesAdminAccount(t *testing.T) {
	svc, credentials, users, _ := newAuthFixture()

	require.NoError(t, svc.Register(validRegistration()))

	require.Len(t, credentials.credentials, 1)
	require.Len(t, users.users, 1)
	for _, u := range users.users {
		assert.Equal(t, string(models.RoleAdmin), u.Role)
		assert.Equal(t, "Nurul", u.FullName)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"empty full name", func(r *RegisterRequest) { r.FullName = "" }},
		{"empty email", func(r *RegisterRequest) { r.Email = "" }},
		{"invalid email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegistration()
			tc.mutate(&req)
			assert.Error(t, svc.Register(req))
		})
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	req := validRegistration()
	req.ConfirmPassword = "different1"
	assert.ErrorIs(t, svc.Register(req), ErrPasswordMismatch)
}

func TestRegisterTermsRequired(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	req := validRegistration()
	req.TermsAccepted = false
	assert.ErrorIs(t, svc.Register(req), ErrTermsNotAccepted)
}

func TestRegisterCompensatesFailedProfileWrite(t *testing.T) {
	svc, credentials, users, _ := newAuthFixture()
	users.failure = errors.New("permission denied")

	err := svc.Register(validRegistration())
	require.Error(t, err)

	// The half-created credential must not survive.
	assert.Empty(t, credentials.credentials)
	assert.Empty(t, users.users)
}

func TestLoginReturnsRoleAndSession(t *testing.T) {
	svc, _, _, sessions := newAuthFixture()
	require.NoError(t, svc.Register(validRegistration()))

	result, err := svc.Login("nurul@lawu.cafe", "secret123")
	require.NoError(t, err)

	assert.Equal(t, string(models.RoleAdmin), result.Role)
	assert.Equal(t, "Nurul", result.FullName)
	require.NotEmpty(t, result.Token)
	assert.Contains(t, sessions.sessions, result.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	require.NoError(t, svc.Register(validRegistration()))

	_, err := svc.Login("nurul@lawu.cafe", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Login("ghost@lawu.cafe", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginMissingProfile(t *testing.T) {
	svc, _, users, _ := newAuthFixture()
	require.NoError(t, svc.Register(validRegistration()))

	// Simulate a profile document lost from the store.
	for id := range users.users {
		delete(users.users, id)
	}

	_, err := svc.Login("nurul@lawu.cafe", "secret123")
	assert.ErrorIs(t, err, ErrProfileMissing)
}

func TestCreateEmployeeIsCashier(t *testing.T) {
	svc, _, users, _ := newAuthFixture()

	require.NoError(t, svc.CreateEmployee("Budi", "budi@lawu.cafe", "kasir123"))

	user, err := users.GetByEmail("budi@lawu.cafe")
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleCashier), user.Role)
}

func TestLogoutRemovesSession(t *testing.T) {
	svc, _, _, sessions := newAuthFixture()
	require.NoError(t, svc.Register(validRegistration()))

	result, err := svc.Login("nurul@lawu.cafe", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(result.Token))
	assert.NotContains(t, sessions.sessions, result.Token)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	require.NoError(t, svc.Register(validRegistration()))

	token, err := svc.RequestPasswordReset("nurul@lawu.cafe")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ConfirmPasswordReset(token, "newsecret1"))

	_, err = svc.Login("nurul@lawu.cafe", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := svc.Login("nurul@lawu.cafe", "newsecret1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	svc, _, _, sessions := newAuthFixture()

	token, err := svc.RequestPasswordReset("ghost@lawu.cafe")
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, sessions.resetTokens)
}

func TestPasswordResetTokenSingleUse(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	require.NoError(t, svc.Register(validRegistration()))

	token, err := svc.RequestPasswordReset("nurul@lawu.cafe")
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmPasswordReset(token, "newsecret1"))
	assert.Error(t, svc.ConfirmPasswordReset(token, "another123"))
}
