package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ankirsydii/Orderly/internal/models"
	"github.com/ankirsydii/Orderly/internal/redis"
	"github.com/ankirsydii/Orderly/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

var (
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrTermsNotAccepted   = errors.New("terms and conditions must be accepted")
	ErrProfileMissing     = errors.New("user profile is missing, contact an admin")
)

// SessionStore is the slice of the Redis client auth needs; tests substitute
// an in-memory fake.
type SessionStore interface {
	SetSession(token string, data *redis.SessionData, ttl time.Duration) error
	DeleteSession(token string) error
	SetResetToken(token, credentialID string, ttl time.Duration) error
	GetResetToken(token string) (string, error)
	DeleteResetToken(token string) error
}

type RegisterRequest struct {
	FullName        string `json:"full_name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	TermsAccepted   bool   `json:"terms_accepted"`
}

type LoginResult struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type AuthService interface {
	Register(req RegisterRequest) error
	CreateEmployee(fullName, email, password string) error
	Login(email, password string) (*LoginResult, error)
	Logout(token string) error
	RequestPasswordReset(email string) (string, error)
	ConfirmPasswordReset(token, newPassword string) error
}

type authService struct {
	credentialRepo repository.CredentialRepository
	userRepo       repository.UserRepository
	sessions       SessionStore
	sessionTTL     time.Duration
	resetTTL       time.Duration
}

func NewAuthService(
	credentialRepo repository.CredentialRepository,
	userRepo repository.UserRepository,
	sessions SessionStore,
	sessionTTL, resetTTL time.Duration,
) AuthService {
	return &authService{
		credentialRepo: credentialRepo,
		userRepo:       userRepo,
		sessions:       sessions,
		sessionTTL:     sessionTTL,
		resetTTL:       resetTTL,
	}
}

// Register creates the credential and the profile as two writes. When the
// profile write fails the credential is deleted again, so a half-failed
// registration leaves no residual account behind.
func (s *authService) Register(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if !req.TermsAccepted {
		return ErrTermsNotAccepted
	}

	// Self-registration opens the owner account.
	return s.createAccount(req.FullName, req.Email, req.Password, models.RoleAdmin)
}

// CreateEmployee lets an admin open a cashier account.
func (s *authService) CreateEmployee(fullName, email, password string) error {
	req := RegisterRequest{
		FullName:        fullName,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		TermsAccepted:   true,
	}
	if err := validate.Struct(req); err != nil {
		return err
	}
	return s.createAccount(fullName, email, password, models.RoleCashier)
}

func (s *authService) createAccount(fullName, email, password string, role models.UserRole) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	credential := &models.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.credentialRepo.Create(credential); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	user := &models.User{
		ID:       credential.ID,
		FullName: fullName,
		Email:    email,
		Role:     string(role),
	}
	if err := s.userRepo.Create(user); err != nil {
		// Compensating delete, not a transaction: without it a credential
		// with no profile would be able to log in and go nowhere.
		if delErr := s.credentialRepo.Delete(credential.ID); delErr != nil {
			return fmt.Errorf("failed to save profile: %v (credential cleanup also failed: %w)", err, delErr)
		}
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

func (s *authService) Login(email, password string) (*LoginResult, error) {
	credential, err := s.credentialRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(credential.ID)
	if err != nil {
		return nil, ErrProfileMissing
	}
	role := user.Role
	if role == "" {
		role = string(models.RoleCashier)
	}

	token := uuid.NewString()
	session := &redis.SessionData{
		UserID:    user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SetSession(token, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	return &LoginResult{Token: token, Role: role, FullName: user.FullName}, nil
}

func (s *authService) Logout(token string) error {
	return s.sessions.DeleteSession(token)
}

// RequestPasswordReset issues a short-lived token. Delivering it (email,
// message, printout) is the share layer's problem, not ours; the token is
// returned so the caller can hand it to whatever sends it.
func (s *authService) RequestPasswordReset(email string) (string, error) {
	credential, err := s.credentialRepo.GetByEmail(email)
	if err != nil {
		// Same message whether or not the account exists.
		return "", nil
	}

	token := uuid.NewString()
	if err := s.sessions.SetResetToken(token, credential.ID, s.resetTTL); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}
	return token, nil
}

func (s *authService) ConfirmPasswordReset(token, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	credentialID, err := s.sessions.GetResetToken(token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.credentialRepo.UpdatePassword(credentialID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.sessions.DeleteResetToken(token)
}
