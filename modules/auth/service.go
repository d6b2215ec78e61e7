package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/example/task-manager/domain/apperror"
	domain "github.com/example/task-manager/domain/user"
	"github.com/google/uuid"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	maxFullNameLen = 100
	minPasswordLen = 8
	// bcrypt ignores input beyond 72 bytes.
	maxPasswordLen = 72
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email    string
	Username string
	FullName *string
	Password string
}

// AuthService orchestrates registration, login, and current-user resolution.
type AuthService struct {
	repo   *domain.Repository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *domain.Repository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, jwt: jwt}
}

// Register creates a new active user account. The email uniqueness check
// runs before the username check, so a request violating both reports the
// email conflict.
func (s *AuthService) Register(_ context.Context, in RegisterInput) (*domain.User, error) {
	if err := validateRegisterInput(in); err != nil {
		return nil, err
	}

	emailTaken, err := s.repo.EmailExists(in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if emailTaken {
		return nil, apperror.Duplicate("User", "email", in.Email)
	}

	usernameTaken, err := s.repo.UsernameExists(in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if usernameTaken {
		return nil, apperror.Duplicate("User", "username", in.Username)
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	// The repository maps a racing unique-constraint violation to the same
	// duplicate taxonomy as the pre-checks above.
	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	return u, nil
}

// Login authenticates by email or username and returns a signed access
// token. A missing user and a wrong password produce the identical error so
// responses cannot be used to enumerate accounts.
func (s *AuthService) Login(_ context.Context, identifier, password string) (token string, expiresIn int64, err error) {
	u, err := s.repo.FindByEmail(identifier)
	if errors.Is(err, domain.ErrNotFound) {
		u, err = s.repo.FindByUsername(identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", 0, apperror.Authentication("Invalid credentials")
		}
		return "", 0, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", 0, apperror.Authentication("Invalid credentials")
	}

	if !u.IsActive {
		return "", 0, apperror.Authentication("User account is inactive")
	}

	token, err = s.jwt.Issue(u.ID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, s.jwt.ExpiresInSeconds(), nil
}

// CurrentUser resolves the caller's identity from an access token.
func (s *AuthService) CurrentUser(_ context.Context, token string) (*domain.User, error) {
	userID, err := s.jwt.Verify(token)
	if err != nil {
		return nil, apperror.Authentication("Invalid token")
	}

	u, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Authentication("User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

func validateRegisterInput(in RegisterInput) error {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return apperror.Validation("Invalid email format")
	}
	if len(in.Username) < minUsernameLen || len(in.Username) > maxUsernameLen {
		return apperror.Validation(fmt.Sprintf("Username must be between %d and %d characters", minUsernameLen, maxUsernameLen))
	}
	if in.FullName != nil && len(*in.FullName) > maxFullNameLen {
		return apperror.Validation(fmt.Sprintf("Full name must be at most %d characters", maxFullNameLen))
	}
	if len(in.Password) < minPasswordLen {
		return apperror.Validation(fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}
	if len(in.Password) > maxPasswordLen {
		return apperror.Validation(fmt.Sprintf("Password must be at most %d characters", maxPasswordLen))
	}
	return nil
}
