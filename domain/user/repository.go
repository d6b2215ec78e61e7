package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/task-manager/domain/apperror"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// Repository persists users with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new user repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. A unique-constraint violation that slips past
// the service's pre-checks (two registrations racing) is mapped to the same
// duplicate taxonomy the pre-checks use.
func (r *Repository) Create(u *User) error {
	if err := r.db.Create(u).Error; err != nil {
		if dup := duplicateError(err, u); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by ID.
func (r *Repository) FindByID(id string) (*User, error) {
	var u User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

// FindByEmail retrieves a user by exact email match.
func (r *Repository) FindByEmail(email string) (*User, error) {
	var u User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &u, nil
}

// FindByUsername retrieves a user by username.
func (r *Repository) FindByUsername(username string) (*User, error) {
	var u User
	if err := r.db.First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return &u, nil
}

// EmailExists reports whether a user with the given email exists.
func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users by email: %w", err)
	}
	return count > 0, nil
}

// UsernameExists reports whether a user with the given username exists.
func (r *Repository) UsernameExists(username string) (bool, error) {
	var count int64
	if err := r.db.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users by username: %w", err)
	}
	return count > 0, nil
}

// Update persists changes to an existing user.
func (r *Repository) Update(u *User) error {
	result := r.db.Model(&User{}).Where("id = ?", u.ID).Updates(u)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// duplicateError maps a driver-level unique constraint violation to the
// duplicate taxonomy, distinguishing the email and username indexes.
func duplicateError(err error, u *User) error {
	msg := err.Error()
	if !errors.Is(err, gorm.ErrDuplicatedKey) && !strings.Contains(msg, "UNIQUE constraint failed") {
		return nil
	}
	if strings.Contains(msg, "users.username") {
		return apperror.Duplicate("User", "username", u.Username)
	}
	return apperror.Duplicate("User", "email", u.Email)
}
