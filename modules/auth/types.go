package auth

import (
	"time"

	domain "github.com/example/task-manager/domain/user"
)

// RegisterRequest is the payload of the register service.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	FullName *string `json:"full_name,omitempty"`
	Password string  `json:"password"`
}

// UserResponse is the outward view of a user. It never carries the password
// hash.
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	FullName  *string    `json:"full_name,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewUserResponse builds the outward view of a user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginRequest is the payload of the login service. The identifier is tried
// as an email first, then as a username.
type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username"`
	Password        string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// CurrentUserRequest is the payload of the current-user service.
type CurrentUserRequest struct {
	Token string `json:"token"`
}

// GetUserRequest is the payload of the get-user service.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}
