package user

import (
	"time"
)

// User represents a registered account. PasswordHash never leaves the
// repository boundary in serialized form.
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username     string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	FullName     *string    `gorm:"size:100" json:"full_name,omitempty"`
	PasswordHash string     `gorm:"not null" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `gorm:"autoUpdateTime:false" json:"updated_at,omitempty"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims is the identity payload carried by a verified access token.
type Claims struct {
	UserID string `json:"user_id"`
}
