package auth

import (
	"context"
	"encoding/json"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort is the interface other modules use to resolve identities.
type AuthPort interface {
	CurrentUser(ctx context.Context, token string) (UserResponse, error)
	GetUser(ctx context.Context, userID string) (UserResponse, error)
}

// AuthAdapter implements AuthPort over the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{container: container}
}

// CurrentUser resolves the caller identity embedded in an access token.
func (a *AuthAdapter) CurrentUser(ctx context.Context, token string) (UserResponse, error) {
	req := CurrentUserRequest{Token: token}
	var resp UserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"current-user",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return UserResponse{}, err
	}
	return resp, nil
}

// GetUser retrieves a user view by ID.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (UserResponse, error) {
	req := GetUserRequest{UserID: userID}
	var resp UserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-user",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return UserResponse{}, err
	}
	return resp, nil
}
