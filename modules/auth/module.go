package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/example/task-manager/config"
	"github.com/example/task-manager/domain/apperror"
	domain "github.com/example/task-manager/domain/user"
	"github.com/example/task-manager/modules/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthModule provides authentication services over the service container.
type AuthModule struct {
	storage *storage.Module
	cfg     config.Config
	service *AuthService
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule. The storage module must be registered
// ahead of it so the database handle exists when Start runs.
func NewModule(storage *storage.Module, cfg config.Config) *AuthModule {
	return &AuthModule{storage: storage, cfg: cfg}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start wires the repository, hasher, and token manager into the service.
func (m *AuthModule) Start(_ context.Context) error {
	db := m.storage.DB()
	if db == nil {
		return errors.New("storage module not started")
	}

	repo := domain.NewRepository(db)
	hasher := NewPasswordHasher()
	jwtManager := NewJWTManager(JWTConfig{
		SecretKey:      m.cfg.JWTSecret,
		Issuer:         m.cfg.JWTIssuer,
		AccessTokenTTL: m.cfg.AccessTokenTTL(),
	})
	m.service = NewAuthService(repo, hasher, jwtManager)

	log.Println("[auth] Module started")
	return nil
}

// Stop shuts down the module.
func (m *AuthModule) Stop(_ context.Context) error {
	log.Println("[auth] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{Healthy: false, Message: "service not initialized"}
	}
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}

// Service returns the auth service. Valid after Start.
func (m *AuthModule) Service() *AuthService {
	return m.service
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	services := map[string]func() error{
		"register": func() error {
			return helper.RegisterTypedRequestReplyService(container, "register", json.Unmarshal, json.Marshal, m.handleRegister)
		},
		"login": func() error {
			return helper.RegisterTypedRequestReplyService(container, "login", json.Unmarshal, json.Marshal, m.handleLogin)
		},
		"current-user": func() error {
			return helper.RegisterTypedRequestReplyService(container, "current-user", json.Unmarshal, json.Marshal, m.handleCurrentUser)
		},
		"get-user": func() error {
			return helper.RegisterTypedRequestReplyService(container, "get-user", json.Unmarshal, json.Marshal, m.handleGetUser)
		},
	}
	for name, register := range services {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
	}

	log.Printf("[auth] Registered services: register, login, current-user, get-user")
	return nil
}

func (m *AuthModule) handleRegister(ctx context.Context, req RegisterRequest, _ *mono.Msg) (UserResponse, error) {
	u, err := m.service.Register(ctx, RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return UserResponse{}, err
	}
	return NewUserResponse(u), nil
}

func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (LoginResponse, error) {
	token, expiresIn, err := m.service.Login(ctx, req.EmailOrUsername, req.Password)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

func (m *AuthModule) handleCurrentUser(ctx context.Context, req CurrentUserRequest, _ *mono.Msg) (UserResponse, error) {
	u, err := m.service.CurrentUser(ctx, req.Token)
	if err != nil {
		return UserResponse{}, err
	}
	return NewUserResponse(u), nil
}

func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (UserResponse, error) {
	u, err := m.service.repo.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return UserResponse{}, apperror.NotFound("User", req.UserID)
		}
		return UserResponse{}, err
	}
	return NewUserResponse(u), nil
}
