package auth

import (
	"context"
	"errors"

	"github.com/employeehub/payroll-backend-go/internal/domain/auth"
	"github.com/employeehub/payroll-backend-go/internal/pkg/database"
	"github.com/employeehub/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db         *database.DB
	userRepo   auth.UserRepository
	jwtService jwt.Service
}

type AuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error)
}

func NewAuthService(db *database.DB, userRepo auth.UserRepository, jwtService jwt.Service) AuthService {
	return &AuthServiceImpl{
		db:         db,
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	role := auth.RoleStaff
	if req.Role != "" {
		role = auth.Role(req.Role)
	}

	created, err := a.userRepo.Create(ctx, auth.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return a.issueToken(created)
}

func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	user, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			// Same answer as a wrong password; no account enumeration.
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueToken(user)
}

func (a *AuthServiceImpl) issueToken(user auth.User) (auth.AuthResponse, error) {
	token, expiresAt, err := a.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return auth.AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User: auth.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	}, nil
}
