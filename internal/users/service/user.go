package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	userserrors "carrental/internal/users/errors"
	"carrental/internal/users/repository"
	"carrental/pkg/auth"
	"carrental/pkg/config"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/model"
	"carrental/pkg/sanitizer"
	"carrental/pkg/storage"
)

type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, string, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	PromoteToOwner(ctx context.Context, id string) (*model.User, error)
	UpdateImage(ctx context.Context, id, filename string, file io.Reader) (*model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	tokens *auth.TokenManager
	files  *storage.FileStore
	cfg    *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	tokens *auth.TokenManager,
	files *storage.FileStore,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:   repo,
		tokens: tokens,
		files:  files,
		cfg:    cfg,
	}
}

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, string, error) {
	name := sanitizer.NormalizeName(req.Name)
	email := sanitizer.NormalizeEmail(req.Email)

	if name == "" || email == "" || req.Password == "" {
		return nil, "", apperrors.InvalidInput("name, email and password are required")
	}
	if len(req.Password) < s.cfg.MinPasswordLength {
		return nil, "", apperrors.Validation(
			fmt.Sprintf("password must be at least %d characters", s.cfg.MinPasswordLength), nil)
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to hash password", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrDuplicateEmail) {
			return nil, "", apperrors.Conflict("Email is already registered")
		}
		s.cfg.Log.Error("Failed to create user", "email", email, "error", err)
		return nil, "", apperrors.Internal("Failed to create user", err)
	}

	token, err := s.tokens.Mint(user.ID, user.Role)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User registered", "id", user.ID)
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, string, error) {
	email := sanitizer.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", apperrors.InvalidInput("email and password are required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, "", apperrors.Unauthorized("Invalid email or password")
		}
		s.cfg.Log.Error("Failed to look up user", "error", err)
		return nil, "", apperrors.Internal("Failed to retrieve user", err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, "", apperrors.Unauthorized("Invalid email or password")
	}

	token, err := s.tokens.Mint(user.ID, user.Role)
	if err != nil {
		return nil, "", apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("User logged in", "id", user.ID)
	return user, token, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

// PromoteToOwner is one way. Owners stay owners; promoting one again is a
// no-op.
func (s *userService) PromoteToOwner(ctx context.Context, id string) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == model.RoleOwner {
		return user, nil
	}

	if err := s.repo.SetRole(ctx, id, model.RoleOwner); err != nil {
		s.cfg.Log.Error("Failed to promote user", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update user role", err)
	}

	user.Role = model.RoleOwner
	s.cfg.Log.Info("User promoted to owner", "id", id)
	return user, nil
}

func (s *userService) UpdateImage(ctx context.Context, id, filename string, file io.Reader) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	path, err := s.files.Save(id, filename, file)
	if err != nil {
		s.cfg.Log.Error("Failed to store user image", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to store image", err)
	}

	if err := s.repo.SetImage(ctx, id, path); err != nil {
		s.cfg.Log.Error("Failed to update user image", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update user", err)
	}

	user.Image = path
	return user, nil
}
