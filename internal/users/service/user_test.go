package service

import (
	"context"
	"testing"
	"time"

	userserrors "carrental/internal/users/errors"
	"carrental/pkg/auth"
	"carrental/pkg/config"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/logger"
	"carrental/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

const testUserID = "507f1f77bcf86cd799439011"

type mockUserRepository struct {
	createFunc      func(ctx context.Context, user *model.User) error
	findByIDFunc    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)
	setRoleFunc     func(ctx context.Context, id string, role string) error
	setImageFunc    func(ctx context.Context, id string, image string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = testUserID
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, userserrors.ErrNotFound
}

func (m *mockUserRepository) SetRole(ctx context.Context, id string, role string) error {
	if m.setRoleFunc != nil {
		return m.setRoleFunc(ctx, id, role)
	}
	return nil
}

func (m *mockUserRepository) SetImage(ctx context.Context, id string, image string) error {
	if m.setImageFunc != nil {
		return m.setImageFunc(ctx, id, image)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		BcryptCost:        bcrypt.MinCost,
		MinPasswordLength: 8,
	}
}

func newTestService(repo *mockUserRepository) *userService {
	cfg := testConfig()
	return &userService{
		repo:   repo,
		tokens: auth.NewTokenManager("test-secret", time.Hour),
		cfg:    cfg,
	}
}

func assertCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", wantCode)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != wantCode {
		t.Fatalf("expected error code %s, got %s (%v)", wantCode, appErr.Code, err)
	}
}

func TestRegister_HashesPasswordAndMintsToken(t *testing.T) {
	var created *model.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = testUserID
			created = user
			return nil
		},
	}
	svc := newTestService(repo)

	user, token, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "  Dana Levi ",
		Email:    "Dana@Example.COM",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.PasswordHash == "s3cret-pass" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if created.Email != "dana@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
	if created.Name != "Dana Levi" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if user.Role != model.RoleUser {
		t.Errorf("expected default role user, got %s", user.Role)
	}
	if token == "" {
		t.Error("expected a token on registration")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(&mockUserRepository{})

	tests := []struct {
		name     string
		req      *model.RegisterRequest
		wantCode string
	}{
		{
			name:     "missing name",
			req:      &model.RegisterRequest{Email: "a@b.com", Password: "longenough"},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "missing email",
			req:      &model.RegisterRequest{Name: "Dana", Password: "longenough"},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "short password",
			req:      &model.RegisterRequest{Name: "Dana", Email: "a@b.com", Password: "short"},
			wantCode: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tt.req)
			assertCode(t, err, tt.wantCode)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *model.User) error {
			return userserrors.ErrDuplicateEmail
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "longenough",
	})
	assertCode(t, err, apperrors.CodeConflict)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("correct-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	stored := &model.User{
		ID:           testUserID,
		Name:         "Dana",
		Email:        "dana@example.com",
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
		wantCode string
	}{
		{"valid credentials", "dana@example.com", "correct-pass", true, ""},
		{"email is case insensitive", "DANA@example.com", "correct-pass", true, ""},
		{"wrong password", "dana@example.com", "wrong-pass", true, apperrors.CodeUnauthorized},
		{"unknown email", "nobody@example.com", "correct-pass", false, apperrors.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{
				findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
					if tt.found && email == "dana@example.com" {
						return stored, nil
					}
					return nil, userserrors.ErrNotFound
				},
			}
			svc := newTestService(repo)

			user, token, err := svc.Login(context.Background(), &model.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.wantCode != "" {
				assertCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.ID != testUserID {
				t.Errorf("expected user %s, got %s", testUserID, user.ID)
			}
			if token == "" {
				t.Error("expected a token on login")
			}
		})
	}
}

func TestPromoteToOwner(t *testing.T) {
	roleWrites := 0
	repo := &mockUserRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: testUserID, Name: "Dana", Email: "dana@example.com", PasswordHash: "x", Role: model.RoleUser}, nil
		},
		setRoleFunc: func(ctx context.Context, id string, role string) error {
			roleWrites++
			if role != model.RoleOwner {
				t.Errorf("expected promotion to owner, got %s", role)
			}
			return nil
		},
	}
	svc := newTestService(repo)

	user, err := svc.PromoteToOwner(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != model.RoleOwner {
		t.Errorf("expected role owner, got %s", user.Role)
	}
	if roleWrites != 1 {
		t.Errorf("expected one role write, got %d", roleWrites)
	}
}

func TestPromoteToOwner_AlreadyOwnerIsNoOp(t *testing.T) {
	roleWrites := 0
	repo := &mockUserRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: testUserID, Role: model.RoleOwner}, nil
		},
		setRoleFunc: func(ctx context.Context, id string, role string) error {
			roleWrites++
			return nil
		},
	}
	svc := newTestService(repo)

	user, err := svc.PromoteToOwner(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != model.RoleOwner {
		t.Errorf("expected role owner, got %s", user.Role)
	}
	if roleWrites != 0 {
		t.Errorf("expected no role write for existing owner, got %d", roleWrites)
	}
}
