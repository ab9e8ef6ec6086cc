package auth_test

import (
	"context"
	"testing"

	"github.com/dhruv2311-dot/odoo-gcet/internal/auth"
	autherrors "github.com/dhruv2311-dot/odoo-gcet/internal/auth/errors"
	"github.com/dhruv2311-dot/odoo-gcet/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	byEmail  map[string]*user.User
	byID     map[string]*user.User
	createFn func(ctx context.Context, u *user.User) error
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail: map[string]*user.User{},
		byID:    map[string]*user.User{},
	}
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
	return nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) FindIDsByRole(ctx context.Context, role string) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

type fakeIDService struct {
	employeeID string
}

func (f *fakeIDService) GetAll(ctx context.Context) ([]user.UserResponse, error) { return nil, nil }

func (f *fakeIDService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}

func (f *fakeIDService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return user.UserResponse{}, nil
}

func (f *fakeIDService) ToggleStatus(ctx context.Context, id string, isActive bool) error {
	return nil
}

func (f *fakeIDService) GenerateEmployeeID(ctx context.Context, firstName, lastName string) (string, error) {
	return f.employeeID, nil
}

func seedActiveUser(repo *fakeUserRepository, email, password string) *user.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         "employee",
		FirstName:    "Asha",
		LastName:     "Patel",
		IsActive:     true,
	}
	repo.byEmail[email] = u
	repo.byID[u.ID.String()] = u
	return u
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepository()
	svc := auth.NewService(repo, &fakeIDService{employeeID: "GCASPA260001"})

	resp, err := svc.Signup(ctx, auth.SignupRequest{
		Email:     "  Asha@Example.com ",
		Password:  "secret123",
		FirstName: "Asha",
		LastName:  "Patel",
	})
	assert.NoError(t, err)

	assert.Equal(t, "asha@example.com", resp.Email)
	assert.Equal(t, "employee", resp.Role)
	if assert.NotNil(t, resp.EmployeeID) {
		assert.Equal(t, "GCASPA260001", *resp.EmployeeID)
	}

	stored := repo.byEmail["asha@example.com"]
	if assert.NotNil(t, stored) {
		assert.NotEqual(t, "secret123", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
		assert.True(t, stored.IsActive)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepository()
	svc := auth.NewService(repo, &fakeIDService{employeeID: "GCASPA260001"})

	seedActiveUser(repo, "asha@example.com", "secret123")

	_, err := svc.Signup(ctx, auth.SignupRequest{
		Email:     "asha@example.com",
		Password:  "secret123",
		FirstName: "Asha",
		LastName:  "Patel",
	})
	assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepository()
	svc := auth.NewService(repo, &fakeIDService{})
	u := seedActiveUser(repo, "asha@example.com", "secret123")

	token, resp, err := svc.Login(ctx, "Asha@Example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, u.ID.String(), resp.ID)

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if assert.True(t, ok) {
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, "asha@example.com", claims["email"])
		assert.Equal(t, "employee", claims["role"])
	}
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepository()
	svc := auth.NewService(repo, &fakeIDService{})
	seedActiveUser(repo, "asha@example.com", "secret123")

	_, _, err := svc.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepository()
	svc := auth.NewService(repo, &fakeIDService{})
	u := seedActiveUser(repo, "asha@example.com", "secret123")
	u.IsActive = false

	_, _, err := svc.Login(ctx, "asha@example.com", "secret123")
	assert.ErrorIs(t, err, autherrors.ErrUserInactive)
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepository()
	svc := auth.NewService(repo, &fakeIDService{})
	u := seedActiveUser(repo, "asha@example.com", "secret123")

	resp, err := svc.GetMe(ctx, u.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, u.Email, resp.Email)

	_, err = svc.GetMe(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)

	_, err = svc.GetMe(ctx, uuid.New().String())
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
