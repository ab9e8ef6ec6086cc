package user_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dhruv2311-dot/odoo-gcet/internal/user"
	usererrors "github.com/dhruv2311-dot/odoo-gcet/internal/user/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users    map[string]*user.User
	updateFn func(ctx context.Context, u *user.User) error
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepository) FindIDsByRole(ctx context.Context, role string) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, scope, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

func setupUserServiceTest() (user.Service, *fakeUserRepository, *fakeCounterRepository) {
	repo := &fakeUserRepository{users: map[string]*user.User{}}
	counterRepo := &fakeCounterRepository{}
	return user.NewService(repo, counterRepo), repo, counterRepo
}

func seedUser(repo *fakeUserRepository) *user.User {
	u := &user.User{
		ID:        uuid.New(),
		Email:     "asha@example.com",
		FirstName: "Asha",
		LastName:  "Patel",
		Role:      "employee",
		IsActive:  true,
	}
	repo.users[u.ID.String()] = u
	return u
}

func TestUserService_GenerateEmployeeID_Format(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupUserServiceTest()
	t.Setenv("COMPANY_NAME", "Odoo")

	got, err := svc.GenerateEmployeeID(ctx, "Asha", "Patel")
	assert.NoError(t, err)

	want := fmt.Sprintf("ODASPA%02d0001", time.Now().UTC().Year()%100)
	assert.Equal(t, want, got)
}

func TestUserService_GenerateEmployeeID_SerialAdvances(t *testing.T) {
	ctx := context.Background()
	svc, _, counterRepo := setupUserServiceTest()
	t.Setenv("COMPANY_NAME", "GCET")
	counterRepo.next = 41

	got, err := svc.GenerateEmployeeID(ctx, "Asha", "Patel")
	assert.NoError(t, err)

	want := fmt.Sprintf("GCASPA%02d0042", time.Now().UTC().Year()%100)
	assert.Equal(t, want, got)
}

func TestUserService_GenerateEmployeeID_PadsShortNames(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupUserServiceTest()
	t.Setenv("COMPANY_NAME", "GCET")

	got, err := svc.GenerateEmployeeID(ctx, "J", "")
	assert.NoError(t, err)

	want := fmt.Sprintf("GCJXXX%02d0001", time.Now().UTC().Year()%100)
	assert.Equal(t, want, got)
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupUserServiceTest()
	u := seedUser(repo)

	resp, err := svc.GetByID(ctx, u.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, u.Email, resp.Email)

	_, err = svc.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)

	_, err = svc.GetByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
}

func TestUserService_Update_RejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupUserServiceTest()
	u := seedUser(repo)

	_, err := svc.Update(ctx, u.ID.String(), user.UpdateUserRequest{Role: "superadmin"})
	assert.ErrorIs(t, err, usererrors.ErrInvalidRole)

	resp, err := svc.Update(ctx, u.ID.String(), user.UpdateUserRequest{Role: "hr"})
	assert.NoError(t, err)
	assert.Equal(t, "hr", resp.Role)
}

func TestUserService_Update_PatchesOnlyProvidedFields(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupUserServiceTest()
	u := seedUser(repo)

	phone := "+91 98765 43210"
	resp, err := svc.Update(ctx, u.ID.String(), user.UpdateUserRequest{
		FirstName: "Aisha",
		Phone:     &phone,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Aisha", resp.FirstName)
	assert.Equal(t, "Patel", resp.LastName)
	if assert.NotNil(t, resp.Phone) {
		assert.Equal(t, phone, *resp.Phone)
	}
}

func TestUserService_ToggleStatus(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := setupUserServiceTest()
	u := seedUser(repo)

	var saved *user.User
	repo.updateFn = func(ctx context.Context, got *user.User) error {
		saved = got
		return nil
	}

	assert.NoError(t, svc.ToggleStatus(ctx, u.ID.String(), false))
	if assert.NotNil(t, saved) {
		assert.False(t, saved.IsActive)
	}

	assert.ErrorIs(t, svc.ToggleStatus(ctx, uuid.New().String(), true), usererrors.ErrUserNotFound)
}
