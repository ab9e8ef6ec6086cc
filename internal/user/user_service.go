package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/counter"
	usererrors "github.com/dhruv2311-dot/odoo-gcet/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	ToggleStatus(ctx context.Context, id string, isActive bool) error
	GenerateEmployeeID(ctx context.Context, firstName, lastName string) (string, error)
}

type service struct {
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, counter: counterRepo, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Address != nil {
		u.Address = req.Address
	}
	if req.JobTitle != nil {
		u.JobTitle = req.JobTitle
	}
	if req.Department != nil {
		u.Department = req.Department
	}
	if req.ManagerID != nil {
		managerID, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidUserID
		}
		u.ManagerID = &managerID
	}
	if req.Role != "" {
		role, ok := domain.ParseRole(req.Role)
		if !ok {
			return UserResponse{}, usererrors.ErrInvalidRole
		}
		u.Role = role.String()
	}

	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("update user failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("user updated", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) ToggleStatus(ctx context.Context, id string, isActive bool) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	s.logger.Info("user status toggled",
		zap.String("user_id", id),
		zap.Bool("is_active", isActive),
	)
	return nil
}

// GenerateEmployeeID builds IDs like GCJODO260001: two letters of the
// company name, two of each name part, two-digit year, then a serial
// from the atomic counter so concurrent signups never collide.
func (s *service) GenerateEmployeeID(ctx context.Context, firstName, lastName string) (string, error) {
	company := os.Getenv("COMPANY_NAME")
	if company == "" {
		company = "GCET"
	}

	year := time.Now().UTC().Year() % 100
	serial, err := s.counter.GetNextValue(ctx, company, "employee_id")
	if err != nil {
		return "", err
	}

	id := fmt.Sprintf("%s%s%02d%04d",
		letterPrefix(company)+letterPrefix(firstName),
		letterPrefix(lastName),
		year,
		serial,
	)
	return id, nil
}

func letterPrefix(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) >= 2 {
		return s[:2]
	}
	if len(s) == 1 {
		return s + "X"
	}
	return "XX"
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:                u.ID.String(),
		EmployeeID:        u.EmployeeID,
		Email:             u.Email,
		Role:              u.Role,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Phone:             u.Phone,
		Address:           u.Address,
		JobTitle:          u.JobTitle,
		Department:        u.Department,
		ProfilePictureURL: u.ProfilePictureURL,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}
