package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "github.com/dhruv2311-dot/odoo-gcet/internal/attendance/errors"
	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, identity domain.Identity, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, identity domain.Identity, req CheckOutRequest) (AttendanceResponse, error)
	List(ctx context.Context, identity domain.Identity, f Filter) ([]AttendanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) CheckIn(ctx context.Context, identity domain.Identity, req CheckInRequest) (AttendanceResponse, error) {
	now := time.Now().UTC()
	today := dateOnly(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-in begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByUserAndDate(ctx, identity.UserID, today)
	switch {
	case err == nil && existing.CheckIn != nil:
		s.logger.Warn("double check-in rejected", zap.String("user_id", identity.UserID))
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn

	case err == nil:
		// A placeholder row (absent, no check-in) already exists for today.
		existing.CheckIn = &now
		existing.Status = StatusPresent
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		if err := qtx.Update(ctx, existing); err != nil {
			s.logger.Error("check-in update failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
		if err := tx.Commit(); err != nil {
			return AttendanceResponse{}, err
		}
		s.logger.Info("checked in", zap.String("user_id", identity.UserID))
		return mapToResponse(*existing), nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		userID, parseErr := uuid.Parse(identity.UserID)
		if parseErr != nil {
			return AttendanceResponse{}, parseErr
		}
		a := &Attendance{
			ID:      uuid.New(),
			UserID:  userID,
			Date:    today,
			CheckIn: &now,
			Status:  StatusPresent,
			Notes:   req.Notes,
		}
		if err := qtx.Create(ctx, a); err != nil {
			// A concurrent first check-in hits the (user_id, date) unique
			// index instead of the row lookup.
			if isUniqueViolation(err) {
				s.logger.Warn("concurrent check-in lost the race", zap.String("user_id", identity.UserID))
				return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
			}
			s.logger.Error("check-in insert failed", zap.Error(err))
			return AttendanceResponse{}, err
		}
		if err := tx.Commit(); err != nil {
			return AttendanceResponse{}, err
		}
		s.logger.Info("checked in", zap.String("user_id", identity.UserID))
		return mapToResponse(*a), nil

	default:
		s.logger.Error("check-in lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
}

func (s *service) CheckOut(ctx context.Context, identity domain.Identity, req CheckOutRequest) (AttendanceResponse, error) {
	now := time.Now().UTC()
	today := dateOnly(now)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("check-out begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	existing, err := qtx.FindByUserAndDate(ctx, identity.UserID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoCheckInRecord
		}
		s.logger.Error("check-out lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if existing.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNoCheckInRecord
	}
	if existing.CheckOut != nil {
		s.logger.Warn("double check-out rejected", zap.String("user_id", identity.UserID))
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	existing.CheckOut = &now
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if err := qtx.Update(ctx, existing); err != nil {
		s.logger.Error("check-out update failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("checked out", zap.String("user_id", identity.UserID))
	return mapToResponse(*existing), nil
}

func (s *service) List(ctx context.Context, identity domain.Identity, f Filter) ([]AttendanceResponse, error) {
	// Employees only ever see their own rows, whatever the filter says.
	if !identity.IsElevated() {
		f.UserID = identity.UserID
	}

	rows, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func mapToResponse(a Attendance) AttendanceResponse {
	work, extra := deriveWorkHours(a.CheckIn, a.CheckOut)

	resp := AttendanceResponse{
		ID:         a.ID.String(),
		UserID:     a.UserID.String(),
		Date:       a.Date.Format("2006-01-02"),
		Status:     a.Status,
		Notes:      a.Notes,
		WorkHours:  work,
		ExtraHours: extra,
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if a.User != nil {
		resp.EmployeeID = a.User.EmployeeID
		resp.EmployeeName = a.User.FullName()
	}
	return resp
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp
}
