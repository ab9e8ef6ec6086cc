package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dhruv2311-dot/odoo-gcet/internal/attendance"
	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	leaveerrors "github.com/dhruv2311-dot/odoo-gcet/internal/leave/errors"
	"github.com/dhruv2311-dot/odoo-gcet/internal/notification"
	"github.com/dhruv2311-dot/odoo-gcet/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const rejectOverlapDisplayLimit = 5

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, identity domain.Identity, req SubmitLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, identity domain.Identity) ([]LeaveResponse, error)
	Approve(ctx context.Context, identity domain.Identity, id, comments string) (ResolveLeaveResult, error)
	Reject(ctx context.Context, identity domain.Identity, id, comments string) (ResolveLeaveResult, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	attendances attendance.Repository
	notifs      notification.Repository
	users       user.Repository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	attendances attendance.Repository,
	notifs notification.Repository,
	users user.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		attendances: attendances,
		notifs:      notifs,
		users:       users,
		logger:      l,
	}
}

func (s *service) Submit(ctx context.Context, identity domain.Identity, req SubmitLeaveRequest) (LeaveResponse, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	requester, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qNotifs := s.notifs.WithTx(tx)

	// Both endpoints count the span inclusively.
	daysCount := float64(int(endDate.Sub(startDate).Hours()/24) + 1)

	l := &Leave{
		ID:        uuid.New(),
		UserID:    userID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		DaysCount: daysCount,
		Status:    StatusPending,
	}
	if req.Reason != "" {
		l.Reason = &req.Reason
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// Every HR user gets a durable heads-up; the submit succeeds or fails
	// together with the fan-out.
	hrIDs, err := s.users.FindIDsByRole(ctx, domain.RoleHR.String())
	if err != nil {
		s.logger.Error("submit leave hr lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	employeeName := requester.FullName()
	link := "/leave/approvals"
	batch := make([]notification.Notification, 0, len(hrIDs))
	for _, hrID := range hrIDs {
		recipient, parseErr := uuid.Parse(hrID)
		if parseErr != nil {
			continue
		}
		batch = append(batch, notification.Notification{
			ID:      uuid.New(),
			UserID:  recipient,
			Type:    notification.TypeLeaveStatus,
			Title:   "New Leave Application",
			Message: fmt.Sprintf("%s has applied for leave", employeeName),
			Link:    &link,
			Payload: datatypes.JSONMap{
				"leaveId":      l.ID.String(),
				"status":       "applied",
				"employeeName": employeeName,
			},
		})
	}
	if err := qNotifs.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("submit leave notification fan-out failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave submitted",
		zap.String("leave_id", l.ID.String()),
		zap.String("user_id", identity.UserID),
		zap.Float64("days_count", daysCount),
		zap.Int("hr_notified", len(batch)),
	)

	l.User = &UserRef{
		ID:         requester.ID,
		EmployeeID: requester.EmployeeID,
		Email:      requester.Email,
		FirstName:  requester.FirstName,
		LastName:   requester.LastName,
	}
	return mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context, identity domain.Identity) ([]LeaveResponse, error) {
	var (
		leaves []Leave
		err    error
	)
	if identity.IsElevated() {
		leaves, err = s.repo.FindAll(ctx)
	} else {
		leaves, err = s.repo.FindAllByUser(ctx, identity.UserID)
	}
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) Approve(ctx context.Context, identity domain.Identity, id, comments string) (ResolveLeaveResult, error) {
	return s.resolve(ctx, identity, id, StatusApproved, comments)
}

func (s *service) Reject(ctx context.Context, identity domain.Identity, id, comments string) (ResolveLeaveResult, error) {
	return s.resolve(ctx, identity, id, StatusRejected, comments)
}

func (s *service) resolve(ctx context.Context, identity domain.Identity, id, targetStatus, comments string) (ResolveLeaveResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ResolveLeaveResult{}, leaveerrors.ErrInvalidLeaveID
	}

	approver, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return ResolveLeaveResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("resolve leave begin tx failed", zap.Error(err))
		return ResolveLeaveResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qAttendance := s.attendances.WithTx(tx)
	qNotifs := s.notifs.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolveLeaveResult{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("resolve leave lookup failed", zap.Error(err))
		return ResolveLeaveResult{}, err
	}

	var commentsPtr *string
	if comments != "" {
		commentsPtr = &comments
	}

	// The WHERE status='pending' guard decides concurrent approvals: the
	// loser sees zero rows and nothing else it did survives the rollback.
	affected, err := qtx.UpdateStatusIfPending(ctx, id, targetStatus, identity.UserID, commentsPtr)
	if err != nil {
		s.logger.Error("resolve leave status update failed", zap.Error(err))
		return ResolveLeaveResult{}, err
	}
	if affected == 0 {
		s.logger.Warn("resolve leave conflict",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return ResolveLeaveResult{}, leaveerrors.ErrAlreadyProcessed
	}

	requester, err := s.users.FindByID(ctx, l.UserID.String())
	if err != nil {
		return ResolveLeaveResult{}, err
	}

	startStr := l.StartDate.Format("2006-01-02")
	endStr := l.EndDate.Format("2006-01-02")
	employeeName := requester.FullName()
	approverName := approver.FullName()

	result := ResolveLeaveResult{
		Employee: EmployeeInfo{
			Name:       employeeName,
			EmployeeID: requester.EmployeeID,
			Email:      requester.Email,
		},
	}

	var (
		notifTitle   string
		notifMessage string
		payload      datatypes.JSONMap
	)

	if targetStatus == StatusApproved {
		note := fmt.Sprintf("Status updated due to approved leave from %s to %s", startStr, endStr)
		updated, markErr := qAttendance.MarkLeaveForRange(ctx, l.UserID.String(), l.StartDate, l.EndDate, note)
		if markErr != nil {
			s.logger.Error("resolve leave attendance reconciliation failed", zap.Error(markErr))
			return ResolveLeaveResult{}, markErr
		}

		result.Message = "Leave approved successfully"
		result.AttendanceUpdated = updated > 0
		result.AttendanceRecordsUpdated = updated

		notifTitle = "Leave Approved"
		notifMessage = fmt.Sprintf("Your leave from %s to %s has been approved by %s.", startStr, endStr, approverName)
		toastMessage := fmt.Sprintf("Your leave from %s to %s has been approved.", startStr, endStr)
		if updated > 0 {
			notifMessage += fmt.Sprintf(" %d attendance record(s) updated to leave status.", updated)
			toastMessage = fmt.Sprintf("Your leave has been approved. %d attendance record(s) updated to leave status.", updated)
		}
		result.Toast = notification.NewToast(l.UserID.String(), notifTitle, toastMessage, notification.ToastSuccess)

		payload = datatypes.JSONMap{
			"leaveId":           l.ID.String(),
			"action":            StatusApproved,
			"approver":          approverName,
			"attendanceUpdated": updated > 0,
			"employeeName":      employeeName,
			"employeeId":        requester.EmployeeID,
		}
	} else {
		// Rejection never touches attendance; the overlap scan is display
		// info only.
		overlapping, findErr := qAttendance.FindInRange(ctx, l.UserID.String(), l.StartDate, l.EndDate, rejectOverlapDisplayLimit)
		if findErr != nil {
			s.logger.Error("resolve leave overlap scan failed", zap.Error(findErr))
			return ResolveLeaveResult{}, findErr
		}

		result.Message = "Leave rejected successfully"
		result.AttendanceRecordsFound = len(overlapping)

		notifTitle = "Leave Rejected"
		notifMessage = fmt.Sprintf("Your leave from %s to %s has been rejected by %s.", startStr, endStr, approverName)
		if len(overlapping) > 0 {
			notifMessage += fmt.Sprintf(" Found %d attendance record(s) during this period.", len(overlapping))
		}
		result.Toast = notification.NewToast(
			l.UserID.String(),
			notifTitle,
			fmt.Sprintf("Your leave from %s to %s has been rejected.", startStr, endStr),
			notification.ToastError,
		)

		payload = datatypes.JSONMap{
			"leaveId":                l.ID.String(),
			"action":                 StatusRejected,
			"approver":               approverName,
			"attendanceRecordsFound": len(overlapping) > 0,
			"employeeName":           employeeName,
			"employeeId":             requester.EmployeeID,
		}
	}

	link := "/leave"
	if err := qNotifs.Create(ctx, &notification.Notification{
		ID:      uuid.New(),
		UserID:  l.UserID,
		Type:    notification.TypeLeaveStatus,
		Title:   notifTitle,
		Message: notifMessage,
		Link:    &link,
		Payload: payload,
	}); err != nil {
		s.logger.Error("resolve leave notification failed", zap.Error(err))
		return ResolveLeaveResult{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("resolve leave commit failed", zap.Error(err))
		return ResolveLeaveResult{}, err
	}

	approverID := approver.ID
	l.Status = targetStatus
	l.ApproverID = &approverID
	l.ApproverComments = commentsPtr
	l.User = &UserRef{
		ID:         requester.ID,
		EmployeeID: requester.EmployeeID,
		Email:      requester.Email,
		FirstName:  requester.FirstName,
		LastName:   requester.LastName,
	}
	result.Leave = mapToResponse(*l)

	s.logger.Info("leave resolved",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
		zap.String("approver_id", identity.UserID),
		zap.Int64("attendance_updated", result.AttendanceRecordsUpdated),
	)
	return result, nil
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:               l.ID.String(),
		UserID:           l.UserID.String(),
		LeaveType:        l.LeaveType,
		StartDate:        l.StartDate.Format("2006-01-02"),
		EndDate:          l.EndDate.Format("2006-01-02"),
		DaysCount:        l.DaysCount,
		Reason:           l.Reason,
		Status:           l.Status,
		ApproverComments: l.ApproverComments,
		CreatedAt:        l.CreatedAt.Format(time.RFC3339),
	}
	if l.User != nil {
		resp.Name = l.User.FullName()
		resp.EmployeeID = l.User.EmployeeID
	}
	if l.ApproverID != nil {
		v := l.ApproverID.String()
		resp.ApproverID = &v
	}
	return resp
}
