package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/events"
	"github.com/dhruv2311-dot/odoo-gcet/internal/messaging/kafka"
	"github.com/dhruv2311-dot/odoo-gcet/internal/notification"
	payrollerrors "github.com/dhruv2311-dot/odoo-gcet/internal/payroll/errors"
	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/contextutil"
	"github.com/dhruv2311-dot/odoo-gcet/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPayslipDir     = "storage/payslips"
	defaultPayslipBaseURL = "/files/payslips"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, identity domain.Identity, req CreatePayrollRequest) (CreatePayrollResult, error)
	List(ctx context.Context) ([]PayrollResponse, error)
	ListMine(ctx context.Context, identity domain.Identity) ([]PayrollResponse, error)
	GetByID(ctx context.Context, identity domain.Identity, id string) (PayrollResponse, error)
	GeneratePayslip(ctx context.Context, payrollID string) (PayrollResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  user.Repository
	notifs notification.Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	notifs notification.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		users:  users,
		notifs: notifs,
		outbox: outbox,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, identity domain.Identity, req CreatePayrollRequest) (CreatePayrollResult, error) {
	start, end, err := parsePeriod(req.PayPeriodStart, req.PayPeriodEnd)
	if err != nil {
		return CreatePayrollResult{}, err
	}

	netSalary := req.GrossSalary - req.TotalDeductions
	if netSalary < 0 {
		return CreatePayrollResult{}, payrollerrors.ErrNegativeNetSalary
	}

	employeeID, err := uuid.Parse(req.UserID)
	if err != nil {
		return CreatePayrollResult{}, payrollerrors.ErrEmployeeNotFound
	}
	generatedBy, err := uuid.Parse(identity.UserID)
	if err != nil {
		return CreatePayrollResult{}, payrollerrors.ErrEmployeeNotFound
	}

	employee, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CreatePayrollResult{}, payrollerrors.ErrEmployeeNotFound
		}
		return CreatePayrollResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payroll begin tx failed", zap.Error(err))
		return CreatePayrollResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qNotifs := s.notifs.WithTx(tx)
	qOutbox := s.outbox.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, req.UserID, start, end)
	if err != nil {
		return CreatePayrollResult{}, err
	}
	if overlap {
		return CreatePayrollResult{}, payrollerrors.ErrOverlappingPeriod
	}

	p := &Payroll{
		ID:              uuid.New(),
		UserID:          employeeID,
		PayPeriodStart:  start,
		PayPeriodEnd:    end,
		GrossSalary:     req.GrossSalary,
		TotalDeductions: req.TotalDeductions,
		NetSalary:       netSalary,
		PayableDays:     req.PayableDays,
		GeneratedBy:     generatedBy,
	}
	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create payroll persist failed", zap.Error(err))
		return CreatePayrollResult{}, err
	}

	link := "/payroll"
	if err := qNotifs.Create(ctx, &notification.Notification{
		ID:      uuid.New(),
		UserID:  employeeID,
		Type:    notification.TypePayrollPublished,
		Title:   "Payroll Published",
		Message: "Your payroll has been published and is now available",
		Link:    &link,
		Payload: datatypes.JSONMap{
			"payrollId": p.ID.String(),
		},
	}); err != nil {
		s.logger.Error("create payroll notification failed", zap.Error(err))
		return CreatePayrollResult{}, err
	}

	event := events.PayrollPayslipRequestedEvent{
		EventType:   events.PayrollPayslipRequestedTopic,
		PayrollID:   p.ID.String(),
		UserID:      req.UserID,
		RequestedBy: identity.UserID,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return CreatePayrollResult{}, err
	}
	if err := qOutbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll",
		AggregateID:   p.ID.String(),
		EventType:     events.PayrollPayslipRequestedTopic,
		Topic:         events.PayrollPayslipRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("create payroll outbox event failed", zap.Error(err))
		return CreatePayrollResult{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create payroll commit failed", zap.Error(err))
		return CreatePayrollResult{}, err
	}

	s.logger.Info("payroll published",
		zap.String("payroll_id", p.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("generated_by", identity.UserID),
	)

	p.User = &UserRef{
		ID:         employee.ID,
		EmployeeID: employee.EmployeeID,
		Email:      employee.Email,
		FirstName:  employee.FirstName,
		LastName:   employee.LastName,
	}
	return CreatePayrollResult{
		Message: "Payroll created successfully",
		Payroll: mapToResponse(*p),
		Toast: notification.NewToast(
			req.UserID,
			"Payroll Published",
			"Your payroll has been published and is now available for viewing.",
			notification.ToastSuccess,
		),
	}, nil
}

func (s *service) List(ctx context.Context) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) ListMine(ctx context.Context, identity domain.Identity) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAllByUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(ctx context.Context, identity domain.Identity, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	// Employees only see their own rows; a foreign ID looks like a
	// missing one.
	if !identity.IsElevated() && p.UserID.String() != identity.UserID {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}
	return mapToResponse(*p), nil
}

// GeneratePayslip renders the payslip PDF for a published payroll and
// records its public URL. It runs from the kafka consumer, not the HTTP
// path.
func (s *service) GeneratePayslip(ctx context.Context, payrollID string) (PayrollResponse, error) {
	if _, err := uuid.Parse(payrollID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	p, err := s.repo.FindByID(ctx, payrollID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	employeeName := "Employee"
	employeeID := ""
	if p.User != nil {
		employeeName = p.User.FullName()
		if p.User.EmployeeID != nil {
			employeeID = *p.User.EmployeeID
		}
	}

	lines := []string{
		"Payslip",
		"",
		fmt.Sprintf("Employee: %s", employeeName),
	}
	if employeeID != "" {
		lines = append(lines, fmt.Sprintf("Employee ID: %s", employeeID))
	}
	lines = append(lines,
		fmt.Sprintf("Pay Period: %s to %s", p.PayPeriodStart.Format("2006-01-02"), p.PayPeriodEnd.Format("2006-01-02")),
		fmt.Sprintf("Payable Days: %d", p.PayableDays),
		"",
		fmt.Sprintf("Gross Salary: %.2f", p.GrossSalary),
		fmt.Sprintf("Total Deductions: %.2f", p.TotalDeductions),
		fmt.Sprintf("Net Salary: %.2f", p.NetSalary),
	)

	pdf, err := buildSimplePayslipPDF(lines)
	if err != nil {
		return PayrollResponse{}, err
	}

	dir := os.Getenv("PAYSLIP_STORAGE_DIR")
	if dir == "" {
		dir = defaultPayslipDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return PayrollResponse{}, err
	}

	filename := fmt.Sprintf("payslip_%s.pdf", p.ID.String())
	if err := os.WriteFile(filepath.Join(dir, filename), pdf, 0o644); err != nil {
		return PayrollResponse{}, err
	}

	baseURL := os.Getenv("PAYSLIP_PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = defaultPayslipBaseURL
	}
	url := fmt.Sprintf("%s/%s", baseURL, filename)

	if err := s.repo.UpdatePayslipURL(ctx, payrollID, url); err != nil {
		return PayrollResponse{}, err
	}

	p.PayslipURL = &url
	s.logger.Info("payslip generated",
		zap.String("payroll_id", payrollID),
		zap.String("payslip_url", url),
	)
	return mapToResponse(*p), nil
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, payrollerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		PayPeriodStart:  p.PayPeriodStart.Format("2006-01-02"),
		PayPeriodEnd:    p.PayPeriodEnd.Format("2006-01-02"),
		GrossSalary:     p.GrossSalary,
		TotalDeductions: p.TotalDeductions,
		NetSalary:       p.NetSalary,
		PayableDays:     p.PayableDays,
		PayslipURL:      p.PayslipURL,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
	if p.User != nil {
		resp.Name = p.User.FullName()
	}
	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p)
	}
	return resp
}
