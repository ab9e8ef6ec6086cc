package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/events"
	"github.com/dhruv2311-dot/odoo-gcet/internal/messaging/kafka"
	"github.com/dhruv2311-dot/odoo-gcet/internal/notification"
	"github.com/dhruv2311-dot/odoo-gcet/internal/payroll"
	payrollerrors "github.com/dhruv2311-dot/odoo-gcet/internal/payroll/errors"
	"github.com/dhruv2311-dot/odoo-gcet/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	createFn               func(ctx context.Context, p *payroll.Payroll) error
	findAllFn              func(ctx context.Context) ([]payroll.Payroll, error)
	findAllByUserFn        func(ctx context.Context, userID string) ([]payroll.Payroll, error)
	findByIDFn             func(ctx context.Context, id string) (*payroll.Payroll, error)
	hasOverlappingPeriodFn func(ctx context.Context, userID string, start, end time.Time) (bool, error)
	updatePayslipURLFn     func(ctx context.Context, id, url string) error
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) FindAll(ctx context.Context) ([]payroll.Payroll, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindAllByUser(ctx context.Context, userID string) ([]payroll.Payroll, error) {
	if f.findAllByUserFn != nil {
		return f.findAllByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) HasOverlappingPeriod(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, userID, start, end)
	}
	return false, nil
}

func (f *fakePayrollRepository) UpdatePayslipURL(ctx context.Context, id, url string) error {
	if f.updatePayslipURLFn != nil {
		return f.updatePayslipURLFn(ctx, id, url)
	}
	return nil
}

type fakeUserRepository struct {
	users map[string]*user.User
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

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }

type fakeNotificationRepository struct {
	createFn func(ctx context.Context, n *notification.Notification) error
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository { return f }

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) CreateBatch(ctx context.Context, ns []notification.Notification) error {
	return nil
}

func (f *fakeNotificationRepository) FindAllByUser(ctx context.Context, userID string) ([]notification.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	return 0, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type payrollServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payroll.Service
	repo    *fakePayrollRepository
	users   *fakeUserRepository
	notifs  *fakeNotificationRepository
	outbox  *fakeOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayrollRepository{}
	users := &fakeUserRepository{users: map[string]*user.User{}}
	notifs := &fakeNotificationRepository{}
	outbox := &fakeOutboxRepository{}
	svc := payroll.NewService(db, repo, users, notifs, outbox)

	return &payrollServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		users:   users,
		notifs:  notifs,
		outbox:  outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func seedEmployee(deps *payrollServiceDeps) *user.User {
	id := uuid.New()
	empID := "GC2601"
	u := &user.User{
		ID:         id,
		EmployeeID: &empID,
		Email:      "asha@example.com",
		FirstName:  "Asha",
		LastName:   "Patel",
		Role:       "employee",
	}
	deps.users.users[id.String()] = u
	return u
}

func hrIdentity() domain.Identity {
	return domain.Identity{
		UserID: uuid.New().String(),
		Email:  "hr@example.com",
		Role:   domain.RoleHR,
	}
}

func validCreateRequest(employee *user.User) payroll.CreatePayrollRequest {
	return payroll.CreatePayrollRequest{
		UserID:          employee.ID.String(),
		PayPeriodStart:  "2026-02-01",
		PayPeriodEnd:    "2026-02-28",
		GrossSalary:     50000,
		TotalDeductions: 5000,
		PayableDays:     28,
	}
}

func TestPayrollService_Create_PublishesRowNotificationAndOutboxTogether(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	employee := seedEmployee(deps)
	identity := hrIdentity()

	var created *payroll.Payroll
	deps.repo.createFn = func(ctx context.Context, p *payroll.Payroll) error {
		created = p
		return nil
	}

	var notif *notification.Notification
	deps.notifs.createFn = func(ctx context.Context, n *notification.Notification) error {
		notif = n
		return nil
	}

	var outboxEvent *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		outboxEvent = &event
		return nil
	}

	expectTx(t, deps.sqlMock, true)
	result, err := deps.service.Create(ctx, identity, validCreateRequest(employee))
	assert.NoError(t, err)

	assert.Equal(t, "Payroll created successfully", result.Message)
	assert.Equal(t, 45000.0, result.Payroll.NetSalary)
	assert.Equal(t, "Asha Patel", result.Payroll.Name)

	if assert.NotNil(t, created) {
		assert.Equal(t, employee.ID, created.UserID)
		assert.Equal(t, identity.UserID, created.GeneratedBy.String())
		assert.Equal(t, 45000.0, created.NetSalary)
	}

	if assert.NotNil(t, notif) {
		assert.Equal(t, employee.ID, notif.UserID)
		assert.Equal(t, notification.TypePayrollPublished, notif.Type)
		assert.Equal(t, "Payroll Published", notif.Title)
		assert.Equal(t, "Your payroll has been published and is now available", notif.Message)
	}

	if assert.NotNil(t, outboxEvent) {
		assert.Equal(t, events.PayrollPayslipRequestedTopic, outboxEvent.Topic)
		assert.Equal(t, events.PayrollPayslipRequestedTopic, outboxEvent.EventType)
		assert.Equal(t, "payroll", outboxEvent.AggregateType)
		assert.Equal(t, kafka.OutboxStatusPending, outboxEvent.Status)

		var event events.PayrollPayslipRequestedEvent
		assert.NoError(t, json.Unmarshal(outboxEvent.Payload, &event))
		assert.Equal(t, created.ID.String(), event.PayrollID)
		assert.Equal(t, employee.ID.String(), event.UserID)
		assert.Equal(t, identity.UserID, event.RequestedBy)
	}

	assert.Equal(t, notification.ToastSuccess, result.Toast.Type)
	assert.Equal(t,
		"Your payroll has been published and is now available for viewing.",
		result.Toast.Message,
	)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_OverlappingPeriod(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	employee := seedEmployee(deps)

	deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, userID string, start, end time.Time) (bool, error) {
		return true, nil
	}

	outboxCalled := false
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		outboxCalled = true
		return nil
	}

	expectTx(t, deps.sqlMock, false)
	_, err := deps.service.Create(ctx, hrIdentity(), validCreateRequest(employee))
	assert.ErrorIs(t, err, payrollerrors.ErrOverlappingPeriod)
	assert.False(t, outboxCalled)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_DeductionsExceedGross(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	employee := seedEmployee(deps)
	req := validCreateRequest(employee)
	req.GrossSalary = 1000
	req.TotalDeductions = 2000

	_, err := deps.service.Create(ctx, hrIdentity(), req)
	assert.ErrorIs(t, err, payrollerrors.ErrNegativeNetSalary)
}

func TestPayrollService_Create_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	req := payroll.CreatePayrollRequest{
		UserID:          uuid.New().String(),
		PayPeriodStart:  "2026-02-01",
		PayPeriodEnd:    "2026-02-28",
		GrossSalary:     50000,
		TotalDeductions: 0,
		PayableDays:     28,
	}

	_, err := deps.service.Create(ctx, hrIdentity(), req)
	assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
}

func TestPayrollService_Create_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	employee := seedEmployee(deps)
	req := validCreateRequest(employee)
	req.PayPeriodStart = "2026-02-28"
	req.PayPeriodEnd = "2026-02-01"

	_, err := deps.service.Create(ctx, hrIdentity(), req)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidDateRange)
}

func TestPayrollService_GetByID_EmployeeCannotSeeForeignRow(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	owner := uuid.New()
	p := &payroll.Payroll{
		ID:             uuid.New(),
		UserID:         owner,
		PayPeriodStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		NetSalary:      45000,
	}
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
		return p, nil
	}

	stranger := domain.Identity{UserID: uuid.New().String(), Role: domain.RoleEmployee}
	_, err := deps.service.GetByID(ctx, stranger, p.ID.String())
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)

	resp, err := deps.service.GetByID(ctx, domain.Identity{UserID: owner.String(), Role: domain.RoleEmployee}, p.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, p.ID.String(), resp.ID)

	hr := domain.Identity{UserID: uuid.New().String(), Role: domain.RoleHR}
	_, err = deps.service.GetByID(ctx, hr, p.ID.String())
	assert.NoError(t, err)
}

func TestPayrollService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GetByID(ctx, hrIdentity(), uuid.New().String())
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)

	_, err = deps.service.GetByID(ctx, hrIdentity(), "not-a-uuid")
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPayrollID)
}

func TestPayrollService_GeneratePayslip_WritesPDFAndRecordsURL(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	dir := t.TempDir()
	t.Setenv("PAYSLIP_STORAGE_DIR", dir)
	t.Setenv("PAYSLIP_PUBLIC_BASE_URL", "/files/payslips")

	empID := "GC2601"
	p := &payroll.Payroll{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		PayPeriodStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		GrossSalary:    50000,
		NetSalary:      45000,
		PayableDays:    28,
		User: &payroll.UserRef{
			ID:         uuid.New(),
			EmployeeID: &empID,
			FirstName:  "Asha",
			LastName:   "Patel",
		},
	}
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
		return p, nil
	}

	var recordedURL string
	deps.repo.updatePayslipURLFn = func(ctx context.Context, id, url string) error {
		assert.Equal(t, p.ID.String(), id)
		recordedURL = url
		return nil
	}

	resp, err := deps.service.GeneratePayslip(ctx, p.ID.String())
	assert.NoError(t, err)

	wantFile := "payslip_" + p.ID.String() + ".pdf"
	assert.Equal(t, "/files/payslips/"+wantFile, recordedURL)
	if assert.NotNil(t, resp.PayslipURL) {
		assert.Equal(t, recordedURL, *resp.PayslipURL)
	}

	data, err := os.ReadFile(filepath.Join(dir, wantFile))
	assert.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPayrollService_GeneratePayslip_NotFound(t *testing.T) {
	ctx := context.Background()
	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.GeneratePayslip(ctx, uuid.New().String())
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
}
