package payroll

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAll(ctx context.Context) ([]Payroll, error)
	FindAllByUser(ctx context.Context, userID string) ([]Payroll, error)
	FindByID(ctx context.Context, id string) (*Payroll, error)
	HasOverlappingPeriod(ctx context.Context, userID string, start, end time.Time) (bool, error)
	UpdatePayslipURL(ctx context.Context, id, url string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto an open transaction so the payroll
// row, the notification, and the outbox event commit together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: gdb}
}

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("pay_period_start DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("pay_period_start DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) HasOverlappingPeriod(
	ctx context.Context,
	userID string,
	start, end time.Time,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("user_id = ?", userID).
		Where("NOT (pay_period_end < ? OR pay_period_start > ?)", start, end).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UpdatePayslipURL(ctx context.Context, id, url string) error {
	return r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("id = ?", id).
		Update("payslip_url", url).Error
}
