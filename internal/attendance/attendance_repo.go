package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	FindAll(ctx context.Context, f Filter) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	MarkLeaveForRange(ctx context.Context, userID string, start, end time.Time, note string) (int64, error)
	FindInRange(ctx context.Context, userID string, start, end time.Time, limit int) ([]Attendance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto an open transaction so attendance
// writes commit or roll back with the caller's other statements.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: gdb}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context, f Filter) ([]Attendance, error) {
	db := r.db.WithContext(ctx).Preload("User")

	if f.UserID != "" {
		db = db.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.From != nil {
		db = db.Where("date >= ?", f.From.Format("2006-01-02"))
	}
	if f.To != nil {
		db = db.Where("date <= ?", f.To.Format("2006-01-02"))
	}

	var rows []Attendance
	err := db.Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// MarkLeaveForRange flips present days inside [start, end] to leave in a
// single statement and reports how many rows changed.
func (r *repository) MarkLeaveForRange(ctx context.Context, userID string, start, end time.Time, note string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Where("status = ?", StatusPresent).
		Updates(map[string]any{
			"status": StatusLeave,
			"notes":  note,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindInRange(ctx context.Context, userID string, start, end time.Time, limit int) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
