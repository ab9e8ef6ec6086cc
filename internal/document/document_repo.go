package document

import (
	"context"
	"database/sql"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Document) error
	FindAllByUser(ctx context.Context, userID string) ([]Document, error)
	FindByID(ctx context.Context, id string) (*Document, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: gdb}
}

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// FindAllByUser lists a user's documents oldest first. Logo uploads are
// filesystem-only and never show up here.
func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Document, error) {
	var docs []Document
	err := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("user_id = ?", userID).
		Where("file_type <> ?", TypeCompanyLogo).
		Order("uploaded_at ASC").
		Find(&docs).Error
	return docs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Document{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
