package document

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	documenterrors "github.com/dhruv2311-dot/odoo-gcet/internal/document/errors"
	"github.com/dhruv2311-dot/odoo-gcet/internal/domain"
	"github.com/dhruv2311-dot/odoo-gcet/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxFileSize = 5 * 1024 * 1024

const defaultUploadDir = "public/uploads"

var allowedContentTypes = map[string]struct{}{
	"image/jpeg":         {},
	"image/png":          {},
	"image/gif":          {},
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
}

// Upload carries the already-read file bytes plus the caller-supplied
// metadata from the multipart form.
type Upload struct {
	OriginalName string
	ContentType  string
	Size         int64
	Data         []byte
	FileType     string
	FileName     string
}

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Store(ctx context.Context, identity domain.Identity, up Upload) (UploadResult, error)
	List(ctx context.Context, identity domain.Identity, userID string) ([]DocumentResponse, error)
	Delete(ctx context.Context, identity domain.Identity, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	users  user.Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{db: db, repo: repo, users: users, logger: l}
}

func (s *service) Store(ctx context.Context, identity domain.Identity, up Upload) (UploadResult, error) {
	if len(up.Data) == 0 {
		return UploadResult{}, documenterrors.ErrNoFileProvided
	}
	if up.Size > maxFileSize {
		return UploadResult{}, documenterrors.ErrFileTooLarge
	}
	if _, ok := allowedContentTypes[up.ContentType]; !ok {
		return UploadResult{}, documenterrors.ErrFileTypeNotAllowed
	}

	ownerID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return UploadResult{}, documenterrors.ErrForbidden
	}

	dir := os.Getenv("UPLOAD_STORAGE_DIR")
	if dir == "" {
		dir = defaultUploadDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return UploadResult{}, err
	}

	ext := filepath.Ext(up.OriginalName)
	storedName := uuid.New().String() + ext
	storedPath := filepath.Join(dir, storedName)
	if err := os.WriteFile(storedPath, up.Data, 0o644); err != nil {
		return UploadResult{}, err
	}
	fileURL := "/uploads/" + storedName

	// The metadata row is the source of truth; if it never commits the
	// file on disk must not survive either.
	committed := false
	defer func() {
		if !committed {
			os.Remove(storedPath)
		}
	}()

	fileType := up.FileType
	if fileType == "" {
		fileType = TypeDocument
	}
	fileName := up.FileName
	if fileName == "" {
		fileName = up.OriginalName
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("store document begin tx failed", zap.Error(err))
		return UploadResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	result := UploadResult{
		Message: "File uploaded successfully",
		FileURL: fileURL,
	}

	if fileType != TypeCompanyLogo {
		d := &Document{
			ID:         uuid.New(),
			UserID:     ownerID,
			FileURL:    fileURL,
			FileType:   fileType,
			FileName:   fileName,
			UploadedBy: ownerID,
		}
		if err := qtx.Create(ctx, d); err != nil {
			s.logger.Error("store document persist failed", zap.Error(err))
			return UploadResult{}, err
		}
		resp := mapToResponse(*d)
		result.Document = &resp
	}

	if fileType == TypeProfilePicture {
		owner, err := s.users.FindByID(ctx, identity.UserID)
		if err != nil {
			return UploadResult{}, err
		}
		owner.ProfilePictureURL = &fileURL
		if err := s.users.Update(ctx, owner); err != nil {
			s.logger.Error("store document profile picture update failed", zap.Error(err))
			return UploadResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("store document commit failed", zap.Error(err))
		return UploadResult{}, err
	}
	committed = true

	s.logger.Info("document stored",
		zap.String("user_id", identity.UserID),
		zap.String("file_type", fileType),
		zap.String("file_url", fileURL),
	)
	return result, nil
}

func (s *service) List(ctx context.Context, identity domain.Identity, userID string) ([]DocumentResponse, error) {
	if userID == "" {
		userID = identity.UserID
	}
	if userID != identity.UserID && !identity.IsElevated() {
		return nil, documenterrors.ErrForbidden
	}

	docs, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]DocumentResponse, len(docs))
	for i, d := range docs {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return documenterrors.ErrInvalidDocumentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return documenterrors.ErrDocumentNotFound
		}
		return err
	}

	if d.UserID.String() != identity.UserID && !identity.IsElevated() {
		return documenterrors.ErrForbidden
	}

	// Missing files are fine, the row is the source of truth.
	if d.FileURL != "" {
		dir := os.Getenv("UPLOAD_STORAGE_DIR")
		if dir == "" {
			dir = defaultUploadDir
		}
		path := filepath.Join(dir, filepath.Base(d.FileURL))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("document file removal failed",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return documenterrors.ErrDocumentNotFound
	}

	s.logger.Info("document deleted",
		zap.String("document_id", id),
		zap.String("deleted_by", identity.UserID),
	)
	return nil
}

func mapToResponse(d Document) DocumentResponse {
	resp := DocumentResponse{
		ID:         d.ID.String(),
		FileURL:    d.FileURL,
		FileType:   d.FileType,
		FileName:   d.FileName,
		UploadedAt: d.UploadedAt.Format(time.RFC3339),
	}
	if d.Uploader != nil {
		resp.UploadedBy = &UploaderInfo{
			FirstName: d.Uploader.FirstName,
			LastName:  d.Uploader.LastName,
		}
	}
	return resp
}
