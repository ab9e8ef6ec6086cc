package document

import (
	"time"

	"github.com/google/uuid"
)

// TypeCompanyLogo uploads are stored on disk but never get a document
// row; TypeProfilePicture additionally updates the owner's profile.
const (
	TypeDocument       = "document"
	TypeProfilePicture = "profile_picture"
	TypeCompanyLogo    = "company_logo"
)

type Document struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`

	FileURL  string `gorm:"column:file_url;type:text;not null"`
	FileType string `gorm:"column:file_type;type:varchar(50);not null"`
	FileName string `gorm:"column:file_name;type:varchar(255);not null"`

	UploadedBy uuid.UUID `gorm:"column:uploaded_by;type:uuid;not null"`
	UploadedAt time.Time `gorm:"column:uploaded_at;autoCreateTime"`

	Uploader *UserRef `gorm:"foreignKey:UploadedBy;references:ID"`
}

func (Document) TableName() string {
	return "employee_documents"
}

type UserRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
}

func (UserRef) TableName() string {
	return "users"
}
