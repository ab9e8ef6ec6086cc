package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   *string   `gorm:"column:employee_id;type:varchar(20);uniqueIndex"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'employee';index"`

	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`

	Phone             *string    `gorm:"type:varchar(20)"`
	Address           *string    `gorm:"type:text"`
	JobTitle          *string    `gorm:"type:varchar(100)"`
	Department        *string    `gorm:"type:varchar(100)"`
	ManagerID         *uuid.UUID `gorm:"type:uuid"`
	ProfilePictureURL *string    `gorm:"type:text"`

	IsActive        bool `gorm:"default:true"`
	EmailVerifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
