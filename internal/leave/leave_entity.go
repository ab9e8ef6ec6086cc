package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypePaid   = "paid"
	TypeSick   = "sick"
	TypeUnpaid = "unpaid"
)

type Leave struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_leaves_user_status"`

	LeaveType string    `gorm:"column:leave_type;type:varchar(10);not null"`
	StartDate time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate   time.Time `gorm:"column:end_date;type:date;not null"`
	DaysCount float64   `gorm:"column:days_count;type:decimal(5,2);not null"`
	Reason    *string   `gorm:"type:text"`

	Status           string     `gorm:"type:varchar(10);not null;default:'pending';index:idx_leaves_user_status"`
	ApproverID       *uuid.UUID `gorm:"column:approver_id;type:uuid;index"`
	ApproverComments *string    `gorm:"column:approver_comments;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User *UserRef `gorm:"foreignKey:UserID;references:ID"`
}

func (Leave) TableName() string {
	return "leaves"
}

type UserRef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID *string   `gorm:"column:employee_id"`
	Email      string    `gorm:"column:email"`
	FirstName  string    `gorm:"column:first_name"`
	LastName   string    `gorm:"column:last_name"`
}

func (UserRef) TableName() string {
	return "users"
}

func (u UserRef) FullName() string {
	return u.FirstName + " " + u.LastName
}
