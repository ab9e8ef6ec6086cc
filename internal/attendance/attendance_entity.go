package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusHalfDay = "half_day"
	StatusLeave   = "leave"
)

type Attendance struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_attendance_user_date"`
	Date     time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:idx_attendance_user_date"`
	CheckIn  *time.Time `gorm:"column:check_in;type:timestamptz"`
	CheckOut *time.Time `gorm:"column:check_out;type:timestamptz"`
	Status   string     `gorm:"column:status;type:varchar(20);not null;default:'absent'"`
	Notes    *string    `gorm:"column:notes;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	User *UserRef `gorm:"foreignKey:UserID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendance"
}

type UserRef struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID *string   `gorm:"column:employee_id"`
	FirstName  string    `gorm:"column:first_name"`
	LastName   string    `gorm:"column:last_name"`
}

func (UserRef) TableName() string {
	return "users"
}

func (u UserRef) FullName() string {
	return u.FirstName + " " + u.LastName
}
