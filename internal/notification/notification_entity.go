package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	TypeLeaveStatus      = "leave_status"
	TypePayrollPublished = "payroll_published"
	TypeApprovalRequest  = "approval_request"
	TypeAttendanceAlert  = "attendance_alert"
	TypeSystem           = "system"
)

type Notification struct {
	ID      uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_notifications_user_read"`
	Type    string            `gorm:"type:varchar(30);not null;index"`
	Title   string            `gorm:"type:varchar(255);not null"`
	Message string            `gorm:"type:text;not null"`
	Link    *string           `gorm:"type:varchar(500)"`
	Payload datatypes.JSONMap `gorm:"type:jsonb"`
	IsRead  bool              `gorm:"not null;default:false;index:idx_notifications_user_read"`

	CreatedAt time.Time
}

func (Notification) TableName() string {
	return "notifications"
}
