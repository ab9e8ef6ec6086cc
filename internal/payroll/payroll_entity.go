package payroll

import (
	"time"

	"github.com/google/uuid"
)

type Payroll struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:idx_payrolls_user_period"`

	PayPeriodStart time.Time `gorm:"column:pay_period_start;type:date;not null;index:idx_payrolls_user_period"`
	PayPeriodEnd   time.Time `gorm:"column:pay_period_end;type:date;not null"`

	GrossSalary     float64 `gorm:"column:gross_salary;type:decimal(10,2);not null"`
	TotalDeductions float64 `gorm:"column:total_deductions;type:decimal(10,2);not null"`
	NetSalary       float64 `gorm:"column:net_salary;type:decimal(10,2);not null"`
	PayableDays     int     `gorm:"column:payable_days;not null"`

	PayslipURL  *string   `gorm:"column:payslip_url;type:text"`
	GeneratedBy uuid.UUID `gorm:"column:generated_by;type:uuid;not null"`

	CreatedAt time.Time

	User *UserRef `gorm:"foreignKey:UserID;references:ID"`
}

func (Payroll) TableName() string {
	return "payrolls"
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
