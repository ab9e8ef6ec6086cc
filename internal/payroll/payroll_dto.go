package payroll

import "github.com/dhruv2311-dot/odoo-gcet/internal/notification"

type CreatePayrollRequest struct {
	UserID          string  `json:"user_id" binding:"required,uuid"`
	PayPeriodStart  string  `json:"pay_period_start" binding:"required"`
	PayPeriodEnd    string  `json:"pay_period_end" binding:"required"`
	GrossSalary     float64 `json:"gross_salary" binding:"required,gt=0"`
	TotalDeductions float64 `json:"total_deductions" binding:"gte=0"`
	PayableDays     int     `json:"payable_days" binding:"required,gt=0"`
}

type PayrollResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	Name            string  `json:"name,omitempty"`
	PayPeriodStart  string  `json:"payPeriodStart"`
	PayPeriodEnd    string  `json:"payPeriodEnd"`
	GrossSalary     float64 `json:"grossSalary"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetSalary       float64 `json:"netSalary"`
	PayableDays     int     `json:"payableDays"`
	PayslipURL      *string `json:"payslipUrl,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// CreatePayrollResult carries the persisted row plus the transient toast
// for the employee whose payroll was published.
type CreatePayrollResult struct {
	Message string             `json:"message"`
	Payroll PayrollResponse    `json:"payroll"`
	Toast   notification.Toast `json:"toast"`
}
