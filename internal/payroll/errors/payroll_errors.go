package payrollerrors

import (
	"net/http"

	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll record not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrInvalidPayrollID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payroll ID",
		http.StatusBadRequest,
	)

	ErrOverlappingPeriod = apperror.New(
		apperror.CodeConflict,
		"Payroll already exists for an overlapping pay period",
		http.StatusConflict,
	)

	ErrNegativeNetSalary = apperror.New(
		apperror.CodeInvalidInput,
		"total_deductions cannot exceed gross_salary",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"pay_period_start must be before or equal pay_period_end",
		http.StatusBadRequest,
	)

	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"Payslip has not been generated yet",
		http.StatusNotFound,
	)
)
