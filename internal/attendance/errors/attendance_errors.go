package attendanceerrors

import (
	"net/http"

	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/apperror"
)

var (
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"Already checked in today",
		http.StatusBadRequest,
	)

	ErrNoCheckInRecord = apperror.New(
		apperror.CodeInvalidState,
		"No check-in record found for today",
		http.StatusBadRequest,
	)

	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"Already checked out today",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance status",
		http.StatusBadRequest,
	)
)
