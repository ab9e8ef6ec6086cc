package documenterrors

import (
	"net/http"

	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Document not found",
		http.StatusNotFound,
	)

	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid document ID",
		http.StatusBadRequest,
	)

	ErrNoFileProvided = apperror.New(
		apperror.CodeInvalidInput,
		"No file provided",
		http.StatusBadRequest,
	)

	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File size exceeds 5MB limit",
		http.StatusBadRequest,
	)

	ErrFileTypeNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"File type not allowed",
		http.StatusBadRequest,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"Insufficient permissions",
		http.StatusForbidden,
	)
)
