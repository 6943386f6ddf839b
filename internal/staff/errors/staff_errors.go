package stafferrors

import (
	"net/http"

	"farmstaff/internal/shared/apperror"
)

var (
	ErrInvalidStaffID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid staff id",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of ADMIN, VETERINARIAN, WORKER",
		http.StatusBadRequest,
	)
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"staff member not found",
		http.StatusNotFound,
	)
	ErrDuplicateEmail = apperror.New(
		apperror.CodeConflict,
		"a staff member with this email already exists",
		http.StatusConflict,
	)
	ErrDuplicateStaffNumber = apperror.New(
		apperror.CodeConflict,
		"staff number collision, retry the request",
		http.StatusConflict,
	)
	ErrStaffHasHistory = apperror.New(
		apperror.CodeInvalidState,
		"staff member has attendance, leave or payroll history and cannot be hard deleted",
		http.StatusBadRequest,
	)
)
