package balanceerrors

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
	ErrBalanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave balance not found",
		http.StatusNotFound,
	)
	ErrDuplicateBalance = apperror.New(
		apperror.CodeConflict,
		"leave balance already exists for this staff",
		http.StatusConflict,
	)
	ErrUsedExceedsTotal = apperror.New(
		apperror.CodeInvalidInput,
		"used_leave_days cannot exceed total_leave_days",
		http.StatusBadRequest,
	)
	ErrBalanceInUse = apperror.New(
		apperror.CodeInvalidState,
		"leave balance has pending requests against it",
		http.StatusBadRequest,
	)
)
