package attendanceerrors

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
	ErrInvalidDateFilter = apperror.New(
		apperror.CodeInvalidInput,
		"date filter must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"staff member not found or inactive",
		http.StatusNotFound,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"staff member already has an open check-in for today",
		http.StatusConflict,
	)
	ErrNoOpenCheckIn = apperror.New(
		apperror.CodeNotFound,
		"no open check-in found for today",
		http.StatusNotFound,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
)
