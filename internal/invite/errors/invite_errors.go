package inviteerrors

import (
	"net/http"

	"farmstaff/internal/shared/apperror"
)

var (
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be one of ADMIN, VETERINARIAN, WORKER",
		http.StatusBadRequest,
	)
	ErrInviteNotFound = apperror.New(
		apperror.CodeNotFound,
		"invite not found",
		http.StatusNotFound,
	)
	ErrInviteExpired = apperror.New(
		apperror.CodeInvalidState,
		"invite has expired",
		http.StatusBadRequest,
	)
	ErrInviteUsed = apperror.New(
		apperror.CodeInvalidState,
		"invite has already been accepted",
		http.StatusBadRequest,
	)
	ErrInviteCancelled = apperror.New(
		apperror.CodeInvalidState,
		"invite has been cancelled",
		http.StatusBadRequest,
	)
	ErrDuplicatePendingInvite = apperror.New(
		apperror.CodeConflict,
		"a pending invite already exists for this email",
		http.StatusConflict,
	)
)
