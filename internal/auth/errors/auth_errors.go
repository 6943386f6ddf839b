package autherrors

import (
	"net/http"

	"farmstaff/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid email or password",
		http.StatusUnauthorized,
	)
	ErrAccountInactive = apperror.New(
		apperror.CodeForbidden,
		"account is deactivated",
		http.StatusForbidden,
	)
	ErrInvalidRefreshToken = apperror.New(
		apperror.CodeUnauthorized,
		"refresh token is invalid or expired",
		http.StatusUnauthorized,
	)
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user account not found",
		http.StatusNotFound,
	)
	ErrDuplicateUser = apperror.New(
		apperror.CodeConflict,
		"a user account already exists for this staff member",
		http.StatusConflict,
	)
)
