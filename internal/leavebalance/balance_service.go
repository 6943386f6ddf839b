package leavebalance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	balanceerrors "farmstaff/internal/leavebalance/errors"
	"farmstaff/internal/principal"
	"farmstaff/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultAnnualDays is the allowance provisioned for a freshly created
// staff member when no balance was set up explicitly.
const DefaultAnnualDays = 20

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p principal.Principal, req CreateBalanceRequest) (BalanceResponse, error)
	SetTotals(ctx context.Context, p principal.Principal, staffID string, req SetTotalsRequest) (BalanceResponse, error)
	GetByStaff(ctx context.Context, p principal.Principal, staffID string) (BalanceResponse, error)
	GetAll(ctx context.Context, p principal.Principal) ([]BalanceResponse, error)
	Delete(ctx context.Context, p principal.Principal, staffID string) error
	// ProvisionDefault creates the default allowance for a new staff
	// member. Called by the staff-lifecycle consumer, not over HTTP.
	ProvisionDefault(ctx context.Context, staffID string) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, p principal.Principal, req CreateBalanceRequest) (BalanceResponse, error) {
	if !p.IsAdmin() {
		return BalanceResponse{}, apperror.ErrForbidden
	}

	staffUUID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidStaffID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindByStaff(ctx, req.StaffID)
	if err == nil {
		return BalanceResponse{}, balanceerrors.ErrDuplicateBalance
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return BalanceResponse{}, err
	}

	b := &LeaveBalance{
		ID:                 uuid.New(),
		StaffID:            staffUUID,
		Year:               req.Year,
		TotalLeaveDays:     req.TotalLeaveDays,
		UsedLeaveDays:      0,
		RemainingLeaveDays: req.TotalLeaveDays,
	}

	if err := qtx.Create(ctx, b); err != nil {
		return BalanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("leave balance created",
		zap.String("staff_id", req.StaffID),
		zap.Int("total_days", req.TotalLeaveDays),
	)
	return mapToResponse(*b), nil
}

// SetTotals is the admin full-replace path for initial setup and manual
// corrections. The automatic approval-driven decrement goes through
// ConsumeDays instead, so the two can no longer clobber each other.
func (s *service) SetTotals(ctx context.Context, p principal.Principal, staffID string, req SetTotalsRequest) (BalanceResponse, error) {
	if !p.IsAdmin() {
		return BalanceResponse{}, apperror.ErrForbidden
	}
	if _, err := uuid.Parse(staffID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidStaffID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set balance totals begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindByStaffForUpdate(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}

	used := b.UsedLeaveDays
	if req.UsedLeaveDays != nil {
		used = *req.UsedLeaveDays
	}
	if used < 0 || used > req.TotalLeaveDays {
		return BalanceResponse{}, balanceerrors.ErrUsedExceedsTotal
	}

	b.TotalLeaveDays = req.TotalLeaveDays
	b.UsedLeaveDays = used
	b.RemainingLeaveDays = req.TotalLeaveDays - used

	if err := qtx.Update(ctx, b); err != nil {
		return BalanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return BalanceResponse{}, err
	}

	s.logger.Info("leave balance totals replaced",
		zap.String("staff_id", staffID),
		zap.Int("total_days", b.TotalLeaveDays),
		zap.Int("used_days", b.UsedLeaveDays),
	)
	return mapToResponse(*b), nil
}

func (s *service) GetByStaff(ctx context.Context, p principal.Principal, staffID string) (BalanceResponse, error) {
	if !p.CanActFor(staffID) {
		return BalanceResponse{}, apperror.ErrForbidden
	}

	b, err := s.repo.FindByStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrBalanceNotFound
		}
		return BalanceResponse{}, err
	}
	return mapToResponse(*b), nil
}

func (s *service) GetAll(ctx context.Context, p principal.Principal) ([]BalanceResponse, error) {
	if !p.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	balances, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, p principal.Principal, staffID string) error {
	if !p.IsAdmin() {
		return apperror.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pending, err := qtx.CountPendingRequests(ctx, staffID)
	if err != nil {
		return err
	}
	if pending > 0 {
		return balanceerrors.ErrBalanceInUse
	}

	if err := qtx.Delete(ctx, staffID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) ProvisionDefault(ctx context.Context, staffID string) (BalanceResponse, error) {
	staffUUID, err := uuid.Parse(staffID)
	if err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidStaffID
	}

	b := &LeaveBalance{
		ID:                 uuid.New(),
		StaffID:            staffUUID,
		Year:               time.Now().UTC().Year(),
		TotalLeaveDays:     DefaultAnnualDays,
		UsedLeaveDays:      0,
		RemainingLeaveDays: DefaultAnnualDays,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return BalanceResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("default leave balance provisioned", zap.String("staff_id", staffID))
	return mapToResponse(*b), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return balanceerrors.ErrDuplicateBalance
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return balanceerrors.ErrDuplicateBalance
	}
	return err
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:                 b.ID.String(),
		StaffID:            b.StaffID.String(),
		Year:               b.Year,
		TotalLeaveDays:     b.TotalLeaveDays,
		UsedLeaveDays:      b.UsedLeaveDays,
		RemainingLeaveDays: b.RemainingLeaveDays,
	}
}
