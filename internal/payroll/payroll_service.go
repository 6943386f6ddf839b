package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	payrollerrors "farmstaff/internal/payroll/errors"
	"farmstaff/internal/principal"
	"farmstaff/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p principal.Principal, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, p principal.Principal, staffID string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, p principal.Principal, id string) (PayrollResponse, error)
	Update(ctx context.Context, p principal.Principal, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Delete(ctx context.Context, p principal.Principal, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, p principal.Principal, req CreatePayrollRequest) (PayrollResponse, error) {
	if !p.IsAdmin() {
		return PayrollResponse{}, apperror.ErrForbidden
	}
	staffUUID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidStaffID
	}
	period, err := parsePeriod(req.Period)
	if err != nil {
		return PayrollResponse{}, err
	}
	paidOn, err := parsePaidOn(req.PaidOn)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.StaffExists(ctx, req.StaffID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if !exists {
		return PayrollResponse{}, payrollerrors.ErrStaffNotFound
	}

	dup, err := qtx.ExistsForPeriod(ctx, req.StaffID, period)
	if err != nil {
		return PayrollResponse{}, err
	}
	if dup {
		return PayrollResponse{}, payrollerrors.ErrDuplicatePeriod
	}

	entry := &Payroll{
		ID:         uuid.New(),
		StaffID:    staffUUID,
		Period:     period,
		Salary:     req.Salary,
		Bonus:      req.Bonus,
		Deductions: req.Deductions,
		PaidOn:     paidOn,
	}

	// The unique index backstops the existence check above under
	// concurrent creates for the same staff and period.
	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Error("create payroll persist failed", zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create payroll commit failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("create payroll success",
		zap.String("payroll_id", entry.ID.String()),
		zap.String("staff_id", req.StaffID),
		zap.String("period", req.Period),
	)
	return mapToResponse(*entry), nil
}

func (s *service) GetAll(ctx context.Context, p principal.Principal, staffID string) ([]PayrollResponse, error) {
	var (
		payrolls []Payroll
		err      error
	)
	if p.CanReadAll() {
		payrolls, err = s.repo.FindAll(ctx, staffID)
	} else {
		payrolls, err = s.repo.FindAllByStaff(ctx, p.ID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(ctx context.Context, p principal.Principal, id string) (PayrollResponse, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	if !p.CanReadAll() && !p.CanActFor(entry.StaffID.String()) {
		return PayrollResponse{}, apperror.ErrForbidden
	}
	return mapToResponse(*entry), nil
}

func (s *service) Update(ctx context.Context, p principal.Principal, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	if !p.IsAdmin() {
		return PayrollResponse{}, apperror.ErrForbidden
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	paidOn, err := parsePaidOn(req.PaidOn)
	if err != nil {
		return PayrollResponse{}, err
	}

	entry.Salary = req.Salary
	entry.Bonus = req.Bonus
	entry.Deductions = req.Deductions
	if paidOn != nil {
		entry.PaidOn = paidOn
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		s.logger.Error("update payroll persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("update payroll success", zap.String("payroll_id", id))
	return mapToResponse(*entry), nil
}

func (s *service) Delete(ctx context.Context, p principal.Principal, id string) error {
	if !p.IsAdmin() {
		return apperror.ErrForbidden
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrPayrollNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete payroll failed", zap.String("payroll_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete payroll success", zap.String("payroll_id", id))
	return nil
}

// parsePeriod accepts YYYY-MM and pins the entry to the first day of
// that month.
func parsePeriod(v string) (time.Time, error) {
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidPeriod
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

func parsePaidOn(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, apperror.InvalidField("paid_on")
	}
	return &t, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return payrollerrors.ErrDuplicatePeriod
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return payrollerrors.ErrDuplicatePeriod
	}
	return err
}

func mapToResponse(entry Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:         entry.ID.String(),
		StaffID:    entry.StaffID.String(),
		Period:     entry.Period.Format("2006-01"),
		Salary:     entry.Salary,
		Bonus:      entry.Bonus,
		Deductions: entry.Deductions,
		NetPay:     entry.Salary + entry.Bonus - entry.Deductions,
	}
	if entry.Staff != nil {
		resp.StaffName = entry.Staff.FullName
	}
	if entry.PaidOn != nil {
		v := entry.PaidOn.Format("2006-01-02")
		resp.PaidOn = &v
	}
	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, entry := range payrolls {
		resp[i] = mapToResponse(entry)
	}
	return resp
}
