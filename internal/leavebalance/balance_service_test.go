package leavebalance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"farmstaff/internal/leavebalance"
	balanceerrors "farmstaff/internal/leavebalance/errors"
	"farmstaff/internal/principal"
	"farmstaff/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	withTxFn               func(tx *sql.Tx) leavebalance.Repository
	createFn               func(ctx context.Context, b *leavebalance.LeaveBalance) error
	findByStaffFn          func(ctx context.Context, staffID string) (*leavebalance.LeaveBalance, error)
	findByStaffForUpdateFn func(ctx context.Context, staffID string) (*leavebalance.LeaveBalance, error)
	findAllFn              func(ctx context.Context) ([]leavebalance.LeaveBalance, error)
	updateFn               func(ctx context.Context, b *leavebalance.LeaveBalance) error
	deleteFn               func(ctx context.Context, staffID string) error
	consumeDaysFn          func(ctx context.Context, staffID string, days int) (bool, error)
	countPendingFn         func(ctx context.Context, staffID string) (int64, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBalanceRepository) Create(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) FindByStaff(ctx context.Context, staffID string) (*leavebalance.LeaveBalance, error) {
	if f.findByStaffFn != nil {
		return f.findByStaffFn(ctx, staffID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindByStaffForUpdate(ctx context.Context, staffID string) (*leavebalance.LeaveBalance, error) {
	if f.findByStaffForUpdateFn != nil {
		return f.findByStaffForUpdateFn(ctx, staffID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindAll(ctx context.Context) ([]leavebalance.LeaveBalance, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) Update(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) Delete(ctx context.Context, staffID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, staffID)
	}
	return nil
}

func (f *fakeBalanceRepository) ConsumeDays(ctx context.Context, staffID string, days int) (bool, error) {
	if f.consumeDaysFn != nil {
		return f.consumeDaysFn(ctx, staffID, days)
	}
	return true, nil
}

func (f *fakeBalanceRepository) CountPendingRequests(ctx context.Context, staffID string) (int64, error) {
	if f.countPendingFn != nil {
		return f.countPendingFn(ctx, staffID)
	}
	return 0, nil
}

type balanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leavebalance.Service
	repo    *fakeBalanceRepository
}

func setupBalanceServiceTest(t *testing.T) *balanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeBalanceRepository{}
	svc := leavebalance.NewService(db, repo)

	return &balanceServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestBalanceService_Create(t *testing.T) {
	ctx := context.Background()
	admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}
	staffID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leavebalance.CreateBalanceRequest{
			StaffID:        staffID,
			Year:           time.Now().UTC().Year(),
			TotalLeaveDays: 25,
		}

		deps.repo.createFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			assert.Equal(t, uuid.MustParse(staffID), b.StaffID)
			assert.Equal(t, 25, b.TotalLeaveDays)
			assert.Equal(t, 0, b.UsedLeaveDays)
			assert.Equal(t, 25, b.RemainingLeaveDays)
			return nil
		}

		resp, err := deps.service.Create(ctx, admin, req)

		assert.NoError(t, err)
		assert.Equal(t, 25, resp.TotalLeaveDays)
		assert.Equal(t, 25, resp.RemainingLeaveDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non admin", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		worker := principal.Principal{ID: staffID, Role: principal.RoleWorker, IsActive: true}
		_, err := deps.service.Create(ctx, worker, leavebalance.CreateBalanceRequest{StaffID: staffID, TotalLeaveDays: 25})

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("negative duplicate", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByStaffFn = func(ctx context.Context, sid string) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{StaffID: uuid.MustParse(staffID)}, nil
		}

		_, err := deps.service.Create(ctx, admin, leavebalance.CreateBalanceRequest{StaffID: staffID, TotalLeaveDays: 25})

		assert.ErrorIs(t, err, balanceerrors.ErrDuplicateBalance)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestBalanceService_SetTotals(t *testing.T) {
	ctx := context.Background()
	admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}
	staffID := uuid.New().String()

	t.Run("success recomputes remaining", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByStaffForUpdateFn = func(ctx context.Context, sid string) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{
				StaffID:            uuid.MustParse(staffID),
				TotalLeaveDays:     20,
				UsedLeaveDays:      5,
				RemainingLeaveDays: 15,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			assert.Equal(t, 30, b.TotalLeaveDays)
			assert.Equal(t, 5, b.UsedLeaveDays)
			assert.Equal(t, 25, b.RemainingLeaveDays)
			return nil
		}

		resp, err := deps.service.SetTotals(ctx, admin, staffID, leavebalance.SetTotalsRequest{TotalLeaveDays: 30})

		assert.NoError(t, err)
		assert.Equal(t, 25, resp.RemainingLeaveDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative used exceeds total", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByStaffForUpdateFn = func(ctx context.Context, sid string) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{TotalLeaveDays: 20, UsedLeaveDays: 15, RemainingLeaveDays: 5}, nil
		}

		_, err := deps.service.SetTotals(ctx, admin, staffID, leavebalance.SetTotalsRequest{TotalLeaveDays: 10})

		assert.ErrorIs(t, err, balanceerrors.ErrUsedExceedsTotal)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative missing balance", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.SetTotals(ctx, admin, staffID, leavebalance.SetTotalsRequest{TotalLeaveDays: 10})

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestBalanceService_GetByStaff(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New().String()

	t.Run("worker reads own balance", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		worker := principal.Principal{ID: staffID, Role: principal.RoleWorker, IsActive: true}
		deps.repo.findByStaffFn = func(ctx context.Context, sid string) (*leavebalance.LeaveBalance, error) {
			assert.Equal(t, staffID, sid)
			return &leavebalance.LeaveBalance{
				ID:                 uuid.New(),
				StaffID:            uuid.MustParse(staffID),
				TotalLeaveDays:     20,
				UsedLeaveDays:      3,
				RemainingLeaveDays: 17,
			}, nil
		}

		resp, err := deps.service.GetByStaff(ctx, worker, staffID)

		assert.NoError(t, err)
		assert.Equal(t, 17, resp.RemainingLeaveDays)
	})

	t.Run("negative worker reads another balance", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		worker := principal.Principal{ID: uuid.New().String(), Role: principal.RoleWorker, IsActive: true}
		_, err := deps.service.GetByStaff(ctx, worker, staffID)

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestBalanceService_Delete(t *testing.T) {
	ctx := context.Background()
	admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}
	staffID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, sid string) error {
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, admin, staffID)

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative pending requests", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.countPendingFn = func(ctx context.Context, sid string) (int64, error) {
			return 2, nil
		}

		err := deps.service.Delete(ctx, admin, staffID)

		assert.ErrorIs(t, err, balanceerrors.ErrBalanceInUse)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestBalanceService_ProvisionDefault(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		staffID := uuid.New().String()
		deps.repo.createFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			assert.Equal(t, leavebalance.DefaultAnnualDays, b.TotalLeaveDays)
			assert.Equal(t, leavebalance.DefaultAnnualDays, b.RemainingLeaveDays)
			assert.Equal(t, time.Now().UTC().Year(), b.Year)
			return nil
		}

		resp, err := deps.service.ProvisionDefault(ctx, staffID)

		assert.NoError(t, err)
		assert.Equal(t, leavebalance.DefaultAnnualDays, resp.TotalLeaveDays)
	})

	t.Run("negative invalid staff id", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ProvisionDefault(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, balanceerrors.ErrInvalidStaffID)
	})
}
