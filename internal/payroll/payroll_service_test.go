package payroll_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"farmstaff/internal/payroll"
	payrollerrors "farmstaff/internal/payroll/errors"
	"farmstaff/internal/principal"
	"farmstaff/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	withTxFn          func(tx *sql.Tx) payroll.Repository
	createFn          func(ctx context.Context, p *payroll.Payroll) error
	findAllFn         func(ctx context.Context, staffID string) ([]payroll.Payroll, error)
	findAllByStaffFn  func(ctx context.Context, staffID string) ([]payroll.Payroll, error)
	findByIDFn        func(ctx context.Context, id string) (*payroll.Payroll, error)
	existsForPeriodFn func(ctx context.Context, staffID string, period time.Time) (bool, error)
	updateFn          func(ctx context.Context, p *payroll.Payroll) error
	deleteFn          func(ctx context.Context, id string) error
	staffExistsFn     func(ctx context.Context, staffID string) (bool, error)
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) FindAll(ctx context.Context, staffID string) ([]payroll.Payroll, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, staffID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindAllByStaff(ctx context.Context, staffID string) ([]payroll.Payroll, error) {
	if f.findAllByStaffFn != nil {
		return f.findAllByStaffFn(ctx, staffID)
	}
	return nil, nil
}

func (f *fakePayrollRepository) FindByID(ctx context.Context, id string) (*payroll.Payroll, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) ExistsForPeriod(ctx context.Context, staffID string, period time.Time) (bool, error) {
	if f.existsForPeriodFn != nil {
		return f.existsForPeriodFn(ctx, staffID, period)
	}
	return false, nil
}

func (f *fakePayrollRepository) Update(ctx context.Context, p *payroll.Payroll) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakePayrollRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakePayrollRepository) StaffExists(ctx context.Context, staffID string) (bool, error) {
	if f.staffExistsFn != nil {
		return f.staffExistsFn(ctx, staffID)
	}
	return true, nil
}

type payrollServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payroll.Service
	repo    *fakePayrollRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayrollRepository{}
	svc := payroll.NewService(db, repo)

	return &payrollServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func TestPayrollService_Create(t *testing.T) {
	ctx := context.Background()
	admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}
	staffID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.existsForPeriodFn = func(ctx context.Context, sid string, period time.Time) (bool, error) {
			assert.Equal(t, staffID, sid)
			assert.Equal(t, "2026-08-01", period.Format("2006-01-02"))
			return false, nil
		}

		resp, err := deps.service.Create(ctx, admin, payroll.CreatePayrollRequest{
			StaffID:    staffID,
			Period:     "2026-08",
			Salary:     500000,
			Bonus:      25000,
			Deductions: 10000,
			PaidOn:     "2026-08-28",
		})

		assert.NoError(t, err)
		assert.Equal(t, "2026-08", resp.Period)
		assert.Equal(t, int64(515000), resp.NetPay)
		assert.NotNil(t, resp.PaidOn)
		assert.Equal(t, "2026-08-28", *resp.PaidOn)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate period", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.existsForPeriodFn = func(ctx context.Context, sid string, period time.Time) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, admin, payroll.CreatePayrollRequest{
			StaffID: staffID,
			Period:  "2026-08",
			Salary:  500000,
		})

		assert.ErrorIs(t, err, payrollerrors.ErrDuplicatePeriod)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid period format", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, admin, payroll.CreatePayrollRequest{
			StaffID: staffID,
			Period:  "08-2026",
			Salary:  500000,
		})

		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})

	t.Run("negative unknown staff", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.staffExistsFn = func(ctx context.Context, sid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, admin, payroll.CreatePayrollRequest{
			StaffID: staffID,
			Period:  "2026-08",
			Salary:  500000,
		})

		assert.ErrorIs(t, err, payrollerrors.ErrStaffNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non-admin", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		vet := principal.Principal{ID: uuid.New().String(), Role: principal.RoleVeterinarian, IsActive: true}

		_, err := deps.service.Create(ctx, vet, payroll.CreatePayrollRequest{
			StaffID: staffID,
			Period:  "2026-08",
			Salary:  500000,
		})

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestPayrollService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("worker scoped to own entries", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		staffID := uuid.New()
		worker := principal.Principal{ID: staffID.String(), Role: principal.RoleWorker, IsActive: true}

		deps.repo.findAllByStaffFn = func(ctx context.Context, sid string) ([]payroll.Payroll, error) {
			assert.Equal(t, staffID.String(), sid)
			return []payroll.Payroll{
				{ID: uuid.New(), StaffID: staffID, Period: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), Salary: 400000},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx, worker, uuid.New().String())

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "2026-07", resp[0].Period)
	})

	t.Run("admin passes staff filter through", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}
		staffID := uuid.New().String()

		deps.repo.findAllFn = func(ctx context.Context, sid string) ([]payroll.Payroll, error) {
			assert.Equal(t, staffID, sid)
			return nil, nil
		}

		_, err := deps.service.GetAll(ctx, admin, staffID)

		assert.NoError(t, err)
	})
}

func TestPayrollService_GetByID(t *testing.T) {
	ctx := context.Background()
	payrollID := uuid.New()
	ownerID := uuid.New()

	entry := &payroll.Payroll{
		ID:      payrollID,
		StaffID: ownerID,
		Period:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Salary:  450000,
	}

	t.Run("owner reads own entry", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		owner := principal.Principal{ID: ownerID.String(), Role: principal.RoleWorker, IsActive: true}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return entry, nil
		}

		resp, err := deps.service.GetByID(ctx, owner, payrollID.String())

		assert.NoError(t, err)
		assert.Equal(t, int64(450000), resp.Salary)
	})

	t.Run("negative worker reads another staff entry", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		other := principal.Principal{ID: uuid.New().String(), Role: principal.RoleWorker, IsActive: true}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return entry, nil
		}

		_, err := deps.service.GetByID(ctx, other, payrollID.String())

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}

		_, err := deps.service.GetByID(ctx, admin, uuid.New().String())

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})
}

func TestPayrollService_Update(t *testing.T) {
	ctx := context.Background()
	admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}
	payrollID := uuid.New()

	t.Run("success recomputes net pay", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{
				ID:      payrollID,
				StaffID: uuid.New(),
				Period:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
				Salary:  400000,
			}, nil
		}

		var saved *payroll.Payroll
		deps.repo.updateFn = func(ctx context.Context, p *payroll.Payroll) error {
			saved = p
			return nil
		}

		resp, err := deps.service.Update(ctx, admin, payrollID.String(), payroll.UpdatePayrollRequest{
			Salary:     420000,
			Bonus:      30000,
			Deductions: 5000,
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, int64(420000), saved.Salary)
		assert.Equal(t, int64(445000), resp.NetPay)
	})

	t.Run("negative non-admin", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		worker := principal.Principal{ID: uuid.New().String(), Role: principal.RoleWorker, IsActive: true}

		_, err := deps.service.Update(ctx, worker, payrollID.String(), payroll.UpdatePayrollRequest{Salary: 1})

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestPayrollService_Delete(t *testing.T) {
	ctx := context.Background()
	admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}

	t.Run("success", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		payrollID := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*payroll.Payroll, error) {
			return &payroll.Payroll{ID: payrollID, StaffID: uuid.New()}, nil
		}

		deleted := ""
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = id
			return nil
		}

		err := deps.service.Delete(ctx, admin, payrollID.String())

		assert.NoError(t, err)
		assert.Equal(t, payrollID.String(), deleted)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Delete(ctx, admin, uuid.New().String())

		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})
}
