package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"farmstaff/internal/leave"
	"farmstaff/internal/leavebalance"
	"farmstaff/internal/principal"
	"farmstaff/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn            func(tx *sql.Tx) leave.Repository
	createFn            func(ctx context.Context, l *leave.LeaveRequest) error
	findAllFn           func(ctx context.Context) ([]leave.LeaveRequest, error)
	findAllByStaffFn    func(ctx context.Context, staffID string) ([]leave.LeaveRequest, error)
	findByIDFn          func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	findByIDForUpdateFn func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	updateFn            func(ctx context.Context, l *leave.LeaveRequest) error
	deleteFn            func(ctx context.Context, id string) error
	findBlockingFn      func(ctx context.Context, staffID string, excludeID *string) ([]leave.LeaveRequest, error)
	staffIsActiveFn     func(ctx context.Context, staffID string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindAllByStaff(ctx context.Context, staffID string) ([]leave.LeaveRequest, error) {
	if f.findAllByStaffFn != nil {
		return f.findAllByStaffFn(ctx, staffID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveRepository) FindBlocking(ctx context.Context, staffID string, excludeID *string) ([]leave.LeaveRequest, error) {
	if f.findBlockingFn != nil {
		return f.findBlockingFn(ctx, staffID, excludeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) StaffIsActive(ctx context.Context, staffID string) (bool, error) {
	if f.staffIsActiveFn != nil {
		return f.staffIsActiveFn(ctx, staffID)
	}
	return true, nil
}

type fakeBalanceRepository struct {
	withTxFn               func(tx *sql.Tx) leavebalance.Repository
	findByStaffForUpdateFn func(ctx context.Context, staffID string) (*leavebalance.LeaveBalance, error)
	consumeDaysFn          func(ctx context.Context, staffID string, days int) (bool, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBalanceRepository) Create(ctx context.Context, b *leavebalance.LeaveBalance) error {
	return nil
}

func (f *fakeBalanceRepository) FindByStaff(ctx context.Context, staffID string) (*leavebalance.LeaveBalance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindByStaffForUpdate(ctx context.Context, staffID string) (*leavebalance.LeaveBalance, error) {
	if f.findByStaffForUpdateFn != nil {
		return f.findByStaffForUpdateFn(ctx, staffID)
	}
	return &leavebalance.LeaveBalance{
		TotalLeaveDays:     20,
		RemainingLeaveDays: 20,
	}, nil
}

func (f *fakeBalanceRepository) FindAll(ctx context.Context) ([]leavebalance.LeaveBalance, error) {
	return nil, nil
}

func (f *fakeBalanceRepository) Update(ctx context.Context, b *leavebalance.LeaveBalance) error {
	return nil
}

func (f *fakeBalanceRepository) Delete(ctx context.Context, staffID string) error {
	return nil
}

func (f *fakeBalanceRepository) ConsumeDays(ctx context.Context, staffID string, days int) (bool, error) {
	if f.consumeDaysFn != nil {
		return f.consumeDaysFn(ctx, staffID, days)
	}
	return true, nil
}

func (f *fakeBalanceRepository) CountPendingRequests(ctx context.Context, staffID string) (int64, error) {
	return 0, nil
}

type leaveServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	balances *fakeBalanceRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	balances := &fakeBalanceRepository{}
	svc := leave.NewService(db, repo, balances)

	return &leaveServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		balances: balances,
	}
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

func futureDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New().String()
	worker := principal.Principal{ID: staffID, Role: principal.RoleWorker, IsActive: true}

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leave.CreateLeaveRequest{
			StaffID:   staffID,
			LeaveType: "ANNUAL",
			StartDate: futureDate(10),
			EndDate:   futureDate(12),
			Reason:    "Family event",
		}

		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, uuid.MustParse(staffID), l.StaffID)
			assert.Equal(t, uuid.MustParse(staffID), l.CreatedBy)
			assert.Equal(t, "ANNUAL", l.LeaveType)
			assert.Equal(t, 3, l.TotalDays)
			assert.Equal(t, leave.StatusPending, l.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, worker, req)

		assert.NoError(t, err)
		assert.Equal(t, staffID, resp.StaffID)
		assert.Equal(t, 3, resp.TotalDays)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success single day start equals end", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		day := futureDate(5)
		req := leave.CreateLeaveRequest{
			StaffID:   staffID,
			LeaveType: "SICK",
			StartDate: day,
			EndDate:   day,
		}

		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, 1, l.TotalDays)
			return nil
		}

		resp, err := deps.service.Create(ctx, worker, req)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.TotalDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative worker for another staff", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			StaffID:   uuid.New().String(),
			LeaveType: "ANNUAL",
			StartDate: futureDate(10),
			EndDate:   futureDate(12),
		}

		_, err := deps.service.Create(ctx, worker, req)

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			StaffID:   staffID,
			LeaveType: "ANNUAL",
			StartDate: futureDate(12),
			EndDate:   futureDate(10),
		}

		_, err := deps.service.Create(ctx, worker, req)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "end_date")
	})

	t.Run("negative start in the past", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leave.CreateLeaveRequest{
			StaffID:   staffID,
			LeaveType: "ANNUAL",
			StartDate: futureDate(-3),
			EndDate:   futureDate(2),
		}

		_, err := deps.service.Create(ctx, worker, req)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "past")
	})

	t.Run("negative overlapping request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			StaffID:   staffID,
			LeaveType: "ANNUAL",
			StartDate: futureDate(10),
			EndDate:   futureDate(12),
		}

		existingStart, _ := time.Parse("2006-01-02", futureDate(11))
		existingEnd, _ := time.Parse("2006-01-02", futureDate(14))
		deps.repo.findBlockingFn = func(ctx context.Context, sid string, excludeID *string) ([]leave.LeaveRequest, error) {
			assert.Equal(t, staffID, sid)
			assert.Nil(t, excludeID)
			return []leave.LeaveRequest{
				{ID: uuid.New(), StartDate: existingStart, EndDate: existingEnd, Status: leave.StatusApproved},
			}, nil
		}

		_, err := deps.service.Create(ctx, worker, req)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "overlap")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			StaffID:   staffID,
			LeaveType: "ANNUAL",
			StartDate: futureDate(10),
			EndDate:   futureDate(15),
		}

		deps.balances.findByStaffForUpdateFn = func(ctx context.Context, sid string) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{TotalLeaveDays: 20, UsedLeaveDays: 18, RemainingLeaveDays: 2}, nil
		}

		_, err := deps.service.Create(ctx, worker, req)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "remaining")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative no balance row", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			StaffID:   staffID,
			LeaveType: "ANNUAL",
			StartDate: futureDate(10),
			EndDate:   futureDate(12),
		}

		deps.balances.findByStaffForUpdateFn = func(ctx context.Context, sid string) (*leavebalance.LeaveBalance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Create(ctx, worker, req)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "balance")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative inactive staff", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leave.CreateLeaveRequest{
			StaffID:   staffID,
			LeaveType: "ANNUAL",
			StartDate: futureDate(10),
			EndDate:   futureDate(12),
		}

		deps.repo.staffIsActiveFn = func(ctx context.Context, sid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, worker, req)

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New().String()
	admin := principal.Principal{ID: adminID, Role: principal.RoleAdmin, IsActive: true}
	staffID := uuid.New()
	leaveID := uuid.New()

	pendingLeave := func() *leave.LeaveRequest {
		return &leave.LeaveRequest{
			ID:        leaveID,
			StaffID:   staffID,
			LeaveType: "ANNUAL",
			StartDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
			TotalDays: 3,
			Status:    leave.StatusPending,
			CreatedBy: staffID,
		}
	}

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			assert.Equal(t, leaveID.String(), id)
			return pendingLeave(), nil
		}
		deps.balances.consumeDaysFn = func(ctx context.Context, sid string, days int) (bool, error) {
			assert.Equal(t, staffID.String(), sid)
			assert.Equal(t, 3, days)
			return true, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusApproved, l.Status)
			assert.NotNil(t, l.ApprovedBy)
			assert.Equal(t, uuid.MustParse(adminID), *l.ApprovedBy)
			assert.NotNil(t, l.ApprovedAt)
			return nil
		}

		resp, err := deps.service.Approve(ctx, admin, leaveID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative non admin", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		worker := principal.Principal{ID: staffID.String(), Role: principal.RoleWorker, IsActive: true}
		_, err := deps.service.Approve(ctx, worker, leaveID.String())

		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("negative already processed", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			l := pendingLeave()
			l.Status = leave.StatusApproved
			return l, nil
		}

		_, err := deps.service.Approve(ctx, admin, leaveID.String())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "processed")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative balance exhausted at approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingLeave(), nil
		}
		deps.balances.consumeDaysFn = func(ctx context.Context, sid string, days int) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Approve(ctx, admin, leaveID.String())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "remaining")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, admin, uuid.New().String())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}
	leaveID := uuid.New()

	t.Run("success with reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{
				ID:      leaveID,
				StaffID: uuid.New(),
				Status:  leave.StatusPending,
			}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusRejected, l.Status)
			assert.NotNil(t, l.RejectionReason)
			assert.Equal(t, "peak season", *l.RejectionReason)
			return nil
		}

		resp, err := deps.service.Reject(ctx, admin, leaveID.String(), "peak season")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative rejecting cancelled request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{ID: leaveID, Status: leave.StatusCancelled}, nil
		}

		_, err := deps.service.Reject(ctx, admin, leaveID.String(), "")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "processed")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New()
	leaveID := uuid.New()
	owner := principal.Principal{ID: staffID.String(), Role: principal.RoleWorker, IsActive: true}

	t.Run("success by owner", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{ID: leaveID, StaffID: staffID, Status: leave.StatusPending}, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusCancelled, l.Status)
			return nil
		}

		resp, err := deps.service.Cancel(ctx, owner, leaveID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative another worker", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{ID: leaveID, StaffID: staffID, Status: leave.StatusPending}, nil
		}

		other := principal.Principal{ID: uuid.New().String(), Role: principal.RoleWorker, IsActive: true}
		_, err := deps.service.Cancel(ctx, other, leaveID.String())

		assert.ErrorIs(t, err, apperror.ErrForbidden)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative approved request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{ID: leaveID, StaffID: staffID, Status: leave.StatusApproved}, nil
		}

		_, err := deps.service.Cancel(ctx, owner, leaveID.String())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "processed")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("worker sees only own requests", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		staffID := uuid.New()
		worker := principal.Principal{ID: staffID.String(), Role: principal.RoleWorker, IsActive: true}

		deps.repo.findAllByStaffFn = func(ctx context.Context, sid string) ([]leave.LeaveRequest, error) {
			assert.Equal(t, staffID.String(), sid)
			return []leave.LeaveRequest{
				{ID: uuid.New(), StaffID: staffID, Status: leave.StatusPending, TotalDays: 2},
			}, nil
		}

		resp, err := deps.service.GetAll(ctx, worker)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, staffID.String(), resp[0].StaffID)
	})

	t.Run("veterinarian sees all", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		vet := principal.Principal{ID: uuid.New().String(), Role: principal.RoleVeterinarian, IsActive: true}

		called := false
		deps.repo.findAllFn = func(ctx context.Context) ([]leave.LeaveRequest, error) {
			called = true
			return []leave.LeaveRequest{}, nil
		}

		_, err := deps.service.GetAll(ctx, vet)

		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		admin := principal.Principal{ID: uuid.New().String(), Role: principal.RoleAdmin, IsActive: true}
		deps.repo.findAllFn = func(ctx context.Context) ([]leave.LeaveRequest, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.GetAll(ctx, admin)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New()
	leaveID := uuid.New()
	owner := principal.Principal{ID: staffID.String(), Role: principal.RoleWorker, IsActive: true}

	t.Run("success pending request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{ID: leaveID, StaffID: staffID, Status: leave.StatusPending}, nil
		}
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, id string) error {
			deleted = true
			assert.Equal(t, leaveID.String(), id)
			return nil
		}

		err := deps.service.Delete(ctx, owner, leaveID.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative approved request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return &leave.LeaveRequest{ID: leaveID, StaffID: staffID, Status: leave.StatusApproved}, nil
		}

		err := deps.service.Delete(ctx, owner, leaveID.String())

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
