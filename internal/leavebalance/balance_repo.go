package leavebalance

import (
	"context"
	"database/sql"

	"farmstaff/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByStaff(ctx context.Context, staffID string) (*LeaveBalance, error)
	// FindByStaffForUpdate locks the balance row for the duration of the
	// surrounding transaction, serializing concurrent leave operations
	// for the same staff member.
	FindByStaffForUpdate(ctx context.Context, staffID string) (*LeaveBalance, error)
	FindAll(ctx context.Context) ([]LeaveBalance, error)
	Update(ctx context.Context, b *LeaveBalance) error
	Delete(ctx context.Context, staffID string) error
	// ConsumeDays atomically moves days from remaining to used, refusing
	// to go below zero. Returns false when the balance was insufficient.
	ConsumeDays(ctx context.Context, staffID string, days int) (bool, error)
	CountPendingRequests(ctx context.Context, staffID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GormTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByStaff(ctx context.Context, staffID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		First(&b, "staff_id = ?", staffID).Error
	return &b, err
}

func (r *repository) FindByStaffForUpdate(ctx context.Context, staffID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "staff_id = ?", staffID).Error
	return &b, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&balances).Error
	return balances, err
}

func (r *repository) Update(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) Delete(ctx context.Context, staffID string) error {
	return r.db.WithContext(ctx).
		Delete(&LeaveBalance{}, "staff_id = ?", staffID).Error
}

func (r *repository) ConsumeDays(ctx context.Context, staffID string, days int) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE leave_balances
		SET used_leave_days = used_leave_days + ?,
		    remaining_leave_days = remaining_leave_days - ?,
		    updated_at = now()
		WHERE staff_id = ? AND remaining_leave_days >= ?
	`, days, days, staffID, days)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) CountPendingRequests(ctx context.Context, staffID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("leave_requests").
		Where("staff_id = ?", staffID).
		Where("status = ?", "PENDING").
		Count(&count).Error
	return count, err
}
