package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"farmstaff/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	Update(ctx context.Context, rec *AttendanceRecord) error
	// FindOpenForUpdate locks and returns the staff member's open record
	// (no check-out yet) for the given work date, or nil when none exists.
	FindOpenForUpdate(ctx context.Context, staffID string, workDate time.Time) (*AttendanceRecord, error)
	FindAll(ctx context.Context, staffID string, workDate *time.Time) ([]AttendanceRecord, error)
	FindAllByStaff(ctx context.Context, staffID string, workDate *time.Time) ([]AttendanceRecord, error)
	StaffIsActive(ctx context.Context, staffID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) Update(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) FindOpenForUpdate(ctx context.Context, staffID string, workDate time.Time) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("staff_id = ?", staffID).
		Where("work_date = ?", workDate.Format("2006-01-02")).
		Where("check_out_at IS NULL").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindAll(ctx context.Context, staffID string, workDate *time.Time) ([]AttendanceRecord, error) {
	db := r.db.WithContext(ctx).Preload("Staff")
	if staffID != "" {
		db = db.Where("staff_id = ?", staffID)
	}
	if workDate != nil {
		db = db.Where("work_date = ?", workDate.Format("2006-01-02"))
	}

	var recs []AttendanceRecord
	err := db.Order("check_in_at DESC").Find(&recs).Error
	return recs, err
}

func (r *repository) FindAllByStaff(ctx context.Context, staffID string, workDate *time.Time) ([]AttendanceRecord, error) {
	db := r.db.WithContext(ctx).
		Preload("Staff").
		Where("staff_id = ?", staffID)
	if workDate != nil {
		db = db.Where("work_date = ?", workDate.Format("2006-01-02"))
	}

	var recs []AttendanceRecord
	err := db.Order("check_in_at DESC").Find(&recs).Error
	return recs, err
}

func (r *repository) StaffIsActive(ctx context.Context, staffID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("staff").
		Where("id = ?", staffID).
		Where("is_active = true").
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
