package staff

import (
	"context"
	"database/sql"

	"farmstaff/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Staff) error
	FindAll(ctx context.Context, filter ListFilter) ([]Staff, int64, error)
	FindByID(ctx context.Context, id string) (*Staff, error)
	Update(ctx context.Context, s *Staff) error
	SoftDelete(ctx context.Context, id string) error
	HardDelete(ctx context.Context, id string) error
	// HistoryCount sums the staff member's leave, attendance and payroll
	// rows. A non-zero count blocks hard deletion.
	HistoryCount(ctx context.Context, id string) (int64, error)
	FindOptions(ctx context.Context) ([]Staff, error)
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

func (r *repository) Create(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Staff, int64, error) {
	db := r.db.WithContext(ctx).Model(&Staff{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		db = db.Where("full_name ILIKE ? OR email ILIKE ? OR staff_number ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Role != "" {
		db = db.Where("role = ?", filter.Role)
	}
	if filter.Active != nil {
		db = db.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var staffList []Staff
	err := db.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&staffList).Error
	return staffList, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Staff{}, "id = ?", id).Error
}

func (r *repository) HardDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Delete(&Staff{}, "id = ?", id).Error
}

func (r *repository) HistoryCount(ctx context.Context, id string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT count(*) FROM leave_requests WHERE staff_id = ?) +
			(SELECT count(*) FROM attendance_records WHERE staff_id = ?) +
			(SELECT count(*) FROM payrolls WHERE staff_id = ?)
	`, id, id, id).Scan(&total).Error
	return total, err
}

func (r *repository) FindOptions(ctx context.Context) ([]Staff, error) {
	var staffList []Staff
	err := r.db.WithContext(ctx).
		Select("id", "full_name", "role").
		Where("is_active = true").
		Order("full_name ASC").
		Find(&staffList).Error
	return staffList, err
}
