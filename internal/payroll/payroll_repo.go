package payroll

import (
	"context"
	"database/sql"
	"time"

	"farmstaff/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAll(ctx context.Context, staffID string) ([]Payroll, error)
	FindAllByStaff(ctx context.Context, staffID string) ([]Payroll, error)
	FindByID(ctx context.Context, id string) (*Payroll, error)
	ExistsForPeriod(ctx context.Context, staffID string, period time.Time) (bool, error)
	Update(ctx context.Context, p *Payroll) error
	Delete(ctx context.Context, id string) error
	StaffExists(ctx context.Context, staffID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context, staffID string) ([]Payroll, error) {
	db := r.db.WithContext(ctx).Preload("Staff")
	if staffID != "" {
		db = db.Where("staff_id = ?", staffID)
	}

	var payrolls []Payroll
	err := db.Order("period DESC").Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindAllByStaff(ctx context.Context, staffID string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("staff_id = ?", staffID).
		Order("period DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Preload("Staff").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) ExistsForPeriod(ctx context.Context, staffID string, period time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("staff_id = ?", staffID).
		Where("period = ?", period.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Payroll{}, "id = ?", id).Error
}

func (r *repository) StaffExists(ctx context.Context, staffID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("staff").
		Where("id = ?", staffID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
