package invite

import (
	"context"
	"database/sql"
	"time"

	"farmstaff/internal/shared/connection"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=invite_repo.go -destination=mock/invite_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, i *Invite) error
	FindAll(ctx context.Context) ([]Invite, error)
	FindByID(ctx context.Context, id string) (*Invite, error)
	FindByTokenForUpdate(ctx context.Context, token string) (*Invite, error)
	Update(ctx context.Context, i *Invite) error
	HasPending(ctx context.Context, email string, now time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, i *Invite) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Invite, error) {
	var invites []Invite
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Invite, error) {
	var i Invite
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	return &i, err
}

func (r *repository) FindByTokenForUpdate(ctx context.Context, token string) (*Invite, error) {
	var i Invite
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&i, "token = ?", token).Error
	return &i, err
}

func (r *repository) Update(ctx context.Context, i *Invite) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *repository) HasPending(ctx context.Context, email string, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Invite{}).
		Where("email = ?", email).
		Where("is_used = false").
		Where("cancelled_at IS NULL").
		Where("expires_at >= ?", now).
		Count(&count).Error
	return count > 0, err
}
