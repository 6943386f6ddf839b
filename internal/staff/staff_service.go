package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmstaff/internal/events"
	"farmstaff/internal/messaging/kafka"
	"farmstaff/internal/principal"
	"farmstaff/internal/shared/apperror"
	"farmstaff/internal/shared/contextutil"
	"farmstaff/internal/shared/counter"
	"farmstaff/internal/shared/response"
	stafferrors "farmstaff/internal/staff/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	staffNumberCounter = "staff_number"
	optionsCacheKey    = "staff:options"
	optionsCacheTTL    = 5 * time.Minute
)

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p principal.Principal, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context, p principal.Principal, filter ListFilter) ([]StaffResponse, *response.Pagination, error)
	GetByID(ctx context.Context, p principal.Principal, id string) (StaffResponse, error)
	GetOptions(ctx context.Context, p principal.Principal) ([]StaffOption, error)
	Update(ctx context.Context, p principal.Principal, id string, req UpdateStaffRequest) (StaffResponse, error)
	Deactivate(ctx context.Context, p principal.Principal, id string) (StaffResponse, error)
	Delete(ctx context.Context, p principal.Principal, id string, hard bool) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	group    singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counters counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		counters: counters,
		outbox:   outboxRepo,
		rdb:      rdb,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, p principal.Principal, req CreateStaffRequest) (StaffResponse, error) {
	if !p.IsAdmin() {
		return StaffResponse{}, apperror.ErrForbidden
	}
	if !principal.ValidRole(req.Role) {
		return StaffResponse{}, stafferrors.ErrInvalidRole
	}

	var hiredAt *time.Time
	if req.HiredAt != "" {
		d, err := time.Parse("2006-01-02", req.HiredAt)
		if err != nil {
			return StaffResponse{}, apperror.InvalidField("hired_at")
		}
		hiredAt = &d
	}

	seq, err := s.counters.GetNextValue(ctx, staffNumberCounter)
	if err != nil {
		s.logger.Error("create staff counter failed", zap.Error(err))
		return StaffResponse{}, err
	}

	member := &Staff{
		ID:          uuid.New(),
		StaffNumber: fmt.Sprintf("STF-%06d", seq),
		FullName:    req.FullName,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		Role:        req.Role,
		IsActive:    true,
		HiredAt:     hiredAt,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create staff begin tx failed", zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, member); err != nil {
		s.logger.Error("create staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueCreatedEvent(ctx, tx, member); err != nil {
		return StaffResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create staff commit failed", zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create staff success",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("staff_id", member.ID.String()),
		zap.String("staff_number", member.StaffNumber),
		zap.String("role", member.Role),
	)
	return mapToResponse(*member), nil
}

func (s *service) GetAll(ctx context.Context, p principal.Principal, filter ListFilter) ([]StaffResponse, *response.Pagination, error) {
	if !p.CanReadAll() {
		return nil, nil, apperror.ErrForbidden
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	staffList, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	pagination := response.NewPagination(total, filter.Page, filter.Limit)
	return mapToListResponse(staffList), &pagination, nil
}

func (s *service) GetByID(ctx context.Context, p principal.Principal, id string) (StaffResponse, error) {
	if !p.CanReadAll() && !p.CanActFor(id) {
		return StaffResponse{}, apperror.ErrForbidden
	}

	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StaffResponse{}, stafferrors.ErrStaffNotFound
		}
		return StaffResponse{}, err
	}
	return mapToResponse(*member), nil
}

// GetOptions is hit by every dropdown in the UI, so it is served from
// redis and deduplicated through singleflight on a cold cache.
func (s *service) GetOptions(ctx context.Context, p principal.Principal) ([]StaffOption, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, optionsCacheKey).Bytes()
		if err == nil {
			var options []StaffOption
			if jsonErr := json.Unmarshal(cached, &options); jsonErr == nil {
				return options, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("staff options cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(optionsCacheKey, func() (interface{}, error) {
		staffList, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, err
		}

		options := make([]StaffOption, len(staffList))
		for i, member := range staffList {
			options[i] = StaffOption{
				ID:       member.ID.String(),
				FullName: member.FullName,
				Role:     member.Role,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				if err := s.rdb.Set(ctx, optionsCacheKey, payload, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("staff options cache write failed", zap.Error(err))
				}
			}
		}
		return options, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]StaffOption), nil
}

func (s *service) Update(ctx context.Context, p principal.Principal, id string, req UpdateStaffRequest) (StaffResponse, error) {
	if !p.IsAdmin() {
		return StaffResponse{}, apperror.ErrForbidden
	}
	if !principal.ValidRole(req.Role) {
		return StaffResponse{}, stafferrors.ErrInvalidRole
	}

	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StaffResponse{}, stafferrors.ErrStaffNotFound
		}
		return StaffResponse{}, err
	}

	member.FullName = req.FullName
	member.Phone = req.Phone
	member.Role = req.Role

	if err := s.repo.Update(ctx, member); err != nil {
		s.logger.Error("update staff persist failed", zap.String("staff_id", id), zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("update staff success", zap.String("staff_id", id))
	return mapToResponse(*member), nil
}

func (s *service) Deactivate(ctx context.Context, p principal.Principal, id string) (StaffResponse, error) {
	if !p.IsAdmin() {
		return StaffResponse{}, apperror.ErrForbidden
	}

	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StaffResponse{}, stafferrors.ErrStaffNotFound
		}
		return StaffResponse{}, err
	}

	member.IsActive = false
	if err := s.repo.Update(ctx, member); err != nil {
		s.logger.Error("deactivate staff persist failed", zap.String("staff_id", id), zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("deactivate staff success", zap.String("staff_id", id))
	return mapToResponse(*member), nil
}

// Delete soft deletes by default, keeping the row for historical joins.
// A hard delete is only honored when no attendance, leave or payroll
// rows reference the staff member.
func (s *service) Delete(ctx context.Context, p principal.Principal, id string, hard bool) error {
	if !p.IsAdmin() {
		return apperror.ErrForbidden
	}

	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return stafferrors.ErrStaffNotFound
		}
		return err
	}

	if hard {
		history, err := s.repo.HistoryCount(ctx, id)
		if err != nil {
			return err
		}
		if history > 0 {
			return stafferrors.ErrStaffHasHistory
		}
		if err := s.repo.HardDelete(ctx, id); err != nil {
			s.logger.Error("hard delete staff failed", zap.String("staff_id", id), zap.Error(err))
			return err
		}
	} else {
		member.IsActive = false
		if err := s.repo.Update(ctx, member); err != nil {
			return err
		}
		if err := s.repo.SoftDelete(ctx, id); err != nil {
			s.logger.Error("soft delete staff failed", zap.String("staff_id", id), zap.Error(err))
			return err
		}
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("delete staff success",
		zap.String("staff_id", id),
		zap.Bool("hard", hard),
	)
	return nil
}

func (s *service) enqueueCreatedEvent(ctx context.Context, tx *sql.Tx, member *Staff) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.StaffCreatedEvent{
		EventType:  "staff.created",
		StaffID:    member.ID.String(),
		Role:       member.Role,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "staff",
		AggregateID:   member.ID.String(),
		EventType:     "staff.created",
		Topic:         events.StaffCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Warn("staff options cache invalidation failed", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "uq_staff_number") {
			return stafferrors.ErrDuplicateStaffNumber
		}
		return stafferrors.ErrDuplicateEmail
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return stafferrors.ErrDuplicateEmail
	}
	return err
}

func mapToResponse(member Staff) StaffResponse {
	resp := StaffResponse{
		ID:          member.ID.String(),
		StaffNumber: member.StaffNumber,
		FullName:    member.FullName,
		Email:       member.Email,
		Phone:       member.Phone,
		Role:        member.Role,
		IsActive:    member.IsActive,
		CreatedAt:   member.CreatedAt.Format(time.RFC3339),
	}
	if member.HiredAt != nil {
		v := member.HiredAt.Format("2006-01-02")
		resp.HiredAt = &v
	}
	return resp
}

func mapToListResponse(staffList []Staff) []StaffResponse {
	resp := make([]StaffResponse, len(staffList))
	for i, member := range staffList {
		resp[i] = mapToResponse(member)
	}
	return resp
}
