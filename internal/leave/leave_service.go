package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"farmstaff/internal/events"
	leaveerrors "farmstaff/internal/leave/errors"
	"farmstaff/internal/leavebalance"
	"farmstaff/internal/messaging/kafka"
	"farmstaff/internal/notify"
	"farmstaff/internal/principal"
	"farmstaff/internal/shared/apperror"
	"farmstaff/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p principal.Principal, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, p principal.Principal) ([]LeaveResponse, error)
	GetByID(ctx context.Context, p principal.Principal, id string) (LeaveResponse, error)
	Update(ctx context.Context, p principal.Principal, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, p principal.Principal, id string) (LeaveResponse, error)
	Reject(ctx context.Context, p principal.Principal, id, reason string) (LeaveResponse, error)
	Cancel(ctx context.Context, p principal.Principal, id string) (LeaveResponse, error)
	Delete(ctx context.Context, p principal.Principal, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	balances leavebalance.Repository
	outbox   kafka.OutboxRepository
	mailer   notify.Mailer
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances leavebalance.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, balances, nil, notify.NoopMailer{}, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	balances leavebalance.Repository,
	outboxRepo kafka.OutboxRepository,
	mailer notify.Mailer,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if mailer == nil {
		mailer = notify.NoopMailer{}
	}
	return &service{
		db:       db,
		repo:     repo,
		balances: balances,
		outbox:   outboxRepo,
		mailer:   mailer,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, p principal.Principal, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("actor_id", p.ID),
		zap.String("staff_id", req.StaffID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if !p.CanActFor(req.StaffID) {
		return LeaveResponse{}, apperror.ErrForbidden
	}

	staffUUID, actorUUID, startDate, endDate, err := validateCreateRequest(p.ID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	active, err := qtx.StaffIsActive(ctx, req.StaffID)
	if err != nil {
		s.logger.Error("create leave staff check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !active {
		return LeaveResponse{}, leaveerrors.ErrStaffNotFound
	}

	// Locking the balance row serializes concurrent leave creations for
	// the same staff member; the overlap check below cannot race.
	balance, err := s.balances.WithTx(tx).FindByStaffForUpdate(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrBalanceNotFound
		}
		s.logger.Error("create leave balance lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	blocking, err := qtx.FindBlocking(ctx, req.StaffID, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	for _, existing := range blocking {
		if Overlaps(startDate, endDate, existing.StartDate, existing.EndDate) {
			s.logger.Warn("create leave overlap detected",
				zap.String("staff_id", req.StaffID),
				zap.String("conflicting_id", existing.ID.String()),
			)
			return LeaveResponse{}, leaveerrors.ErrOverlappingRequest
		}
	}

	totalDays := DaysInclusive(startDate, endDate)
	if balance.RemainingLeaveDays < totalDays {
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l := &LeaveRequest{
		ID:        uuid.New(),
		StaffID:   staffUUID,
		LeaveType: req.LeaveType,
		StartDate: startDate,
		EndDate:   endDate,
		TotalDays: totalDays,
		Reason:    req.Reason,
		Status:    StatusPending,
		CreatedBy: actorUUID,
	}

	// The balance is checked but not reserved here; days are consumed
	// only when an admin approves.
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("staff_id", req.StaffID),
		zap.Int("total_days", totalDays),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, p principal.Principal) ([]LeaveResponse, error) {
	var (
		leaves []LeaveRequest
		err    error
	)
	if p.CanReadAll() {
		leaves, err = s.repo.FindAll(ctx)
	} else {
		leaves, err = s.repo.FindAllByStaff(ctx, p.ID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, p principal.Principal, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !p.CanReadAll() && !p.CanActFor(l.StaffID.String()) {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, p principal.Principal, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if startDate.Before(today()) {
		return LeaveResponse{}, leaveerrors.ErrPastDateRequest
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !p.CanActFor(l.StaffID.String()) {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	staffID := l.StaffID.String()

	balance, err := s.balances.WithTx(tx).FindByStaffForUpdate(ctx, staffID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrBalanceNotFound
		}
		return LeaveResponse{}, err
	}

	blocking, err := qtx.FindBlocking(ctx, staffID, &id)
	if err != nil {
		return LeaveResponse{}, err
	}
	for _, existing := range blocking {
		if Overlaps(startDate, endDate, existing.StartDate, existing.EndDate) {
			return LeaveResponse{}, leaveerrors.ErrOverlappingRequest
		}
	}

	totalDays := DaysInclusive(startDate, endDate)
	if balance.RemainingLeaveDays < totalDays {
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l.LeaveType = req.LeaveType
	l.StartDate = startDate
	l.EndDate = endDate
	l.TotalDays = totalDays
	l.Reason = req.Reason

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("update leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, p principal.Principal, id string) (LeaveResponse, error) {
	if !p.IsAdmin() {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	actorUUID, err := uuid.Parse(p.ID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		s.logger.Warn("approve leave on processed request",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	// Recompute from the stored dates; the request payload is not trusted.
	totalDays := DaysInclusive(l.StartDate, l.EndDate)
	staffID := l.StaffID.String()

	balances := s.balances.WithTx(tx)
	if _, err := balances.FindByStaffForUpdate(ctx, staffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrBalanceNotFound
		}
		return LeaveResponse{}, err
	}

	consumed, err := balances.ConsumeDays(ctx, staffID, totalDays)
	if err != nil {
		s.logger.Error("approve leave balance adjust failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if !consumed {
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	now := time.Now().UTC()
	l.Status = StatusApproved
	l.TotalDays = totalDays
	l.ApprovedBy = &actorUUID
	l.ApprovedAt = &now
	l.RejectionReason = nil

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueueDecisionEvent(ctx, tx, l); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("approved_by", p.ID),
		zap.Int("total_days", totalDays),
	)
	s.notifyDecision(l.ID.String(), StatusApproved, "")

	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, p principal.Principal, id, reason string) (LeaveResponse, error) {
	if !p.IsAdmin() {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	actorUUID, err := uuid.Parse(p.ID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reject leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	l.Status = StatusRejected
	l.ApprovedBy = &actorUUID
	if reason != "" {
		l.RejectionReason = &reason
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("reject leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueueDecisionEvent(ctx, tx, l); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reject leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success", zap.String("leave_id", id))
	s.notifyDecision(l.ID.String(), StatusRejected, reason)

	return mapToResponse(*l), nil
}

func (s *service) Cancel(ctx context.Context, p principal.Principal, id string) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !p.CanActFor(l.StaffID.String()) {
		return LeaveResponse{}, apperror.ErrForbidden
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	// Days were never reserved for a pending request, so cancelling has
	// no balance effect.
	l.Status = StatusCancelled

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, p principal.Principal, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}
	if !p.CanActFor(l.StaffID.String()) {
		return apperror.ErrForbidden
	}
	if l.Status != StatusPending {
		return leaveerrors.ErrAlreadyProcessed
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) enqueueDecisionEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:  "leave.decided",
		LeaveID:    l.ID.String(),
		StaffID:    l.StaffID.String(),
		Status:     l.Status,
		TotalDays:  l.TotalDays,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     "leave.decided",
		Topic:         events.LeaveDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// notifyDecision re-reads the request with its staff relation and mails
// the decision. Fire-and-forget: the operation already committed.
func (s *service) notifyDecision(leaveID, status, reason string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		l, err := s.repo.FindByID(ctx, leaveID)
		if err != nil || l == nil || l.Staff == nil || l.Staff.Email == "" {
			return
		}
		if err := s.mailer.SendLeaveDecision(ctx, l.Staff.Email, l.Staff.FullName, status, l.StartDate, l.EndDate, reason); err != nil {
			s.logger.Warn("leave decision mail failed",
				zap.String("leave_id", leaveID),
				zap.Error(err),
			)
		}
	}()
}

func validateCreateRequest(actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	staffUUID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidStaffID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	if startDate.Before(today()) {
		return uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrPastDateRequest
	}
	return staffUUID, actorUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:        l.ID.String(),
		StaffID:   l.StaffID.String(),
		LeaveType: l.LeaveType,
		StartDate: l.StartDate.Format("2006-01-02"),
		EndDate:   l.EndDate.Format("2006-01-02"),
		TotalDays: l.TotalDays,
		Reason:    l.Reason,
		Status:    l.Status,
		CreatedBy: l.CreatedBy.String(),
	}
	if l.Staff != nil {
		resp.StaffName = l.Staff.FullName
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
